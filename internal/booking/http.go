package booking

import (
	"net/http"
	"strconv"
	"time"

	"github.com/DriveFleet/DriveFleet/internal/common/apperr"
	"github.com/DriveFleet/DriveFleet/internal/schedule"
	"github.com/gin-gonic/gin"
)

func respondErr(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{
		"error": err.Error(),
		"code":  string(apperr.CodeOf(err)),
	})
}

// RegisterRoutes 挂载订单路由。
func RegisterRoutes(rg *gin.RouterGroup, svc *Service) {
	rg.POST("/bookings", func(c *gin.Context) {
		var req struct {
			VehicleID  string    `json:"vehicle_id" binding:"required"`
			CustomerID string    `json:"customer_id" binding:"required"`
			StaffID    string    `json:"staff_id" binding:"required"`
			Start      time.Time `json:"start" binding:"required"`
			End        time.Time `json:"end" binding:"required"`
			CostCents  int64     `json:"cost_cents"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		b, err := svc.Create(c.Request.Context(), CreateInput{
			VehicleID:  req.VehicleID,
			CustomerID: req.CustomerID,
			StaffID:    req.StaffID,
			Start:      req.Start,
			End:        req.End,
			CostCents:  req.CostCents,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, b)
	})

	rg.GET("/bookings", func(c *gin.Context) {
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		bookings, total, err := svc.List(c.Request.Context(),
			c.Query("vehicle_id"), Status(c.Query("status")), offset, limit)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"total": total, "items": bookings})
	})

	rg.GET("/bookings/:id", func(c *gin.Context) {
		b, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	})

	rg.POST("/bookings/:id/cancel", func(c *gin.Context) {
		b, err := svc.Cancel(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	})

	rg.PATCH("/bookings/:id", func(c *gin.Context) {
		var req struct {
			Start     *time.Time `json:"start"`
			End       *time.Time `json:"end"`
			CostCents *int64     `json:"cost_cents"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		b, err := svc.Update(c.Request.Context(), c.Param("id"), UpdateInput{
			Start:     req.Start,
			End:       req.End,
			CostCents: req.CostCents,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	})

	// 可用性查询：冲突时返回 409 并带上冲突区间
	rg.GET("/availability", func(c *gin.Context) {
		start, err := time.Parse(time.RFC3339, c.Query("start"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start must be RFC3339"})
			return
		}
		end, err := time.Parse(time.RFC3339, c.Query("end"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end must be RFC3339"})
			return
		}
		kind := schedule.Kind(c.DefaultQuery("kind", string(schedule.KindBooking)))
		if err := svc.CheckAvailability(c.Request.Context(), c.Query("vehicle_id"), start, end, kind); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"available": true})
	})
}
