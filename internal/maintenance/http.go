package maintenance

import (
	"net/http"
	"strconv"
	"time"

	"github.com/DriveFleet/DriveFleet/internal/common/apperr"
	"github.com/gin-gonic/gin"
)

func respondErr(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{
		"error": err.Error(),
		"code":  string(apperr.CodeOf(err)),
	})
}

// RegisterRoutes 挂载保养路由。
func RegisterRoutes(rg *gin.RouterGroup, svc *Service) {
	rg.POST("/services", func(c *gin.Context) {
		var req struct {
			VehicleID   string    `json:"vehicle_id" binding:"required"`
			StaffID     string    `json:"staff_id" binding:"required"`
			Description string    `json:"description" binding:"required"`
			Start       time.Time `json:"start" binding:"required"`
			End         time.Time `json:"end" binding:"required"`
			CostCents   int64     `json:"cost_cents"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		rec, err := svc.Register(c.Request.Context(), RegisterInput{
			VehicleID:   req.VehicleID,
			StaffID:     req.StaffID,
			Description: req.Description,
			Start:       req.Start,
			End:         req.End,
			CostCents:   req.CostCents,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, rec)
	})

	rg.GET("/services", func(c *gin.Context) {
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		records, total, err := svc.List(c.Request.Context(),
			c.Query("vehicle_id"), Status(c.Query("status")), offset, limit)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"total": total, "items": records})
	})

	rg.GET("/services/:id", func(c *gin.Context) {
		rec, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	})

	rg.PATCH("/services/:id", func(c *gin.Context) {
		var req struct {
			Start       *time.Time `json:"start"`
			End         *time.Time `json:"end"`
			CostCents   *int64     `json:"cost_cents"`
			Description *string    `json:"description"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		rec, err := svc.Update(c.Request.Context(), c.Param("id"), UpdateInput{
			Start:       req.Start,
			End:         req.End,
			CostCents:   req.CostCents,
			Description: req.Description,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	})

	rg.POST("/services/:id/cancel", func(c *gin.Context) {
		rec, err := svc.Cancel(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	})
}
