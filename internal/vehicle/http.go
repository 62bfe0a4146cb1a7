package vehicle

import (
	"net/http"
	"strconv"

	"github.com/DriveFleet/DriveFleet/internal/common/apperr"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes 挂载车辆相关路由。
func RegisterRoutes(rg *gin.RouterGroup, svc *Service) {
	rg.POST("/vehicles", func(c *gin.Context) {
		var req struct {
			Plate           string `json:"plate" binding:"required"`
			VIN             string `json:"vin"`
			Brand           string `json:"brand"`
			Model           string `json:"model"`
			Year            int    `json:"year"`
			DailyPriceCents int64  `json:"daily_price_cents"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		v, err := svc.Register(c.Request.Context(), RegisterInput{
			Plate:           req.Plate,
			VIN:             req.VIN,
			Brand:           req.Brand,
			Model:           req.Model,
			Year:            req.Year,
			DailyPriceCents: req.DailyPriceCents,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, v)
	})

	rg.GET("/vehicles", func(c *gin.Context) {
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		vehicles, total, err := svc.List(c.Request.Context(), Status(c.Query("status")), offset, limit)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"total": total, "items": vehicles})
	})

	rg.GET("/vehicles/:id", func(c *gin.Context) {
		v, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	})

	rg.PUT("/vehicles/:id/out-of-order", func(c *gin.Context) {
		var req struct {
			On bool `json:"on"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		v, err := svc.SetOutOfOrder(c.Request.Context(), c.Param("id"), req.On)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	})

	rg.DELETE("/vehicles/:id", func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}

func respondErr(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{
		"error": err.Error(),
		"code":  string(apperr.CodeOf(err)),
	})
}
