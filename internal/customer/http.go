package customer

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/DriveFleet/DriveFleet/internal/common/apperr"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegisterRoutes 挂载客户相关路由（简单 CRUD，直接走 repo）。
func RegisterRoutes(rg *gin.RouterGroup, repo *Repo) {
	rg.POST("/customers", func(c *gin.Context) {
		var req struct {
			FirstName     string `json:"first_name" binding:"required"`
			LastName      string `json:"last_name" binding:"required"`
			Phone         string `json:"phone"`
			Email         string `json:"email"`
			LicenseNumber string `json:"license_number" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		license := strings.TrimSpace(req.LicenseNumber)
		exists, err := repo.ExistsByLicense(c.Request.Context(), license)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if exists {
			e := apperr.New(apperr.CodeAlreadyExists, "customer with license %s already exists", license)
			c.JSON(apperr.HTTPStatus(e), gin.H{"error": e.Error(), "code": string(apperr.CodeOf(e))})
			return
		}

		cust := &Customer{
			ID:            uuid.NewString(),
			FirstName:     strings.TrimSpace(req.FirstName),
			LastName:      strings.TrimSpace(req.LastName),
			Phone:         strings.TrimSpace(req.Phone),
			Email:         strings.TrimSpace(req.Email),
			LicenseNumber: license,
		}
		if err := repo.Create(c.Request.Context(), cust); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, cust)
	})

	rg.GET("/customers", func(c *gin.Context) {
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		customers, total, err := repo.List(c.Request.Context(), offset, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"total": total, "items": customers})
	})

	rg.GET("/customers/:id", func(c *gin.Context) {
		cust, err := repo.FindByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				err = apperr.New(apperr.CodeNotFound, "customer %s not found", c.Param("id"))
			}
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error(), "code": string(apperr.CodeOf(err))})
			return
		}
		c.JSON(http.StatusOK, cust)
	})
}
