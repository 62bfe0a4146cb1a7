package staff

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

// RegisterRoutes 挂载员工相关路由（简单 CRUD，直接走 repo）。
func RegisterRoutes(rg *gin.RouterGroup, repo *Repo) {
	rg.POST("/staff", func(c *gin.Context) {
		var req struct {
			FirstName string `json:"first_name" binding:"required"`
			LastName  string `json:"last_name" binding:"required"`
			Phone     string `json:"phone"`
			Email     string `json:"email"`
			Position  string `json:"position" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		position := Position(strings.ToUpper(strings.TrimSpace(req.Position)))
		if !position.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid position"})
			return
		}
		s := &Staff{
			ID:        uuid.NewString(),
			FirstName: strings.TrimSpace(req.FirstName),
			LastName:  strings.TrimSpace(req.LastName),
			Phone:     strings.TrimSpace(req.Phone),
			Email:     strings.TrimSpace(req.Email),
			Position:  position,
		}
		if err := repo.Create(c.Request.Context(), s); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, s)
	})

	rg.GET("/staff", func(c *gin.Context) {
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		members, total, err := repo.List(c.Request.Context(), Position(c.Query("position")), offset, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"total": total, "items": members})
	})

	rg.GET("/staff/:id", func(c *gin.Context) {
		s, err := repo.FindByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				err = apperr.New(apperr.CodeNotFound, "staff member %s not found", c.Param("id"))
			}
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error(), "code": string(apperr.CodeOf(err))})
			return
		}
		c.JSON(http.StatusOK, s)
	})
}
