package user

import (
	"net/http"
	"time"

	"github.com/DriveFleet/DriveFleet/internal/common/apperr"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes 挂载认证路由。/auth/* 需要配置在 public_paths 里，
// 否则登录接口自己也会被 JWT 中间件挡住。
func RegisterRoutes(rg *gin.RouterGroup, svc *Service) {
	rg.POST("/auth/signup", func(c *gin.Context) {
		var req struct {
			Username string   `json:"username" binding:"required"`
			Password string   `json:"password" binding:"required"`
			Email    string   `json:"email"`
			StaffID  string   `json:"staff_id"`
			Roles    []string `json:"roles"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		u, err := svc.SignUp(c.Request.Context(), SignUpInput{
			Username: req.Username,
			Password: req.Password,
			Email:    req.Email,
			StaffID:  req.StaffID,
			Roles:    req.Roles,
		})
		if err != nil {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error(), "code": string(apperr.CodeOf(err))})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"id":       u.ID,
			"username": u.Username,
			"roles":    u.RolesSlice(),
		})
	})

	rg.POST("/auth/signin", func(c *gin.Context) {
		var req struct {
			Username string `json:"username" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		token, expiresAt, err := svc.SignIn(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error(), "code": string(apperr.CodeOf(err))})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"access_token": token,
			"token_type":   "Bearer",
			"expires_at":   expiresAt.Format(time.RFC3339),
		})
	})
}
