package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"restaurant-pos/internal/domain"
)

func (d Deps) login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	var user domain.User
	err := d.MasterDB.First(&user, "email = ?", req.Email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fail(c, http.StatusUnauthorized, "Unauthorized", "invalid credentials")
		return
	}
	if err != nil {
		renderError(c, err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		fail(c, http.StatusUnauthorized, "Unauthorized", "invalid credentials")
		return
	}
	token, err := GenerateToken(d.JWTSecret, d.TokenTTL, user)
	if err != nil {
		renderError(c, err)
		return
	}
	d.Log.Info("user_logged_in", map[string]any{"user_id": user.ID, "role": string(user.Role)})
	c.JSON(http.StatusOK, domain.LoginResponse{Token: token, Role: user.Role, Name: user.Name})
}
