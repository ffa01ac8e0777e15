package controllers

import (
	"errors"
	"net/http"

	"salondesk-backend/models"
	"salondesk-backend/stores"
	"salondesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	admins *stores.AdminStore
}

func NewAuthController(admins *stores.AdminStore) *AuthController {
	return &AuthController{admins: admins}
}

type RegisterInput struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=admin manager"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a dashboard admin. Only existing admins can reach
// this; the first account is seeded out of band.
func (ac *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	admin := models.Admin{
		Username: input.Username,
		Role:     input.Role,
	}
	if err := ac.admins.Create(&admin, input.Password); err != nil {
		switch {
		case errors.Is(err, stores.ErrUsernameExists):
			utils.RespondWithError(c, http.StatusConflict, "Username already taken")
		case errors.Is(err, stores.ErrAdminValidation):
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		default:
			log.Error().Err(err).Msg("Failed to create admin")
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create admin")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"admin":   admin,
	})
}

// Login validates credentials and issues a session token.
func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	admin, err := ac.admins.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, stores.ErrAdminNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			log.Error().Err(err).Msg("Login lookup failed")
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, admin.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(admin.ID.String(), admin.Username, admin.Role)
	if err != nil {
		log.Error().Err(err).Msg("Token generation failed")
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	if err := ac.admins.TouchLastLogin(admin.ID); err != nil {
		log.Error().Err(err).Msg("Failed to update last login")
	}

	maxAge := int(utils.TokenExpiry().Seconds())
	c.SetCookie("token", token, maxAge, "/", "", true, true)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"admin": gin.H{
			"id":       admin.ID,
			"username": admin.Username,
			"role":     admin.Role,
		},
	})
}

// Me returns the authenticated admin's profile.
func (ac *AuthController) Me(c *gin.Context) {
	username, exists := c.Get("username")
	if !exists {
		utils.RespondWithError(c, http.StatusInternalServerError, "Username not found in context")
		return
	}

	admin, err := ac.admins.FindByUsername(username.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Admin not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"admin": admin})
}
