package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskly-be/internal/models"
	"taskly-be/internal/service"
	"taskly-be/internal/validation"
)

type AuthController struct {
	authService service.AuthService
	errs        *ErrorTranslator
}

func NewAuthController(authService service.AuthService, errs *ErrorTranslator) *AuthController {
	return &AuthController{
		authService: authService,
		errs:        errs,
	}
}

// Register handles POST /api/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ac.errs.Respond(c, validation.Translate(err))
		return
	}

	response, err := ac.authService.Register(&req)
	if err != nil {
		ac.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Login handles POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ac.errs.Respond(c, validation.Translate(err))
		return
	}

	response, err := ac.authService.Login(&req)
	if err != nil {
		ac.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Me handles GET /api/auth/me
func (ac *AuthController) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := ac.authService.Profile(userID)
	if err != nil {
		ac.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
