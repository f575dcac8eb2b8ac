package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/jmfernandez/gin-food-api/internal/auth"
	"github.com/jmfernandez/gin-food-api/internal/models"
	"github.com/jmfernandez/gin-food-api/internal/services"
)

// UserController handles signup, signin and user lookups
type UserController interface {
	SignUp(c *gin.Context)
	SignIn(c *gin.Context)
	GetUsers(c *gin.Context)
	GetUserByID(c *gin.Context)
}

type userController struct {
	service  services.UserService
	identity auth.IdentityClient
}

// NewUserController creates a new instance of UserController
func NewUserController(service services.UserService, identity auth.IdentityClient) UserController {
	return &userController{service: service, identity: identity}
}

type signUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignUp godoc
// @Summary Sign up a new user
// @Description Register the user with the identity provider and store a local account. The first account ever created becomes the admin.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body signUpRequest true "New account"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Router /auth/signup [post]
func (ctl *userController) SignUp(ctx *gin.Context) {
	var req signUpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest,
			models.NewAPIError(models.ErrCodeValidationFailed, models.MsgMissingRequiredFields))
		return
	}

	// Reject duplicates before touching the identity provider
	if _, err := ctl.service.GetUserByEmail(req.Email); err == nil {
		ctx.JSON(http.StatusConflict,
			models.NewAPIError(models.ErrCodeConflict, models.MsgUserExists))
		return
	}

	if err := ctl.identity.SignUp(ctx.Request.Context(), req.Email, req.Password, req.Name); err != nil {
		log.WithError(err).Error("Identity provider signup failed")
		ctx.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrCodeInternalServer, models.MsgSignupFailed))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrCodeInternalServer, models.MsgInternalServerError))
		return
	}

	user, err := ctl.service.CreateUser(&models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
	})
	if err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			ctx.JSON(http.StatusConflict,
				models.NewAPIError(models.ErrCodeConflict, models.MsgUserExists))
			return
		}
		log.WithError(err).Error("Failed to store user")
		ctx.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrCodeInternalServer, models.MsgInternalServerError))
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": models.MsgSignupSuccess,
		"user":    user,
	})
}

// SignIn godoc
// @Summary Sign in
// @Description Exchange the user's credentials for an identity-provider token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body signInRequest true "Credentials"
// @Success 200 {object} map[string]string
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Router /auth/signin [post]
func (ctl *userController) SignIn(ctx *gin.Context) {
	var req signInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest,
			models.NewAPIError(models.ErrCodeValidationFailed, models.MsgMissingRequiredFields))
		return
	}

	token, err := ctl.identity.SignIn(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			ctx.JSON(http.StatusUnauthorized,
				models.NewAPIError(models.ErrCodeUnauthorized, models.MsgInvalidCreds))
			return
		}
		log.WithError(err).Error("Identity provider signin failed")
		ctx.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrCodeInternalServer, models.MsgInternalServerError))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"accessToken": token})
}

// GetUsers returns every registered user
func (ctl *userController) GetUsers(ctx *gin.Context) {
	users, err := ctl.service.GetUsers()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrCodeInternalServer, models.MsgInternalServerError))
		return
	}
	if len(users) == 0 {
		ctx.JSON(http.StatusNotFound,
			models.NewAPIError(models.ErrCodeNotFound, models.MsgUserNotFound))
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// GetUserByID returns a single user by its ID
func (ctl *userController) GetUserByID(ctx *gin.Context) {
	user, err := ctl.service.GetUserByID(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound,
				models.NewAPIError(models.ErrCodeNotFound, models.MsgUserNotFound))
			return
		}
		ctx.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrCodeInternalServer, models.MsgInternalServerError))
		return
	}
	ctx.JSON(http.StatusOK, user)
}
