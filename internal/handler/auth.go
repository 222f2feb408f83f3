package handler

import (
	"net/http"

	"github.com/abhishek972986/porter-managment/internal/apierror"
	"github.com/abhishek972986/porter-managment/internal/dto"
	"github.com/abhishek972986/porter-managment/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Register godoc
// @Summary Register a user
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "New user"
// @Success 201 {object} dto.AuthResponse
// @Failure 409 {object} apierror.Response
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	sendCreated(c, resp)
}

// Login godoc
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} apierror.Response
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	sendOK(c, resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		_ = c.Error(err)
		return
	}
	sendOK(c, resp)
}

// Logout revokes the refresh token when one is sent. The body is optional.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			_ = c.Error(apierror.BadRequest("invalid JSON body"))
			return
		}
	}
	if req.RefreshToken != "" {
		if err := h.svc.Logout(c.Request.Context(), req.RefreshToken); err != nil {
			_ = c.Error(err)
			return
		}
	}
	c.JSON(http.StatusOK, apierror.Message("logged out"))
}

func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.svc.Profile(c.Request.Context(), actorID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	sendOK(c, gin.H{"user": user})
}
