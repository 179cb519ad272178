package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	authDto "github.com/gsualumni/alumninet/internal/modules/auth/dto"
	auth "github.com/gsualumni/alumninet/internal/modules/auth/service"
	"github.com/gsualumni/alumninet/internal/session"
	"github.com/gsualumni/alumninet/pkg/apperror"
	"github.com/gsualumni/alumninet/pkg/response"
	"github.com/gsualumni/alumninet/pkg/validator"
)

type AuthHandler struct {
	service      auth.Service
	tokenTTL     time.Duration
	secureCookie bool
}

func NewAuthHandler(service auth.Service, tokenTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{service: service, tokenTTL: tokenTTL, secureCookie: secureCookie}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req authDto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.NewValidation(validator.FieldErrors(err)))
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	h.setSessionCookie(c, resp.Token)
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req authDto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.NewValidation(validator.FieldErrors(err)))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	h.setSessionCookie(c, resp.Token)
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out."})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	resp, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, token, int(h.tokenTTL.Seconds()), "/", "", h.secureCookie, true)
}
