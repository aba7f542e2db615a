package auth

import (
	"net/http"

	"github.com/juanesscobar/taskok/internal/middleware"
	"github.com/juanesscobar/taskok/internal/shared/apperror"
	"github.com/juanesscobar/taskok/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service       Service
	secureCookies bool
}

func NewHandler(s Service, secureCookies bool) *Handler {
	return &Handler{service: s, secureCookies: secureCookies}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) setTokenCookie(c *gin.Context, accessToken string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    accessToken,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	accessToken, userResp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.setTokenCookie(c, accessToken, 3600)
	response.Success(c, http.StatusCreated, gin.H{
		"token": accessToken,
		"user":  userResp,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	accessToken, userResp, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.setTokenCookie(c, accessToken, 3600)
	response.Success(c, http.StatusOK, gin.H{
		"token": accessToken,
		"user":  userResp,
	})
}

func (h *Handler) Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication is required", nil)
		return
	}

	userResp, err := h.service.GetMe(c.Request.Context(), userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	// Session data must not be cached by browsers.
	c.Header("Cache-Control", "no-store")
	response.Success(c, http.StatusOK, gin.H{"user": userResp})
}

func (h *Handler) Logout(c *gin.Context) {
	h.setTokenCookie(c, "", -1)
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}
