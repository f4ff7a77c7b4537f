package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GoogleAuth handles GET /auth/google by redirecting to the consent page.
func (h *Handler) GoogleAuth(c *gin.Context) {
	if h.provider == nil || h.states == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "google login is not configured"})
		return
	}
	c.Redirect(http.StatusFound, h.provider.AuthCodeURL(h.states.Issue()))
}

// GoogleAuthRedirect handles GET /auth/google/redirect, the provider callback.
func (h *Handler) GoogleAuthRedirect(c *gin.Context) {
	if h.provider == nil || h.states == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "google login is not configured"})
		return
	}

	if errParam := c.Query("error"); errParam != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errParam})
		return
	}

	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code or state"})
		return
	}
	if !h.states.Consume(state) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid state"})
		return
	}

	profile, err := h.provider.Profile(c.Request.Context(), code)
	if err != nil {
		log.Printf("Google profile lookup failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch provider profile"})
		return
	}

	token, err := h.auth.ValidateOAuthLogin(c.Request.Context(), profile.Email, profile.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}
