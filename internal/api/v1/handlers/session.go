package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"subtitle-whisper/internal/api/middleware"
	"subtitle-whisper/internal/api/v1/dto"
	"subtitle-whisper/internal/api/v1/services"
)

// SessionHandler handles session-related API endpoints
type SessionHandler struct {
	service services.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(service services.SessionService) *SessionHandler {
	return &SessionHandler{
		service: service,
	}
}

// Get handles GET /api/v1/session
// Returns the current session state; polled by the page while a step runs
//
// @Summary Get the current session
// @Tags sessions
// @Produce json
// @Success 200 {object} dto.SessionResponse "Session snapshot"
// @Router /session [get]
func (h *SessionHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Describe(middleware.CurrentSession(c)))
}

// SetCredential handles PUT /api/v1/session/credential
//
// @Summary Supply an OpenAI API key for this session
// @Description The key is kept in session memory only and never returned
// @Tags sessions
// @Accept json
// @Produce json
// @Param credential body dto.SetCredentialRequest true "API key"
// @Success 200 {object} dto.CredentialResponse "Credential stored"
// @Failure 400 {object} errors.APIError "Bad request - invalid key format"
// @Router /session/credential [put]
func (h *SessionHandler) SetCredential(c *gin.Context) {
	var req dto.SetCredentialRequest

	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.service.SetCredential(middleware.CurrentSession(c), &req))
}

// Delete handles DELETE /api/v1/session
// Ends the session and releases its scratch files
//
// @Summary End the session
// @Tags sessions
// @Success 204 "Session ended"
// @Failure 409 {object} errors.APIError "Session busy"
// @Router /session [delete]
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.service.End(middleware.CurrentSession(c)); err != nil {
		middleware.HandleError(c, err)
		return
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	c.Status(http.StatusNoContent)
}
