package handlers

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"subtitle-whisper/internal/api/errors"
	"subtitle-whisper/internal/api/middleware"
	"subtitle-whisper/internal/api/v1/dto"
	"subtitle-whisper/internal/api/v1/services"
	apperrors "subtitle-whisper/internal/app/errors"
	"subtitle-whisper/internal/app/model"
)

// TranscriptionHandler handles upload and transcription API endpoints
type TranscriptionHandler struct {
	service        services.TranscriptionService
	maxUploadBytes int64
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(service services.TranscriptionService, maxUploadBytes int64) *TranscriptionHandler {
	return &TranscriptionHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

// Upload handles POST /api/v1/uploads
// Accepts a multipart "file" and makes its audio ready for transcription
//
// @Summary Upload a video or audio file
// @Description Stores the upload in the session and extracts its audio; an unchanged upload reuses the extracted audio
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "mp3, mp4, m4a, wav or mov file"
// @Success 200 {object} dto.UploadResponse "Audio ready for transcription"
// @Failure 400 {object} errors.APIError "No file uploaded"
// @Failure 401 {object} errors.APIError "API credential missing"
// @Failure 409 {object} errors.APIError "Session busy"
// @Failure 413 {object} errors.APIError "Upload too large"
// @Failure 422 {object} errors.APIError "Unsupported media or extraction failed"
// @Router /uploads [post]
func (h *TranscriptionHandler) Upload(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		if c.Request.ContentLength > h.maxUploadBytes {
			middleware.HandleError(c, errors.NewPayloadTooLargeError(h.maxUploadBytes))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case stderrors.As(err, &tooLarge):
			middleware.HandleError(c, errors.NewPayloadTooLargeError(h.maxUploadBytes))
		case stderrors.Is(err, http.ErrMissingFile):
			middleware.HandleError(c, apperrors.ErrEmptyUpload)
		default:
			middleware.HandleError(c, errors.NewBadRequestError("Invalid multipart upload"))
		}
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("Failed to read uploaded file"))
		return
	}

	response, err := h.service.Upload(c.Request.Context(), middleware.CurrentSession(c), model.NewUploadedMedia(header.Filename, data))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Audio handles GET /api/v1/audio
// Streams the extracted audio for the page's player
//
// @Summary Play the extracted audio
// @Tags uploads
// @Produce audio/mpeg
// @Success 200 {file} file "Extracted audio"
// @Failure 409 {object} errors.APIError "No audio ready"
// @Router /audio [get]
func (h *TranscriptionHandler) Audio(c *gin.Context) {
	audio, err := h.service.Audio(middleware.CurrentSession(c))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	mtype, err := mimetype.DetectFile(audio.Path)
	if err != nil {
		middleware.HandleError(c, apperrors.Kind(apperrors.ErrNoAudio, err))
		return
	}

	c.Header("Content-Type", mtype.String())
	c.File(audio.Path)
}

// Create handles POST /api/v1/transcriptions
// Transcribes the cached audio in the requested mode
//
// @Summary Transcribe the extracted audio
// @Description Sends the session's audio to the transcription API, or reuses the result for the same audio and mode unless force is set
// @Tags transcriptions
// @Accept json
// @Produce json
// @Param transcription body dto.CreateTranscriptionRequest true "Output mode and cache bypass"
// @Success 200 {object} dto.TranscriptionResponse "Formatted transcript"
// @Failure 400 {object} errors.APIError "Bad request - invalid input data"
// @Failure 401 {object} errors.APIError "API credential missing"
// @Failure 409 {object} errors.APIError "Session busy or no audio ready"
// @Failure 502 {object} errors.APIError "Transcription API error"
// @Router /transcriptions [post]
func (h *TranscriptionHandler) Create(c *gin.Context) {
	var req dto.CreateTranscriptionRequest

	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.Transcribe(c.Request.Context(), middleware.CurrentSession(c), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Download handles GET /api/v1/transcriptions/download
// Serves the displayed transcript as transcription.txt or transcription.srt
//
// @Summary Download the transcript
// @Tags transcriptions
// @Produce plain
// @Success 200 {string} string "transcription.txt or transcription.srt"
// @Failure 409 {object} errors.APIError "No transcript available"
// @Router /transcriptions/download [get]
func (h *TranscriptionHandler) Download(c *gin.Context) {
	formatted, err := h.service.Download(middleware.CurrentSession(c))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", formatted.Filename))
	c.Data(http.StatusOK, formatted.ContentType, []byte(formatted.Text))
}
