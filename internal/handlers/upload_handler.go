package handlers

import (
	"errors"

	"showcase/internal/middleware"
	"showcase/internal/uploads"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// UploadHandler accepts single-file uploads.
type UploadHandler struct {
	store    uploads.Store
	maxBytes int64
	logger   zerolog.Logger
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(store uploads.Store, maxBytes int64) *UploadHandler {
	return &UploadHandler{
		store:    store,
		maxBytes: maxBytes,
		logger:   log.With().Str("handler", "uploads").Logger(),
	}
}

// RegisterRoutes registers the upload route behind auth.
func (h *UploadHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Post("/upload", auth, h.HandleUpload)
}

// HandleUpload stores the multipart field "file" under a fresh name.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No file uploaded",
		})
	}
	if fileHeader.Size > h.maxBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"message": "File too large",
		})
	}

	name, err := uploads.NewName(fileHeader.Filename)
	if err != nil {
		if errors.Is(err, uploads.ErrInvalidFileType) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid file type",
			})
		}
		return respondError(c, h.logger, err)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return respondError(c, h.logger, err)
	}
	defer f.Close()

	url, err := h.store.Save(c.UserContext(), name, f, fileHeader.Size, fileHeader.Header.Get(fiber.HeaderContentType))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	h.logger.Info().
		Str("account_id", middleware.CurrentAccountID(c)).
		Str("filename", name).
		Int64("size", fileHeader.Size).
		Msg("file uploaded")
	return c.JSON(fiber.Map{
		"url":      url,
		"filename": name,
	})
}
