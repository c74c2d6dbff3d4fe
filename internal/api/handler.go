package api

import (
	"context"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/insightdelivered/statement-scorer/internal/models"
	"github.com/insightdelivered/statement-scorer/internal/upload"
)

const (
	formField  = "statement"
	pdfMIME    = "application/pdf"
	msgMissing = "File is missing. Please upload a PDF file."
	msgBadType = "Invalid file type. Only PDF files are allowed."
)

// Processor scores a stored statement.
type Processor interface {
	Process(ctx context.Context, path string) (*models.Report, error)
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Processor Processor
	Store     upload.Store
	Logger    *zap.Logger
	Version   string
}

func (h *Handler) logger() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{Status: "ok", Version: h.Version})
}

// HandleProcessScore accepts a multipart upload in the "statement" field and
// responds with the statement statistics. The optional save_format query
// parameter is accepted for compatibility and has no effect.
func (h *Handler) HandleProcessScore(c *fiber.Ctx) error {
	fh, err := c.FormFile(formField)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, msgMissing)
	}

	if fh.Header.Get(fiber.HeaderContentType) != pdfMIME {
		return writeError(c, fiber.StatusBadRequest, msgBadType)
	}

	file, err := h.save(fh)
	if err != nil {
		h.logger().Error("failed to store upload", zap.Error(err))
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}
	defer func() {
		if err := file.Remove(); err != nil {
			h.logger().Warn("failed to remove upload", zap.String("path", file.Path), zap.Error(err))
		}
	}()

	report, err := h.Processor.Process(c.UserContext(), file.Path)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(newScoreResponse(report))
}

func (h *Handler) save(fh *multipart.FileHeader) (*upload.File, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return h.Store.Save(src)
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{Detail: msg})
}
