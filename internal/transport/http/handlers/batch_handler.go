package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/docuglot/backend/internal/core/services"
	"github.com/docuglot/backend/internal/domain"
	"github.com/docuglot/backend/internal/infrastructure/logger"
	"github.com/docuglot/backend/internal/transport/http/dto"
	"github.com/docuglot/backend/internal/transport/http/middleware"
)

type BatchHandler struct {
	service *services.BatchService
	logger  *logger.Logger
}

func NewBatchHandler(service *services.BatchService, logger *logger.Logger) *BatchHandler {
	return &BatchHandler{service: service, logger: logger}
}

func (h *BatchHandler) Create(c *fiber.Ctx) error {
	var req dto.TranslationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}
	if errs := req.Validate(); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Details: errs,
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "multipart form is required",
		})
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "at least one file is required",
		})
	}

	files := make([]services.BatchFile, 0, len(headers))
	closers := make([]func() error, 0, len(headers))
	defer func() {
		for _, close := range closers {
			close()
		}
	}()
	for _, header := range headers {
		src, err := header.Open()
		if err != nil {
			h.logger.Errorw("batch_create_file_open_failed", "file", header.Filename, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: fmt.Sprintf("could not read upload %q", header.Filename),
			})
		}
		closers = append(closers, src.Close)
		files = append(files, services.BatchFile{
			Name:   header.Filename,
			Size:   header.Size,
			Reader: src,
		})
	}

	owner := middleware.OwnerFrom(c)
	batch, tasks, err := h.service.Create(c.Context(), owner, files, req.Options())
	if err != nil {
		return h.fail(c, "batch_create_failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.BatchCreateResponse{
		BatchID: batch.BatchID,
		TaskIDs: batch.TaskIDs,
		Status:  string(domain.TaskStatusPending),
		Tasks:   dto.TasksToResponse(tasks),
	})
}

// taskIDs extracts the addressed task set from the request body, expanding a
// batch id into its members when no explicit list is given.
func (h *BatchHandler) taskIDs(c *fiber.Ctx) ([]string, error) {
	var req dto.BatchQueryRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if errs := req.Validate(); len(errs) > 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, errs[0])
	}
	if len(req.TaskIDs) > 0 {
		return req.TaskIDs, nil
	}
	return h.service.Resolve(c.Context(), req.BatchID)
}

func (h *BatchHandler) Progress(c *fiber.Ctx) error {
	ids, err := h.taskIDs(c)
	if err != nil {
		return h.fail(c, "batch_progress_failed", err)
	}
	progress, err := h.service.Progress(c.Context(), middleware.OwnerFrom(c), ids)
	if err != nil {
		return h.fail(c, "batch_progress_failed", err)
	}
	return c.JSON(progress)
}

// Download returns the addressed outputs. A set whose completed members are a
// single artifact is served directly; multiple artifacts come back as a zip.
func (h *BatchHandler) Download(c *fiber.Ctx) error {
	ids, err := h.taskIDs(c)
	if err != nil {
		return h.fail(c, "batch_download_failed", err)
	}
	owner := middleware.OwnerFrom(c)

	progress, err := h.service.Progress(c.Context(), owner, ids)
	if err != nil {
		return h.fail(c, "batch_download_failed", err)
	}
	var completed []domain.Task
	for _, task := range progress.Tasks {
		if task.Status == domain.TaskStatusCompleted && task.OutputPath != "" {
			completed = append(completed, task)
		}
	}
	if len(completed) == 1 {
		return c.Download(completed[0].OutputPath, services.OutputName(&completed[0]))
	}

	archivePath, err := h.service.Archive(c.Context(), owner, ids)
	if err != nil {
		return h.fail(c, "batch_download_failed", err)
	}
	return c.Download(archivePath, "translations.zip")
}

func (h *BatchHandler) fail(c *fiber.Ctx, event string, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		h.logger.Warnw(event, "status", fiberErr.Code, "error", fiberErr.Message)
		return c.Status(fiberErr.Code).JSON(dto.ErrorResponse{Error: fiberErr.Message})
	}

	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrBatchNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrTaskNotOwned):
		status = fiber.StatusForbidden
	case errors.Is(err, services.ErrBatchEmpty),
		errors.Is(err, services.ErrBatchNotCompleted),
		errors.Is(err, services.ErrTaskInvalidInput),
		errors.Is(err, services.ErrUnsupportedFormat):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrFileTooLarge):
		status = fiber.StatusRequestEntityTooLarge
	}

	if status == fiber.StatusInternalServerError {
		h.logger.Errorw(event, "error", err)
	} else {
		h.logger.Warnw(event, "status", status, "error", err)
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: err.Error()})
}
