package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/docuglot/backend/internal/core/services"
	"github.com/docuglot/backend/internal/infrastructure/logger"
	"github.com/docuglot/backend/internal/transport/http/dto"
	"github.com/docuglot/backend/internal/transport/http/middleware"
)

type TranslationHandler struct {
	service *services.TranslationService
	logger  *logger.Logger
}

func NewTranslationHandler(service *services.TranslationService, logger *logger.Logger) *TranslationHandler {
	return &TranslationHandler{service: service, logger: logger}
}

func (h *TranslationHandler) Create(c *fiber.Ctx) error {
	var req dto.TranslationRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Warnw("translation_create_body_parse_failed", "error", err)
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

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "file is required",
		})
	}
	src, err := fileHeader.Open()
	if err != nil {
		h.logger.Errorw("translation_create_file_open_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "could not read upload",
		})
	}
	defer src.Close()

	owner := middleware.OwnerFrom(c)
	task, err := h.service.Create(c.Context(), owner, fileHeader.Filename, src, fileHeader.Size, req.Options())
	if err != nil {
		return h.fail(c, "translation_create_failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.TaskToResponse(task))
}

func (h *TranslationHandler) List(c *fiber.Ctx) error {
	tasks, err := h.service.List(c.Context(), middleware.OwnerFrom(c))
	if err != nil {
		return h.fail(c, "translation_list_failed", err)
	}
	return c.JSON(dto.TasksToResponse(tasks))
}

func (h *TranslationHandler) Get(c *fiber.Ctx) error {
	task, err := h.service.Get(c.Context(), middleware.OwnerFrom(c), c.Params("id"))
	if err != nil {
		return h.fail(c, "translation_get_failed", err)
	}
	return c.JSON(dto.TaskToResponse(task))
}

func (h *TranslationHandler) Retry(c *fiber.Ctx) error {
	task, err := h.service.Retry(c.Context(), middleware.OwnerFrom(c), c.Params("id"))
	if err != nil {
		return h.fail(c, "translation_retry_failed", err)
	}
	return c.JSON(dto.TaskToResponse(task))
}

func (h *TranslationHandler) Download(c *fiber.Ctx) error {
	path, name, err := h.service.Download(c.Context(), middleware.OwnerFrom(c), c.Params("id"))
	if err != nil {
		return h.fail(c, "translation_download_failed", err)
	}
	return c.Download(path, name)
}

func (h *TranslationHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.Delete(c.Context(), middleware.OwnerFrom(c), id); err != nil {
		return h.fail(c, "translation_delete_failed", err)
	}
	return c.JSON(fiber.Map{"taskId": id, "status": "deleted"})
}

// fail maps service sentinels to HTTP statuses.
func (h *TranslationHandler) fail(c *fiber.Ctx, event string, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrTaskNotOwned):
		status = fiber.StatusForbidden
	case errors.Is(err, services.ErrTaskNotRetryable),
		errors.Is(err, services.ErrTaskNotCompleted),
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
