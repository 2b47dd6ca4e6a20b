package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/docuglot/backend/internal/core/services"
	"github.com/docuglot/backend/internal/infrastructure/logger"
	"github.com/docuglot/backend/internal/transport/http/dto"
)

type SystemHandler struct {
	system  *services.SystemService
	cleanup *services.CleanupService
	logger  *logger.Logger
}

func NewSystemHandler(system *services.SystemService, cleanup *services.CleanupService, logger *logger.Logger) *SystemHandler {
	return &SystemHandler{system: system, cleanup: cleanup, logger: logger}
}

func (h *SystemHandler) Status(c *fiber.Ctx) error {
	report, err := h.system.Report(c.Context())
	if err != nil {
		h.logger.Errorw("system_status_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.JSON(report)
}

// Cleanup triggers the expiry sweep on demand instead of waiting for the
// scheduled run.
func (h *SystemHandler) Cleanup(c *fiber.Ctx) error {
	report, err := h.cleanup.Run(c.Context())
	if err != nil {
		h.logger.Errorw("system_cleanup_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	h.logger.Infow("system_cleanup_ok", "tasks_removed", report.TasksRemoved, "temp_files_removed", report.TempFilesRemoved)
	return c.JSON(report)
}
