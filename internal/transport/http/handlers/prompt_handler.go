package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/docuglot/backend/internal/core/translate"
	"github.com/docuglot/backend/internal/infrastructure/logger"
	"github.com/docuglot/backend/internal/transport/http/dto"
)

type PromptHandler struct {
	logger *logger.Logger
}

func NewPromptHandler(logger *logger.Logger) *PromptHandler {
	return &PromptHandler{logger: logger}
}

func (h *PromptHandler) List(c *fiber.Ctx) error {
	templates := translate.ListPrompts()
	out := make([]dto.PromptResponse, 0, len(templates))
	for _, tpl := range templates {
		out = append(out, dto.PromptResponse{
			Name:        tpl.Name,
			Description: tpl.Description,
			Template:    tpl.Template,
			Params:      tpl.Params,
		})
	}
	return c.JSON(out)
}

// Test renders a template with caller-supplied params without calling the
// translation provider. Useful for checking prompt wording before a run.
func (h *PromptHandler) Test(c *fiber.Ctx) error {
	var req dto.PromptTestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}
	tpl, ok := translate.PromptByName(req.Name)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "prompt template not found",
		})
	}
	return c.JSON(dto.PromptTestResponse{
		Name:     tpl.Name,
		Rendered: tpl.Render(req.Params),
	})
}
