package handlers

import (
	"context"
	"time"

	"github.com/gofiber/contrib/websocket"

	"github.com/docuglot/backend/internal/core/services"
	"github.com/docuglot/backend/internal/infrastructure/logger"
	"github.com/docuglot/backend/internal/transport/http/middleware"
)

const progressPollInterval = 500 * time.Millisecond

// ProgressHandler streams task progress over a websocket until the task
// reaches a terminal state or the client hangs up.
type ProgressHandler struct {
	service *services.TranslationService
	logger  *logger.Logger
}

func NewProgressHandler(service *services.TranslationService, logger *logger.Logger) *ProgressHandler {
	return &ProgressHandler{service: service, logger: logger}
}

type progressFrame struct {
	TaskID   string `json:"taskId"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	Error    string `json:"error,omitempty"`
}

func (h *ProgressHandler) Handle(conn *websocket.Conn) {
	defer conn.Close()

	taskID := conn.Params("id")
	owner, _ := conn.Locals(middleware.OwnerLocal).(string)
	if owner == "" {
		owner = conn.Headers(middleware.OwnerHeader, "unknown")
	}

	ctx := context.Background()
	var lastSent progressFrame
	for {
		task, err := h.service.Get(ctx, owner, taskID)
		if err != nil {
			conn.WriteJSON(progressFrame{TaskID: taskID, Status: "error", Error: err.Error()})
			return
		}

		frame := progressFrame{
			TaskID:   task.ID,
			Status:   string(task.Status),
			Progress: task.Progress,
			Error:    task.Error,
		}
		if frame != lastSent {
			if err := conn.WriteJSON(frame); err != nil {
				return
			}
			lastSent = frame
		}
		if task.Terminal() {
			return
		}
		time.Sleep(progressPollInterval)
	}
}
