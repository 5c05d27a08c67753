package delete_break

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
)

const (
	msgInvalidStaffID = "некорректный ID мастера"
	msgInvalidBreakID = "некорректный ID перерыва"
	msgBreakNotFound  = "перерыв не найден"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/admin/staff/{staffId}/breaks/{breakId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := handlers.PathInt64(r, "staffId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	breakID, err := handlers.PathInt64(r, "breakId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBreakID)
		return
	}

	if err := h.service.DeleteBreak(r.Context(), staffID, breakID); err != nil {
		if errors.Is(err, schedule.ErrBreakNotFound) {
			handlers.RespondNotFound(w, msgBreakNotFound)
			return
		}
		h.logger.Error("DELETE /admin/staff/{id}/breaks/{id} - Failed to delete break: break_id=%d, error=%v", breakID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/staff/{id}/breaks/{id} - Break deleted: staff_id=%d, break_id=%d", staffID, breakID)
	handlers.RespondNoContent(w)
}
