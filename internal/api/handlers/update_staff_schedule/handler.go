package update_staff_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule/models"
)

const (
	msgInvalidStaffID     = "некорректный ID мастера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingAdminID     = "отсутствует ID администратора"
	msgStaffNotFound      = "мастер не найден"
	msgDuplicateDay       = "на один день недели может быть только одна активная запись"
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

// Handle PUT /api/v1/admin/staff/{staffId}/schedule
// Тело полностью заменяет недельное расписание мастера
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := handlers.PathInt64(r, "staffId")
	if err != nil {
		h.logger.Warn("PUT /admin/staff/{id}/schedule - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	adminID, ok := middleware.GetAdminID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingAdminID)
		return
	}

	var req models.ReplaceScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/staff/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.AdminID = adminID

	result, err := h.service.ReplaceWeeklySchedule(r.Context(), staffID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrStaffNotFound):
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, schedule.ErrDuplicateDay):
			handlers.RespondBadRequest(w, msgDuplicateDay)

		case errors.Is(err, schedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /admin/staff/{id}/schedule - Failed to replace schedule: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/staff/{id}/schedule - Schedule replaced: staff_id=%d, days=%d, admin_id=%d",
		staffID, len(result.WorkingHours), adminID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
