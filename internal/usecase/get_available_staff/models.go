package get_available_staff

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса мастеров, доступных для услуги на дату
type Request struct {
	ServiceID int64
	Date      types.Date
}

// StaffAvailability мастер и его рабочие часы на день недели даты
type StaffAvailability struct {
	Staff        domain.Staff
	WorkingHours domain.WorkingHours
}

// Response модель ответа. Пустой Staff - в этот день услугу никто не оказывает.
type Response struct {
	ServiceID int64
	Date      types.Date
	Staff     []StaffAvailability
}
