package update_booking_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

type stubService struct {
	gotID  int64
	gotReq *models.UpdateStatusRequest
	err    error
}

func (s *stubService) UpdateStatus(_ context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.gotID, s.gotReq = id, req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingResponse{ID: id, Status: req.Status}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func send(svc *stubService, path, adminID, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	admin := r.PathPrefix("/api/v1/admin").Subrouter()
	admin.Use(middleware.Auth)
	admin.HandleFunc("/bookings/{bookingId}/status", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	if adminID != "" {
		req.Header.Set(middleware.AdminIDHeader, adminID)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &stubService{}

	rec := send(svc, "/api/v1/admin/bookings/7/status", "2", `{"status":"completed"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), svc.gotID)
	assert.Equal(t, int64(2), svc.gotReq.AdminID)
	assert.Equal(t, "completed", svc.gotReq.Status)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		adminID string
		err     error
		status  int
	}{
		{name: "no admin", path: "/api/v1/admin/bookings/7/status", status: http.StatusUnauthorized},
		{name: "bad id", path: "/api/v1/admin/bookings/x/status", adminID: "2", status: http.StatusBadRequest},
		{name: "bad status", path: "/api/v1/admin/bookings/7/status", adminID: "2", err: bookings.ErrInvalidStatus, status: http.StatusBadRequest},
		{name: "not found", path: "/api/v1/admin/bookings/7/status", adminID: "2", err: bookings.ErrBookingNotFound, status: http.StatusNotFound},
		{name: "conflict", path: "/api/v1/admin/bookings/7/status", adminID: "2", err: bookings.ErrSlotConflict, status: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := send(&stubService{err: tt.err}, tt.path, tt.adminID, `{"status":"confirmed"}`)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
