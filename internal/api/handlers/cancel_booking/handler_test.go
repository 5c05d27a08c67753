package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

type stubService struct {
	got *models.CancelBookingRequest
	err error
}

func (s *stubService) CancelByReference(_ context.Context, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingResponse{Reference: req.Reference, Status: "cancelled"}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func send(svc *stubService, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/ref/{reference}/cancel", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodPut)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/v1/bookings/ref/BK-20250115-ABC123/cancel", strings.NewReader(body)))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &stubService{}

	rec := send(svc, `{"email":"anna@example.com"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "BK-20250115-ABC123", svc.got.Reference)
	assert.Equal(t, "anna@example.com", svc.got.Email)
	assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "bad body", body: `nope`, status: http.StatusBadRequest},
		{name: "missing email", body: `{}`, err: bookings.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "not found", body: `{"email":"x@example.com"}`, err: bookings.ErrBookingNotFound, status: http.StatusNotFound},
		{name: "already cancelled", body: `{"email":"x@example.com"}`, err: bookings.ErrAlreadyCancelled, status: http.StatusConflict},
		{name: "completed", body: `{"email":"x@example.com"}`, err: bookings.ErrCannotCancel, status: http.StatusBadRequest},
		{name: "internal", body: `{"email":"x@example.com"}`, err: bookings.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, send(&stubService{err: tt.err}, tt.body).Code)
		})
	}
}
