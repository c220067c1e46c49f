package availability

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"agendaclin-service/internal/pkg/dto/requests"
	"agendaclin-service/internal/pkg/dto/responses"
	"agendaclin-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubAvailabilityUsecase struct {
	slots   []responses.Slot
	err     error
	request *requests.GetAvailability
}

func (s *stubAvailabilityUsecase) GetAvailableSlots(ctx context.Context, request *requests.GetAvailability) ([]responses.Slot, error) {
	s.request = request
	return s.slots, s.err
}

func (s *stubAvailabilityUsecase) InvalidateCache(ctx context.Context, clinicID, date, professionalID string) {
}

func TestAvailabilityControllerGetAvailableSlots(t *testing.T) {
	t.Run("query parameters flow into the usecase and slots come back", func(t *testing.T) {
		usecase := &stubAvailabilityUsecase{slots: []responses.Slot{
			responses.AvailableSlot("08:00"),
			responses.UnavailableSlot("08:30", responses.SlotReasonAlreadyBooked),
		}}
		ctrl := NewAvailabilityController(zap.NewNop(), usecase)

		req := httptest.NewRequest(http.MethodGet, "/availability?clinic_id=clinic-1&date=2030-06-03&professional_id=prof-1", nil)
		rec := httptest.NewRecorder()

		ctrl.GetAvailableSlots(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "clinic-1", usecase.request.ClinicID)
		assert.Equal(t, "2030-06-03", usecase.request.Date)
		assert.Equal(t, "prof-1", usecase.request.ProfessionalID)

		var body responses.ResponseDTO
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
		slots, ok := body.Data.([]interface{})
		assert.True(t, ok)
		assert.Len(t, slots, 2)
	})

	t.Run("usecase errors map to their HTTP status", func(t *testing.T) {
		usecase := &stubAvailabilityUsecase{err: exceptions.ErrClinicNotFound(fmt.Errorf("clinic missing"))}
		ctrl := NewAvailabilityController(zap.NewNop(), usecase)

		req := httptest.NewRequest(http.MethodGet, "/availability?clinic_id=missing&date=2030-06-03", nil)
		rec := httptest.NewRecorder()

		ctrl.GetAvailableSlots(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)

		var body exceptions.CustomError
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.False(t, body.Retryable)
	})

	t.Run("provider failures are marked retryable", func(t *testing.T) {
		usecase := &stubAvailabilityUsecase{err: exceptions.ErrWorkingHoursProvider(fmt.Errorf("mongo down"))}
		ctrl := NewAvailabilityController(zap.NewNop(), usecase)

		req := httptest.NewRequest(http.MethodGet, "/availability?clinic_id=clinic-1&date=2030-06-03", nil)
		rec := httptest.NewRecorder()

		ctrl.GetAvailableSlots(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var body exceptions.CustomError
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Retryable)
	})
}
