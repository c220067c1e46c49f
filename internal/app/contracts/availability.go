package contracts

import (
	"context"

	"agendaclin-service/internal/pkg/dto/requests"
	"agendaclin-service/internal/pkg/dto/responses"
)

type AvailabilityUsecase interface {
	GetAvailableSlots(ctx context.Context, request *requests.GetAvailability) ([]responses.Slot, error)
	InvalidateCache(ctx context.Context, clinicID, date, professionalID string)
}
