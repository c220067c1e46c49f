package availability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"agendaclin-service/internal/app/config"
	"agendaclin-service/internal/app/contracts"
	"agendaclin-service/internal/app/models"
	"agendaclin-service/internal/pkg/constvars"
	"agendaclin-service/internal/pkg/dto/requests"
	"agendaclin-service/internal/pkg/dto/responses"
	"agendaclin-service/internal/pkg/exceptions"
	"agendaclin-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const anyProfessionalKey = "any"

type availabilityUsecase struct {
	WorkingHoursProvider  contracts.WorkingHoursProvider
	BlockedPeriodProvider contracts.BlockedPeriodProvider
	BookingLookup         contracts.BookingLookup
	ClinicRepository      contracts.ClinicRepository
	RedisRepository       contracts.RedisRepository
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger

	fallbackRules   map[int][]models.WorkingHoursRule
	defaultLocation *time.Location
}

var (
	availabilityUsecaseInstance contracts.AvailabilityUsecase
	onceAvailabilityUsecase     sync.Once
)

func NewAvailabilityUsecase(
	workingHoursProvider contracts.WorkingHoursProvider,
	blockedPeriodProvider contracts.BlockedPeriodProvider,
	bookingLookup contracts.BookingLookup,
	clinicRepository contracts.ClinicRepository,
	redisRepository contracts.RedisRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AvailabilityUsecase {
	onceAvailabilityUsecase.Do(func() {
		location, err := time.LoadLocation(internalConfig.App.Timezone)
		if err != nil {
			location = time.Local
		}
		instance := &availabilityUsecase{
			WorkingHoursProvider:  workingHoursProvider,
			BlockedPeriodProvider: blockedPeriodProvider,
			BookingLookup:         bookingLookup,
			ClinicRepository:      clinicRepository,
			RedisRepository:       redisRepository,
			InternalConfig:        internalConfig,
			Log:                   logger,
			fallbackRules:         buildFallbackRules(internalConfig.Availability),
			defaultLocation:       location,
		}
		availabilityUsecaseInstance = instance
	})
	return availabilityUsecaseInstance
}

// buildFallbackRules materializes the configured default weekly schedule once,
// keyed by weekday, so the per-request path never re-parses config strings.
func buildFallbackRules(cfg config.Availability) map[int][]models.WorkingHoursRule {
	rules := make(map[int][]models.WorkingHoursRule)
	if !cfg.FallbackEnabled {
		return rules
	}
	for _, weekday := range cfg.FallbackWeekdays {
		if weekday < 0 || weekday > 6 {
			continue
		}
		for i, startTime := range cfg.FallbackStartTimes {
			if i >= len(cfg.FallbackEndTimes) {
				break
			}
			rules[weekday] = append(rules[weekday], models.WorkingHoursRule{
				Weekday:             weekday,
				StartTime:           startTime,
				EndTime:             cfg.FallbackEndTimes[i],
				SlotDurationMinutes: cfg.FallbackSlotDurationMinutes,
				Active:              true,
			})
		}
	}
	return rules
}

func (uc *availabilityUsecase) GetAvailableSlots(ctx context.Context, request *requests.GetAvailability) ([]responses.Slot, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("availabilityUsecase.GetAvailableSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, request.ClinicID),
		zap.String(constvars.LoggingDateKey, request.Date),
		zap.String(constvars.LoggingProfessionalIDKey, request.ProfessionalID),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	clinic, err := uc.ClinicRepository.FindByID(ctx, request.ClinicID)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, exceptions.ErrClinicNotFound(fmt.Errorf("clinic %s not found", request.ClinicID))
	}

	if request.ProfessionalID != "" {
		professional, err := uc.ClinicRepository.FindProfessionalByID(ctx, request.ClinicID, request.ProfessionalID)
		if err != nil {
			return nil, err
		}
		if professional == nil || !professional.Active {
			return nil, exceptions.ErrProfessionalNotInClinic(fmt.Errorf("professional %s is not active in clinic %s", request.ProfessionalID, request.ClinicID))
		}
	}

	location := uc.clinicLocation(clinic)
	date, err := utils.ParseCalendarDate(request.Date, location)
	if err != nil {
		return nil, err
	}

	if cached, ok := uc.cacheGet(ctx, request); ok {
		uc.Log.Info("availabilityUsecase.GetAvailableSlots cache hit",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingClinicIDKey, request.ClinicID),
		)
		return cached, nil
	}

	// One capture of "now" so every slot in the response is judged against
	// the same instant.
	now := time.Now().In(location)
	weekday := int(date.Weekday())

	fetched, err := uc.fetchProviders(ctx, request, weekday)
	if err != nil {
		return nil, err
	}

	for _, period := range fetched.blockedPeriods {
		if period.ContainsDate(request.Date) && period.AppliesTo(request.ProfessionalID) {
			uc.Log.Info("availabilityUsecase.GetAvailableSlots date is blocked",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingClinicIDKey, request.ClinicID),
				zap.String(constvars.LoggingDateKey, request.Date),
				zap.String("blocked_reason", period.Reason),
			)
			return []responses.Slot{}, nil
		}
	}

	rules := fetched.rules
	if len(rules) == 0 {
		// A clinic that configured any weekday owns its schedule: a weekday
		// without rules is a closed day, never a fallback candidate.
		if fetched.clinicConfigured {
			return []responses.Slot{}, nil
		}
		fallback := uc.fallbackRules[weekday]
		if len(fallback) == 0 {
			// Closed day: no configuration and no fallback window.
			return []responses.Slot{}, nil
		}
		uc.Log.Info("availabilityUsecase.GetAvailableSlots using fallback schedule",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingClinicIDKey, request.ClinicID),
			zap.Int("weekday", weekday),
		)
		rules = fallback
	}

	slots := GenerateSlots(GenerateInput{
		Date:     date,
		Rules:    rules,
		Occupied: fetched.occupied,
		Now:      now,
	})

	uc.cacheSet(ctx, request, slots)
	return slots, nil
}

type providerResults struct {
	rules            []models.WorkingHoursRule
	clinicConfigured bool
	blockedPeriods   []models.BlockedPeriod
	occupied         map[string]struct{}
}

// fetchProviders runs the three collaborator reads concurrently. Each call is
// bounded by its own timeout; the first failure cancels the siblings and is
// surfaced as the matching retryable provider error.
func (uc *availabilityUsecase) fetchProviders(ctx context.Context, request *requests.GetAvailability, weekday int) (*providerResults, error) {
	timeout := time.Duration(uc.InternalConfig.Availability.ProviderTimeoutInSeconds) * time.Second
	results := &providerResults{}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		callCtx, cancel := context.WithTimeout(groupCtx, timeout)
		defer cancel()
		rules, err := uc.WorkingHoursProvider.WorkingHoursFor(callCtx, request.ClinicID, weekday)
		if err != nil {
			return exceptions.ErrWorkingHoursProvider(err)
		}
		results.rules = rules
		results.clinicConfigured = len(rules) > 0
		if len(rules) == 0 {
			configured, err := uc.WorkingHoursProvider.HasConfiguredRules(callCtx, request.ClinicID)
			if err != nil {
				return exceptions.ErrWorkingHoursProvider(err)
			}
			results.clinicConfigured = configured
		}
		return nil
	})

	group.Go(func() error {
		callCtx, cancel := context.WithTimeout(groupCtx, timeout)
		defer cancel()
		periods, err := uc.BlockedPeriodProvider.BlockedPeriodsFor(callCtx, request.ClinicID, request.Date, request.ProfessionalID)
		if err != nil {
			return exceptions.ErrBlockedPeriodProvider(err)
		}
		results.blockedPeriods = periods
		return nil
	})

	group.Go(func() error {
		callCtx, cancel := context.WithTimeout(groupCtx, timeout)
		defer cancel()
		occupied, err := uc.BookingLookup.OccupiedTimes(callCtx, request.ClinicID, request.Date, request.ProfessionalID)
		if err != nil {
			return exceptions.ErrBookingLookup(err)
		}
		results.occupied = occupied
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (uc *availabilityUsecase) clinicLocation(clinic *models.Clinic) *time.Location {
	if clinic.Timezone == "" {
		return uc.defaultLocation
	}
	location, err := time.LoadLocation(clinic.Timezone)
	if err != nil {
		uc.Log.Warn("availabilityUsecase.clinicLocation invalid clinic timezone",
			zap.String(constvars.LoggingClinicIDKey, clinic.ID),
			zap.String("timezone", clinic.Timezone),
		)
		return uc.defaultLocation
	}
	return location
}

func cacheKey(clinicID, date, professionalID string) string {
	if professionalID == "" {
		professionalID = anyProfessionalKey
	}
	return fmt.Sprintf("availability:%s:%s:%s", clinicID, date, professionalID)
}

func (uc *availabilityUsecase) cacheGet(ctx context.Context, request *requests.GetAvailability) ([]responses.Slot, bool) {
	if uc.RedisRepository == nil || uc.InternalConfig.Availability.CacheTTLInSeconds <= 0 {
		return nil, false
	}
	raw, err := uc.RedisRepository.Get(ctx, cacheKey(request.ClinicID, request.Date, request.ProfessionalID))
	if err != nil || raw == "" {
		return nil, false
	}
	var slots []responses.Slot
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (uc *availabilityUsecase) cacheSet(ctx context.Context, request *requests.GetAvailability, slots []responses.Slot) {
	if uc.RedisRepository == nil || uc.InternalConfig.Availability.CacheTTLInSeconds <= 0 {
		return
	}
	ttl := time.Duration(uc.InternalConfig.Availability.CacheTTLInSeconds) * time.Second
	if err := uc.RedisRepository.Set(ctx, cacheKey(request.ClinicID, request.Date, request.ProfessionalID), slots, ttl); err != nil {
		uc.Log.Warn("availabilityUsecase.cacheSet failed", zap.Error(err))
	}
}

// InvalidateCache drops the cached computation for both the professional's key
// and the aggregate "any" key, since a booking write changes both views.
func (uc *availabilityUsecase) InvalidateCache(ctx context.Context, clinicID, date, professionalID string) {
	if uc.RedisRepository == nil {
		return
	}
	keys := []string{cacheKey(clinicID, date, "")}
	if professionalID != "" {
		keys = append(keys, cacheKey(clinicID, date, professionalID))
	}
	for _, key := range keys {
		if err := uc.RedisRepository.Delete(ctx, key); err != nil {
			uc.Log.Warn("availabilityUsecase.InvalidateCache failed",
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
		}
	}
}
