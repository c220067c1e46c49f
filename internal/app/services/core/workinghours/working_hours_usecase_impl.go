package workinghours

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"agendaclin-service/internal/app/config"
	"agendaclin-service/internal/app/contracts"
	"agendaclin-service/internal/app/models"
	"agendaclin-service/internal/pkg/constvars"
	"agendaclin-service/internal/pkg/dto/requests"
	"agendaclin-service/internal/pkg/dto/responses"
	"agendaclin-service/internal/pkg/exceptions"
	"agendaclin-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type workingHoursUsecase struct {
	WorkingHoursRepository contracts.WorkingHoursRepository
	ClinicRepository       contracts.ClinicRepository
	InternalConfig         *config.InternalConfig
	Log                    *zap.Logger
}

var (
	workingHoursUsecaseInstance contracts.WorkingHoursUsecase
	onceWorkingHoursUsecase     sync.Once
)

func NewWorkingHoursUsecase(
	workingHoursRepository contracts.WorkingHoursRepository,
	clinicRepository contracts.ClinicRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.WorkingHoursUsecase {
	onceWorkingHoursUsecase.Do(func() {
		instance := &workingHoursUsecase{
			WorkingHoursRepository: workingHoursRepository,
			ClinicRepository:       clinicRepository,
			InternalConfig:         internalConfig,
			Log:                    logger,
		}
		workingHoursUsecaseInstance = instance
	})
	return workingHoursUsecaseInstance
}

// FindByClinicID returns the clinic's effective schedule. When the clinic has
// no stored rules and the fallback is enabled, the configured fallback plan is
// returned with UsedFallback set so callers can tell the two apart.
func (uc *workingHoursUsecase) FindByClinicID(ctx context.Context, clinicID string) (*responses.WorkingHoursConfiguration, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("workingHoursUsecase.FindByClinicID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
	)

	if err := uc.ensureClinicExists(ctx, clinicID); err != nil {
		return nil, err
	}

	rules, err := uc.WorkingHoursRepository.FindByClinicID(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	if len(rules) == 0 && uc.InternalConfig.Availability.FallbackEnabled {
		rules = uc.buildFallbackPlan("")
		response := make([]responses.WorkingHoursRule, len(rules))
		for i, rule := range rules {
			response[i] = rule.ConvertIntoResponse()
		}
		return &responses.WorkingHoursConfiguration{Rules: response, UsedFallback: true}, nil
	}

	response := make([]responses.WorkingHoursRule, len(rules))
	for i, rule := range rules {
		response[i] = rule.ConvertIntoResponse()
	}
	return &responses.WorkingHoursConfiguration{Rules: response}, nil
}

func (uc *workingHoursUsecase) ReplaceWeekday(ctx context.Context, clinicID string, request *requests.ReplaceWeekdayWorkingHours) ([]responses.WorkingHoursRule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("workingHoursUsecase.ReplaceWeekday called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
		zap.Int("weekday", request.Weekday),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}
	if err := uc.ensureClinicExists(ctx, clinicID); err != nil {
		return nil, err
	}

	rules, err := buildWeekdayRules(clinicID, request)
	if err != nil {
		return nil, err
	}

	saved, err := uc.WorkingHoursRepository.ReplaceWeekday(ctx, clinicID, request.Weekday, rules)
	if err != nil {
		return nil, err
	}

	response := make([]responses.WorkingHoursRule, len(saved))
	for i, rule := range saved {
		response[i] = rule.ConvertIntoResponse()
	}
	return response, nil
}

// SeedDefault writes the configured fallback weekly plan as real rules. It is
// an explicit one-shot operation: a clinic that already has any rules is
// rejected so seeding can never clobber a curated schedule.
func (uc *workingHoursUsecase) SeedDefault(ctx context.Context, clinicID string) ([]responses.WorkingHoursRule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("workingHoursUsecase.SeedDefault called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
	)

	if err := uc.ensureClinicExists(ctx, clinicID); err != nil {
		return nil, err
	}

	count, err := uc.WorkingHoursRepository.CountByClinicID(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, exceptions.ErrWorkingHoursAlreadySet(fmt.Errorf("clinic %s has %d working hours rules", clinicID, count))
	}

	saved, err := uc.WorkingHoursRepository.InsertMany(ctx, uc.buildFallbackPlan(clinicID))
	if err != nil {
		return nil, err
	}

	response := make([]responses.WorkingHoursRule, len(saved))
	for i, rule := range saved {
		response[i] = rule.ConvertIntoResponse()
	}
	return response, nil
}

func (uc *workingHoursUsecase) buildFallbackPlan(clinicID string) []models.WorkingHoursRule {
	cfg := uc.InternalConfig.Availability
	var rules []models.WorkingHoursRule
	for _, weekday := range cfg.FallbackWeekdays {
		for i, startTime := range cfg.FallbackStartTimes {
			if i >= len(cfg.FallbackEndTimes) {
				break
			}
			rules = append(rules, models.WorkingHoursRule{
				ClinicID:            clinicID,
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

func (uc *workingHoursUsecase) ensureClinicExists(ctx context.Context, clinicID string) error {
	clinic, err := uc.ClinicRepository.FindByID(ctx, clinicID)
	if err != nil {
		return err
	}
	if clinic == nil {
		return exceptions.ErrClinicNotFound(fmt.Errorf("clinic %s not found", clinicID))
	}
	return nil
}

// buildWeekdayRules validates windows (start < end, no overlap within the
// weekday) and converts them to models.
func buildWeekdayRules(clinicID string, request *requests.ReplaceWeekdayWorkingHours) ([]models.WorkingHoursRule, error) {
	type window struct {
		start int
		end   int
		index int
	}

	windows := make([]window, 0, len(request.Rules))
	for i, input := range request.Rules {
		start, err := utils.ParseClock(input.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := utils.ParseClock(input.EndTime)
		if err != nil {
			return nil, err
		}
		if start >= end {
			return nil, exceptions.ErrWorkingHoursOverlap(fmt.Errorf("rule %d: start %s is not before end %s", i, input.StartTime, input.EndTime))
		}
		windows = append(windows, window{start: start, end: end, index: i})
	}

	sort.Slice(windows, func(i, j int) bool { return windows[i].start < windows[j].start })
	for i := 1; i < len(windows); i++ {
		if windows[i].start < windows[i-1].end {
			return nil, exceptions.ErrWorkingHoursOverlap(fmt.Errorf("rules %d and %d overlap", windows[i-1].index, windows[i].index))
		}
	}

	rules := make([]models.WorkingHoursRule, len(request.Rules))
	for i, input := range request.Rules {
		rules[i] = models.WorkingHoursRule{
			ClinicID:            clinicID,
			Weekday:             request.Weekday,
			StartTime:           input.StartTime,
			EndTime:             input.EndTime,
			SlotDurationMinutes: input.SlotDurationMinutes,
			Active:              input.Active,
		}
	}
	return rules, nil
}
