package service

import (
	"context"
	"errors"
	"math"
	"time"

	"nutriwings/health-app/internal/domain"
	"nutriwings/health-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrScoreNotFound = errors.New("no strength score recorded for this date")
)

// Tuning constants for the scoring formulas. Targets are daily unless noted.
const (
	proteinPerKgTarget   = 1.0  // grams of protein per kg bodyweight
	waterTargetMl        = 3000.0
	fatCalorieShareMax   = 0.30
	carbCalorieShareMax  = 0.50
	workoutTargetMinutes = 60.0
	weeklyTargetMinutes  = 210.0 // trailing 7 days
	sleepTargetHours     = 8.0
	failureSetTarget     = 4.0
	repTarget            = 315.0 // weekly volume benchmark used for today's reps
)

// ScoreDetails is the per-factor breakdown returned to callers.
type ScoreDetails struct {
	ProteinScore      float64 `json:"proteinScore"`
	WaterScore        float64 `json:"waterScore"`
	FatScore          float64 `json:"fatScore"`
	CarbScore         float64 `json:"carbScore"`
	DurationPoints    float64 `json:"durationPoints"`
	ConsistencyPoints float64 `json:"consistencyPoints"`
	IntensityPoints   float64 `json:"intensityPoints"`
	FailurePoints     float64 `json:"failurePoints"`
	ActionPoints      float64 `json:"actionPoints"`
}

// ScoreBreakdown is the engine's result: a display total capped at 100 and
// the uncapped per-factor details.
type ScoreBreakdown struct {
	TotalScore float64      `json:"totalScore"`
	Details    ScoreDetails `json:"details"`
}

// DailyMetrics is the lightweight dashboard read: calories eaten and
// minutes trained today, plus the profile-derived BMI.
type DailyMetrics struct {
	TotalCalories        float64 `json:"totalCalories"`
	TotalDurationMinutes float64 `json:"totalDuration"`
	BMI                  float64 `json:"bmi"`
}

type StrengthService interface {
	// ComputeDailyScore recomputes and persists today's score. Calling it
	// twice in one day replaces the earlier record; it never accumulates.
	ComputeDailyScore(ctx context.Context, userID primitive.ObjectID) (*ScoreBreakdown, error)
	// GetScoreByDate is a pure lookup of an already-computed record. It
	// never triggers recomputation.
	GetScoreByDate(ctx context.Context, userID primitive.ObjectID, date time.Time) (*ScoreBreakdown, error)
	ListScoreDates(ctx context.Context, userID primitive.ObjectID) ([]domain.StrengthScore, error)
	DailyMetrics(ctx context.Context, userID primitive.ObjectID) (*DailyMetrics, error)
}

// strengthService implements the StrengthService interface. It is the one
// component with real domain logic: the multi-factor daily scoring engine.
type strengthService struct {
	userRepo    repository.UserRepository
	dietRepo    repository.DietRepository
	sleepRepo   repository.SleepRepository
	waterRepo   repository.WaterRepository
	workoutRepo repository.WorkoutRepository
	scoreRepo   repository.ScoreRepository
}

// NewStrengthService creates a new instance of strengthService.
func NewStrengthService(
	userRepo repository.UserRepository,
	dietRepo repository.DietRepository,
	sleepRepo repository.SleepRepository,
	waterRepo repository.WaterRepository,
	workoutRepo repository.WorkoutRepository,
	scoreRepo repository.ScoreRepository,
) StrengthService {
	return &strengthService{
		userRepo:    userRepo,
		dietRepo:    dietRepo,
		sleepRepo:   sleepRepo,
		waterRepo:   waterRepo,
		workoutRepo: workoutRepo,
		scoreRepo:   scoreRepo,
	}
}

// ComputeDailyScore gathers today's nutrition, water, sleep and workout data
// plus the trailing-7-day workout history, applies the nine weighted factor
// formulas, and upserts the (user, day) snapshot. Any store failure aborts
// the whole computation; no partial score is ever produced.
func (s *strengthService) ComputeDailyScore(ctx context.Context, userID primitive.ObjectID) (*ScoreBreakdown, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	now := time.Now()
	startOfDay, endOfDay := domain.DayBounds(now)
	weekStart := now.Add(-7 * 24 * time.Hour)

	diets, err := s.dietRepo.GetInRange(ctx, userID, startOfDay, endOfDay)
	if err != nil {
		return nil, err
	}
	waters, err := s.waterRepo.GetInRange(ctx, userID, startOfDay, endOfDay)
	if err != nil {
		return nil, err
	}
	sleeps, err := s.sleepRepo.GetInRange(ctx, userID, startOfDay, endOfDay)
	if err != nil {
		return nil, err
	}
	todaySessions, err := s.workoutRepo.GetInRange(ctx, userID, startOfDay, endOfDay)
	if err != nil {
		return nil, err
	}
	weeklySessions, err := s.workoutRepo.GetInRange(ctx, userID, weekStart, now)
	if err != nil {
		return nil, err
	}

	// --- Nutrition factors ---
	var totalProtein, totalCarbs, totalFats float64
	for _, d := range diets {
		totalProtein += d.Taken.Protein
		totalCarbs += d.Taken.Carbs
		totalFats += d.Taken.Fats
	}
	// Calories derived from macros, not from the logged calorie field.
	totalCals := totalProtein*4 + totalCarbs*4 + totalFats*9

	proteinScore := 0.0
	if user.Health.WeightKg > 0 {
		proteinTarget := user.Health.WeightKg * proteinPerKgTarget
		proteinScore = math.Min(totalProtein/proteinTarget*domain.ProteinScoreCap, domain.ProteinScoreCap)
	}

	fatScore := 0.0
	if totalCals > 0 && totalFats*9/totalCals <= fatCalorieShareMax {
		fatScore = domain.FatScoreCap
	}
	carbScore := 0.0
	if totalCals > 0 && totalCarbs*4/totalCals <= carbCalorieShareMax {
		carbScore = domain.CarbScoreCap
	}

	// --- Water factor ---
	var waterToday float64
	for _, w := range waters {
		waterToday += w.Milliliters
	}
	waterScore := math.Min(waterToday/waterTargetMl*domain.WaterScoreCap, domain.WaterScoreCap)

	// --- Sleep factor ---
	var sleepSecs int64
	for _, e := range sleeps {
		if e.DurationSeconds > 0 {
			sleepSecs += e.DurationSeconds
		}
	}
	sleepHours := float64(sleepSecs) / 3600
	intensityPoints := math.Min(sleepHours, sleepTargetHours) / sleepTargetHours * domain.IntensityPointsCap

	// --- Workout duration factors ---
	todayMinutes := totalWorkoutMinutes(todaySessions)
	durationPoints := math.Min(todayMinutes/workoutTargetMinutes*domain.DurationPointsCap, domain.DurationPointsCap)

	weeklyMinutes := totalWorkoutMinutes(weeklySessions)
	consistencyPoints := 0.0
	if weeklyMinutes >= weeklyTargetMinutes {
		consistencyPoints = domain.ConsistencyPointsCap
	}

	// --- Failure intensity ---
	failureSets := 0
	for _, sess := range todaySessions {
		for _, unit := range sess.Workouts {
			for _, a := range unit.Actions {
				if a.Failure == domain.FailureYes {
					failureSets++
				}
			}
		}
	}
	failurePoints := math.Min(float64(failureSets), failureSetTarget) / failureSetTarget * domain.FailurePointsCap

	// --- Action quality (volume + progressive overload) ---
	actionPoints := actionQuality(todaySessions, weeklySessions, startOfDay, endOfDay)

	totalScore := proteinScore + waterScore + fatScore + carbScore +
		durationPoints + consistencyPoints +
		intensityPoints + failurePoints + actionPoints

	record := &domain.StrengthScore{
		UserID:            userID,
		Date:              startOfDay,
		TotalScore:        domain.Round1(totalScore),
		ProteinScore:      domain.Round1(proteinScore),
		WaterScore:        domain.Round1(waterScore),
		FatScore:          domain.Round1(fatScore),
		CarbScore:         domain.Round1(carbScore),
		DurationPoints:    domain.Round1(durationPoints),
		ConsistencyPoints: domain.Round1(consistencyPoints),
		IntensityPoints:   domain.Round1(intensityPoints),
		FailurePoints:     domain.Round1(failurePoints),
		ActionPoints:      domain.Round1(actionPoints),
		ComputedAt:        now.UTC(),
	}

	if err := s.scoreRepo.ReplaceForDate(ctx, record); err != nil {
		return nil, err
	}

	return breakdownFromRecord(record), nil
}

// GetScoreByDate looks up the already-stored record for the calendar day
// containing date. Absence is ErrScoreNotFound; no record is synthesized.
func (s *strengthService) GetScoreByDate(ctx context.Context, userID primitive.ObjectID, date time.Time) (*ScoreBreakdown, error) {
	start, end := domain.DayBounds(date)
	record, err := s.scoreRepo.FindByDate(ctx, userID, start, end)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrScoreNotFound
		}
		return nil, err
	}
	return breakdownFromRecord(record), nil
}

// ListScoreDates returns every stored daily record for the calendar view.
func (s *strengthService) ListScoreDates(ctx context.Context, userID primitive.ObjectID) ([]domain.StrengthScore, error) {
	return s.scoreRepo.ListByUserID(ctx, userID)
}

// DailyMetrics sums today's consumed calories and workout minutes.
func (s *strengthService) DailyMetrics(ctx context.Context, userID primitive.ObjectID) (*DailyMetrics, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	startOfDay, endOfDay := domain.DayBounds(time.Now())

	diets, err := s.dietRepo.GetInRange(ctx, userID, startOfDay, endOfDay)
	if err != nil {
		return nil, err
	}
	var calories float64
	for _, d := range diets {
		calories += d.Taken.Calories
	}

	sessions, err := s.workoutRepo.GetInRange(ctx, userID, startOfDay, endOfDay)
	if err != nil {
		return nil, err
	}

	return &DailyMetrics{
		TotalCalories:        domain.Round1(calories),
		TotalDurationMinutes: math.Round(totalWorkoutMinutes(sessions)*100) / 100,
		BMI:                  user.BMI(),
	}, nil
}

// --- Scoring helpers ---

func totalWorkoutMinutes(sessions []domain.WorkoutSession) float64 {
	var secs int64
	for _, sess := range sessions {
		secs += sess.DurationSeconds
	}
	return float64(secs) / 60
}

// actionQuality scores today's training volume and rewards progressive
// overload. Today's reps earn up to half the cap; if today's average weight
// per rep meets or beats the average set weight of the most recent session
// in the same category, the points double.
func actionQuality(today, weekly []domain.WorkoutSession, dayStart, dayEnd time.Time) float64 {
	var totalReps int
	var totalWeight float64
	mainCategory := ""

	for _, sess := range today {
		for _, unit := range sess.Workouts {
			mainCategory = unit.Category // last-seen unit wins
			for _, a := range unit.Actions {
				totalReps += a.Reps
				totalWeight += a.WeightKg // weight counted once per set, not per rep
			}
		}
	}

	avgTodayWeight := 0.0
	if totalReps > 0 {
		avgTodayWeight = totalWeight / float64(totalReps)
	}

	lastWorkoutWeight := lastSimilarWeight(weekly, mainCategory, dayStart, dayEnd)

	points := math.Min(float64(totalReps)/repTarget*7.5, 7.5)
	if avgTodayWeight >= lastWorkoutWeight {
		points *= 2
	}
	return math.Min(points, domain.ActionPointsCap)
}

// lastSimilarWeight walks the weekly history most-recent-first, skipping
// today's own sessions, and returns the mean set weight of the first unit
// matching category. Category matching is exact string equality; a typo'd
// category simply finds no prior data and reads as zero.
func lastSimilarWeight(weekly []domain.WorkoutSession, category string, dayStart, dayEnd time.Time) float64 {
	for i := len(weekly) - 1; i >= 0; i-- {
		sess := weekly[i]
		if domain.InDay(sess.StartTime, dayStart, dayEnd) {
			continue
		}
		for _, unit := range sess.Workouts {
			if unit.Category != category {
				continue
			}
			if len(unit.Actions) == 0 {
				return 0
			}
			var sum float64
			for _, a := range unit.Actions {
				sum += a.WeightKg
			}
			return sum / float64(len(unit.Actions))
		}
	}
	return 0
}

// breakdownFromRecord maps a stored record to the API shape, clamping the
// display total at 100. The stored total stays uncapped.
func breakdownFromRecord(r *domain.StrengthScore) *ScoreBreakdown {
	return &ScoreBreakdown{
		TotalScore: domain.Round1(math.Min(r.TotalScore, domain.TotalScoreCap)),
		Details: ScoreDetails{
			ProteinScore:      r.ProteinScore,
			WaterScore:        r.WaterScore,
			FatScore:          r.FatScore,
			CarbScore:         r.CarbScore,
			DurationPoints:    r.DurationPoints,
			ConsistencyPoints: r.ConsistencyPoints,
			IntensityPoints:   r.IntensityPoints,
			FailurePoints:     r.FailurePoints,
			ActionPoints:      r.ActionPoints,
		},
	}
}
