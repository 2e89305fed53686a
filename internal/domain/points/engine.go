// Package points converts tracked activity into point amounts. Every function
// is pure so awards can be replayed and audited.
package points

import "github.com/questx-lab/fittrack/pkg/enum"

const (
	PointsPer1KSteps = 10
	StepsDailyCap    = 20000

	PointsWorkoutBonus        = 50
	WorkoutBonusDailyCap      = 3
	WorkoutMinDurationMinutes = 20

	PointsWeeklyStreakBonus = 250
	WeeklyStreakDays        = 7
	ActiveDayMinMinutes     = 30

	DailyPointCap = 1000

	// MinutesPerDay bounds any minute count, since no day holds more.
	MinutesPerDay = 24 * 60
)

type Intensity string

var (
	IntensityLight    = enum.New(Intensity("light"))
	IntensityModerate = enum.New(Intensity("moderate"))
	IntensityVigorous = enum.New(Intensity("vigorous"))
)

// Rate is the number of points per active minute. Unknown intensities earn
// the light rate.
func (i Intensity) Rate() int64 {
	switch i {
	case IntensityVigorous:
		return 3
	case IntensityModerate:
		return 2
	default:
		return 1
	}
}

func StepPoints(steps int64) int64 {
	if steps <= 0 {
		return 0
	}

	if steps > StepsDailyCap {
		steps = StepsDailyCap
	}

	return steps / 1000 * PointsPer1KSteps
}

func ActiveMinutePoints(minutes int64, intensity Intensity) int64 {
	return clamp(minutes, MinutesPerDay) * intensity.Rate()
}

// AddSteps returns the step counter after n more steps. It saturates at
// StepsDailyCap, so no submission can wrap it.
func AddSteps(stepsToday, n int64) int64 {
	return addSaturated(stepsToday, n, StepsDailyCap)
}

// AddActiveMinutes returns the minute counter after n more minutes,
// saturating at MinutesPerDay.
func AddActiveMinutes(minutesToday, n int64) int64 {
	return addSaturated(minutesToday, n, MinutesPerDay)
}

// addSaturated clamps both operands to [0, limit] first, so the sum cannot
// overflow.
func addSaturated(total, n, limit int64) int64 {
	return min(clamp(total, limit)+clamp(n, limit), limit)
}

func clamp(v, limit int64) int64 {
	return min(max(v, 0), limit)
}

func WorkoutBonus(durationMinutes int64, workoutsToday int) int64 {
	if durationMinutes >= WorkoutMinDurationMinutes && workoutsToday < WorkoutBonusDailyCap {
		return PointsWorkoutBonus
	}

	return 0
}

// WeeklyStreakBonus looks at the most recent WeeklyStreakDays flags, oldest
// first, and pays the bonus only if all of them are active.
func WeeklyStreakBonus(activeDays []bool) int64 {
	if len(activeDays) < WeeklyStreakDays {
		return 0
	}

	for _, active := range activeDays[len(activeDays)-WeeklyStreakDays:] {
		if !active {
			return 0
		}
	}

	return PointsWeeklyStreakBonus
}

func IsActiveDay(activeMinutes int64) bool {
	return activeMinutes >= ActiveDayMinMinutes
}

// ApplyDailyCap returns how much of points still fits under the daily cap.
// The result is never negative.
func ApplyDailyCap(points, alreadyToday int64) int64 {
	if points <= 0 {
		return 0
	}

	remaining := DailyPointCap - alreadyToday
	if remaining <= 0 {
		return 0
	}

	if points > remaining {
		return remaining
	}

	return points
}

// DailyContext is what the user already accumulated today.
type DailyContext struct {
	PointsEarnedToday int64
	WorkoutsToday     int
	StepsToday        int64
}

// ActivityPoints returns the uncapped points of a single activity.
func ActivityPoints(activity Activity, day DailyContext) int64 {
	switch a := activity.(type) {
	case StepsActivity:
		// Only the steps that still fit under today's step cap earn points.
		before := clamp(day.StepsToday, StepsDailyCap)
		return StepPoints(AddSteps(before, a.StepCount)) - StepPoints(before)

	case WorkoutActivity:
		return WorkoutBonus(a.DurationMinutes, day.WorkoutsToday) +
			ActiveMinutePoints(a.DurationMinutes, a.intensity())

	case ActiveMinutesActivity:
		return ActiveMinutePoints(a.Minutes, a.Intensity)

	default:
		return 0
	}
}

// CalculateActivityPoints returns the points actually credited for activity.
func CalculateActivityPoints(activity Activity, day DailyContext) int64 {
	return ApplyDailyCap(ActivityPoints(activity, day), day.PointsEarnedToday)
}

type DailyState string

var (
	DailyNotStarted   = enum.New(DailyState("not_started"))
	DailyAccumulating = enum.New(DailyState("accumulating"))
	DailyAtCap        = enum.New(DailyState("at_cap"))
)

// DailyStateOf derives the cap state of a user-day. started is false when the
// day has no log row yet.
func DailyStateOf(started bool, pointsEarnedToday int64) DailyState {
	switch {
	case !started:
		return DailyNotStarted
	case pointsEarnedToday >= DailyPointCap:
		return DailyAtCap
	default:
		return DailyAccumulating
	}
}
