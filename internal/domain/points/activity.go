package points

import (
	"github.com/mitchellh/mapstructure"
	"github.com/questx-lab/fittrack/pkg/enum"
	"github.com/questx-lab/fittrack/pkg/errorx"
)

type ActivityType string

var (
	ActivitySteps         = enum.New(ActivityType("steps"))
	ActivityWorkout       = enum.New(ActivityType("workout"))
	ActivityActiveMinutes = enum.New(ActivityType("active_minutes"))
)

// Activity is implemented only by the activity kinds of this package.
type Activity interface {
	Type() ActivityType
	isActivity()
}

type StepsActivity struct {
	StepCount int64
}

type WorkoutActivity struct {
	WorkoutType     string
	DurationMinutes int64
	Intensity       Intensity
}

type ActiveMinutesActivity struct {
	Minutes   int64
	Intensity Intensity
}

func (StepsActivity) Type() ActivityType         { return ActivitySteps }
func (WorkoutActivity) Type() ActivityType       { return ActivityWorkout }
func (ActiveMinutesActivity) Type() ActivityType { return ActivityActiveMinutes }

func (StepsActivity) isActivity()         {}
func (WorkoutActivity) isActivity()       {}
func (ActiveMinutesActivity) isActivity() {}

func (a WorkoutActivity) intensity() Intensity {
	if a.Intensity == "" {
		return IntensityModerate
	}

	return a.Intensity
}

// QualifiesForBonus reports whether the workout counts toward the daily
// workout bonus limit.
func (a WorkoutActivity) QualifiesForBonus() bool {
	return a.DurationMinutes >= WorkoutMinDurationMinutes
}

type rawActivity struct {
	ActivityType    string `mapstructure:"activity_type"`
	Type            string `mapstructure:"type"`
	WorkoutType     string `mapstructure:"workout_type"`
	DurationMinutes int64  `mapstructure:"duration_minutes"`
	Intensity       string `mapstructure:"intensity"`
	StepCount       int64  `mapstructure:"step_count"`
	ActiveMinutes   int64  `mapstructure:"active_minutes"`
	Metrics         struct {
		StepCount     int64 `mapstructure:"step_count"`
		ActiveMinutes int64 `mapstructure:"active_minutes"`
	} `mapstructure:"metrics"`
}

// ActivityFromMap decodes a tracker payload such as
// {"activity_type": "steps", "metrics": {"step_count": 25000}}.
func ActivityFromMap(m map[string]any) (Activity, error) {
	var raw rawActivity
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &raw,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(m); err != nil {
		return nil, errorx.New(errorx.InvalidActivity, "Invalid activity payload: %v", err)
	}

	typeName := raw.ActivityType
	if typeName == "" {
		typeName = raw.Type
	}

	activityType, err := enum.ToEnum[ActivityType](typeName)
	if err != nil {
		return nil, errorx.New(errorx.InvalidActivity, "Unknown activity type %q", typeName)
	}

	switch activityType {
	case ActivitySteps:
		return StepsActivity{StepCount: firstPositive(raw.Metrics.StepCount, raw.StepCount)}, nil

	case ActivityWorkout:
		return WorkoutActivity{
			WorkoutType:     raw.WorkoutType,
			DurationMinutes: raw.DurationMinutes,
			Intensity:       Intensity(raw.Intensity),
		}, nil

	default:
		intensity := Intensity(raw.Intensity)
		if intensity == "" {
			intensity = IntensityModerate
		}

		return ActiveMinutesActivity{
			Minutes:   firstPositive(raw.DurationMinutes, raw.Metrics.ActiveMinutes, raw.ActiveMinutes),
			Intensity: intensity,
		}, nil
	}
}

func firstPositive(values ...int64) int64 {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}

	return 0
}
