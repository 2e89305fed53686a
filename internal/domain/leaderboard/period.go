package leaderboard

import (
	"time"

	"github.com/questx-lab/fittrack/pkg/dateutil"
	"github.com/questx-lab/fittrack/pkg/enum"
	"github.com/questx-lab/fittrack/pkg/errorx"
)

type PeriodType string

var (
	PeriodDaily   = enum.New(PeriodType("daily"))
	PeriodWeekly  = enum.New(PeriodType("weekly"))
	PeriodMonthly = enum.New(PeriodType("monthly"))
	PeriodAllTime = enum.New(PeriodType("all_time"))
)

// AllTimeStart is the first instant counted by the all time board.
var AllTimeStart = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// Period is the window [Start, End) of one board. End is the moment the
// board was computed.
type Period struct {
	Type  PeriodType
	Start time.Time
	End   time.Time
}

func ToPeriodType(s string) (PeriodType, error) {
	t, err := enum.ToEnum[PeriodType](s)
	if err != nil {
		return "", errorx.New(errorx.BadRequest,
			"Invalid period %q, expected daily, weekly, monthly or all_time", s)
	}

	return t, nil
}

// ToPeriodWithTime returns the window of periodType containing current.
// Calendar boundaries follow the location of current.
func ToPeriodWithTime(periodType string, current time.Time) (Period, error) {
	t, err := ToPeriodType(periodType)
	if err != nil {
		return Period{}, err
	}

	p := Period{Type: t, End: current}
	switch t {
	case PeriodDaily:
		p.Start = dateutil.BeginningOfDay(current)
	case PeriodWeekly:
		p.Start = dateutil.BeginningOfWeek(current)
	case PeriodMonthly:
		p.Start = dateutil.BeginningOfMonth(current)
	default:
		p.Start = AllTimeStart
	}

	return p, nil
}

func Periods() []PeriodType {
	return enum.Values[PeriodType]()
}
