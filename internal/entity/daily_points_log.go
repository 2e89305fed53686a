package entity

import "time"

// DailyPointsLog accumulates the awards of one user in one UTC calendar day.
// Counters only grow; Version guards every update.
type DailyPointsLog struct {
	UserID  string `gorm:"primaryKey"`
	LogDate string `gorm:"primaryKey;size:10"`

	PointsEarnedToday  int64
	WorkoutsToday      int
	StepsToday         int64
	ActiveMinutesToday int64
	Version            int64 `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
