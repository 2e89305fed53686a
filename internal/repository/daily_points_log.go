package repository

import (
	"context"

	"github.com/questx-lab/fittrack/internal/entity"
	"github.com/questx-lab/fittrack/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailyPointsLogRepository interface {
	GetOrCreate(ctx context.Context, userID, logDate string) (*entity.DailyPointsLog, error)
	UpdateWithVersion(ctx context.Context, data *entity.DailyPointsLog) error
	GetByDates(ctx context.Context, userID string, logDates []string) ([]entity.DailyPointsLog, error)
	CountActiveDays(ctx context.Context, fromDate, toDate string, minMinutes int64) (map[string]int, error)
}

type dailyPointsLogRepository struct{}

func NewDailyPointsLogRepository() *dailyPointsLogRepository {
	return &dailyPointsLogRepository{}
}

// GetOrCreate returns the row of the user-day, creating an empty one if this
// is the first award of the day. Concurrent creators converge on one row.
func (r *dailyPointsLogRepository) GetOrCreate(
	ctx context.Context, userID, logDate string,
) (*entity.DailyPointsLog, error) {
	err := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.DailyPointsLog{UserID: userID, LogDate: logDate}).Error
	if err != nil {
		return nil, err
	}

	var result entity.DailyPointsLog
	err = xcontext.DB(ctx).
		Where("user_id=? AND log_date=?", userID, logDate).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// UpdateWithVersion writes the counters of data if the stored row still has
// data.Version, then bumps data.Version.
func (r *dailyPointsLogRepository) UpdateWithVersion(ctx context.Context, data *entity.DailyPointsLog) error {
	tx := xcontext.DB(ctx).Model(&entity.DailyPointsLog{}).
		Where("user_id=? AND log_date=? AND version=?", data.UserID, data.LogDate, data.Version).
		Updates(map[string]any{
			"points_earned_today":  data.PointsEarnedToday,
			"workouts_today":       data.WorkoutsToday,
			"steps_today":          data.StepsToday,
			"active_minutes_today": data.ActiveMinutesToday,
			"version":              gorm.Expr("version+1"),
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return ErrVersionConflict
	}

	data.Version++
	return nil
}

func (r *dailyPointsLogRepository) GetByDates(
	ctx context.Context, userID string, logDates []string,
) ([]entity.DailyPointsLog, error) {
	var result []entity.DailyPointsLog
	err := xcontext.DB(ctx).
		Where("user_id=? AND log_date IN (?)", userID, logDates).
		Order("log_date ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// CountActiveDays returns, per user, how many days in [fromDate, toDate] had
// at least minMinutes active minutes. Users without such a day are absent.
func (r *dailyPointsLogRepository) CountActiveDays(
	ctx context.Context, fromDate, toDate string, minMinutes int64,
) (map[string]int, error) {
	var rows []struct {
		UserID string
		Days   int
	}

	err := xcontext.DB(ctx).Model(&entity.DailyPointsLog{}).
		Select("user_id, COUNT(*) AS days").
		Where("log_date>=? AND log_date<=? AND active_minutes_today>=?", fromDate, toDate, minMinutes).
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int, len(rows))
	for _, row := range rows {
		result[row.UserID] = row.Days
	}

	return result, nil
}
