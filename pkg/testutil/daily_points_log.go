package testutil

import (
	"context"

	"github.com/questx-lab/fittrack/internal/entity"
	"github.com/questx-lab/fittrack/internal/repository"
)

// MockDailyPointsLogRepository falls back to the database-backed repository
// for every unset function.
type MockDailyPointsLogRepository struct {
	GetOrCreateFunc       func(ctx context.Context, userID, logDate string) (*entity.DailyPointsLog, error)
	UpdateWithVersionFunc func(ctx context.Context, data *entity.DailyPointsLog) error
	GetByDatesFunc        func(ctx context.Context, userID string, logDates []string) ([]entity.DailyPointsLog, error)
	CountActiveDaysFunc   func(ctx context.Context, fromDate, toDate string, minMinutes int64) (map[string]int, error)
}

func (m *MockDailyPointsLogRepository) GetOrCreate(
	ctx context.Context, userID, logDate string,
) (*entity.DailyPointsLog, error) {
	if m.GetOrCreateFunc != nil {
		return m.GetOrCreateFunc(ctx, userID, logDate)
	}

	return repository.NewDailyPointsLogRepository().GetOrCreate(ctx, userID, logDate)
}

func (m *MockDailyPointsLogRepository) UpdateWithVersion(ctx context.Context, data *entity.DailyPointsLog) error {
	if m.UpdateWithVersionFunc != nil {
		return m.UpdateWithVersionFunc(ctx, data)
	}

	return repository.NewDailyPointsLogRepository().UpdateWithVersion(ctx, data)
}

func (m *MockDailyPointsLogRepository) GetByDates(
	ctx context.Context, userID string, logDates []string,
) ([]entity.DailyPointsLog, error) {
	if m.GetByDatesFunc != nil {
		return m.GetByDatesFunc(ctx, userID, logDates)
	}

	return repository.NewDailyPointsLogRepository().GetByDates(ctx, userID, logDates)
}

func (m *MockDailyPointsLogRepository) CountActiveDays(
	ctx context.Context, fromDate, toDate string, minMinutes int64,
) (map[string]int, error) {
	if m.CountActiveDaysFunc != nil {
		return m.CountActiveDaysFunc(ctx, fromDate, toDate, minMinutes)
	}

	return repository.NewDailyPointsLogRepository().CountActiveDays(ctx, fromDate, toDate, minMinutes)
}
