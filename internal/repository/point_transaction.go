package repository

import (
	"context"
	"time"

	"github.com/questx-lab/fittrack/internal/entity"
	"github.com/questx-lab/fittrack/pkg/idutil"
	"github.com/questx-lab/fittrack/pkg/xcontext"
)

type AggregatePointFilter struct {
	Types    []entity.PointTransactionType
	Start    time.Time
	End      time.Time
	TierCode string
}

type PointAggregate struct {
	UserID string
	Points int64

	// FirstTransactionID is the earliest qualifying entry. Snowflake ids are
	// time ordered, so it doubles as the earliest timestamp.
	FirstTransactionID int64
}

type PointTransactionRepository interface {
	Create(ctx context.Context, data *entity.PointTransaction) error
	GetByUserID(ctx context.Context, userID string, offset, limit int) ([]entity.PointTransaction, error)
	SumByUserID(ctx context.Context, userID string) (int64, error)
	ExistsByReference(ctx context.Context, userID string, refType entity.PointReferenceType, refID string) (bool, error)
	Aggregate(ctx context.Context, filter AggregatePointFilter) ([]PointAggregate, error)
}

type pointTransactionRepository struct{}

func NewPointTransactionRepository() *pointTransactionRepository {
	return &pointTransactionRepository{}
}

// Create assigns a snowflake id when data has none.
func (r *pointTransactionRepository) Create(ctx context.Context, data *entity.PointTransaction) error {
	if data.ID == 0 {
		id, err := idutil.NextID()
		if err != nil {
			return err
		}
		data.ID = id
	}

	return xcontext.DB(ctx).Create(data).Error
}

func (r *pointTransactionRepository) GetByUserID(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.PointTransaction, error) {
	var result []entity.PointTransaction
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *pointTransactionRepository) SumByUserID(ctx context.Context, userID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).Model(&entity.PointTransaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id=?", userID).
		Scan(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *pointTransactionRepository) ExistsByReference(
	ctx context.Context, userID string, refType entity.PointReferenceType, refID string,
) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.PointTransaction{}).
		Where("user_id=? AND reference_type=? AND reference_id=?", userID, refType, refID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *pointTransactionRepository) Aggregate(
	ctx context.Context, filter AggregatePointFilter,
) ([]PointAggregate, error) {
	tx := xcontext.DB(ctx).Model(&entity.PointTransaction{}).
		Select("point_transactions.user_id AS user_id, " +
			"SUM(point_transactions.amount) AS points, " +
			"MIN(point_transactions.id) AS first_transaction_id").
		Where("point_transactions.type IN (?)", filter.Types).
		Where("point_transactions.created_at >= ? AND point_transactions.created_at < ?",
			filter.Start.UTC(), filter.End.UTC())

	if filter.TierCode != "" {
		tx = tx.Joins("JOIN profiles ON profiles.user_id = point_transactions.user_id").
			Where("profiles.tier_code=?", filter.TierCode)
	}

	var result []PointAggregate
	if err := tx.Group("point_transactions.user_id").Scan(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}
