package repository

import (
	"context"
	"time"

	"github.com/questx-lab/fittrack/internal/entity"
	"github.com/questx-lab/fittrack/pkg/xcontext"
	"gorm.io/gorm"
)

type FulfillmentRepository interface {
	CreateMany(ctx context.Context, data []entity.Fulfillment) error
	GetByID(ctx context.Context, id string) (*entity.Fulfillment, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.Fulfillment, error)
	GetByDrawingID(ctx context.Context, drawingID string) ([]entity.Fulfillment, error)
	GetNotifiedBefore(ctx context.Context, before time.Time) ([]entity.Fulfillment, error)
	Transit(ctx context.Context, id string, from []entity.FulfillmentStatus, to entity.FulfillmentStatus, fields map[string]any) error
}

type fulfillmentRepository struct{}

func NewFulfillmentRepository() *fulfillmentRepository {
	return &fulfillmentRepository{}
}

func (r *fulfillmentRepository) CreateMany(ctx context.Context, data []entity.Fulfillment) error {
	if len(data) == 0 {
		return nil
	}

	return xcontext.DB(ctx).CreateInBatches(&data, 100).Error
}

func (r *fulfillmentRepository) GetByID(ctx context.Context, id string) (*entity.Fulfillment, error) {
	var result entity.Fulfillment
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *fulfillmentRepository) GetByUserID(ctx context.Context, userID string) ([]entity.Fulfillment, error) {
	var result []entity.Fulfillment
	err := xcontext.DB(ctx).Where("user_id=?", userID).Order("created_at DESC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *fulfillmentRepository) GetByDrawingID(ctx context.Context, drawingID string) ([]entity.Fulfillment, error) {
	var result []entity.Fulfillment
	err := xcontext.DB(ctx).Where("drawing_id=?", drawingID).Order("created_at ASC, id ASC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetNotifiedBefore returns winners who were notified before the given time
// and have not confirmed an address yet.
func (r *fulfillmentRepository) GetNotifiedBefore(ctx context.Context, before time.Time) ([]entity.Fulfillment, error) {
	var result []entity.Fulfillment
	err := xcontext.DB(ctx).
		Where("status=? AND notified_at<?", entity.FulfillmentWinnerNotified, before.UTC()).
		Order("notified_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Transit moves the fulfillment to status to, writing fields with it, if it is
// currently in one of from.
func (r *fulfillmentRepository) Transit(
	ctx context.Context,
	id string,
	from []entity.FulfillmentStatus,
	to entity.FulfillmentStatus,
	fields map[string]any,
) error {
	updates := map[string]any{"status": to}
	for k, v := range fields {
		updates[k] = v
	}

	tx := xcontext.DB(ctx).Model(&entity.Fulfillment{}).
		Where("id=? AND status IN (?)", id, from).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
