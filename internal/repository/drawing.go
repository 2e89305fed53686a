package repository

import (
	"context"
	"time"

	"github.com/questx-lab/fittrack/internal/entity"
	"github.com/questx-lab/fittrack/pkg/xcontext"
	"gorm.io/gorm"
)

type DrawingRepository interface {
	Create(ctx context.Context, data *entity.Drawing) error
	GetByID(ctx context.Context, id string) (*entity.Drawing, error)
	GetShouldClose(ctx context.Context, now time.Time) ([]entity.Drawing, error)
	GetShouldExecute(ctx context.Context, now time.Time) ([]entity.Drawing, error)
	Transit(ctx context.Context, id string, from []entity.DrawingStatus, to entity.DrawingStatus) error
	ReserveTickets(ctx context.Context, id string, quantity int, now time.Time) (int, error)
	Complete(ctx context.Context, id, randomSeed string, now time.Time) error
}

type drawingRepository struct{}

func NewDrawingRepository() *drawingRepository {
	return &drawingRepository{}
}

func (r *drawingRepository) Create(ctx context.Context, data *entity.Drawing) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *drawingRepository) GetByID(ctx context.Context, id string) (*entity.Drawing, error) {
	var result entity.Drawing
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *drawingRepository) GetShouldClose(ctx context.Context, now time.Time) ([]entity.Drawing, error) {
	var result []entity.Drawing
	err := xcontext.DB(ctx).
		Where("status=? AND ticket_sales_close<=?", entity.DrawingStatusOpen, now.UTC()).
		Order("drawing_time ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *drawingRepository) GetShouldExecute(ctx context.Context, now time.Time) ([]entity.Drawing, error) {
	var result []entity.Drawing
	err := xcontext.DB(ctx).
		Where("status=? AND drawing_time<=?", entity.DrawingStatusClosed, now.UTC()).
		Order("drawing_time ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Transit moves the drawing to status to if it is currently in one of from.
func (r *drawingRepository) Transit(
	ctx context.Context, id string, from []entity.DrawingStatus, to entity.DrawingStatus,
) error {
	tx := xcontext.DB(ctx).Model(&entity.Drawing{}).
		Where("id=? AND status IN (?)", id, from).
		Update("status", to)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// ReserveTickets allocates quantity consecutive ticket numbers while the
// drawing is selling and returns the first one.
func (r *drawingRepository) ReserveTickets(
	ctx context.Context, id string, quantity int, now time.Time,
) (int, error) {
	tx := xcontext.DB(ctx).Model(&entity.Drawing{}).
		Where("id=? AND status=? AND ticket_sales_close>?", id, entity.DrawingStatusOpen, now.UTC()).
		Update("total_tickets", gorm.Expr("total_tickets+?", quantity))
	if tx.Error != nil {
		return 0, tx.Error
	}

	if tx.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	var drawing entity.Drawing
	err := xcontext.DB(ctx).Select("total_tickets").Take(&drawing, "id=?", id).Error
	if err != nil {
		return 0, err
	}

	return drawing.TotalTickets - quantity + 1, nil
}

// Complete atomically moves a closed drawing to completed and records the
// seed. A second caller gets gorm.ErrRecordNotFound.
func (r *drawingRepository) Complete(ctx context.Context, id, randomSeed string, now time.Time) error {
	tx := xcontext.DB(ctx).Model(&entity.Drawing{}).
		Where("id=? AND status=?", id, entity.DrawingStatusClosed).
		Updates(map[string]any{
			"status":       entity.DrawingStatusCompleted,
			"random_seed":  randomSeed,
			"completed_at": now.UTC(),
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
