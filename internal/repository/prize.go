package repository

import (
	"context"

	"github.com/questx-lab/fittrack/internal/entity"
	"github.com/questx-lab/fittrack/pkg/xcontext"
)

type PrizeRepository interface {
	Create(ctx context.Context, data *entity.Prize) error
	GetByID(ctx context.Context, id string) (*entity.Prize, error)
	GetByDrawingID(ctx context.Context, drawingID string) ([]entity.Prize, error)
}

type prizeRepository struct{}

func NewPrizeRepository() *prizeRepository {
	return &prizeRepository{}
}

func (r *prizeRepository) Create(ctx context.Context, data *entity.Prize) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *prizeRepository) GetByID(ctx context.Context, id string) (*entity.Prize, error) {
	var result entity.Prize
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// GetByDrawingID returns prizes from the most valuable rank down.
func (r *prizeRepository) GetByDrawingID(ctx context.Context, drawingID string) ([]entity.Prize, error) {
	var result []entity.Prize
	err := xcontext.DB(ctx).
		Where("drawing_id=?", drawingID).
		Order("`rank` ASC, id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
