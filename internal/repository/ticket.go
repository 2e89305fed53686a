package repository

import (
	"context"

	"github.com/questx-lab/fittrack/internal/entity"
	"github.com/questx-lab/fittrack/pkg/xcontext"
	"gorm.io/gorm"
)

type TicketRepository interface {
	CreateMany(ctx context.Context, data []entity.Ticket) error
	GetByDrawingID(ctx context.Context, drawingID string) ([]entity.Ticket, error)
	GetByUser(ctx context.Context, userID, drawingID string) ([]entity.Ticket, error)
	GetWinnersByDrawingID(ctx context.Context, drawingID string) ([]entity.Ticket, error)
	CountByDrawingID(ctx context.Context, drawingID string) (int64, error)
	MarkWinner(ctx context.Context, ticketID, prizeID string) error
}

type ticketRepository struct{}

func NewTicketRepository() *ticketRepository {
	return &ticketRepository{}
}

func (r *ticketRepository) CreateMany(ctx context.Context, data []entity.Ticket) error {
	if len(data) == 0 {
		return nil
	}

	return xcontext.DB(ctx).CreateInBatches(&data, 100).Error
}

// GetByDrawingID returns tickets ordered by ticket number, which is the order
// the winner permutation is applied to.
func (r *ticketRepository) GetByDrawingID(ctx context.Context, drawingID string) ([]entity.Ticket, error) {
	var result []entity.Ticket
	err := xcontext.DB(ctx).
		Where("drawing_id=?", drawingID).
		Order("ticket_number ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetByUser returns all tickets of the user, or only those in drawingID when
// it is not empty.
func (r *ticketRepository) GetByUser(ctx context.Context, userID, drawingID string) ([]entity.Ticket, error) {
	tx := xcontext.DB(ctx).Where("user_id=?", userID)
	if drawingID != "" {
		tx = tx.Where("drawing_id=?", drawingID)
	}

	var result []entity.Ticket
	if err := tx.Order("created_at DESC, ticket_number ASC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *ticketRepository) GetWinnersByDrawingID(ctx context.Context, drawingID string) ([]entity.Ticket, error) {
	var result []entity.Ticket
	err := xcontext.DB(ctx).
		Where("drawing_id=? AND is_winner=?", drawingID, true).
		Order("ticket_number ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *ticketRepository) CountByDrawingID(ctx context.Context, drawingID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).Model(&entity.Ticket{}).Where("drawing_id=?", drawingID).Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

// MarkWinner fails with gorm.ErrRecordNotFound if the ticket already won.
func (r *ticketRepository) MarkWinner(ctx context.Context, ticketID, prizeID string) error {
	tx := xcontext.DB(ctx).Model(&entity.Ticket{}).
		Where("id=? AND is_winner=?", ticketID, false).
		Updates(map[string]any{"is_winner": true, "prize_id": prizeID})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
