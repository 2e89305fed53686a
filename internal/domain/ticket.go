package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/questx-lab/fittrack/internal/common"
	"github.com/questx-lab/fittrack/internal/entity"
	"github.com/questx-lab/fittrack/internal/model"
	"github.com/questx-lab/fittrack/internal/repository"
	"github.com/questx-lab/fittrack/pkg/errorx"
	"github.com/questx-lab/fittrack/pkg/xcontext"
	"gorm.io/gorm"
)

const (
	MinTicketsPerPurchase = 1
	MaxTicketsPerPurchase = 100
)

type TicketDomain interface {
	Purchase(context.Context, *model.PurchaseTicketsRequest) (*model.PurchaseTicketsResponse, error)
	ListUserTickets(context.Context, *model.GetUserTicketsRequest) (*model.GetUserTicketsResponse, error)
}

type ticketDomain struct {
	userRepo        repository.UserRepository
	transactionRepo repository.PointTransactionRepository
	drawingRepo     repository.DrawingRepository
	ticketRepo      repository.TicketRepository
	now             func() time.Time
}

func NewTicketDomain(
	userRepo repository.UserRepository,
	transactionRepo repository.PointTransactionRepository,
	drawingRepo repository.DrawingRepository,
	ticketRepo repository.TicketRepository,
) *ticketDomain {
	return &ticketDomain{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		drawingRepo:     drawingRepo,
		ticketRepo:      ticketRepo,
		now:             time.Now,
	}
}

func (d *ticketDomain) Purchase(
	ctx context.Context, req *model.PurchaseTicketsRequest,
) (*model.PurchaseTicketsResponse, error) {
	if req.Quantity < MinTicketsPerPurchase || req.Quantity > MaxTicketsPerPurchase {
		return nil, errorx.New(errorx.InvalidQuantity,
			"Quantity must be between %d and %d", MinTicketsPerPurchase, MaxTicketsPerPurchase)
	}

	drawing, err := d.drawingRepo.GetByID(ctx, req.DrawingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found drawing")
		}

		return nil, repository.StoreError(ctx, err, "get drawing")
	}

	if err := checkDrawingSelling(drawing, d.now()); err != nil {
		return nil, err
	}

	totalCost := drawing.TicketCostPoints * int64(req.Quantity)
	user, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		return nil, repository.StoreError(ctx, err, "get user")
	}

	if user.PointBalance < totalCost {
		return nil, errorx.New(errorx.InsufficientBalance,
			"Insufficient balance: %d < %d", user.PointBalance, totalCost)
	}

	resp, err := withRetry(ctx, "purchase tickets", func() (*model.PurchaseTicketsResponse, error) {
		return d.purchase(ctx, req, drawing, totalCost)
	})
	if err != nil {
		return nil, err
	}

	common.PromCounters[common.TicketsPurchasedTotal].
		WithLabelValues(string(drawing.DrawingType)).Add(float64(req.Quantity))

	return resp, nil
}

func (d *ticketDomain) purchase(
	ctx context.Context,
	req *model.PurchaseTicketsRequest,
	drawing *entity.Drawing,
	totalCost int64,
) (*model.PurchaseTicketsResponse, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.RollbackDBTransaction(ctx)

	if totalCost > 0 {
		if err := d.userRepo.DecreaseBalance(ctx, req.UserID, totalCost); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.InsufficientBalance, "Insufficient balance")
			}

			return nil, repository.StoreError(ctx, err, "decrease point balance")
		}
	}

	firstNumber, err := d.drawingRepo.ReserveTickets(ctx, drawing.ID, req.Quantity, d.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, d.explainNotSelling(ctx, drawing.ID)
		}

		return nil, repository.StoreError(ctx, err, "reserve ticket numbers")
	}

	user, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, repository.StoreError(ctx, err, "get user")
	}

	spend := &entity.PointTransaction{
		UserID:        req.UserID,
		Type:          entity.PointTransactionSpend,
		Amount:        -totalCost,
		BalanceAfter:  user.PointBalance,
		ReferenceType: entity.PointReferenceTicketPurchase,
		ReferenceID:   drawing.ID,
		Description:   fmt.Sprintf("Purchased %d tickets for %s", req.Quantity, drawing.Name),
	}
	if err := d.transactionRepo.Create(ctx, spend); err != nil {
		return nil, repository.StoreError(ctx, err, "create point transaction")
	}

	tickets := make([]entity.Ticket, 0, req.Quantity)
	for i := 0; i < req.Quantity; i++ {
		tickets = append(tickets, entity.Ticket{
			Base:                  entity.Base{ID: uuid.NewString()},
			DrawingID:             drawing.ID,
			TicketNumber:          firstNumber + i,
			UserID:                req.UserID,
			PurchaseTransactionID: spend.ID,
		})
	}

	if err := d.ticketRepo.CreateMany(ctx, tickets); err != nil {
		return nil, repository.StoreError(ctx, err, "create tickets")
	}

	if err := xcontext.CommitDBTransaction(ctx); err != nil {
		return nil, repository.StoreError(ctx, err, "commit ticket purchase")
	}

	resp := &model.PurchaseTicketsResponse{
		TransactionID: spend.ID,
		DrawingID:     drawing.ID,
		Quantity:      req.Quantity,
		TicketCost:    drawing.TicketCostPoints,
		TotalCost:     totalCost,
		TicketIDs:     make([]string, 0, len(tickets)),
		TicketNumbers: make([]int, 0, len(tickets)),
		NewBalance:    user.PointBalance,
	}
	for _, t := range tickets {
		resp.TicketIDs = append(resp.TicketIDs, t.ID)
		resp.TicketNumbers = append(resp.TicketNumbers, t.TicketNumber)
	}

	return resp, nil
}

// explainNotSelling reloads a drawing whose reservation was refused to tell
// the caller why.
func (d *ticketDomain) explainNotSelling(ctx context.Context, drawingID string) error {
	drawing, err := d.drawingRepo.GetByID(ctx, drawingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.NotFound, "Not found drawing")
		}

		return repository.StoreError(ctx, err, "get drawing")
	}

	if err := checkDrawingSelling(drawing, d.now()); err != nil {
		return err
	}

	return errorx.New(errorx.ConcurrencyConflict, "Drawing changed during purchase")
}

func checkDrawingSelling(drawing *entity.Drawing, now time.Time) error {
	if drawing.Status != entity.DrawingStatusOpen {
		return errorx.New(errorx.DrawingNotOpen, "Drawing is %s", drawing.Status)
	}

	if !now.Before(drawing.TicketSalesClose) {
		return errorx.New(errorx.SalesClosed, "Ticket sales are closed")
	}

	return nil
}

func (d *ticketDomain) ListUserTickets(
	ctx context.Context, req *model.GetUserTicketsRequest,
) (*model.GetUserTicketsResponse, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Require user id")
	}

	tickets, err := d.ticketRepo.GetByUser(ctx, req.UserID, req.DrawingID)
	if err != nil {
		return nil, repository.StoreError(ctx, err, "get tickets")
	}

	result := []model.Ticket{}
	for i := range tickets {
		result = append(result, convertTicket(&tickets[i]))
	}

	return &model.GetUserTicketsResponse{Tickets: result}, nil
}
