package domain

import (
	"database/sql"
	"time"

	"github.com/questx-lab/fittrack/internal/domain/draw"
	"github.com/questx-lab/fittrack/internal/domain/tier"
	"github.com/questx-lab/fittrack/internal/entity"
	"github.com/questx-lab/fittrack/internal/model"
)

func convertNullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}

	v := t.Time
	return &v
}

func convertPointTransaction(tx *entity.PointTransaction) model.PointTransaction {
	if tx == nil {
		return model.PointTransaction{}
	}

	return model.PointTransaction{
		ID:            tx.ID,
		UserID:        tx.UserID,
		Type:          string(tx.Type),
		Amount:        tx.Amount,
		BalanceAfter:  tx.BalanceAfter,
		ReferenceType: string(tx.ReferenceType),
		ReferenceID:   tx.ReferenceID,
		Description:   tx.Description,
		CreatedAt:     tx.CreatedAt,
	}
}

func convertProfile(profile *entity.Profile) model.Profile {
	if profile == nil {
		return model.Profile{}
	}

	displayName, _ := tier.DisplayName(profile.TierCode)
	return model.Profile{
		UserID:          profile.UserID,
		BiologicalSex:   profile.BiologicalSex,
		AgeBracket:      profile.AgeBracket,
		FitnessLevel:    profile.FitnessLevel,
		TierCode:        profile.TierCode,
		TierDisplayName: displayName,
	}
}

func convertTicket(ticket *entity.Ticket) model.Ticket {
	if ticket == nil {
		return model.Ticket{}
	}

	return model.Ticket{
		ID:           ticket.ID,
		DrawingID:    ticket.DrawingID,
		UserID:       ticket.UserID,
		TicketNumber: ticket.TicketNumber,
		IsWinner:     ticket.IsWinner,
		PrizeID:      ticket.PrizeID.String,
		CreatedAt:    ticket.CreatedAt,
	}
}

func convertPrize(prize *entity.Prize) model.Prize {
	if prize == nil {
		return model.Prize{}
	}

	return model.Prize{
		ID:              prize.ID,
		DrawingID:       prize.DrawingID,
		Rank:            prize.Rank,
		Name:            prize.Name,
		Description:     prize.Description,
		ValueCents:      prize.ValueCents,
		Quantity:        prize.Quantity,
		FulfillmentType: string(prize.FulfillmentType),
	}
}

func convertDrawing(drawing *entity.Drawing, prizes []model.Prize) model.Drawing {
	if drawing == nil {
		return model.Drawing{}
	}

	return model.Drawing{
		ID:               drawing.ID,
		Name:             drawing.Name,
		Description:      drawing.Description,
		DrawingType:      string(drawing.DrawingType),
		TicketCostPoints: drawing.TicketCostPoints,
		DrawingTime:      drawing.DrawingTime,
		TicketSalesClose: drawing.TicketSalesClose,
		Status:           string(drawing.Status),
		TotalTickets:     drawing.TotalTickets,
		RandomSeed:       drawing.RandomSeed,
		CompletedAt:      convertNullTime(drawing.CompletedAt),
		Prizes:           prizes,
	}
}

func convertWinner(winner draw.Winner, userID, fulfillmentID string) model.Winner {
	return model.Winner{
		TicketID:      winner.TicketID,
		TicketNumber:  winner.TicketNumber,
		UserID:        userID,
		PrizeID:       winner.PrizeID,
		PrizeRank:     winner.PrizeRank,
		FulfillmentID: fulfillmentID,
	}
}

func convertFulfillment(f *entity.Fulfillment) model.Fulfillment {
	if f == nil {
		return model.Fulfillment{}
	}

	return model.Fulfillment{
		ID:                 f.ID,
		TicketID:           f.TicketID,
		DrawingID:          f.DrawingID,
		PrizeID:            f.PrizeID,
		UserID:             f.UserID,
		Status:             string(f.Status),
		ShippingAddress:    f.ShippingAddress,
		Carrier:            f.Carrier,
		TrackingNumber:     f.TrackingNumber,
		Notes:              f.Notes,
		NotifiedAt:         convertNullTime(f.NotifiedAt),
		AddressConfirmedAt: convertNullTime(f.AddressConfirmedAt),
		ShippedAt:          convertNullTime(f.ShippedAt),
		DeliveredAt:        convertNullTime(f.DeliveredAt),
		ForfeitedAt:        convertNullTime(f.ForfeitedAt),
	}
}
