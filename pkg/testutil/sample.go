package testutil

import (
	"context"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/questx-lab/fittrack/internal/entity"
	"github.com/questx-lab/fittrack/internal/repository"
)

// SampleUser creates a user with a random id. The sample can be overwritten
// by non-zero fields of init.
func SampleUser(ctx context.Context, init *entity.User) (entity.User, error) {
	sample := &entity.User{
		Base: entity.Base{ID: uuid.NewString()},
		Name: uuid.NewString(),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewUserRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

// SampleDrawing creates an open daily drawing whose sales close in one hour.
func SampleDrawing(ctx context.Context, init *entity.Drawing) (entity.Drawing, error) {
	drawingTime := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
	sample := &entity.Drawing{
		Base:             entity.Base{ID: uuid.NewString()},
		Name:             "Daily drawing",
		DrawingType:      entity.DrawingDaily,
		TicketCostPoints: 100,
		DrawingTime:      drawingTime,
		TicketSalesClose: drawingTime.Add(-5 * time.Minute),
		Status:           entity.DrawingStatusOpen,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewDrawingRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

func SamplePrize(ctx context.Context, init *entity.Prize) (entity.Prize, error) {
	sample := &entity.Prize{
		Base:            entity.Base{ID: uuid.NewString()},
		Rank:            1,
		Name:            "Fitness watch",
		ValueCents:      19900,
		Quantity:        1,
		FulfillmentType: entity.FulfillmentPhysical,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewPrizeRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

// SampleTickets creates n tickets of userID numbered from first.
func SampleTickets(ctx context.Context, drawingID, userID string, first, n int) ([]entity.Ticket, error) {
	tickets := []entity.Ticket{}
	for i := 0; i < n; i++ {
		tickets = append(tickets, entity.Ticket{
			Base:         entity.Base{ID: uuid.NewString()},
			DrawingID:    drawingID,
			TicketNumber: first + i,
			UserID:       userID,
		})
	}

	if err := repository.NewTicketRepository().CreateMany(ctx, tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if !overwriteField.IsZero() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
