package domain

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/questx-lab/fittrack/internal/entity"
	"github.com/questx-lab/fittrack/internal/model"
	"github.com/questx-lab/fittrack/internal/repository"
	"github.com/questx-lab/fittrack/pkg/errorx"
	"github.com/questx-lab/fittrack/pkg/testutil"
	"github.com/stretchr/testify/require"
)

var testAddress = model.ShippingAddress{
	Street:  "1 Main St",
	City:    "Springfield",
	State:   "IL",
	ZipCode: "62701",
	Country: "US",
}

func samplePendingFulfillment(t *testing.T, ctx context.Context) entity.Fulfillment {
	t.Helper()

	fulfillment := entity.Fulfillment{
		Base:      entity.Base{ID: uuid.NewString()},
		TicketID:  uuid.NewString(),
		DrawingID: uuid.NewString(),
		PrizeID:   uuid.NewString(),
		UserID:    uuid.NewString(),
		Status:    entity.FulfillmentPending,
	}

	err := repository.NewFulfillmentRepository().CreateMany(ctx, []entity.Fulfillment{fulfillment})
	require.NoError(t, err)
	return fulfillment
}

func Test_fulfillmentDomain_HappyPath(t *testing.T) {
	ctx := testutil.MockContext()
	d := NewFulfillmentDomain(repository.NewFulfillmentRepository())
	f := samplePendingFulfillment(t, ctx)
	req := &model.FulfillmentActionRequest{FulfillmentID: f.ID}

	resp, err := d.Notify(ctx, req)
	require.NoError(t, err)
	require.Equal(t, string(entity.FulfillmentWinnerNotified), resp.Fulfillment.Status)
	require.NotNil(t, resp.Fulfillment.NotifiedAt)

	resp, err = d.ConfirmAddress(ctx, &model.ConfirmAddressRequest{FulfillmentID: f.ID, Address: testAddress})
	require.NoError(t, err)
	require.Equal(t, string(entity.FulfillmentAddressConfirmed), resp.Fulfillment.Status)
	require.Equal(t, "Springfield", resp.Fulfillment.ShippingAddress["city"])
	require.Equal(t, "62701", resp.Fulfillment.ShippingAddress["zip_code"])
	require.NotNil(t, resp.Fulfillment.AddressConfirmedAt)

	resp, err = d.Ship(ctx, &model.ShipFulfillmentRequest{
		FulfillmentID: f.ID, Carrier: "UPS", TrackingNumber: "1Z999",
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.FulfillmentShipped), resp.Fulfillment.Status)
	require.Equal(t, "UPS", resp.Fulfillment.Carrier)
	require.Equal(t, "1Z999", resp.Fulfillment.TrackingNumber)

	resp, err = d.Deliver(ctx, req)
	require.NoError(t, err)
	require.Equal(t, string(entity.FulfillmentDelivered), resp.Fulfillment.Status)
	require.NotNil(t, resp.Fulfillment.DeliveredAt)

	// Delivered is terminal.
	_, err = d.Forfeit(ctx, req)
	require.True(t, errorx.Is(err, errorx.InvalidTransition))

	list, err := d.ListByUser(ctx, &model.GetUserFulfillmentsRequest{UserID: f.UserID})
	require.NoError(t, err)
	require.Len(t, list.Fulfillments, 1)
	require.Equal(t, f.ID, list.Fulfillments[0].ID)
}

func Test_fulfillmentDomain_InvalidAddress(t *testing.T) {
	ctx := testutil.MockContext()
	d := NewFulfillmentDomain(repository.NewFulfillmentRepository())
	f := samplePendingFulfillment(t, ctx)
	req := &model.FulfillmentActionRequest{FulfillmentID: f.ID}

	_, err := d.Notify(ctx, req)
	require.NoError(t, err)

	resp, err := d.MarkAddressInvalid(ctx, &model.FulfillmentActionRequest{
		FulfillmentID: f.ID, Notes: "Undeliverable",
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.FulfillmentAddressInvalid), resp.Fulfillment.Status)
	require.Equal(t, "Undeliverable", resp.Fulfillment.Notes)

	resp, err = d.ConfirmAddress(ctx, &model.ConfirmAddressRequest{FulfillmentID: f.ID, Address: testAddress})
	require.NoError(t, err)
	require.Equal(t, string(entity.FulfillmentAddressConfirmed), resp.Fulfillment.Status)
}

func Test_fulfillmentDomain_Transitions(t *testing.T) {
	ctx := testutil.MockContext()
	d := NewFulfillmentDomain(repository.NewFulfillmentRepository())

	t.Run("ship before address", func(t *testing.T) {
		f := samplePendingFulfillment(t, ctx)
		_, err := d.Ship(ctx, &model.ShipFulfillmentRequest{
			FulfillmentID: f.ID, Carrier: "UPS", TrackingNumber: "1Z999",
		})
		require.True(t, errorx.Is(err, errorx.InvalidTransition))
		require.True(t, errorx.Is(err, errorx.PreconditionFailed))
	})

	t.Run("notify twice", func(t *testing.T) {
		f := samplePendingFulfillment(t, ctx)
		req := &model.FulfillmentActionRequest{FulfillmentID: f.ID}
		_, err := d.Notify(ctx, req)
		require.NoError(t, err)

		_, err = d.Notify(ctx, req)
		require.True(t, errorx.Is(err, errorx.InvalidTransition))
	})

	t.Run("incomplete address", func(t *testing.T) {
		f := samplePendingFulfillment(t, ctx)
		_, err := d.Notify(ctx, &model.FulfillmentActionRequest{FulfillmentID: f.ID})
		require.NoError(t, err)

		addr := testAddress
		addr.ZipCode = ""
		_, err = d.ConfirmAddress(ctx, &model.ConfirmAddressRequest{FulfillmentID: f.ID, Address: addr})
		require.True(t, errorx.Is(err, errorx.BadRequest))
	})

	t.Run("ship without tracking", func(t *testing.T) {
		f := samplePendingFulfillment(t, ctx)
		_, err := d.Ship(ctx, &model.ShipFulfillmentRequest{FulfillmentID: f.ID, Carrier: "UPS"})
		require.True(t, errorx.Is(err, errorx.BadRequest))
	})

	t.Run("forfeit pending", func(t *testing.T) {
		f := samplePendingFulfillment(t, ctx)
		resp, err := d.Forfeit(ctx, &model.FulfillmentActionRequest{FulfillmentID: f.ID, Notes: "Fraud"})
		require.NoError(t, err)
		require.Equal(t, string(entity.FulfillmentForfeited), resp.Fulfillment.Status)
		require.NotNil(t, resp.Fulfillment.ForfeitedAt)

		_, err = d.Notify(ctx, &model.FulfillmentActionRequest{FulfillmentID: f.ID})
		require.True(t, errorx.Is(err, errorx.InvalidTransition))
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := d.Get(ctx, &model.FulfillmentActionRequest{FulfillmentID: "unknown"})
		require.True(t, errorx.Is(err, errorx.NotFound))
	})
}

func Test_fulfillmentDomain_ProcessTimeouts(t *testing.T) {
	ctx := testutil.MockContext()
	d := NewFulfillmentDomain(repository.NewFulfillmentRepository())
	now := time.Now().UTC()

	notifyAt := func(age time.Duration) string {
		f := samplePendingFulfillment(t, ctx)
		d.now = func() time.Time { return now.Add(-age) }
		_, err := d.Notify(ctx, &model.FulfillmentActionRequest{FulfillmentID: f.ID})
		require.NoError(t, err)
		return f.ID
	}

	expired := notifyAt(15 * 24 * time.Hour)
	late := notifyAt(8 * 24 * time.Hour)
	fresh := notifyAt(24 * time.Hour)
	d.now = time.Now

	resp, err := d.ProcessTimeouts(ctx, now)
	require.NoError(t, err)
	require.Equal(t, []string{expired}, resp.Forfeited)
	require.Equal(t, []string{late}, resp.Warned)

	for id, want := range map[string]entity.FulfillmentStatus{
		expired: entity.FulfillmentForfeited,
		late:    entity.FulfillmentWinnerNotified,
		fresh:   entity.FulfillmentWinnerNotified,
	} {
		got, err := d.Get(ctx, &model.FulfillmentActionRequest{FulfillmentID: id})
		require.NoError(t, err)
		require.Equal(t, string(want), got.Fulfillment.Status)
	}

	// The forfeited one is not reported again.
	resp, err = d.ProcessTimeouts(ctx, now)
	require.NoError(t, err)
	require.Empty(t, resp.Forfeited)
	require.Equal(t, []string{late}, resp.Warned)
}

type failingTransitRepository struct {
	repository.FulfillmentRepository
	failID string
}

func (r *failingTransitRepository) Transit(
	ctx context.Context, id string, from []entity.FulfillmentStatus, to entity.FulfillmentStatus, fields map[string]any,
) error {
	if id == r.failID {
		return driver.ErrBadConn
	}

	return r.FulfillmentRepository.Transit(ctx, id, from, to, fields)
}

func Test_fulfillmentDomain_ProcessTimeouts_Failure(t *testing.T) {
	ctx := testutil.MockContext()
	d := NewFulfillmentDomain(repository.NewFulfillmentRepository())
	now := time.Now().UTC()

	notifyAt := func(age time.Duration) string {
		f := samplePendingFulfillment(t, ctx)
		d.now = func() time.Time { return now.Add(-age) }
		_, err := d.Notify(ctx, &model.FulfillmentActionRequest{FulfillmentID: f.ID})
		require.NoError(t, err)
		return f.ID
	}

	broken := notifyAt(16 * 24 * time.Hour)
	expired := notifyAt(15 * 24 * time.Hour)
	late := notifyAt(8 * 24 * time.Hour)

	d.fulfillmentRepo = &failingTransitRepository{
		FulfillmentRepository: repository.NewFulfillmentRepository(),
		failID:                broken,
	}

	resp, err := d.ProcessTimeouts(ctx, now)
	require.Error(t, err)
	require.True(t, errorx.Is(err, errorx.Unavailable), "got %v", err)
	require.Equal(t, []string{expired}, resp.Forfeited)
	require.Equal(t, []string{broken}, resp.Failed)
	require.Equal(t, []string{late}, resp.Warned)

	got, err := d.Get(ctx, &model.FulfillmentActionRequest{FulfillmentID: broken})
	require.NoError(t, err)
	require.Equal(t, string(entity.FulfillmentWinnerNotified), got.Fulfillment.Status)
}
