package domain

import (
	"context"
	"errors"
	"time"

	"github.com/fatih/structs"
	"github.com/questx-lab/fittrack/internal/entity"
	"github.com/questx-lab/fittrack/internal/model"
	"github.com/questx-lab/fittrack/internal/repository"
	"github.com/questx-lab/fittrack/pkg/errorx"
	"github.com/questx-lab/fittrack/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// fulfillmentTransitions lists the allowed source statuses of each target
// status. Delivered and forfeited are terminal.
var fulfillmentTransitions = map[entity.FulfillmentStatus][]entity.FulfillmentStatus{
	entity.FulfillmentWinnerNotified:   {entity.FulfillmentPending},
	entity.FulfillmentAddressInvalid:   {entity.FulfillmentWinnerNotified},
	entity.FulfillmentAddressConfirmed: {entity.FulfillmentWinnerNotified, entity.FulfillmentAddressInvalid},
	entity.FulfillmentShipped:          {entity.FulfillmentAddressConfirmed},
	entity.FulfillmentDelivered:        {entity.FulfillmentShipped},
	entity.FulfillmentForfeited: {
		entity.FulfillmentPending,
		entity.FulfillmentWinnerNotified,
		entity.FulfillmentAddressInvalid,
		entity.FulfillmentAddressConfirmed,
		entity.FulfillmentShipped,
	},
}

type FulfillmentDomain interface {
	Notify(context.Context, *model.FulfillmentActionRequest) (*model.FulfillmentResponse, error)
	ConfirmAddress(context.Context, *model.ConfirmAddressRequest) (*model.FulfillmentResponse, error)
	MarkAddressInvalid(context.Context, *model.FulfillmentActionRequest) (*model.FulfillmentResponse, error)
	Ship(context.Context, *model.ShipFulfillmentRequest) (*model.FulfillmentResponse, error)
	Deliver(context.Context, *model.FulfillmentActionRequest) (*model.FulfillmentResponse, error)
	Forfeit(context.Context, *model.FulfillmentActionRequest) (*model.FulfillmentResponse, error)
	Get(context.Context, *model.FulfillmentActionRequest) (*model.FulfillmentResponse, error)
	ListByUser(context.Context, *model.GetUserFulfillmentsRequest) (*model.GetUserFulfillmentsResponse, error)
	ProcessTimeouts(ctx context.Context, now time.Time) (*model.ProcessFulfillmentTimeoutsResponse, error)
}

type fulfillmentDomain struct {
	fulfillmentRepo repository.FulfillmentRepository
	now             func() time.Time
}

func NewFulfillmentDomain(fulfillmentRepo repository.FulfillmentRepository) *fulfillmentDomain {
	return &fulfillmentDomain{
		fulfillmentRepo: fulfillmentRepo,
		now:             time.Now,
	}
}

func (d *fulfillmentDomain) Notify(
	ctx context.Context, req *model.FulfillmentActionRequest,
) (*model.FulfillmentResponse, error) {
	return d.transit(ctx, req.FulfillmentID, entity.FulfillmentWinnerNotified, map[string]any{
		"notified_at": d.now().UTC(),
	})
}

func (d *fulfillmentDomain) ConfirmAddress(
	ctx context.Context, req *model.ConfirmAddressRequest,
) (*model.FulfillmentResponse, error) {
	addr := req.Address
	if addr.Street == "" || addr.City == "" || addr.State == "" || addr.ZipCode == "" {
		return nil, errorx.New(errorx.BadRequest, "Address requires street, city, state and zip code")
	}

	return d.transit(ctx, req.FulfillmentID, entity.FulfillmentAddressConfirmed, map[string]any{
		"shipping_address":     entity.Map(structs.Map(addr)),
		"address_confirmed_at": d.now().UTC(),
	})
}

func (d *fulfillmentDomain) MarkAddressInvalid(
	ctx context.Context, req *model.FulfillmentActionRequest,
) (*model.FulfillmentResponse, error) {
	return d.transit(ctx, req.FulfillmentID, entity.FulfillmentAddressInvalid, map[string]any{
		"notes": req.Notes,
	})
}

func (d *fulfillmentDomain) Ship(
	ctx context.Context, req *model.ShipFulfillmentRequest,
) (*model.FulfillmentResponse, error) {
	if req.Carrier == "" || req.TrackingNumber == "" {
		return nil, errorx.New(errorx.BadRequest, "Require carrier and tracking number")
	}

	return d.transit(ctx, req.FulfillmentID, entity.FulfillmentShipped, map[string]any{
		"carrier":         req.Carrier,
		"tracking_number": req.TrackingNumber,
		"shipped_at":      d.now().UTC(),
	})
}

func (d *fulfillmentDomain) Deliver(
	ctx context.Context, req *model.FulfillmentActionRequest,
) (*model.FulfillmentResponse, error) {
	return d.transit(ctx, req.FulfillmentID, entity.FulfillmentDelivered, map[string]any{
		"delivered_at": d.now().UTC(),
	})
}

func (d *fulfillmentDomain) Forfeit(
	ctx context.Context, req *model.FulfillmentActionRequest,
) (*model.FulfillmentResponse, error) {
	return d.transit(ctx, req.FulfillmentID, entity.FulfillmentForfeited, map[string]any{
		"notes":        req.Notes,
		"forfeited_at": d.now().UTC(),
	})
}

func (d *fulfillmentDomain) Get(
	ctx context.Context, req *model.FulfillmentActionRequest,
) (*model.FulfillmentResponse, error) {
	fulfillment, err := d.getFulfillment(ctx, req.FulfillmentID)
	if err != nil {
		return nil, err
	}

	return &model.FulfillmentResponse{Fulfillment: convertFulfillment(fulfillment)}, nil
}

func (d *fulfillmentDomain) ListByUser(
	ctx context.Context, req *model.GetUserFulfillmentsRequest,
) (*model.GetUserFulfillmentsResponse, error) {
	fulfillments, err := d.fulfillmentRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		return nil, repository.StoreError(ctx, err, "get fulfillments")
	}

	result := []model.Fulfillment{}
	for i := range fulfillments {
		result = append(result, convertFulfillment(&fulfillments[i]))
	}

	return &model.GetUserFulfillmentsResponse{Fulfillments: result}, nil
}

// ProcessTimeouts forfeits winners who stayed silent past the forfeit window
// and reports those past the warning window. A failed forfeit does not stop
// the others; the failures come back joined along with the response.
func (d *fulfillmentDomain) ProcessTimeouts(
	ctx context.Context, now time.Time,
) (*model.ProcessFulfillmentTimeoutsResponse, error) {
	cfg := xcontext.Configs(ctx).Fulfillment
	resp := &model.ProcessFulfillmentTimeoutsResponse{Warned: []string{}, Forfeited: []string{}, Failed: []string{}}

	expired, err := d.fulfillmentRepo.GetNotifiedBefore(ctx, now.Add(-cfg.ForfeitAfter.Duration))
	if err != nil {
		return nil, repository.StoreError(ctx, err, "get expired fulfillments")
	}

	forfeited := map[string]bool{}
	var errs []error
	for _, f := range expired {
		err := d.fulfillmentRepo.Transit(ctx, f.ID,
			[]entity.FulfillmentStatus{entity.FulfillmentWinnerNotified},
			entity.FulfillmentForfeited,
			map[string]any{"notes": "No response from winner", "forfeited_at": now.UTC()},
		)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// The winner answered in the meantime.
				continue
			}

			errs = append(errs, repository.StoreError(ctx, err, "forfeit fulfillment "+f.ID))
			resp.Failed = append(resp.Failed, f.ID)
			continue
		}

		forfeited[f.ID] = true
		resp.Forfeited = append(resp.Forfeited, f.ID)
	}

	late, err := d.fulfillmentRepo.GetNotifiedBefore(ctx, now.Add(-cfg.WarningAfter.Duration))
	if err != nil {
		return resp, errors.Join(append(errs, repository.StoreError(ctx, err, "get late fulfillments"))...)
	}

	for _, f := range late {
		if forfeited[f.ID] || slices.Contains(resp.Failed, f.ID) {
			continue
		}

		xcontext.Logger(ctx).Infof("Fulfillment %s of user %s awaits an address since %s",
			f.ID, f.UserID, f.NotifiedAt.Time.Format(time.RFC3339))
		resp.Warned = append(resp.Warned, f.ID)
	}

	return resp, errors.Join(errs...)
}

func (d *fulfillmentDomain) transit(
	ctx context.Context, id string, to entity.FulfillmentStatus, fields map[string]any,
) (*model.FulfillmentResponse, error) {
	fulfillment, err := d.getFulfillment(ctx, id)
	if err != nil {
		return nil, err
	}

	from := fulfillmentTransitions[to]
	if !slices.Contains(from, fulfillment.Status) {
		return nil, errorx.New(errorx.InvalidTransition,
			"Cannot move fulfillment from %s to %s", fulfillment.Status, to)
	}

	if err := d.fulfillmentRepo.Transit(ctx, id, from, to, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.InvalidState, "Fulfillment status changed concurrently")
		}

		return nil, repository.StoreError(ctx, err, "update fulfillment")
	}

	updated, err := d.getFulfillment(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.FulfillmentResponse{Fulfillment: convertFulfillment(updated)}, nil
}

func (d *fulfillmentDomain) getFulfillment(ctx context.Context, id string) (*entity.Fulfillment, error) {
	fulfillment, err := d.fulfillmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found fulfillment")
		}

		return nil, repository.StoreError(ctx, err, "get fulfillment")
	}

	return fulfillment, nil
}
