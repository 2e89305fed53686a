package domain

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/questx-lab/fittrack/internal/common"
	"github.com/questx-lab/fittrack/internal/entity"
	"github.com/questx-lab/fittrack/internal/model"
	"github.com/questx-lab/fittrack/internal/repository"
	"github.com/questx-lab/fittrack/pkg/errorx"
	"github.com/questx-lab/fittrack/pkg/pubsub"
	"github.com/questx-lab/fittrack/pkg/storage"
	"github.com/questx-lab/fittrack/pkg/testutil"
	"github.com/questx-lab/fittrack/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestDrawingDomain(publisher pubsub.Publisher, storage storage.Storage) *drawingDomain {
	return NewDrawingDomain(
		repository.NewDrawingRepository(),
		repository.NewPrizeRepository(),
		repository.NewTicketRepository(),
		repository.NewFulfillmentRepository(),
		publisher,
		storage,
	)
}

// closedDrawingWithTickets creates a closed drawing holding n tickets, one per
// user, and a single prize of the given quantity.
func closedDrawingWithTickets(t *testing.T, ctx context.Context, n, quantity int) entity.Drawing {
	t.Helper()

	drawing, err := testutil.SampleDrawing(ctx, &entity.Drawing{
		Status:       entity.DrawingStatusClosed,
		TotalTickets: n,
	})
	require.NoError(t, err)

	_, err = testutil.SamplePrize(ctx, &entity.Prize{DrawingID: drawing.ID, Quantity: quantity})
	require.NoError(t, err)

	for i := 1; i <= n; i++ {
		user, err := testutil.SampleUser(ctx, nil)
		require.NoError(t, err)

		_, err = testutil.SampleTickets(ctx, drawing.ID, user.ID, i, 1)
		require.NoError(t, err)
	}

	return drawing
}

func Test_drawingDomain_Create(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestDrawingDomain(nil, nil)
	drawingTime := time.Date(2030, 1, 1, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		req            *model.CreateDrawingRequest
		wantCost       int64
		wantSalesClose time.Time
		wantErr        errorx.Code
	}{
		{
			name:           "daily defaults",
			req:            &model.CreateDrawingRequest{Name: "Daily", DrawingType: "daily", DrawingTime: drawingTime},
			wantCost:       100,
			wantSalesClose: drawingTime.Add(-5 * time.Minute),
		},
		{
			name:           "annual defaults",
			req:            &model.CreateDrawingRequest{Name: "Annual", DrawingType: "annual", DrawingTime: drawingTime},
			wantCost:       10000,
			wantSalesClose: drawingTime.Add(-5 * time.Minute),
		},
		{
			name: "explicit cost and sales close",
			req: &model.CreateDrawingRequest{
				Name:             "Weekly",
				DrawingType:      "weekly",
				DrawingTime:      drawingTime,
				TicketCostPoints: 42,
				TicketSalesClose: drawingTime.Add(-time.Hour),
			},
			wantCost:       42,
			wantSalesClose: drawingTime.Add(-time.Hour),
		},
		{
			name:    "unknown type",
			req:     &model.CreateDrawingRequest{Name: "Hourly", DrawingType: "hourly", DrawingTime: drawingTime},
			wantErr: errorx.BadRequest,
		},
		{
			name:    "missing drawing time",
			req:     &model.CreateDrawingRequest{Name: "Daily", DrawingType: "daily"},
			wantErr: errorx.BadRequest,
		},
		{
			name: "sales close after drawing",
			req: &model.CreateDrawingRequest{
				Name:             "Daily",
				DrawingType:      "daily",
				DrawingTime:      drawingTime,
				TicketSalesClose: drawingTime.Add(time.Minute),
			},
			wantErr: errorx.BadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := d.Create(ctx, tt.req)
			if tt.wantErr != 0 {
				require.True(t, errorx.Is(err, tt.wantErr), "got %v", err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, string(entity.DrawingStatusDraft), resp.Drawing.Status)
			require.Equal(t, tt.wantCost, resp.Drawing.TicketCostPoints)
			require.True(t, tt.wantSalesClose.Equal(resp.Drawing.TicketSalesClose))
		})
	}
}

func Test_drawingDomain_Lifecycle(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestDrawingDomain(nil, nil)

	created, err := d.Create(ctx, &model.CreateDrawingRequest{
		Name:        "Weekly",
		DrawingType: "weekly",
		DrawingTime: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	id := created.Drawing.ID
	req := &model.TransitDrawingRequest{DrawingID: id}

	_, err = d.Open(ctx, req)
	require.True(t, errorx.Is(err, errorx.InvalidTransition))

	_, err = d.AddPrize(ctx, &model.AddPrizeRequest{DrawingID: id, Rank: 1, Name: "Bike", Quantity: 1})
	require.NoError(t, err)

	_, err = d.AddPrize(ctx, &model.AddPrizeRequest{DrawingID: id, Rank: 0, Name: "Bike", Quantity: 1})
	require.True(t, errorx.Is(err, errorx.BadRequest))

	resp, err := d.Schedule(ctx, req)
	require.NoError(t, err)
	require.Equal(t, string(entity.DrawingStatusScheduled), resp.Drawing.Status)

	_, err = d.AddPrize(ctx, &model.AddPrizeRequest{
		DrawingID: id, Rank: 2, Name: "Gift card", Quantity: 3, FulfillmentType: "digital",
	})
	require.NoError(t, err)

	_, err = d.Open(ctx, req)
	require.NoError(t, err)

	_, err = d.AddPrize(ctx, &model.AddPrizeRequest{DrawingID: id, Rank: 3, Name: "Late", Quantity: 1})
	require.True(t, errorx.Is(err, errorx.InvalidState))

	_, err = d.Close(ctx, req)
	require.NoError(t, err)

	_, err = d.Close(ctx, req)
	require.True(t, errorx.Is(err, errorx.InvalidTransition))
	require.True(t, errorx.Is(err, errorx.PreconditionFailed))

	got, err := d.Get(ctx, &model.GetDrawingRequest{DrawingID: id})
	require.NoError(t, err)
	require.Equal(t, string(entity.DrawingStatusClosed), got.Drawing.Status)
	require.Len(t, got.Drawing.Prizes, 2)
	require.Equal(t, 1, got.Drawing.Prizes[0].Rank)

	_, err = d.GetResults(ctx, &model.GetDrawingResultsRequest{DrawingID: id})
	require.True(t, errorx.Is(err, errorx.InvalidState))

	_, err = d.Cancel(ctx, req)
	require.NoError(t, err)

	_, err = d.Cancel(ctx, req)
	require.True(t, errorx.Is(err, errorx.InvalidTransition))

	_, err = d.Get(ctx, &model.GetDrawingRequest{DrawingID: "unknown"})
	require.True(t, errorx.Is(err, errorx.NotFound))
}

func Test_drawingDomain_Schedule_PastDrawing(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestDrawingDomain(nil, nil)

	drawing, err := testutil.SampleDrawing(ctx, &entity.Drawing{
		Status:      entity.DrawingStatusDraft,
		DrawingTime: time.Now().UTC().Add(-time.Hour),
	})
	require.NoError(t, err)

	_, err = d.Schedule(ctx, &model.TransitDrawingRequest{DrawingID: drawing.ID})
	require.True(t, errorx.Is(err, errorx.BadRequest))
}

func Test_drawingDomain_Execute(t *testing.T) {
	ctx := testutil.MockContext()
	cfg := xcontext.Configs(ctx)
	cfg.Storage.AuditBucket = "audit"
	ctx = xcontext.WithConfigs(ctx, cfg)

	publisher, published := testutil.NewRecordingPublisher()
	var uploaded []*storage.Object
	store := &testutil.MockStorage{
		UploadFunc: func(ctx context.Context, obj *storage.Object) (*storage.Location, error) {
			uploaded = append(uploaded, obj)
			return &storage.Location{Bucket: obj.Bucket, Key: obj.Key}, nil
		},
	}

	d := newTestDrawingDomain(publisher, store)
	drawing := closedDrawingWithTickets(t, ctx, 10, 1)

	resp, err := d.Execute(ctx, &model.ExecuteDrawingRequest{DrawingID: drawing.ID})
	require.NoError(t, err)
	require.Equal(t, 10, resp.TotalTickets)
	require.Len(t, resp.Winners, 1)
	require.Equal(t, 1, resp.FulfillmentsCreated)
	require.Len(t, resp.RandomSeed, 64)

	winners, err := repository.NewTicketRepository().GetWinnersByDrawingID(ctx, drawing.ID)
	require.NoError(t, err)
	require.Len(t, winners, 1)
	require.Equal(t, resp.Winners[0].TicketID, winners[0].ID)

	fulfillments, err := repository.NewFulfillmentRepository().GetByDrawingID(ctx, drawing.ID)
	require.NoError(t, err)
	require.Len(t, fulfillments, 1)
	require.Equal(t, entity.FulfillmentPending, fulfillments[0].Status)
	require.Equal(t, winners[0].UserID, fulfillments[0].UserID)

	stored, err := repository.NewDrawingRepository().GetByID(ctx, drawing.ID)
	require.NoError(t, err)
	require.Equal(t, entity.DrawingStatusCompleted, stored.Status)
	require.Equal(t, resp.RandomSeed, stored.RandomSeed)
	require.True(t, stored.CompletedAt.Valid)

	packs := published()
	require.Len(t, packs, 2)
	require.Equal(t, common.KafkaTopicDrawingCompleted, packs[0].Topic)
	require.Equal(t, common.KafkaTopicWinnerSelected, packs[1].Topic)
	require.Equal(t, []byte(winners[0].UserID), packs[1].Pack.Key)
	require.Equal(t, common.KafkaTopicWinnerSelected, packs[1].Pack.Headers["event"])

	var event map[string]any
	require.NoError(t, json.Unmarshal(packs[0].Pack.Msg, &event))
	require.Equal(t, drawing.ID, event["drawing_id"])
	require.Equal(t, resp.RandomSeed, event["random_seed"])

	require.Len(t, uploaded, 1)
	require.Equal(t, "audit", uploaded[0].Bucket)
	require.Equal(t, common.AuditPrefixDrawing+"/"+drawing.ID+".json", uploaded[0].Key)
	require.Equal(t, resp.RandomSeed, uploaded[0].Metadata["Random-Seed"])

	var audit model.DrawingAudit
	require.NoError(t, json.Unmarshal(uploaded[0].Data, &audit))
	require.Equal(t, resp.RandomSeed, audit.RandomSeed)
	require.Len(t, audit.TicketsDigest, 64)

	// A completed drawing cannot run again.
	_, err = d.Execute(ctx, &model.ExecuteDrawingRequest{DrawingID: drawing.ID})
	require.True(t, errorx.Is(err, errorx.InvalidState))
	require.True(t, errorx.Is(err, errorx.PreconditionFailed))

	fulfillments, err = repository.NewFulfillmentRepository().GetByDrawingID(ctx, drawing.ID)
	require.NoError(t, err)
	require.Len(t, fulfillments, 1)

	results, err := d.GetResults(ctx, &model.GetDrawingResultsRequest{DrawingID: drawing.ID})
	require.NoError(t, err)
	require.Len(t, results.Winners, 1)
	require.Equal(t, fulfillments[0].ID, results.Winners[0].FulfillmentID)

	verified, err := d.Verify(ctx, &model.VerifyDrawingRequest{DrawingID: drawing.ID})
	require.NoError(t, err)
	require.True(t, verified.Valid)
	require.Equal(t, resp.Winners[0].TicketID, verified.Expected[0].TicketID)
}

func Test_drawingDomain_Execute_PrizesExceedTickets(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestDrawingDomain(nil, nil)
	drawing := closedDrawingWithTickets(t, ctx, 3, 5)

	resp, err := d.Execute(ctx, &model.ExecuteDrawingRequest{DrawingID: drawing.ID})
	require.NoError(t, err)
	require.Len(t, resp.Winners, 3)

	seen := map[string]bool{}
	for _, w := range resp.Winners {
		require.False(t, seen[w.TicketID])
		seen[w.TicketID] = true
	}
}

func Test_drawingDomain_Execute_NoTickets(t *testing.T) {
	ctx := testutil.MockContext()
	publisher, published := testutil.NewRecordingPublisher()
	d := newTestDrawingDomain(publisher, nil)

	drawing := closedDrawingWithTickets(t, ctx, 0, 1)

	resp, err := d.Execute(ctx, &model.ExecuteDrawingRequest{DrawingID: drawing.ID})
	require.NoError(t, err)
	require.Empty(t, resp.Winners)
	require.Zero(t, resp.FulfillmentsCreated)
	require.Len(t, published(), 1)

	verified, err := d.Verify(ctx, &model.VerifyDrawingRequest{DrawingID: drawing.ID})
	require.NoError(t, err)
	require.True(t, verified.Valid)
}

func Test_drawingDomain_Execute_NotClosed(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestDrawingDomain(nil, nil)

	drawing, err := testutil.SampleDrawing(ctx, nil)
	require.NoError(t, err)

	_, err = d.Execute(ctx, &model.ExecuteDrawingRequest{DrawingID: drawing.ID})
	require.True(t, errorx.Is(err, errorx.InvalidState))
}

func Test_drawingDomain_Execute_Concurrent(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestDrawingDomain(nil, nil)
	drawing := closedDrawingWithTickets(t, ctx, 10, 2)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := d.Execute(ctx, &model.ExecuteDrawingRequest{DrawingID: drawing.ID})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.True(t, errorx.Is(err, errorx.InvalidState), "got %v", err)
	}
	require.Equal(t, 1, succeeded)

	fulfillments, err := repository.NewFulfillmentRepository().GetByDrawingID(ctx, drawing.ID)
	require.NoError(t, err)
	require.Len(t, fulfillments, 2)
}

func Test_drawingDomain_Verify_Tampered(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestDrawingDomain(nil, nil)
	drawing := closedDrawingWithTickets(t, ctx, 10, 1)

	resp, err := d.Execute(ctx, &model.ExecuteDrawingRequest{DrawingID: drawing.ID})
	require.NoError(t, err)

	tickets, err := repository.NewTicketRepository().GetByDrawingID(ctx, drawing.ID)
	require.NoError(t, err)

	for _, ticket := range tickets {
		if ticket.ID != resp.Winners[0].TicketID {
			err := repository.NewTicketRepository().MarkWinner(ctx, ticket.ID, resp.Winners[0].PrizeID)
			require.NoError(t, err)
			break
		}
	}

	verified, err := d.Verify(ctx, &model.VerifyDrawingRequest{DrawingID: drawing.ID})
	require.NoError(t, err)
	require.False(t, verified.Valid)
}

func Test_drawingDomain_RunLifecycle(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestDrawingDomain(nil, nil)
	now := time.Now().UTC()

	// Scheduled drawings wait for an admin to open them, however far away
	// their drawing time is.
	scheduled, err := testutil.SampleDrawing(ctx, &entity.Drawing{
		Status:           entity.DrawingStatusScheduled,
		TicketSalesClose: now.Add(30*24*time.Hour - TicketSalesCloseBefore),
		DrawingTime:      now.Add(30 * 24 * time.Hour),
	})
	require.NoError(t, err)

	toClose, err := testutil.SampleDrawing(ctx, &entity.Drawing{
		TicketSalesClose: now.Add(-time.Minute),
		DrawingTime:      now.Add(time.Hour),
	})
	require.NoError(t, err)

	toExecute := closedDrawingWithTickets(t, ctx, 4, 1)
	err = xcontext.DB(ctx).Model(&entity.Drawing{}).
		Where("id=?", toExecute.ID).
		Update("drawing_time", now.Add(-time.Minute)).Error
	require.NoError(t, err)

	untouched, err := testutil.SampleDrawing(ctx, &entity.Drawing{Status: entity.DrawingStatusDraft})
	require.NoError(t, err)

	resp, err := d.RunLifecycle(ctx, now)
	require.NoError(t, err)
	require.Equal(t, []string{toClose.ID}, resp.Closed)
	require.Equal(t, []string{toExecute.ID}, resp.Executed)
	require.Empty(t, resp.Failed)

	for id, want := range map[string]entity.DrawingStatus{
		scheduled.ID: entity.DrawingStatusScheduled,
		toClose.ID:   entity.DrawingStatusClosed,
		toExecute.ID: entity.DrawingStatusCompleted,
		untouched.ID: entity.DrawingStatusDraft,
	} {
		stored, err := repository.NewDrawingRepository().GetByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, want, stored.Status)
	}

	// A second tick finds nothing to do.
	resp, err = d.RunLifecycle(ctx, now)
	require.NoError(t, err)
	require.Empty(t, resp.Closed)
	require.Empty(t, resp.Executed)
}
