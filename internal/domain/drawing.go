package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/structs"
	"github.com/google/uuid"
	"github.com/questx-lab/fittrack/internal/common"
	"github.com/questx-lab/fittrack/internal/domain/draw"
	"github.com/questx-lab/fittrack/internal/entity"
	"github.com/questx-lab/fittrack/internal/model"
	"github.com/questx-lab/fittrack/internal/repository"
	"github.com/questx-lab/fittrack/pkg/crypto"
	"github.com/questx-lab/fittrack/pkg/enum"
	"github.com/questx-lab/fittrack/pkg/errorx"
	"github.com/questx-lab/fittrack/pkg/pubsub"
	"github.com/questx-lab/fittrack/pkg/storage"
	"github.com/questx-lab/fittrack/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

const TicketSalesCloseBefore = 5 * time.Minute

var DefaultTicketCosts = map[entity.DrawingType]int64{
	entity.DrawingDaily:   100,
	entity.DrawingWeekly:  500,
	entity.DrawingMonthly: 2000,
	entity.DrawingAnnual:  10000,
}

// drawingTransitions lists the allowed source statuses of each target status.
// Completion only happens through Execute.
var drawingTransitions = map[entity.DrawingStatus][]entity.DrawingStatus{
	entity.DrawingStatusScheduled: {entity.DrawingStatusDraft},
	entity.DrawingStatusOpen:      {entity.DrawingStatusScheduled},
	entity.DrawingStatusClosed:    {entity.DrawingStatusOpen},
	entity.DrawingStatusCancelled: {
		entity.DrawingStatusDraft,
		entity.DrawingStatusScheduled,
		entity.DrawingStatusOpen,
		entity.DrawingStatusClosed,
	},
}

type DrawingDomain interface {
	Create(context.Context, *model.CreateDrawingRequest) (*model.CreateDrawingResponse, error)
	AddPrize(context.Context, *model.AddPrizeRequest) (*model.AddPrizeResponse, error)
	Schedule(context.Context, *model.TransitDrawingRequest) (*model.TransitDrawingResponse, error)
	Open(context.Context, *model.TransitDrawingRequest) (*model.TransitDrawingResponse, error)
	Close(context.Context, *model.TransitDrawingRequest) (*model.TransitDrawingResponse, error)
	Cancel(context.Context, *model.TransitDrawingRequest) (*model.TransitDrawingResponse, error)
	Get(context.Context, *model.GetDrawingRequest) (*model.GetDrawingResponse, error)
	GetResults(context.Context, *model.GetDrawingResultsRequest) (*model.GetDrawingResultsResponse, error)
	Verify(context.Context, *model.VerifyDrawingRequest) (*model.VerifyDrawingResponse, error)
	Execute(context.Context, *model.ExecuteDrawingRequest) (*model.ExecuteDrawingResponse, error)
	RunLifecycle(ctx context.Context, now time.Time) (*model.RunDrawingLifecycleResponse, error)
}

type drawingDomain struct {
	drawingRepo     repository.DrawingRepository
	prizeRepo       repository.PrizeRepository
	ticketRepo      repository.TicketRepository
	fulfillmentRepo repository.FulfillmentRepository
	publisher       pubsub.Publisher
	storage         storage.Storage
	now             func() time.Time
}

// NewDrawingDomain accepts a nil publisher or storage, in which case the
// matching side effect of Execute is skipped.
func NewDrawingDomain(
	drawingRepo repository.DrawingRepository,
	prizeRepo repository.PrizeRepository,
	ticketRepo repository.TicketRepository,
	fulfillmentRepo repository.FulfillmentRepository,
	publisher pubsub.Publisher,
	storage storage.Storage,
) *drawingDomain {
	return &drawingDomain{
		drawingRepo:     drawingRepo,
		prizeRepo:       prizeRepo,
		ticketRepo:      ticketRepo,
		fulfillmentRepo: fulfillmentRepo,
		publisher:       publisher,
		storage:         storage,
		now:             time.Now,
	}
}

func (d *drawingDomain) Create(
	ctx context.Context, req *model.CreateDrawingRequest,
) (*model.CreateDrawingResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Require drawing name")
	}

	drawingType, err := enum.ToEnum[entity.DrawingType](req.DrawingType)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid drawing type %q", req.DrawingType)
	}

	if req.DrawingTime.IsZero() {
		return nil, errorx.New(errorx.BadRequest, "Require drawing time")
	}

	if req.TicketCostPoints < 0 {
		return nil, errorx.New(errorx.BadRequest, "Ticket cost must not be negative")
	}

	ticketCost := req.TicketCostPoints
	if ticketCost == 0 {
		ticketCost = DefaultTicketCosts[drawingType]
	}

	salesClose := req.TicketSalesClose
	if salesClose.IsZero() {
		salesClose = req.DrawingTime.Add(-TicketSalesCloseBefore)
	}

	if salesClose.After(req.DrawingTime) {
		return nil, errorx.New(errorx.BadRequest, "Ticket sales must close before the drawing time")
	}

	drawing := &entity.Drawing{
		Base:             entity.Base{ID: uuid.NewString()},
		Name:             req.Name,
		Description:      req.Description,
		DrawingType:      drawingType,
		TicketCostPoints: ticketCost,
		DrawingTime:      req.DrawingTime.UTC(),
		TicketSalesClose: salesClose.UTC(),
		Status:           entity.DrawingStatusDraft,
		CreatedBy:        req.CreatedBy,
	}

	if err := d.drawingRepo.Create(ctx, drawing); err != nil {
		return nil, repository.StoreError(ctx, err, "create drawing")
	}

	return &model.CreateDrawingResponse{Drawing: convertDrawing(drawing, nil)}, nil
}

func (d *drawingDomain) AddPrize(
	ctx context.Context, req *model.AddPrizeRequest,
) (*model.AddPrizeResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Require prize name")
	}

	if req.Rank < 1 {
		return nil, errorx.New(errorx.BadRequest, "Prize rank starts at 1")
	}

	if req.Quantity < 1 {
		return nil, errorx.New(errorx.BadRequest, "Prize quantity must be a positive number")
	}

	fulfillmentType := entity.FulfillmentPhysical
	if req.FulfillmentType != "" {
		var err error
		fulfillmentType, err = enum.ToEnum[entity.FulfillmentType](req.FulfillmentType)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid fulfillment type %q", req.FulfillmentType)
		}
	}

	drawing, err := d.getDrawing(ctx, req.DrawingID)
	if err != nil {
		return nil, err
	}

	if drawing.Status != entity.DrawingStatusDraft && drawing.Status != entity.DrawingStatusScheduled {
		return nil, errorx.New(errorx.InvalidState, "Cannot add prizes to a %s drawing", drawing.Status)
	}

	prize := &entity.Prize{
		Base:            entity.Base{ID: uuid.NewString()},
		DrawingID:       drawing.ID,
		Rank:            req.Rank,
		Name:            req.Name,
		Description:     req.Description,
		ValueCents:      req.ValueCents,
		Quantity:        req.Quantity,
		FulfillmentType: fulfillmentType,
	}
	if err := d.prizeRepo.Create(ctx, prize); err != nil {
		return nil, repository.StoreError(ctx, err, "create prize")
	}

	return &model.AddPrizeResponse{Prize: convertPrize(prize)}, nil
}

func (d *drawingDomain) Schedule(
	ctx context.Context, req *model.TransitDrawingRequest,
) (*model.TransitDrawingResponse, error) {
	drawing, err := d.getDrawing(ctx, req.DrawingID)
	if err != nil {
		return nil, err
	}

	if !drawing.DrawingTime.After(d.now()) {
		return nil, errorx.New(errorx.BadRequest, "Drawing time must be in the future")
	}

	return d.transit(ctx, drawing, entity.DrawingStatusScheduled)
}

func (d *drawingDomain) Open(
	ctx context.Context, req *model.TransitDrawingRequest,
) (*model.TransitDrawingResponse, error) {
	drawing, err := d.getDrawing(ctx, req.DrawingID)
	if err != nil {
		return nil, err
	}

	return d.transit(ctx, drawing, entity.DrawingStatusOpen)
}

func (d *drawingDomain) Close(
	ctx context.Context, req *model.TransitDrawingRequest,
) (*model.TransitDrawingResponse, error) {
	drawing, err := d.getDrawing(ctx, req.DrawingID)
	if err != nil {
		return nil, err
	}

	return d.transit(ctx, drawing, entity.DrawingStatusClosed)
}

func (d *drawingDomain) Cancel(
	ctx context.Context, req *model.TransitDrawingRequest,
) (*model.TransitDrawingResponse, error) {
	drawing, err := d.getDrawing(ctx, req.DrawingID)
	if err != nil {
		return nil, err
	}

	return d.transit(ctx, drawing, entity.DrawingStatusCancelled)
}

func (d *drawingDomain) transit(
	ctx context.Context, drawing *entity.Drawing, to entity.DrawingStatus,
) (*model.TransitDrawingResponse, error) {
	from := drawingTransitions[to]
	if !slices.Contains(from, drawing.Status) {
		return nil, errorx.New(errorx.InvalidTransition,
			"Cannot move drawing from %s to %s", drawing.Status, to)
	}

	if err := d.drawingRepo.Transit(ctx, drawing.ID, from, to); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.InvalidState, "Drawing status changed concurrently")
		}

		return nil, repository.StoreError(ctx, err, "update drawing status")
	}

	xcontext.Logger(ctx).Infof("Drawing %s moved from %s to %s", drawing.ID, drawing.Status, to)
	drawing.Status = to
	return &model.TransitDrawingResponse{Drawing: convertDrawing(drawing, nil)}, nil
}

func (d *drawingDomain) Get(
	ctx context.Context, req *model.GetDrawingRequest,
) (*model.GetDrawingResponse, error) {
	drawing, err := d.getDrawing(ctx, req.DrawingID)
	if err != nil {
		return nil, err
	}

	prizes, err := d.prizeRepo.GetByDrawingID(ctx, drawing.ID)
	if err != nil {
		return nil, repository.StoreError(ctx, err, "get prizes")
	}

	clientPrizes := []model.Prize{}
	for i := range prizes {
		clientPrizes = append(clientPrizes, convertPrize(&prizes[i]))
	}

	return &model.GetDrawingResponse{Drawing: convertDrawing(drawing, clientPrizes)}, nil
}

func (d *drawingDomain) GetResults(
	ctx context.Context, req *model.GetDrawingResultsRequest,
) (*model.GetDrawingResultsResponse, error) {
	drawing, err := d.getCompletedDrawing(ctx, req.DrawingID)
	if err != nil {
		return nil, err
	}

	prizes, err := d.prizeRepo.GetByDrawingID(ctx, drawing.ID)
	if err != nil {
		return nil, repository.StoreError(ctx, err, "get prizes")
	}

	winningTickets, err := d.ticketRepo.GetWinnersByDrawingID(ctx, drawing.ID)
	if err != nil {
		return nil, repository.StoreError(ctx, err, "get winning tickets")
	}

	fulfillments, err := d.fulfillmentRepo.GetByDrawingID(ctx, drawing.ID)
	if err != nil {
		return nil, repository.StoreError(ctx, err, "get fulfillments")
	}

	prizeRanks := map[string]int{}
	clientPrizes := []model.Prize{}
	for i := range prizes {
		prizeRanks[prizes[i].ID] = prizes[i].Rank
		clientPrizes = append(clientPrizes, convertPrize(&prizes[i]))
	}

	fulfillmentByTicket := map[string]string{}
	for _, f := range fulfillments {
		fulfillmentByTicket[f.TicketID] = f.ID
	}

	winners := []model.Winner{}
	for _, t := range winningTickets {
		winners = append(winners, convertWinner(draw.Winner{
			TicketID:     t.ID,
			TicketNumber: t.TicketNumber,
			PrizeID:      t.PrizeID.String,
			PrizeRank:    prizeRanks[t.PrizeID.String],
		}, t.UserID, fulfillmentByTicket[t.ID]))
	}

	slices.SortStableFunc(winners, func(a, b model.Winner) bool {
		return a.PrizeRank < b.PrizeRank
	})

	return &model.GetDrawingResultsResponse{
		Drawing: convertDrawing(drawing, clientPrizes),
		Winners: winners,
	}, nil
}

// Verify replays the recorded seed over the stored tickets and prizes and
// checks that it selects exactly the stored winners.
func (d *drawingDomain) Verify(
	ctx context.Context, req *model.VerifyDrawingRequest,
) (*model.VerifyDrawingResponse, error) {
	drawing, err := d.getCompletedDrawing(ctx, req.DrawingID)
	if err != nil {
		return nil, err
	}

	resp := &model.VerifyDrawingResponse{DrawingID: drawing.ID, Expected: []model.Winner{}}

	tickets, err := d.ticketRepo.GetByDrawingID(ctx, drawing.ID)
	if err != nil {
		return nil, repository.StoreError(ctx, err, "get tickets")
	}

	stored := map[string]string{}
	for _, t := range tickets {
		if t.IsWinner {
			stored[t.ID] = t.PrizeID.String
		}
	}

	if len(tickets) == 0 {
		resp.Valid = len(stored) == 0
		return resp, nil
	}

	seed, err := crypto.DecodeSeed(drawing.RandomSeed)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Invalid seed of drawing %s: %v", drawing.ID, err)
		return nil, errorx.New(errorx.Internal, "Drawing has an invalid seed")
	}

	prizes, err := d.prizeRepo.GetByDrawingID(ctx, drawing.ID)
	if err != nil {
		return nil, repository.StoreError(ctx, err, "get prizes")
	}

	userByTicket := map[string]string{}
	for _, t := range tickets {
		userByTicket[t.ID] = t.UserID
	}

	expected := draw.SelectWinners(seed, toDrawTickets(tickets), toDrawPrizes(prizes))
	resp.Valid = len(expected) == len(stored)
	for _, w := range expected {
		if stored[w.TicketID] != w.PrizeID {
			resp.Valid = false
		}

		resp.Expected = append(resp.Expected, convertWinner(w, userByTicket[w.TicketID], ""))
	}

	return resp, nil
}

type drawingExecution struct {
	response *model.ExecuteDrawingResponse
	tickets  []entity.Ticket
}

func (d *drawingDomain) Execute(
	ctx context.Context, req *model.ExecuteDrawingRequest,
) (*model.ExecuteDrawingResponse, error) {
	start := time.Now()

	drawing, err := d.getDrawing(ctx, req.DrawingID)
	if err != nil {
		return nil, err
	}

	if drawing.Status != entity.DrawingStatusClosed {
		return nil, errorx.New(errorx.InvalidState, "Drawing is %s, not closed", drawing.Status)
	}

	seed, err := crypto.NewSeed(drawing.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate drawing seed: %v", err)
		return nil, errorx.Unknown
	}

	execution, err := withRetry(ctx, "execute drawing", func() (*drawingExecution, error) {
		return d.execute(ctx, drawing, seed)
	})
	if err != nil {
		return nil, err
	}

	common.PromHistograms[common.DrawingExecutionDurationSeconds].
		WithLabelValues(string(drawing.DrawingType)).Observe(time.Since(start).Seconds())
	common.PromCounters[common.DrawingsExecutedTotal].
		WithLabelValues(string(drawing.DrawingType)).Inc()

	xcontext.Logger(ctx).Infof("Drawing %s executed: %d tickets, %d winners",
		drawing.ID, len(execution.tickets), len(execution.response.Winners))

	d.announce(ctx, drawing, execution)
	return execution.response, nil
}

func (d *drawingDomain) execute(
	ctx context.Context, drawing *entity.Drawing, seed [crypto.SeedSize]byte,
) (*drawingExecution, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.RollbackDBTransaction(ctx)

	encodedSeed := crypto.EncodeSeed(seed)
	if err := d.drawingRepo.Complete(ctx, drawing.ID, encodedSeed, d.now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.InvalidState, "Drawing was executed or changed concurrently")
		}

		return nil, repository.StoreError(ctx, err, "complete drawing")
	}

	tickets, err := d.ticketRepo.GetByDrawingID(ctx, drawing.ID)
	if err != nil {
		return nil, repository.StoreError(ctx, err, "get tickets")
	}

	resp := &model.ExecuteDrawingResponse{
		DrawingID:    drawing.ID,
		RandomSeed:   encodedSeed,
		TotalTickets: len(tickets),
		Winners:      []model.Winner{},
	}

	if len(tickets) > 0 {
		prizes, err := d.prizeRepo.GetByDrawingID(ctx, drawing.ID)
		if err != nil {
			return nil, repository.StoreError(ctx, err, "get prizes")
		}

		userByTicket := map[string]string{}
		for _, t := range tickets {
			userByTicket[t.ID] = t.UserID
		}

		fulfillments := []entity.Fulfillment{}
		for _, w := range draw.SelectWinners(seed, toDrawTickets(tickets), toDrawPrizes(prizes)) {
			if err := d.ticketRepo.MarkWinner(ctx, w.TicketID, w.PrizeID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					xcontext.Logger(ctx).Errorf("Ticket %s was already a winner", w.TicketID)
					return nil, errorx.Unknown
				}

				return nil, repository.StoreError(ctx, err, "mark winner")
			}

			fulfillment := entity.Fulfillment{
				Base:      entity.Base{ID: uuid.NewString()},
				TicketID:  w.TicketID,
				DrawingID: drawing.ID,
				PrizeID:   w.PrizeID,
				UserID:    userByTicket[w.TicketID],
				Status:    entity.FulfillmentPending,
			}
			fulfillments = append(fulfillments, fulfillment)
			resp.Winners = append(resp.Winners, convertWinner(w, fulfillment.UserID, fulfillment.ID))
		}

		if err := d.fulfillmentRepo.CreateMany(ctx, fulfillments); err != nil {
			return nil, repository.StoreError(ctx, err, "create fulfillments")
		}

		resp.FulfillmentsCreated = len(fulfillments)
	}

	if err := xcontext.CommitDBTransaction(ctx); err != nil {
		return nil, repository.StoreError(ctx, err, "commit drawing execution")
	}

	return &drawingExecution{response: resp, tickets: tickets}, nil
}

type winnerSelectedEvent struct {
	DrawingID     string `structs:"drawing_id"`
	UserID        string `structs:"user_id"`
	TicketID      string `structs:"ticket_id"`
	TicketNumber  int    `structs:"ticket_number"`
	PrizeID       string `structs:"prize_id"`
	PrizeRank     int    `structs:"prize_rank"`
	FulfillmentID string `structs:"fulfillment_id"`
}

// announce publishes the outcome and archives the audit record. The drawing
// is already committed, so failures here are only logged.
func (d *drawingDomain) announce(ctx context.Context, drawing *entity.Drawing, execution *drawingExecution) {
	resp := execution.response

	var digest strings.Builder
	for _, t := range execution.tickets {
		fmt.Fprintf(&digest, "%d:%s\n", t.TicketNumber, t.ID)
	}

	audit := model.DrawingAudit{
		DrawingID:     drawing.ID,
		DrawingType:   string(drawing.DrawingType),
		RandomSeed:    resp.RandomSeed,
		TotalTickets:  resp.TotalTickets,
		TicketsDigest: crypto.SHA256([]byte(digest.String())),
		Winners:       resp.Winners,
		CompletedAt:   d.now().UTC(),
	}

	auditData, err := json.Marshal(audit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal drawing audit: %v", err)
		return
	}

	if d.publisher != nil {
		d.publish(ctx, drawing.ID, common.KafkaTopicDrawingCompleted, structs.Map(audit))
		for _, w := range resp.Winners {
			d.publish(ctx, w.UserID, common.KafkaTopicWinnerSelected, structs.Map(winnerSelectedEvent{
				DrawingID:     drawing.ID,
				UserID:        w.UserID,
				TicketID:      w.TicketID,
				TicketNumber:  w.TicketNumber,
				PrizeID:       w.PrizeID,
				PrizeRank:     w.PrizeRank,
				FulfillmentID: w.FulfillmentID,
			}))
		}
	}

	if d.storage != nil {
		_, err := d.storage.Upload(ctx, &storage.Object{
			Bucket:      xcontext.Configs(ctx).Storage.AuditBucket,
			Key:         storage.ObjectKey(common.AuditPrefixDrawing, drawing.ID+".json"),
			ContentType: common.AuditMimeJSON,
			Metadata:    map[string]string{"Random-Seed": resp.RandomSeed},
			Data:        auditData,
		})
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot archive audit of drawing %s: %v", drawing.ID, err)
		}
	}
}

func (d *drawingDomain) publish(ctx context.Context, key, topic string, payload map[string]any) {
	pack, err := pubsub.NewJSONPack(key, topic, payload)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot encode %s event: %v", topic, err)
		return
	}

	if err := d.publisher.Publish(ctx, topic, pack); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish %s event keyed %s: %v", topic, key, err)
	}
}

// RunLifecycle closes sales and executes drawings whose time has come.
// Opening a scheduled drawing stays an admin action. Drawings are handled
// independently, so one failure does not block the others.
func (d *drawingDomain) RunLifecycle(
	ctx context.Context, now time.Time,
) (*model.RunDrawingLifecycleResponse, error) {
	resp := &model.RunDrawingLifecycleResponse{
		Closed:   []string{},
		Executed: []string{},
		Failed:   []string{},
	}

	toClose, err := d.drawingRepo.GetShouldClose(ctx, now)
	if err != nil {
		return nil, repository.StoreError(ctx, err, "get drawings to close")
	}

	for i := range toClose {
		if _, err := d.transit(ctx, &toClose[i], entity.DrawingStatusClosed); err != nil {
			d.lifecycleFailed(ctx, resp, toClose[i].ID, "close", err)
			continue
		}
		resp.Closed = append(resp.Closed, toClose[i].ID)
	}

	toExecute, err := d.drawingRepo.GetShouldExecute(ctx, now)
	if err != nil {
		return nil, repository.StoreError(ctx, err, "get drawings to execute")
	}

	for _, drawing := range toExecute {
		if _, err := d.Execute(ctx, &model.ExecuteDrawingRequest{DrawingID: drawing.ID}); err != nil {
			d.lifecycleFailed(ctx, resp, drawing.ID, "execute", err)
			continue
		}
		resp.Executed = append(resp.Executed, drawing.ID)
	}

	return resp, nil
}

func (d *drawingDomain) lifecycleFailed(
	ctx context.Context, resp *model.RunDrawingLifecycleResponse, id, action string, err error,
) {
	// Another worker or an admin got there first.
	if errorx.Is(err, errorx.InvalidState) {
		xcontext.Logger(ctx).Debugf("Skip %s drawing %s: %v", action, id, err)
		return
	}

	xcontext.Logger(ctx).Errorf("Cannot %s drawing %s: %v", action, id, err)
	resp.Failed = append(resp.Failed, id)
}

func (d *drawingDomain) getDrawing(ctx context.Context, id string) (*entity.Drawing, error) {
	drawing, err := d.drawingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found drawing")
		}

		return nil, repository.StoreError(ctx, err, "get drawing")
	}

	return drawing, nil
}

func (d *drawingDomain) getCompletedDrawing(ctx context.Context, id string) (*entity.Drawing, error) {
	drawing, err := d.getDrawing(ctx, id)
	if err != nil {
		return nil, err
	}

	if drawing.Status != entity.DrawingStatusCompleted {
		return nil, errorx.New(errorx.InvalidState, "Drawing is %s, not completed", drawing.Status)
	}

	return drawing, nil
}

func toDrawTickets(tickets []entity.Ticket) []draw.Ticket {
	result := make([]draw.Ticket, 0, len(tickets))
	for _, t := range tickets {
		result = append(result, draw.Ticket{ID: t.ID, Number: t.TicketNumber})
	}

	return result
}

func toDrawPrizes(prizes []entity.Prize) []draw.Prize {
	result := make([]draw.Prize, 0, len(prizes))
	for _, p := range prizes {
		result = append(result, draw.Prize{ID: p.ID, Rank: p.Rank, Quantity: p.Quantity})
	}

	return result
}
