package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/questx-lab/fittrack/internal/common"
	"github.com/questx-lab/fittrack/internal/domain/points"
	"github.com/questx-lab/fittrack/internal/entity"
	"github.com/questx-lab/fittrack/internal/model"
	"github.com/questx-lab/fittrack/internal/repository"
	"github.com/questx-lab/fittrack/pkg/dateutil"
	"github.com/questx-lab/fittrack/pkg/errorx"
	"github.com/questx-lab/fittrack/pkg/xcontext"
	"gorm.io/gorm"
)

const maxTransactionPageSize = 100

var errAlreadyGranted = errors.New("already granted")

type PointDomain interface {
	AwardPoints(context.Context, *model.AwardPointsRequest) (*model.AwardPointsResponse, error)
	AdjustPoints(context.Context, *model.AdjustPointsRequest) (*model.AdjustPointsResponse, error)
	CheckWeeklyStreak(context.Context, *model.CheckWeeklyStreakRequest) (*model.CheckWeeklyStreakResponse, error)
	GetBalance(context.Context, *model.GetBalanceRequest) (*model.GetBalanceResponse, error)
	GetTransactions(context.Context, *model.GetTransactionsRequest) (*model.GetTransactionsResponse, error)
}

type pointDomain struct {
	userRepo        repository.UserRepository
	transactionRepo repository.PointTransactionRepository
	dailyLogRepo    repository.DailyPointsLogRepository
	now             func() time.Time
}

func NewPointDomain(
	userRepo repository.UserRepository,
	transactionRepo repository.PointTransactionRepository,
	dailyLogRepo repository.DailyPointsLogRepository,
) *pointDomain {
	return &pointDomain{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		dailyLogRepo:    dailyLogRepo,
		now:             time.Now,
	}
}

// pointGrant is one earn entry that goes through the daily cap.
type pointGrant struct {
	userID        string
	referenceType entity.PointReferenceType
	referenceID   string
	description   string

	// once makes the grant fail with errAlreadyGranted when the reference was
	// already paid.
	once bool

	// apply records the activity on the day counters and returns the points
	// before the cap.
	apply func(day *entity.DailyPointsLog) int64
}

func (d *pointDomain) AwardPoints(
	ctx context.Context, req *model.AwardPointsRequest,
) (*model.AwardPointsResponse, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Require user id")
	}

	if req.Activity == nil {
		return nil, errorx.New(errorx.InvalidActivity, "Require an activity")
	}

	if err := d.checkUser(ctx, req.UserID); err != nil {
		return nil, err
	}

	activity := req.Activity
	grant := pointGrant{
		userID:        req.UserID,
		referenceType: entity.PointReferenceActivity,
		referenceID:   req.ActivityID,
		description:   fmt.Sprintf("Points for %s", activity.Type()),
		apply: func(day *entity.DailyPointsLog) int64 {
			raw := points.ActivityPoints(activity, points.DailyContext{
				PointsEarnedToday: day.PointsEarnedToday,
				WorkoutsToday:     day.WorkoutsToday,
				StepsToday:        day.StepsToday,
			})

			switch a := activity.(type) {
			case points.StepsActivity:
				day.StepsToday = points.AddSteps(day.StepsToday, a.StepCount)
			case points.WorkoutActivity:
				day.ActiveMinutesToday = points.AddActiveMinutes(day.ActiveMinutesToday, a.DurationMinutes)
				if a.QualifiesForBonus() {
					day.WorkoutsToday++
				}
			case points.ActiveMinutesActivity:
				day.ActiveMinutesToday = points.AddActiveMinutes(day.ActiveMinutesToday, a.Minutes)
			}

			return raw
		},
	}

	return withRetry(ctx, "award points", func() (*model.AwardPointsResponse, error) {
		return d.grant(ctx, grant)
	})
}

func (d *pointDomain) grant(ctx context.Context, g pointGrant) (*model.AwardPointsResponse, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.RollbackDBTransaction(ctx)

	day, err := d.dailyLogRepo.GetOrCreate(ctx, g.userID, dateutil.Date(d.now()))
	if err != nil {
		return nil, repository.StoreError(ctx, err, "get daily points log")
	}

	if g.once {
		exists, err := d.transactionRepo.ExistsByReference(ctx, g.userID, g.referenceType, g.referenceID)
		if err != nil {
			return nil, repository.StoreError(ctx, err, "check point reference")
		}

		if exists {
			return nil, errAlreadyGranted
		}
	}

	raw := g.apply(day)
	awarded := points.ApplyDailyCap(raw, day.PointsEarnedToday)
	day.PointsEarnedToday += awarded

	if err := d.dailyLogRepo.UpdateWithVersion(ctx, day); err != nil {
		return nil, repository.StoreError(ctx, err, "update daily points log")
	}

	resp := &model.AwardPointsResponse{
		PointsAwarded: awarded,
		RawPoints:     raw,
		Capped:        awarded < raw,
		DailyState:    string(points.DailyStateOf(true, day.PointsEarnedToday)),
	}

	if awarded > 0 {
		if err := d.userRepo.IncreaseBalance(ctx, g.userID, awarded); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found user")
			}

			return nil, repository.StoreError(ctx, err, "increase point balance")
		}
	}

	user, err := d.userRepo.GetByID(ctx, g.userID)
	if err != nil {
		return nil, repository.StoreError(ctx, err, "get user")
	}
	resp.NewBalance = user.PointBalance

	if awarded > 0 {
		tx := &entity.PointTransaction{
			UserID:        g.userID,
			Type:          entity.PointTransactionEarn,
			Amount:        awarded,
			BalanceAfter:  user.PointBalance,
			ReferenceType: g.referenceType,
			ReferenceID:   g.referenceID,
			Description:   g.description,
		}
		if err := d.transactionRepo.Create(ctx, tx); err != nil {
			return nil, repository.StoreError(ctx, err, "create point transaction")
		}
		resp.TransactionID = tx.ID
	}

	if err := xcontext.CommitDBTransaction(ctx); err != nil {
		return nil, repository.StoreError(ctx, err, "commit point award")
	}

	if awarded > 0 {
		common.PromCounters[common.PointsAwardedTotal].
			WithLabelValues(string(g.referenceType)).Add(float64(awarded))
	}

	return resp, nil
}

func (d *pointDomain) AdjustPoints(
	ctx context.Context, req *model.AdjustPointsRequest,
) (*model.AdjustPointsResponse, error) {
	if req.Amount == 0 {
		return nil, errorx.New(errorx.BadRequest, "Adjustment amount must not be zero")
	}

	if req.Reason == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a reason")
	}

	if err := d.checkUser(ctx, req.UserID); err != nil {
		return nil, err
	}

	return withRetry(ctx, "adjust points", func() (*model.AdjustPointsResponse, error) {
		return d.adjust(ctx, req)
	})
}

func (d *pointDomain) adjust(
	ctx context.Context, req *model.AdjustPointsRequest,
) (*model.AdjustPointsResponse, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.RollbackDBTransaction(ctx)

	var err error
	if req.Amount > 0 {
		err = d.userRepo.IncreaseBalance(ctx, req.UserID, req.Amount)
	} else {
		err = d.userRepo.DecreaseBalance(ctx, req.UserID, -req.Amount)
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.InsufficientBalance, "Balance does not cover the adjustment")
		}

		return nil, repository.StoreError(ctx, err, "adjust point balance")
	}

	user, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, repository.StoreError(ctx, err, "get user")
	}

	tx := &entity.PointTransaction{
		UserID:        req.UserID,
		Type:          entity.PointTransactionAdjust,
		Amount:        req.Amount,
		BalanceAfter:  user.PointBalance,
		ReferenceType: entity.PointReferenceAdmin,
		ReferenceID:   req.AdminID,
		Description:   req.Reason,
	}
	if err := d.transactionRepo.Create(ctx, tx); err != nil {
		return nil, repository.StoreError(ctx, err, "create point transaction")
	}

	if err := xcontext.CommitDBTransaction(ctx); err != nil {
		return nil, repository.StoreError(ctx, err, "commit point adjustment")
	}

	return &model.AdjustPointsResponse{
		NewBalance:  user.PointBalance,
		Transaction: convertPointTransaction(tx),
	}, nil
}

func (d *pointDomain) CheckWeeklyStreak(
	ctx context.Context, req *model.CheckWeeklyStreakRequest,
) (*model.CheckWeeklyStreakResponse, error) {
	if err := d.checkUser(ctx, req.UserID); err != nil {
		return nil, err
	}

	now := d.now().UTC()
	dates := dateutil.LastDays(now, points.WeeklyStreakDays)
	logs, err := d.dailyLogRepo.GetByDates(ctx, req.UserID, dates)
	if err != nil {
		return nil, repository.StoreError(ctx, err, "get daily points logs")
	}

	activeByDate := map[string]bool{}
	for _, l := range logs {
		activeByDate[l.LogDate] = points.IsActiveDay(l.ActiveMinutesToday)
	}

	resp := &model.CheckWeeklyStreakResponse{ActiveDays: make([]bool, len(dates))}
	for i, date := range dates {
		resp.ActiveDays[i] = activeByDate[date]
	}

	bonus := points.WeeklyStreakBonus(resp.ActiveDays)
	if bonus == 0 {
		return resp, nil
	}

	year, week := now.ISOWeek()
	grant := pointGrant{
		userID:        req.UserID,
		referenceType: entity.PointReferenceWeeklyStreak,
		referenceID:   fmt.Sprintf("%s:%d-W%02d", req.UserID, year, week),
		description:   "Weekly streak bonus",
		once:          true,
		apply:         func(*entity.DailyPointsLog) int64 { return bonus },
	}

	award, err := withRetry(ctx, "award weekly streak", func() (*model.AwardPointsResponse, error) {
		return d.grant(ctx, grant)
	})
	if err != nil {
		if errors.Is(err, errAlreadyGranted) {
			resp.AlreadyEarned = true
			return resp, nil
		}

		return nil, err
	}

	resp.PointsAwarded = award.PointsAwarded
	resp.NewBalance = award.NewBalance
	return resp, nil
}

func (d *pointDomain) GetBalance(
	ctx context.Context, req *model.GetBalanceRequest,
) (*model.GetBalanceResponse, error) {
	user, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		return nil, repository.StoreError(ctx, err, "get user")
	}

	return &model.GetBalanceResponse{Balance: user.PointBalance}, nil
}

func (d *pointDomain) GetTransactions(
	ctx context.Context, req *model.GetTransactionsRequest,
) (*model.GetTransactionsResponse, error) {
	if req.Offset < 0 {
		return nil, errorx.New(errorx.BadRequest, "Offset must not be negative")
	}

	if req.Limit <= 0 || req.Limit > maxTransactionPageSize {
		req.Limit = maxTransactionPageSize
	}

	txs, err := d.transactionRepo.GetByUserID(ctx, req.UserID, req.Offset, req.Limit)
	if err != nil {
		return nil, repository.StoreError(ctx, err, "get point transactions")
	}

	result := []model.PointTransaction{}
	for i := range txs {
		result = append(result, convertPointTransaction(&txs[i]))
	}

	return &model.GetTransactionsResponse{Transactions: result}, nil
}

func (d *pointDomain) checkUser(ctx context.Context, userID string) error {
	if userID == "" {
		return errorx.New(errorx.BadRequest, "Require user id")
	}

	if _, err := d.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.NotFound, "Not found user")
		}

		return repository.StoreError(ctx, err, "get user")
	}

	return nil
}
