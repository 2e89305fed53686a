// Package leaderboard ranks users by the points they earned in a period. The
// ledger is the source of truth; boards are cached and recomputed on a timer.
package leaderboard

import (
	"context"
	"errors"
	"time"

	"github.com/questx-lab/fittrack/internal/common"
	"github.com/questx-lab/fittrack/internal/domain/points"
	"github.com/questx-lab/fittrack/internal/domain/tier"
	"github.com/questx-lab/fittrack/internal/entity"
	"github.com/questx-lab/fittrack/internal/model"
	"github.com/questx-lab/fittrack/internal/repository"
	"github.com/questx-lab/fittrack/pkg/dateutil"
	"github.com/questx-lab/fittrack/pkg/errorx"
	"github.com/questx-lab/fittrack/pkg/idutil"
	"github.com/questx-lab/fittrack/pkg/xcontext"
	"github.com/questx-lab/fittrack/pkg/xredis"
	"golang.org/x/exp/slices"
)

const (
	DefaultPageSize = 100
	ContextWindow   = 10
)

type Leaderboard interface {
	Compute(ctx context.Context, period, tierCode string) (*model.Leaderboard, error)
	Refresh(ctx context.Context) (int, error)
	Get(context.Context, *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
	GetUserRank(context.Context, *model.GetUserRankRequest) (*model.GetUserRankResponse, error)
	InvalidateCache(ctx context.Context, period, tierCode string) (int, error)
}

type leaderboard struct {
	transactionRepo repository.PointTransactionRepository
	profileRepo     repository.ProfileRepository
	dailyLogRepo    repository.DailyPointsLogRepository
	redisClient     xredis.Client
	now             func() time.Time
}

// New accepts a nil redisClient. Reads then always compute from the ledger.
func New(
	transactionRepo repository.PointTransactionRepository,
	profileRepo repository.ProfileRepository,
	dailyLogRepo repository.DailyPointsLogRepository,
	redisClient xredis.Client,
) *leaderboard {
	return &leaderboard{
		transactionRepo: transactionRepo,
		profileRepo:     profileRepo,
		dailyLogRepo:    dailyLogRepo,
		redisClient:     redisClient,
		now:             time.Now,
	}
}

// Compute sums earn and adjust entries per user in the window. Ties in points
// go to the user whose first qualifying entry came earlier (at millisecond
// precision), then to the user with more active days in the window, then to
// the lower user id, so ranks are stable across runs.
func (l *leaderboard) Compute(ctx context.Context, period, tierCode string) (*model.Leaderboard, error) {
	if tierCode != "" && !tier.ValidateTierCode(tierCode) {
		return nil, errorx.New(errorx.InvalidAttribute, "Invalid tier code %q", tierCode)
	}

	loc := xcontext.Configs(ctx).Leaderboard.Location()
	window, err := ToPeriodWithTime(period, l.now().In(loc))
	if err != nil {
		return nil, err
	}

	aggregates, err := l.transactionRepo.Aggregate(ctx, repository.AggregatePointFilter{
		Types:    []entity.PointTransactionType{entity.PointTransactionEarn, entity.PointTransactionAdjust},
		Start:    window.Start,
		End:      window.End,
		TierCode: tierCode,
	})
	if err != nil {
		return nil, repository.StoreError(ctx, err, "aggregate points")
	}

	activeDays, err := l.dailyLogRepo.CountActiveDays(ctx,
		dateutil.Date(window.Start), dateutil.Date(window.End.Add(-time.Nanosecond)), points.ActiveDayMinMinutes)
	if err != nil {
		return nil, repository.StoreError(ctx, err, "count active days")
	}

	slices.SortFunc(aggregates, func(a, b repository.PointAggregate) bool {
		if a.Points != b.Points {
			return a.Points > b.Points
		}

		if ta, tb := idutil.TimeOf(a.FirstTransactionID), idutil.TimeOf(b.FirstTransactionID); !ta.Equal(tb) {
			return ta.Before(tb)
		}

		if activeDays[a.UserID] != activeDays[b.UserID] {
			return activeDays[a.UserID] > activeDays[b.UserID]
		}

		return a.UserID < b.UserID
	})

	board := &model.Leaderboard{
		Period:     string(window.Type),
		TierCode:   tierCode,
		ComputedAt: window.End.UTC(),
		Entries:    make([]model.LeaderboardEntry, 0, len(aggregates)),
	}
	for i, a := range aggregates {
		board.Entries = append(board.Entries, model.LeaderboardEntry{
			Rank:       i + 1,
			UserID:     a.UserID,
			Points:     a.Points,
			ActiveDays: activeDays[a.UserID],
		})
	}

	return board, nil
}

// Refresh recomputes the global board and the board of every tier that has
// members, for every period, and caches them. It returns how many boards were
// stored.
func (l *leaderboard) Refresh(ctx context.Context) (int, error) {
	if l.redisClient == nil {
		xcontext.Logger(ctx).Debugf("No leaderboard cache, skip refreshing")
		return 0, nil
	}

	tierCodes, err := l.profileRepo.DistinctTierCodes(ctx)
	if err != nil {
		return 0, repository.StoreError(ctx, err, "get active tiers")
	}

	scopes := append([]string{""}, tierCodes...)
	refreshed := 0
	var errs []error
	for _, period := range Periods() {
		for _, tierCode := range scopes {
			board, err := l.Compute(ctx, string(period), tierCode)
			if err != nil {
				errs = append(errs, err)
				continue
			}

			if err := l.store(ctx, board); err != nil {
				errs = append(errs, err)
				continue
			}

			refreshed++
		}
	}

	xcontext.Logger(ctx).Infof("Refreshed %d leaderboards, %d failed", refreshed, len(errs))
	return refreshed, errors.Join(errs...)
}

func (l *leaderboard) Get(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}

	if req.Limit <= 0 || req.Limit > DefaultPageSize {
		req.Limit = DefaultPageSize
	}

	board, err := l.load(ctx, req.Period, req.TierCode)
	if err != nil {
		return nil, err
	}

	total := len(board.Entries)
	start := min((req.Page-1)*req.Limit, total)
	end := min(start+req.Limit, total)

	return &model.GetLeaderboardResponse{
		Period:     board.Period,
		TierCode:   board.TierCode,
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: max(1, (total+req.Limit-1)/req.Limit),
		ComputedAt: board.ComputedAt,
		Entries:    board.Entries[start:end],
	}, nil
}

// GetUserRank returns the entry of the user and up to ContextWindow entries
// on each side of it. Entry is nil when the user earned nothing in the period.
func (l *leaderboard) GetUserRank(
	ctx context.Context, req *model.GetUserRankRequest,
) (*model.GetUserRankResponse, error) {
	board, err := l.load(ctx, req.Period, req.TierCode)
	if err != nil {
		return nil, err
	}

	resp := &model.GetUserRankResponse{Total: len(board.Entries), Context: []model.LeaderboardEntry{}}
	for i := range board.Entries {
		if board.Entries[i].UserID != req.UserID {
			continue
		}

		entry := board.Entries[i]
		resp.Entry = &entry
		start := max(0, i-ContextWindow)
		end := min(len(board.Entries), i+ContextWindow+1)
		resp.Context = board.Entries[start:end]
		break
	}

	return resp, nil
}

// InvalidateCache drops one cached board, every board of a period when
// tierCode is empty, or every board when both are empty.
func (l *leaderboard) InvalidateCache(ctx context.Context, period, tierCode string) (int, error) {
	if l.redisClient == nil {
		return 0, nil
	}

	if period != "" && tierCode != "" {
		key := common.RedisKeyLeaderboard(period, tierCode)
		exists, err := l.redisClient.Exist(ctx, key)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot check leaderboard cache: %v", err)
			return 0, errorx.New(errorx.Unavailable, "Cache is unavailable")
		}

		if !exists {
			return 0, nil
		}

		if err := l.redisClient.Del(ctx, key); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete leaderboard cache: %v", err)
			return 0, errorx.New(errorx.Unavailable, "Cache is unavailable")
		}

		return 1, nil
	}

	n, err := l.redisClient.DelPattern(ctx, common.RedisKeyLeaderboardPattern(period))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete leaderboard cache: %v", err)
		return 0, errorx.New(errorx.Unavailable, "Cache is unavailable")
	}

	return n, nil
}

// load reads the cached board, computing and caching it when the cache is
// missing or failing.
func (l *leaderboard) load(ctx context.Context, period, tierCode string) (*model.Leaderboard, error) {
	if _, err := ToPeriodType(period); err != nil {
		return nil, err
	}

	if l.redisClient != nil {
		var board model.Leaderboard
		err := l.redisClient.GetObj(ctx, common.RedisKeyLeaderboard(period, tierCode), &board)
		if err == nil {
			return &board, nil
		}

		if !xredis.IsNil(err) {
			xcontext.Logger(ctx).Warnf("Cannot read leaderboard cache, compute instead: %v", err)
		}
	}

	board, err := l.Compute(ctx, period, tierCode)
	if err != nil {
		return nil, err
	}

	if l.redisClient != nil {
		if err := l.store(ctx, board); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot populate leaderboard cache: %v", err)
		}
	}

	return board, nil
}

func (l *leaderboard) store(ctx context.Context, board *model.Leaderboard) error {
	ttl := xcontext.Configs(ctx).Leaderboard.CacheTTL.Duration
	key := common.RedisKeyLeaderboard(board.Period, board.TierCode)
	if err := l.redisClient.SetObj(ctx, key, board, ttl); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot cache leaderboard %s: %v", key, err)
		return errorx.New(errorx.Unavailable, "Cache is unavailable")
	}

	return nil
}
