package testutil

import (
	"context"

	"github.com/questx-lab/fittrack/internal/model"
)

type MockLeaderboard struct {
	ComputeFunc         func(ctx context.Context, period, tierCode string) (*model.Leaderboard, error)
	RefreshFunc         func(ctx context.Context) (int, error)
	GetFunc             func(context.Context, *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
	GetUserRankFunc     func(context.Context, *model.GetUserRankRequest) (*model.GetUserRankResponse, error)
	InvalidateCacheFunc func(ctx context.Context, period, tierCode string) (int, error)
}

func (m *MockLeaderboard) Compute(ctx context.Context, period, tierCode string) (*model.Leaderboard, error) {
	if m.ComputeFunc != nil {
		return m.ComputeFunc(ctx, period, tierCode)
	}

	return &model.Leaderboard{Period: period, TierCode: tierCode}, nil
}

func (m *MockLeaderboard) Refresh(ctx context.Context) (int, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx)
	}

	return 0, nil
}

func (m *MockLeaderboard) Get(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, req)
	}

	return &model.GetLeaderboardResponse{}, nil
}

func (m *MockLeaderboard) GetUserRank(
	ctx context.Context, req *model.GetUserRankRequest,
) (*model.GetUserRankResponse, error) {
	if m.GetUserRankFunc != nil {
		return m.GetUserRankFunc(ctx, req)
	}

	return &model.GetUserRankResponse{}, nil
}

func (m *MockLeaderboard) InvalidateCache(ctx context.Context, period, tierCode string) (int, error) {
	if m.InvalidateCacheFunc != nil {
		return m.InvalidateCacheFunc(ctx, period, tierCode)
	}

	return 0, nil
}
