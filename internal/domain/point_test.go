package domain

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/questx-lab/fittrack/internal/domain/points"
	"github.com/questx-lab/fittrack/internal/entity"
	"github.com/questx-lab/fittrack/internal/model"
	"github.com/questx-lab/fittrack/internal/repository"
	"github.com/questx-lab/fittrack/pkg/dateutil"
	"github.com/questx-lab/fittrack/pkg/errorx"
	"github.com/questx-lab/fittrack/pkg/testutil"
	"github.com/questx-lab/fittrack/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestPointDomain() *pointDomain {
	return NewPointDomain(
		repository.NewUserRepository(),
		repository.NewPointTransactionRepository(),
		repository.NewDailyPointsLogRepository(),
	)
}

func requireLedgerMatchesBalance(t *testing.T, ctx context.Context, userID string) {
	t.Helper()

	user, err := repository.NewUserRepository().GetByID(ctx, userID)
	require.NoError(t, err)

	sum, err := repository.NewPointTransactionRepository().SumByUserID(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, user.PointBalance, sum)
}

func Test_pointDomain_AwardPoints(t *testing.T) {
	tests := []struct {
		name       string
		activities []points.Activity
		wantPoints []int64
		wantErr    errorx.Code
	}{
		{
			name:       "steps are capped at 20000 per day",
			activities: []points.Activity{points.StepsActivity{StepCount: 25000}},
			wantPoints: []int64{200},
		},
		{
			name: "second batch of steps on a capped day earns nothing",
			activities: []points.Activity{
				points.StepsActivity{StepCount: 25000},
				points.StepsActivity{StepCount: 25000},
			},
			wantPoints: []int64{200, 0},
		},
		{
			name: "steps accumulate across submissions",
			activities: []points.Activity{
				points.StepsActivity{StepCount: 1500},
				points.StepsActivity{StepCount: 1500},
			},
			wantPoints: []int64{10, 20},
		},
		{
			name: "huge step count cannot wrap the step counter",
			activities: []points.Activity{
				points.StepsActivity{StepCount: math.MaxInt64},
				points.StepsActivity{StepCount: 1},
				points.StepsActivity{StepCount: 20000},
				points.StepsActivity{StepCount: 20000},
			},
			wantPoints: []int64{200, 0, 0, 0},
		},
		{
			name: "huge minute count is bounded by the day",
			activities: []points.Activity{
				points.ActiveMinutesActivity{Minutes: math.MaxInt64, Intensity: points.IntensityLight},
				points.ActiveMinutesActivity{Minutes: math.MaxInt64, Intensity: points.IntensityLight},
			},
			wantPoints: []int64{1000, 0},
		},
		{
			name: "workout earns bonus and minutes",
			activities: []points.Activity{
				points.WorkoutActivity{WorkoutType: "run", DurationMinutes: 30, Intensity: points.IntensityModerate},
			},
			wantPoints: []int64{110},
		},
		{
			name: "fourth workout has no bonus",
			activities: []points.Activity{
				points.WorkoutActivity{DurationMinutes: 20, Intensity: points.IntensityLight},
				points.WorkoutActivity{DurationMinutes: 20, Intensity: points.IntensityLight},
				points.WorkoutActivity{DurationMinutes: 20, Intensity: points.IntensityLight},
				points.WorkoutActivity{DurationMinutes: 20, Intensity: points.IntensityLight},
			},
			wantPoints: []int64{70, 70, 70, 20},
		},
		{
			name: "daily cap clips the award",
			activities: []points.Activity{
				points.ActiveMinutesActivity{Minutes: 300, Intensity: points.IntensityVigorous},
				points.ActiveMinutesActivity{Minutes: 100, Intensity: points.IntensityVigorous},
				points.ActiveMinutesActivity{Minutes: 10, Intensity: points.IntensityLight},
			},
			wantPoints: []int64{900, 100, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContext()
			user, err := testutil.SampleUser(ctx, nil)
			require.NoError(t, err)

			d := newTestPointDomain()
			var balance int64
			for i, activity := range tt.activities {
				resp, err := d.AwardPoints(ctx, &model.AwardPointsRequest{
					UserID:     user.ID,
					Activity:   activity,
					ActivityID: "activity",
				})
				require.NoError(t, err)
				require.Equal(t, tt.wantPoints[i], resp.PointsAwarded)

				balance += tt.wantPoints[i]
				require.Equal(t, balance, resp.NewBalance)
				if resp.PointsAwarded == 0 {
					require.Zero(t, resp.TransactionID)
				}
			}

			requireLedgerMatchesBalance(t, ctx, user.ID)
		})
	}
}

func Test_pointDomain_AwardPoints_Response(t *testing.T) {
	ctx := testutil.MockContext()
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	d := newTestPointDomain()
	resp, err := d.AwardPoints(ctx, &model.AwardPointsRequest{
		UserID:   user.ID,
		Activity: points.ActiveMinutesActivity{Minutes: 400, Intensity: points.IntensityVigorous},
	})
	require.NoError(t, err)
	require.Equal(t, int64(1200), resp.RawPoints)
	require.Equal(t, int64(1000), resp.PointsAwarded)
	require.True(t, resp.Capped)
	require.Equal(t, string(points.DailyAtCap), resp.DailyState)

	txs, err := repository.NewPointTransactionRepository().GetByUserID(ctx, user.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.Equal(t, resp.TransactionID, txs[0].ID)
	require.Equal(t, entity.PointTransactionEarn, txs[0].Type)
	require.Equal(t, int64(1000), txs[0].BalanceAfter)

	day, err := repository.NewDailyPointsLogRepository().GetOrCreate(ctx, user.ID, dateutil.Date(time.Now()))
	require.NoError(t, err)
	require.Equal(t, int64(1000), day.PointsEarnedToday)
	require.Equal(t, int64(400), day.ActiveMinutesToday)
	require.Equal(t, int64(1), day.Version)
}

func Test_pointDomain_AwardPoints_Errors(t *testing.T) {
	ctx := testutil.MockContext()
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	d := newTestPointDomain()

	_, err = d.AwardPoints(ctx, &model.AwardPointsRequest{
		UserID:   "unknown-user",
		Activity: points.StepsActivity{StepCount: 1000},
	})
	require.True(t, errorx.Is(err, errorx.NotFound))

	_, err = d.AwardPoints(ctx, &model.AwardPointsRequest{UserID: user.ID})
	require.True(t, errorx.Is(err, errorx.InvalidActivity))
	require.True(t, errorx.Is(err, errorx.BadRequest))
}

func Test_pointDomain_AwardPoints_Concurrent(t *testing.T) {
	ctx := testutil.MockContext()
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	d := newTestPointDomain()

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := d.AwardPoints(ctx, &model.AwardPointsRequest{
				UserID:   user.ID,
				Activity: points.ActiveMinutesActivity{Minutes: 100, Intensity: points.IntensityVigorous},
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	balance, err := d.GetBalance(ctx, &model.GetBalanceRequest{UserID: user.ID})
	require.NoError(t, err)
	require.Equal(t, int64(points.DailyPointCap), balance.Balance)
	requireLedgerMatchesBalance(t, ctx, user.ID)
}

func Test_pointDomain_AwardPoints_RetriesVersionConflict(t *testing.T) {
	tests := []struct {
		name        string
		conflicts   int
		wantUpdates int
		wantErr     errorx.Code
		wantBalance int64
	}{
		{name: "one lost update is retried", conflicts: 1, wantUpdates: 2, wantBalance: 300},
		{name: "two lost updates are retried", conflicts: 2, wantUpdates: 3, wantBalance: 300},
		{
			name:        "gives up after max attempts",
			conflicts:   10,
			wantUpdates: 3,
			wantErr:     errorx.ConcurrencyConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContext()
			user, err := testutil.SampleUser(ctx, nil)
			require.NoError(t, err)

			recordSleeps(t)

			updates := 0
			dailyLogRepo := &testutil.MockDailyPointsLogRepository{
				UpdateWithVersionFunc: func(ctx context.Context, data *entity.DailyPointsLog) error {
					updates++
					if updates <= tt.conflicts {
						return repository.ErrVersionConflict
					}
					return repository.NewDailyPointsLogRepository().UpdateWithVersion(ctx, data)
				},
			}

			d := NewPointDomain(
				repository.NewUserRepository(),
				repository.NewPointTransactionRepository(),
				dailyLogRepo,
			)
			resp, err := d.AwardPoints(ctx, &model.AwardPointsRequest{
				UserID:   user.ID,
				Activity: points.ActiveMinutesActivity{Minutes: 100, Intensity: points.IntensityVigorous},
			})
			require.Equal(t, tt.wantUpdates, updates)

			txs, txErr := repository.NewPointTransactionRepository().GetByUserID(ctx, user.ID, 0, 10)
			require.NoError(t, txErr)

			if tt.wantErr != 0 {
				require.True(t, errorx.Is(err, tt.wantErr), "got %v", err)
				require.Empty(t, txs)
			} else {
				require.NoError(t, err)
				require.Equal(t, int64(300), resp.PointsAwarded)
				require.Len(t, txs, 1)
				require.Equal(t, resp.TransactionID, txs[0].ID)
			}

			balance, err := d.GetBalance(ctx, &model.GetBalanceRequest{UserID: user.ID})
			require.NoError(t, err)
			require.Equal(t, tt.wantBalance, balance.Balance)
			requireLedgerMatchesBalance(t, ctx, user.ID)

			day, err := repository.NewDailyPointsLogRepository().GetOrCreate(ctx, user.ID, dateutil.Date(time.Now()))
			require.NoError(t, err)
			require.Equal(t, tt.wantBalance, day.PointsEarnedToday)
		})
	}
}

func Test_pointDomain_AdjustPoints(t *testing.T) {
	ctx := testutil.MockContext()
	user, err := testutil.SampleUser(ctx, &entity.User{PointBalance: 100})
	require.NoError(t, err)

	// The sample balance has no ledger entry yet.
	err = repository.NewPointTransactionRepository().Create(ctx, &entity.PointTransaction{
		UserID: user.ID, Type: entity.PointTransactionEarn, Amount: 100, BalanceAfter: 100,
	})
	require.NoError(t, err)

	d := newTestPointDomain()

	resp, err := d.AdjustPoints(ctx, &model.AdjustPointsRequest{
		UserID: user.ID, Amount: 2000, Reason: "Goodwill", AdminID: "admin",
	})
	require.NoError(t, err)
	require.Equal(t, int64(2100), resp.NewBalance)
	require.Equal(t, string(entity.PointTransactionAdjust), resp.Transaction.Type)
	require.Equal(t, "admin", resp.Transaction.ReferenceID)

	resp, err = d.AdjustPoints(ctx, &model.AdjustPointsRequest{
		UserID: user.ID, Amount: -600, Reason: "Fraud", AdminID: "admin",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1500), resp.NewBalance)
	require.Equal(t, int64(-600), resp.Transaction.Amount)

	_, err = d.AdjustPoints(ctx, &model.AdjustPointsRequest{
		UserID: user.ID, Amount: -1501, Reason: "Fraud", AdminID: "admin",
	})
	require.True(t, errorx.Is(err, errorx.InsufficientBalance))

	_, err = d.AdjustPoints(ctx, &model.AdjustPointsRequest{UserID: user.ID, Reason: "Nothing"})
	require.True(t, errorx.Is(err, errorx.BadRequest))

	requireLedgerMatchesBalance(t, ctx, user.ID)
}

func Test_pointDomain_CheckWeeklyStreak(t *testing.T) {
	ctx := testutil.MockContext()
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	d := newTestPointDomain()

	resp, err := d.CheckWeeklyStreak(ctx, &model.CheckWeeklyStreakRequest{UserID: user.ID})
	require.NoError(t, err)
	require.Zero(t, resp.PointsAwarded)
	require.Equal(t, make([]bool, points.WeeklyStreakDays), resp.ActiveDays)

	for _, date := range dateutil.LastDays(time.Now(), points.WeeklyStreakDays) {
		err := xcontext.DB(ctx).Create(&entity.DailyPointsLog{
			UserID:             user.ID,
			LogDate:            date,
			ActiveMinutesToday: points.ActiveDayMinMinutes,
		}).Error
		require.NoError(t, err)
	}

	resp, err = d.CheckWeeklyStreak(ctx, &model.CheckWeeklyStreakRequest{UserID: user.ID})
	require.NoError(t, err)
	require.Equal(t, int64(points.PointsWeeklyStreakBonus), resp.PointsAwarded)
	require.Equal(t, int64(points.PointsWeeklyStreakBonus), resp.NewBalance)
	require.False(t, resp.AlreadyEarned)

	resp, err = d.CheckWeeklyStreak(ctx, &model.CheckWeeklyStreakRequest{UserID: user.ID})
	require.NoError(t, err)
	require.Zero(t, resp.PointsAwarded)
	require.True(t, resp.AlreadyEarned)

	requireLedgerMatchesBalance(t, ctx, user.ID)
}

func Test_pointDomain_GetTransactions(t *testing.T) {
	ctx := testutil.MockContext()
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	d := newTestPointDomain()
	for i := 0; i < 3; i++ {
		_, err := d.AwardPoints(ctx, &model.AwardPointsRequest{
			UserID:   user.ID,
			Activity: points.ActiveMinutesActivity{Minutes: int64(10 * (i + 1)), Intensity: points.IntensityLight},
		})
		require.NoError(t, err)
	}

	resp, err := d.GetTransactions(ctx, &model.GetTransactionsRequest{UserID: user.ID, Limit: 2})
	require.NoError(t, err)
	require.Len(t, resp.Transactions, 2)
	require.Equal(t, int64(30), resp.Transactions[0].Amount)
	require.Equal(t, int64(60), resp.Transactions[0].BalanceAfter)

	resp, err = d.GetTransactions(ctx, &model.GetTransactionsRequest{UserID: user.ID, Offset: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, resp.Transactions, 1)
	require.Equal(t, int64(10), resp.Transactions[0].Amount)
}
