package model

import (
	"time"

	"github.com/questx-lab/fittrack/internal/domain/points"
)

type PointTransaction struct {
	ID            int64     `json:"id,string"`
	UserID        string    `json:"user_id"`
	Type          string    `json:"type"`
	Amount        int64     `json:"amount"`
	BalanceAfter  int64     `json:"balance_after"`
	ReferenceType string    `json:"reference_type"`
	ReferenceID   string    `json:"reference_id"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}

type AwardPointsRequest struct {
	UserID   string          `json:"user_id"`
	Activity points.Activity `json:"-"`

	// ActivityID identifies the tracked activity in the ledger reference.
	ActivityID string `json:"activity_id"`
}

type AwardPointsResponse struct {
	PointsAwarded int64  `json:"points_awarded"`
	RawPoints     int64  `json:"raw_points"`
	Capped        bool   `json:"capped"`
	NewBalance    int64  `json:"new_balance"`
	TransactionID int64  `json:"transaction_id,string,omitempty"`
	DailyState    string `json:"daily_state"`
}

type AdjustPointsRequest struct {
	UserID  string `json:"user_id"`
	Amount  int64  `json:"amount"`
	Reason  string `json:"reason"`
	AdminID string `json:"admin_id"`
}

type AdjustPointsResponse struct {
	NewBalance  int64            `json:"new_balance"`
	Transaction PointTransaction `json:"transaction"`
}

type CheckWeeklyStreakRequest struct {
	UserID string `json:"user_id"`
}

type CheckWeeklyStreakResponse struct {
	ActiveDays    []bool `json:"active_days"`
	PointsAwarded int64  `json:"points_awarded"`
	AlreadyEarned bool   `json:"already_earned"`
	NewBalance    int64  `json:"new_balance"`
}

type GetBalanceRequest struct {
	UserID string `json:"user_id"`
}

type GetBalanceResponse struct {
	Balance int64 `json:"balance"`
}

type GetTransactionsRequest struct {
	UserID string `json:"user_id"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetTransactionsResponse struct {
	Transactions []PointTransaction `json:"transactions"`
}
