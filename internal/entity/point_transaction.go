package entity

import "github.com/questx-lab/fittrack/pkg/enum"

type PointTransactionType string

var (
	PointTransactionEarn   = enum.New(PointTransactionType("earn"))
	PointTransactionSpend  = enum.New(PointTransactionType("spend"))
	PointTransactionAdjust = enum.New(PointTransactionType("adjust"))
)

type PointReferenceType string

var (
	PointReferenceActivity       = enum.New(PointReferenceType("activity"))
	PointReferenceWeeklyStreak   = enum.New(PointReferenceType("weekly_streak"))
	PointReferenceTicketPurchase = enum.New(PointReferenceType("ticket_purchase"))
	PointReferenceAdmin          = enum.New(PointReferenceType("admin"))
)

// PointTransaction is an append-only ledger entry.
type PointTransaction struct {
	SnowFlakeBase

	UserID        string               `gorm:"index;not null"`
	Type          PointTransactionType
	Amount        int64
	BalanceAfter  int64
	ReferenceType PointReferenceType `gorm:"index:idx_point_transactions_reference,priority:1"`
	ReferenceID   string             `gorm:"index:idx_point_transactions_reference,priority:2"`
	Description   string
}
