package entity

import (
	"database/sql"
	"time"

	"github.com/questx-lab/fittrack/pkg/enum"
)

type DrawingType string

var (
	DrawingDaily   = enum.New(DrawingType("daily"))
	DrawingWeekly  = enum.New(DrawingType("weekly"))
	DrawingMonthly = enum.New(DrawingType("monthly"))
	DrawingAnnual  = enum.New(DrawingType("annual"))
)

type DrawingStatus string

var (
	DrawingStatusDraft     = enum.New(DrawingStatus("draft"))
	DrawingStatusScheduled = enum.New(DrawingStatus("scheduled"))
	DrawingStatusOpen      = enum.New(DrawingStatus("open"))
	DrawingStatusClosed    = enum.New(DrawingStatus("closed"))
	DrawingStatusCompleted = enum.New(DrawingStatus("completed"))
	DrawingStatusCancelled = enum.New(DrawingStatus("cancelled"))
)

type Drawing struct {
	Base

	Name             string
	Description      string
	DrawingType      DrawingType
	TicketCostPoints int64
	DrawingTime      time.Time `gorm:"index"`
	TicketSalesClose time.Time
	Status           DrawingStatus `gorm:"index"`

	// TotalTickets is also the last ticket number handed out.
	TotalTickets int
	RandomSeed   string
	CompletedAt  sql.NullTime
	CreatedBy    string
}
