package entity

import "database/sql"

type Ticket struct {
	Base

	DrawingID             string `gorm:"uniqueIndex:idx_tickets_drawing_number,priority:1"`
	TicketNumber          int    `gorm:"uniqueIndex:idx_tickets_drawing_number,priority:2"`
	UserID                string `gorm:"index"`
	PurchaseTransactionID int64
	IsWinner              bool
	PrizeID               sql.NullString
}
