package model

import "time"

type Ticket struct {
	ID           string    `json:"id"`
	DrawingID    string    `json:"drawing_id"`
	UserID       string    `json:"user_id"`
	TicketNumber int       `json:"ticket_number"`
	IsWinner     bool      `json:"is_winner"`
	PrizeID      string    `json:"prize_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type PurchaseTicketsRequest struct {
	UserID    string `json:"user_id"`
	DrawingID string `json:"drawing_id"`
	Quantity  int    `json:"quantity"`
}

type PurchaseTicketsResponse struct {
	TransactionID int64    `json:"transaction_id,string"`
	DrawingID     string   `json:"drawing_id"`
	Quantity      int      `json:"quantity"`
	TicketCost    int64    `json:"ticket_cost"`
	TotalCost     int64    `json:"total_cost"`
	TicketIDs     []string `json:"ticket_ids"`
	TicketNumbers []int    `json:"ticket_numbers"`
	NewBalance    int64    `json:"new_balance"`
}

type GetUserTicketsRequest struct {
	UserID    string `json:"user_id"`
	DrawingID string `json:"drawing_id"`
}

type GetUserTicketsResponse struct {
	Tickets []Ticket `json:"tickets"`
}
