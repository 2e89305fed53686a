package model

import "time"

type Drawing struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	DrawingType      string     `json:"drawing_type"`
	TicketCostPoints int64      `json:"ticket_cost_points"`
	DrawingTime      time.Time  `json:"drawing_time"`
	TicketSalesClose time.Time  `json:"ticket_sales_close"`
	Status           string     `json:"status"`
	TotalTickets     int        `json:"total_tickets"`
	RandomSeed       string     `json:"random_seed,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	Prizes           []Prize    `json:"prizes,omitempty"`
}

type Prize struct {
	ID              string `json:"id"`
	DrawingID       string `json:"drawing_id"`
	Rank            int    `json:"rank"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	ValueCents      int64  `json:"value_cents"`
	Quantity        int    `json:"quantity"`
	FulfillmentType string `json:"fulfillment_type"`
}

type CreateDrawingRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DrawingType string `json:"drawing_type"`

	// TicketCostPoints defaults to the cost of the drawing type when zero.
	TicketCostPoints int64     `json:"ticket_cost_points"`
	DrawingTime      time.Time `json:"drawing_time"`

	// TicketSalesClose defaults to five minutes before DrawingTime.
	TicketSalesClose time.Time `json:"ticket_sales_close"`
	CreatedBy        string    `json:"created_by"`
}

type CreateDrawingResponse struct {
	Drawing Drawing `json:"drawing"`
}

type AddPrizeRequest struct {
	DrawingID       string `json:"drawing_id"`
	Rank            int    `json:"rank"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	ValueCents      int64  `json:"value_cents"`
	Quantity        int    `json:"quantity"`
	FulfillmentType string `json:"fulfillment_type"`
}

type AddPrizeResponse struct {
	Prize Prize `json:"prize"`
}

type TransitDrawingRequest struct {
	DrawingID string `json:"drawing_id"`
}

type TransitDrawingResponse struct {
	Drawing Drawing `json:"drawing"`
}

type GetDrawingRequest struct {
	DrawingID string `json:"drawing_id"`
}

type GetDrawingResponse struct {
	Drawing Drawing `json:"drawing"`
}

type Winner struct {
	TicketID      string `json:"ticket_id"`
	TicketNumber  int    `json:"ticket_number"`
	UserID        string `json:"user_id"`
	PrizeID       string `json:"prize_id"`
	PrizeRank     int    `json:"prize_rank"`
	FulfillmentID string `json:"fulfillment_id"`
}

type ExecuteDrawingRequest struct {
	DrawingID string `json:"drawing_id"`
}

type ExecuteDrawingResponse struct {
	DrawingID           string   `json:"drawing_id"`
	RandomSeed          string   `json:"random_seed"`
	TotalTickets        int      `json:"total_tickets"`
	Winners             []Winner `json:"winners"`
	FulfillmentsCreated int      `json:"fulfillments_created"`
}

type GetDrawingResultsRequest struct {
	DrawingID string `json:"drawing_id"`
}

type GetDrawingResultsResponse struct {
	Drawing Drawing  `json:"drawing"`
	Winners []Winner `json:"winners"`
}

type VerifyDrawingRequest struct {
	DrawingID string `json:"drawing_id"`
}

type VerifyDrawingResponse struct {
	DrawingID string   `json:"drawing_id"`
	Valid     bool     `json:"valid"`
	Expected  []Winner `json:"expected"`
}

// DrawingAudit is the record archived after a drawing completes.
type DrawingAudit struct {
	DrawingID     string    `json:"drawing_id" structs:"drawing_id"`
	DrawingType   string    `json:"drawing_type" structs:"drawing_type"`
	RandomSeed    string    `json:"random_seed" structs:"random_seed"`
	TotalTickets  int       `json:"total_tickets" structs:"total_tickets"`
	TicketsDigest string    `json:"tickets_digest" structs:"tickets_digest"`
	Winners       []Winner  `json:"winners" structs:"winners,omitnested"`
	CompletedAt   time.Time `json:"completed_at" structs:"completed_at,omitnested"`
}

type RunDrawingLifecycleResponse struct {
	Closed   []string `json:"closed"`
	Executed []string `json:"executed"`
	Failed   []string `json:"failed"`
}
