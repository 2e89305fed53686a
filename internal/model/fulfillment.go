package model

import "time"

type ShippingAddress struct {
	Street  string `json:"street" structs:"street"`
	City    string `json:"city" structs:"city"`
	State   string `json:"state" structs:"state"`
	ZipCode string `json:"zip_code" structs:"zip_code"`
	Country string `json:"country,omitempty" structs:"country,omitempty"`
}

type Fulfillment struct {
	ID                 string         `json:"id"`
	TicketID           string         `json:"ticket_id"`
	DrawingID          string         `json:"drawing_id"`
	PrizeID            string         `json:"prize_id"`
	UserID             string         `json:"user_id"`
	Status             string         `json:"status"`
	ShippingAddress    map[string]any `json:"shipping_address,omitempty"`
	Carrier            string         `json:"carrier,omitempty"`
	TrackingNumber     string         `json:"tracking_number,omitempty"`
	Notes              string         `json:"notes,omitempty"`
	NotifiedAt         *time.Time     `json:"notified_at,omitempty"`
	AddressConfirmedAt *time.Time     `json:"address_confirmed_at,omitempty"`
	ShippedAt          *time.Time     `json:"shipped_at,omitempty"`
	DeliveredAt        *time.Time     `json:"delivered_at,omitempty"`
	ForfeitedAt        *time.Time     `json:"forfeited_at,omitempty"`
}

type FulfillmentActionRequest struct {
	FulfillmentID string `json:"fulfillment_id"`
	Notes         string `json:"notes"`
}

type ConfirmAddressRequest struct {
	FulfillmentID string          `json:"fulfillment_id"`
	Address       ShippingAddress `json:"address"`
}

type ShipFulfillmentRequest struct {
	FulfillmentID  string `json:"fulfillment_id"`
	Carrier        string `json:"carrier"`
	TrackingNumber string `json:"tracking_number"`
}

type FulfillmentResponse struct {
	Fulfillment Fulfillment `json:"fulfillment"`
}

type GetUserFulfillmentsRequest struct {
	UserID string `json:"user_id"`
}

type GetUserFulfillmentsResponse struct {
	Fulfillments []Fulfillment `json:"fulfillments"`
}

type ProcessFulfillmentTimeoutsResponse struct {
	Warned    []string `json:"warned"`
	Forfeited []string `json:"forfeited"`
	Failed    []string `json:"failed"`
}
