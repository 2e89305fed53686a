package entity

import (
	"database/sql"

	"github.com/questx-lab/fittrack/pkg/enum"
)

type FulfillmentStatus string

var (
	FulfillmentPending          = enum.New(FulfillmentStatus("pending"))
	FulfillmentWinnerNotified   = enum.New(FulfillmentStatus("winner_notified"))
	FulfillmentAddressConfirmed = enum.New(FulfillmentStatus("address_confirmed"))
	FulfillmentAddressInvalid   = enum.New(FulfillmentStatus("address_invalid"))
	FulfillmentShipped          = enum.New(FulfillmentStatus("shipped"))
	FulfillmentDelivered        = enum.New(FulfillmentStatus("delivered"))
	FulfillmentForfeited        = enum.New(FulfillmentStatus("forfeited"))
)

type Fulfillment struct {
	Base

	TicketID  string `gorm:"uniqueIndex"`
	DrawingID string `gorm:"index"`
	PrizeID   string
	UserID    string `gorm:"index"`
	Status    FulfillmentStatus `gorm:"index"`

	ShippingAddress Map
	Carrier         string
	TrackingNumber  string
	Notes           string

	NotifiedAt         sql.NullTime
	AddressConfirmedAt sql.NullTime
	ShippedAt          sql.NullTime
	DeliveredAt        sql.NullTime
	ForfeitedAt        sql.NullTime
}
