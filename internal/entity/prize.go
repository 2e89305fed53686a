package entity

import "github.com/questx-lab/fittrack/pkg/enum"

type FulfillmentType string

var (
	FulfillmentPhysical = enum.New(FulfillmentType("physical"))
	FulfillmentDigital  = enum.New(FulfillmentType("digital"))
)

type Prize struct {
	Base

	DrawingID       string `gorm:"index"`
	Rank            int
	Name            string
	Description     string
	ValueCents      int64
	Quantity        int
	FulfillmentType FulfillmentType
}
