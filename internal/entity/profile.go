package entity

import "time"

type Profile struct {
	UserID string `gorm:"primaryKey"`

	BiologicalSex string
	AgeBracket    string
	FitnessLevel  string

	// TierCode is derived from the three attributes above.
	TierCode string `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
