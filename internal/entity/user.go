package entity

type User struct {
	Base

	Name string

	// PointBalance equals the sum of the user's point transactions.
	PointBalance int64 `gorm:"not null;default:0"`
}
