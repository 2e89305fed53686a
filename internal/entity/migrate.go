package entity

import (
	"context"

	"github.com/questx-lab/fittrack/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&PointTransaction{},
		&DailyPointsLog{},
		&Profile{},
		&Drawing{},
		&Ticket{},
		&Prize{},
		&Fulfillment{},
	)
}
