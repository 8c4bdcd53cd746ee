package entity

import (
	"context"

	"github.com/campusboard/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&Account{},
		&User{},
		&Board{},
		&Post{},
		&Circle{},
		&CircleMember{},
		&Chat{},
		&ChatMember{},
		&Notification{},
		&PointHistory{},
		&Feedback{},
	)
}
