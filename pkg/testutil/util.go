package testutil

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/campusboard/backend/config"
	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/pkg/authenticator"
	"github.com/campusboard/backend/pkg/logger"
	"github.com/campusboard/backend/pkg/xcontext"
	"github.com/gorilla/sessions"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func MockConfigs() config.Configs {
	return config.Configs{
		Env: "test",
		ApiServer: config.APIServerConfigs{
			MaxLimit:     50,
			DefaultLimit: 20,
		},
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Minute,
			},
			VerificationTokenTTL: time.Hour,
		},
		Session: config.SessionConfigs{
			Secret: "session-secret",
			Name:   "campusboard_session",
		},
		Storage: config.S3Configs{
			Bucket: "campusboard",
		},
		File: config.FileConfigs{
			MaxSize:    10 << 20,
			AvatarSize: 256,
		},
		Kafka: config.KafkaConfigs{
			NotificationTopic: "notification",
		},
		Email: config.EmailConfigs{
			FromName:    "CampusBoard",
			FromAddress: "no-reply@campusboard.app",
			VerifyURL:   "http://localhost:3000/verify",
		},
		University: config.UniversityConfigs{
			Directory: config.UniversityDirectory{
				Universities: []config.University{KAIST, SNU},
			},
		},
		Transaction: config.TransactionConfigs{
			MaxRetries:      5,
			InitialInterval: time.Millisecond,
		},
	}
}

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	// Every connection to :memory: opens its own database.
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	cfg := MockConfigs()

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine(cfg.Auth.TokenSecret))
	ctx = xcontext.WithSessionStore(ctx, sessions.NewCookieStore([]byte(cfg.Session.Secret)))
	ctx = xcontext.WithSnowFlake(ctx, node)
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}
