package main

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/campusboard/backend/config"
	"github.com/campusboard/backend/internal/domain"
	"github.com/campusboard/backend/internal/domain/badge"
	"github.com/campusboard/backend/internal/domain/notification"
	"github.com/campusboard/backend/internal/domain/point"
	"github.com/campusboard/backend/internal/domain/search"
	"github.com/campusboard/backend/internal/domain/statistic"
	"github.com/campusboard/backend/internal/repository"
	"github.com/campusboard/backend/pkg/authenticator"
	"github.com/campusboard/backend/pkg/cqlutil"
	"github.com/campusboard/backend/pkg/email"
	"github.com/campusboard/backend/pkg/kafka"
	"github.com/campusboard/backend/pkg/logger"
	"github.com/campusboard/backend/pkg/pubsub"
	"github.com/campusboard/backend/pkg/storage"
	"github.com/campusboard/backend/pkg/xcontext"
	"github.com/campusboard/backend/pkg/xredis"

	"github.com/gorilla/sessions"
	"github.com/scylladb/gocqlx/v2"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	ctx context.Context
	app *cli.App

	redisClient     xredis.Client
	publisher       kafkaPublisher
	scyllaDBSession gocqlx.Session
	storage         storage.Storage
	emailSender     email.Sender
	searchIndex     search.Index

	accountRepo      repository.AccountRepository
	userRepo         repository.UserRepository
	boardRepo        repository.BoardRepository
	postRepo         repository.PostRepository
	circleRepo       repository.CircleRepository
	circleMemberRepo repository.CircleMemberRepository
	chatRepo         repository.ChatRepository
	chatMemberRepo   repository.ChatMemberRepository
	chatMessageRepo  repository.ChatMessageRepository
	notificationRepo repository.NotificationRepository
	pointHistoryRepo repository.PointHistoryRepository
	feedbackRepo     repository.FeedbackRepository

	emitter      notification.Emitter
	badgeManager *badge.Manager
	leaderboard  statistic.Leaderboard
	pointEngine  point.Engine

	authDomain         domain.AuthDomain
	userDomain         domain.UserDomain
	followDomain       domain.FollowDomain
	boardDomain        domain.BoardDomain
	postDomain         domain.PostDomain
	circleDomain       domain.CircleDomain
	chatDomain         domain.ChatDomain
	notificationDomain domain.NotificationDomain
	feedbackDomain     domain.FeedbackDomain
	fileDomain         domain.FileDomain
	statisticDomain    domain.StatisticDomain
	pointDomain        domain.PointDomain
	searchDomain       domain.SearchDomain
}

// kafkaPublisher is the publisher side of the notification bus, it can be
// stopped on shutdown.
type kafkaPublisher interface {
	pubsub.Publisher
	Stop(context.Context) error
}

// setup builds the root context shared by every command: configs, logger,
// token engine, session store and snowflake node.
func (s *srv) setup(*cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	node, err := snowflake.NewNode(cfg.NodeID)
	if err != nil {
		return err
	}

	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(logger.LevelFromString(cfg.LogLevel)))
	s.ctx = xcontext.WithTokenEngine(s.ctx, authenticator.NewTokenEngine(cfg.Auth.TokenSecret))
	s.ctx = xcontext.WithSessionStore(s.ctx, sessions.NewCookieStore([]byte(cfg.Session.Secret)))
	s.ctx = xcontext.WithSnowFlake(s.ctx, node)

	return nil
}

func (s *srv) teardown(*cli.Context) error {
	if s.publisher != nil {
		if err := s.publisher.Stop(s.ctx); err != nil {
			xcontext.Logger(s.ctx).Warnf("Cannot stop publisher: %v", err)
		}
	}

	if s.searchIndex != nil {
		s.searchIndex.Close()
	}

	if s.scyllaDBSession.Session != nil {
		s.scyllaDBSession.Close()
	}

	return nil
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx).Database
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       cfg.ConnectionString(),
		DefaultStringSize:         256,
		DisableDatetimePrecision:  true,
		DontSupportRenameIndex:    true,
		DontSupportRenameColumn:   true,
		SkipInitializeWithVersion: false,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		panic(err)
	}

	return db
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "warn", "warning":
		return gormlogger.Warn
	case "info":
		return gormlogger.Info
	}

	return gormlogger.Error
}

func (s *srv) loadDatabase() {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadPublisher() {
	cfg := xcontext.Configs(s.ctx).Kafka
	publisher, err := kafka.NewPublisher("api", strings.Split(cfg.Addr, ","))
	if err != nil {
		panic(err)
	}

	s.publisher = publisher
}

func (s *srv) loadScyllaDB() {
	cfg := xcontext.Configs(s.ctx).ScyllaDB
	if err := cqlutil.CreateKeyspace(cfg.KeySpace, cfg.Addr); err != nil {
		panic(err)
	}

	var err error
	s.scyllaDBSession, err = cqlutil.Connect(cfg.KeySpace, cfg.Addr)
	if err != nil {
		panic(err)
	}

	xcontext.Logger(s.ctx).Infof("Connect scylla db successful in addr: %s", cfg.Addr)
}

func (s *srv) loadStorage() {
	var err error
	s.storage, err = storage.NewS3Storage(xcontext.Configs(s.ctx).Storage)
	if err != nil {
		panic(err)
	}
}

// loadEmailSender falls back to printing mails in the log when no sendgrid key
// is configured.
func (s *srv) loadEmailSender() {
	cfg := xcontext.Configs(s.ctx).Email
	if cfg.SendgridAPIKey == "" {
		xcontext.Logger(s.ctx).Warnf("No sendgrid key, verification mails go to the log")
		s.emailSender = email.NewConsoleSender(xcontext.Logger(s.ctx))
		return
	}

	s.emailSender = email.NewSendgridSender(cfg)
}

func (s *srv) loadSearchIndex() {
	cfg := xcontext.Configs(s.ctx)
	if cfg.SearchIndex.IndexDir == "" && cfg.Env != "local" {
		xcontext.Logger(s.ctx).Warnf("SEARCH_INDEX_DIR is empty, the search index lives in memory")
	}

	s.searchIndex = search.NewBleveIndex(s.ctx)
}

// reindexSearch needs the database and the repos.
func (s *srv) reindexSearch() {
	err := search.Reindex(s.ctx, s.searchIndex, s.boardRepo, s.postRepo, s.circleRepo)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.accountRepo = repository.NewAccountRepository()
	s.userRepo = repository.NewUserRepository()
	s.boardRepo = repository.NewBoardRepository()
	s.postRepo = repository.NewPostRepository()
	s.circleRepo = repository.NewCircleRepository()
	s.circleMemberRepo = repository.NewCircleMemberRepository()
	s.chatRepo = repository.NewChatRepository()
	s.chatMemberRepo = repository.NewChatMemberRepository()
	s.notificationRepo = repository.NewNotificationRepository()
	s.pointHistoryRepo = repository.NewPointHistoryRepository()
	s.feedbackRepo = repository.NewFeedbackRepository()

	if s.scyllaDBSession.Session != nil {
		s.chatMessageRepo = repository.NewChatMessageRepository(s.scyllaDBSession)
	}
}

func (s *srv) loadBadgeManager() {
	s.badgeManager = badge.NewManager(
		s.userRepo,
		badge.NewFirstPostBadgeScanner(),
		badge.NewCircleLeaderBadgeScanner(),
		badge.NewContributorBadgeScanner(),
		badge.NewExpertBadgeScanner(s.pointHistoryRepo),
		badge.NewHelperBadgeScanner(s.pointHistoryRepo),
	)
}

func (s *srv) loadDomains() {
	var publisher pubsub.Publisher
	if s.publisher != nil {
		publisher = s.publisher
	}

	s.emitter = notification.NewEmitter(publisher)
	s.leaderboard = statistic.New(s.pointHistoryRepo, s.redisClient)
	s.pointEngine = point.NewEngine(s.userRepo, s.pointHistoryRepo, s.badgeManager, s.leaderboard, s.emitter)

	s.authDomain = domain.NewAuthDomain(s.accountRepo, s.userRepo, s.emailSender)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.accountRepo, s.circleRepo,
		s.circleMemberRepo, s.chatMemberRepo, s.notificationRepo, s.storage)
	s.followDomain = domain.NewFollowDomain(s.userRepo, s.emitter)
	s.boardDomain = domain.NewBoardDomain(s.boardRepo, s.postRepo, s.userRepo,
		s.pointEngine, s.searchIndex, s.emitter)
	s.postDomain = domain.NewPostDomain(s.postRepo, s.boardRepo, s.userRepo,
		s.pointEngine, s.searchIndex, s.emitter)
	s.circleDomain = domain.NewCircleDomain(s.circleRepo, s.circleMemberRepo, s.boardRepo,
		s.userRepo, s.postDomain, s.pointEngine, s.searchIndex)
	s.chatDomain = domain.NewChatDomain(s.chatRepo, s.chatMemberRepo, s.chatMessageRepo,
		s.userRepo, s.emitter)
	s.notificationDomain = domain.NewNotificationDomain(s.notificationRepo)
	s.feedbackDomain = domain.NewFeedbackDomain(s.feedbackRepo)
	s.fileDomain = domain.NewFileDomain(s.boardRepo, s.postRepo, s.circleRepo, s.storage)
	s.statisticDomain = domain.NewStatisticDomain(s.userRepo, s.leaderboard)
	s.pointDomain = domain.NewPointDomain(s.pointHistoryRepo)
	s.searchDomain = domain.NewSearchDomain(s.boardRepo, s.postRepo, s.circleRepo,
		s.circleMemberRepo, s.userRepo, s.searchIndex)
}

// shutdownTimeout bounds how long in-flight requests may run after a stop
// signal.
const shutdownTimeout = 10 * time.Second
