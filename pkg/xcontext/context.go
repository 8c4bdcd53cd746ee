package xcontext

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/campusboard/backend/config"
	"github.com/campusboard/backend/pkg/authenticator"
	"github.com/campusboard/backend/pkg/logger"
	"github.com/gorilla/sessions"
	"gorm.io/gorm"
)

type (
	configsKey        struct{}
	loggerKey         struct{}
	dbKey             struct{}
	dbTransactionKey  struct{}
	requestUserIDKey  struct{}
	httpRequestKey    struct{}
	responseWriterKey struct{}
	tokenEngineKey    struct{}
	sessionStoreKey   struct{}
	snowflakeKey      struct{}
	startTimeKey      struct{}
	responseKey       struct{}
	errorKey          struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, _ := ctx.Value(configsKey{}).(config.Configs)
	return cfg
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey{}).(logger.Logger)
	if !ok {
		return logger.NewLogger(logger.SILENCE)
	}

	return l
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the running transaction if there is one, otherwise the plain
// database handle.
func DB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(dbTransactionKey{}).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}

	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		return nil
	}

	return db.WithContext(ctx)
}

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestUserIDKey{}, id)
}

func RequestUserID(ctx context.Context) string {
	id, _ := ctx.Value(requestUserIDKey{}).(string)
	return id
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	r, _ := ctx.Value(httpRequestKey{}).(*http.Request)
	return r
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, responseWriterKey{}, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	w, _ := ctx.Value(responseWriterKey{}).(http.ResponseWriter)
	return w
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine {
	engine, _ := ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine)
	return engine
}

func WithSessionStore(ctx context.Context, store sessions.Store) context.Context {
	return context.WithValue(ctx, sessionStoreKey{}, store)
}

func SessionStore(ctx context.Context) sessions.Store {
	store, _ := ctx.Value(sessionStoreKey{}).(sessions.Store)
	return store
}

func WithSnowFlake(ctx context.Context, node *snowflake.Node) context.Context {
	return context.WithValue(ctx, snowflakeKey{}, node)
}

func SnowFlake(ctx context.Context) *snowflake.Node {
	node, _ := ctx.Value(snowflakeKey{}).(*snowflake.Node)
	return node
}

func WithStartTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, startTimeKey{}, t)
}

func StartTime(ctx context.Context) time.Time {
	t, _ := ctx.Value(startTimeKey{}).(time.Time)
	return t
}

func WithResponse(ctx context.Context, resp any) context.Context {
	return context.WithValue(ctx, responseKey{}, resp)
}

func Response(ctx context.Context) any {
	return ctx.Value(responseKey{})
}

func WithError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, errorKey{}, err)
}

func Error(ctx context.Context) error {
	err, _ := ctx.Value(errorKey{}).(error)
	return err
}
