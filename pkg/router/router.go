package router

import (
	"context"
	"net/http"

	"github.com/campusboard/backend/config"
	"github.com/campusboard/backend/pkg/xcontext"
	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before or after the handler. It may enrich the context
// it returns. A non-nil error stops the chain and is written as the response.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc always runs at the end of a request, after the response was
// written.
type CloserFunc func(ctx context.Context)

type Router struct {
	root     context.Context
	mux      *http.ServeMux
	routes   map[string]map[string]http.HandlerFunc
	validate *validator.Validate

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

// New creates a router. Values of ctx (configs, logger, database...) are
// copied into the context of every request.
func New(ctx context.Context) *Router {
	return &Router{
		root:     ctx,
		mux:      http.NewServeMux(),
		routes:   make(map[string]map[string]http.HandlerFunc),
		validate: validator.New(),
	}
}

// Branch returns a router sharing the same mux but with its own copy of the
// middleware chain.
func (r *Router) Branch() *Router {
	return &Router{
		root:     r.root,
		mux:      r.mux,
		routes:   r.routes,
		validate: r.validate,
		befores:  append([]MiddlewareFunc{}, r.befores...),
		afters:   append([]MiddlewareFunc{}, r.afters...),
		closers:  append([]CloserFunc{}, r.closers...),
	}
}

func (r *Router) Before(m ...MiddlewareFunc) {
	r.befores = append(r.befores, m...)
}

func (r *Router) After(m ...MiddlewareFunc) {
	r.afters = append(r.afters, m...)
}

func (r *Router) AddCloser(c ...CloserFunc) {
	r.closers = append(r.closers, c...)
}

// Static mounts a raw http.Handler, bypassing middlewares.
func (r *Router) Static(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

func (r *Router) Handler(cfg config.ServerConfigs) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		AllowCredentials: true,
	})

	return c.Handler(r.mux)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	route(r, http.MethodGet, pattern, handler)
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	route(r, http.MethodPost, pattern, handler)
}

func route[Request, Response any](
	r *Router, method, pattern string, handler HandlerFunc[Request, Response],
) {
	befores, afters, closers := r.befores, r.afters, r.closers
	r.handle(method, pattern, func(w http.ResponseWriter, req *http.Request) {
		ctx := r.newRequestContext(w, req)
		defer func() {
			for _, c := range closers {
				c(ctx)
			}
		}()

		ctx = runMiddlewares(ctx, befores)
		if xcontext.Error(ctx) == nil {
			ctx = runHandler(ctx, r, method, handler)
		}

		if xcontext.Error(ctx) == nil {
			ctx = runMiddlewares(ctx, afters)
		}

		writeResponse(ctx)
	})
}

// handle registers h for method. Every pattern is mounted on the mux once and
// dispatches on the request method.
func (r *Router) handle(method, pattern string, h http.HandlerFunc) {
	methods, ok := r.routes[pattern]
	if !ok {
		methods = make(map[string]http.HandlerFunc)
		r.routes[pattern] = methods
		r.mux.HandleFunc(pattern, func(w http.ResponseWriter, req *http.Request) {
			handler, ok := methods[req.Method]
			if !ok {
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
				return
			}

			handler(w, req)
		})
	}

	methods[method] = h
}

func runMiddlewares(ctx context.Context, middlewares []MiddlewareFunc) context.Context {
	for _, m := range middlewares {
		newCtx, err := m(ctx)
		if err != nil {
			return xcontext.WithError(ctx, err)
		}

		if newCtx != nil {
			ctx = newCtx
		}
	}

	return ctx
}

func runHandler[Request, Response any](
	ctx context.Context, r *Router, method string, handler HandlerFunc[Request, Response],
) context.Context {
	var req Request
	if err := parseRequest(ctx, method, &req); err != nil {
		return xcontext.WithError(ctx, err)
	}

	if err := validateRequest(r.validate, &req); err != nil {
		return xcontext.WithError(ctx, err)
	}

	resp, err := handler(ctx, &req)
	if err != nil {
		return xcontext.WithError(ctx, err)
	}

	return xcontext.WithResponse(ctx, resp)
}

func (r *Router) newRequestContext(w http.ResponseWriter, req *http.Request) context.Context {
	ctx := req.Context()
	ctx = xcontext.WithConfigs(ctx, xcontext.Configs(r.root))
	ctx = xcontext.WithLogger(ctx, xcontext.Logger(r.root))
	if db := xcontext.DB(r.root); db != nil {
		ctx = xcontext.WithDB(ctx, db)
	}
	if engine := xcontext.TokenEngine(r.root); engine != nil {
		ctx = xcontext.WithTokenEngine(ctx, engine)
	}
	if store := xcontext.SessionStore(r.root); store != nil {
		ctx = xcontext.WithSessionStore(ctx, store)
	}
	if node := xcontext.SnowFlake(r.root); node != nil {
		ctx = xcontext.WithSnowFlake(ctx, node)
	}

	ctx = xcontext.WithHTTPRequest(ctx, req)
	ctx = xcontext.WithHTTPWriter(ctx, w)
	return ctx
}
