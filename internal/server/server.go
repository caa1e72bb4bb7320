// Package server wires the resource handlers into the public router and the
// diagnostics router.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/SergeyParamoshkin/newsapi/internal/article"
	"github.com/SergeyParamoshkin/newsapi/internal/comment"
	"github.com/SergeyParamoshkin/newsapi/internal/endpoints"
	"github.com/SergeyParamoshkin/newsapi/internal/errresponse"
	"github.com/SergeyParamoshkin/newsapi/internal/logger"
	"github.com/SergeyParamoshkin/newsapi/internal/metrics"
	"github.com/SergeyParamoshkin/newsapi/internal/topic"
	"github.com/SergeyParamoshkin/newsapi/internal/user"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

const ServiceName = "newsapi"

type Stores struct {
	Topics   topic.Store
	Articles article.Store
	Comments comment.Store
	Users    user.Store
}

type App struct {
	sugarLogger *zap.SugaredLogger
	metrics     *metrics.Metrics
	stores      Stores
}

// New returns the application. m may be nil, requests are then not measured.
func New(sugar *zap.SugaredLogger, m *metrics.Metrics, stores Stores) *App {
	return &App{
		sugarLogger: sugar,
		metrics:     m,
		stores:      stores,
	}
}

// Router builds the public API router.
func (a *App) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(a.Logger)
	r.Use(a.RequestLogger)
	r.Use(middleware.Recoverer)
	if a.metrics != nil {
		r.Use(a.metrics.Middleware)
	}
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.NotFound(NotFound)
	r.MethodNotAllowed(NotFound)

	topics := topic.NewAPI(a.stores.Topics)
	articles := article.NewAPI(a.stores.Articles)
	comments := comment.NewAPI(a.stores.Comments)
	users := user.NewAPI(a.stores.Users)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", endpoints.ListEndpoints)

		r.Get("/topics", topics.ListTopics)

		// RESTy routes for "articles" resource
		r.Route("/articles", func(r chi.Router) {
			r.With(article.ListCtx).Get("/", articles.ListArticles)

			r.Route("/{article_id}", func(r chi.Router) {
				r.With(articles.ArticleCtx).Get("/", articles.GetArticle)
				r.Patch("/", articles.UpdateArticle)
				r.Get("/comments", comments.ListComments)
				r.Post("/comments", comments.CreateComment)
			})
		})

		r.Delete("/comments/{comment_id}", comments.DeleteComment)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", users.ListUsers)
			r.Get("/{username}", users.GetUser)
		})
	})

	return r
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DiagRouter serves metrics and health checks on the diagnostics port.
func (a *App) DiagRouter(db Pinger) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	if a.metrics != nil {
		r.Method(http.MethodGet, "/metrics", a.metrics.Handler())
	}
	r.Get("/healthz", a.Health(db))

	return r
}

// Health pings the database with a short timeout.
func (a *App) Health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		start := time.Now()
		if err := db.Ping(ctx); err != nil {
			a.sugarLogger.Errorw("database health check failed", "error", err, "response_time", time.Since(start))

			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, render.M{"status": "unhealthy", "database": err.Error()})

			return
		}

		render.JSON(w, r, render.M{"status": "healthy", "response_time": time.Since(start).String()})
	}
}

// NotFound answers unmatched routes and methods.
func NotFound(w http.ResponseWriter, r *http.Request) {
	if err := render.Render(w, r, errresponse.ErrNotFound); err != nil {
		logger.FromContext(r.Context()).Errorw(err.Error())
	}
}

// Logger puts the request scoped logger, tagged with the request id, on the
// context.
func (a *App) Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := a.sugarLogger.With("request_id", middleware.GetReqID(r.Context()))
		next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context(), l)))
	})
}

// RequestLogger logs one line per completed request.
func (a *App) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logger.FromContext(r.Context()).Infow("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"remote_addr", r.RemoteAddr,
		)
	})
}
