// Package server 提供对外 HTTP 层：REST 路由、中间件、观测端点。
//
// 边界职责：解析请求、调用 Engine、把领域错误映射为 HTTP 状态码。
// 所有推荐语义都在 engine 包内，这里不做任何打分逻辑。
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rushteam/hotelrec/core"
	"github.com/rushteam/hotelrec/engine"
	"github.com/rushteam/hotelrec/stats"
)

// Server 持有只读依赖，可被并发请求安全共享。
type Server struct {
	catalog core.Catalog
	stats   *stats.Aggregator
	engine  *engine.Engine
	logger  zerolog.Logger
}

// New 创建 Server。
func New(catalog core.Catalog, eng *engine.Engine, logger zerolog.Logger) *Server {
	return &Server{
		catalog: catalog,
		stats:   stats.NewAggregator(catalog),
		engine:  eng,
		logger:  logger,
	}
}

// Router 组装 HTTP 路由。
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(s.requestLogger)

	r.Route("/api/v1", func(r chi.Router) {
		r.With(metricsMiddleware("hotels")).Get("/hotels", s.handleListHotels)
		r.With(metricsMiddleware("hotel")).Get("/hotels/{id}", s.handleGetHotel)
		r.With(metricsMiddleware("recommend")).Post("/recommend", s.handleRecommend)
		r.With(metricsMiddleware("stats")).Get("/stats", s.handleStats)
	})

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// requestLogger 按请求写一条结构化访问日志。
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)
		s.logger.Info().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("http request")
	})
}
