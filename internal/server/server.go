package server

import (
	"context"
	"net/http"
	"time"

	"github.com/callshield/callshield/internal/blocklist"
	blocklistdomain "github.com/callshield/callshield/internal/blocklist/domain"
	"github.com/callshield/callshield/internal/callhistory"
	callhistorydomain "github.com/callshield/callshield/internal/callhistory/domain"
	"github.com/callshield/callshield/internal/config"
	"github.com/callshield/callshield/internal/observability"
	obsmiddleware "github.com/callshield/callshield/internal/observability/logger"
	obsmetrics "github.com/callshield/callshield/internal/observability/metrics"
	obstracing "github.com/callshield/callshield/internal/observability/tracing"
	"github.com/callshield/callshield/internal/phonenumber"
	"github.com/callshield/callshield/internal/resolution"
	resolutiondomain "github.com/callshield/callshield/internal/resolution/domain"
	"github.com/callshield/callshield/internal/resolution/events"
	"github.com/callshield/callshield/internal/settings"
	settingsdomain "github.com/callshield/callshield/internal/settings/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	phonenumber.Module,
	blocklist.Module,
	callhistory.Module,
	settings.Module,
	resolution.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config) *gin.Engine {
	return NewEngine(obsCfg)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine         *gin.Engine
	blockListSvc   blocklistdomain.Service
	callHistorySvc callhistorydomain.Service
	settingsSvc    settingsdomain.Service
	resolutionSvc  resolutiondomain.Service
	storeEvents    *events.Hub
	obsMetrics     *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	BlockListSvc   blocklistdomain.Service
	CallHistorySvc callhistorydomain.Service
	SettingsSvc    settingsdomain.Service
	ResolutionSvc  resolutiondomain.Service
	StoreEvents    *events.Hub
	ObsMetrics     *obsmetrics.Metrics `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		blockListSvc:   p.BlockListSvc,
		callHistorySvc: p.CallHistorySvc,
		settingsSvc:    p.SettingsSvc,
		resolutionSvc:  p.ResolutionSvc,
		storeEvents:    p.StoreEvents,
		obsMetrics:     p.ObsMetrics,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Lookup --------
	api.GET("/lookup", s.LookupNumber)
	api.GET("/lookup/last", s.GetLastLookup)
	api.DELETE("/lookup/last", s.ClearLastLookup)

	// -------- Call history --------
	api.POST("/calls", s.RecordCall)
	api.GET("/calls", s.ListRecentCalls)
	api.GET("/calls/missed", s.ListMissedCalls)
	api.GET("/calls/spam", s.ListSpamCalls)
	api.GET("/calls/stats", s.GetTodayCallStats)
	api.POST("/calls/feedback", s.SubmitCallFeedback)

	// -------- Block list --------
	api.GET("/blocked", s.ListBlockedNumbers)
	api.GET("/blocked/search", s.SearchBlockedNumbers)
	api.GET("/blocked/check", s.CheckBlocked)
	api.POST("/blocked", s.BlockNumber)
	api.DELETE("/blocked", s.UnblockNumber)
	api.DELETE("/blocked/all", s.ClearBlockedNumbers)
	api.DELETE("/blocked/auto", s.ClearAutoBlockedNumbers)

	// -------- Settings --------
	api.GET("/settings", s.GetSettings)
	api.PATCH("/settings", s.UpdateSettings)
	api.POST("/settings/reset", s.ResetSettings)
	api.GET("/settings/languages", s.ListLanguages)

	// -------- Stats / events --------
	api.GET("/stats", s.GetStoreStats)
	api.GET("/events", s.StreamStoreEvents)
}
