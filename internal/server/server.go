package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/dashboard/internal/auth"
	authdomain "github.com/smallbiznis/dashboard/internal/auth/domain"
	"github.com/smallbiznis/dashboard/internal/auth/session"
	"github.com/smallbiznis/dashboard/internal/config"
	"github.com/smallbiznis/dashboard/internal/customer"
	customerdomain "github.com/smallbiznis/dashboard/internal/customer/domain"
	"github.com/smallbiznis/dashboard/internal/invoice"
	invoicedomain "github.com/smallbiznis/dashboard/internal/invoice/domain"
	"github.com/smallbiznis/dashboard/internal/observability"
	obsmiddleware "github.com/smallbiznis/dashboard/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/dashboard/internal/observability/metrics"
	obstracing "github.com/smallbiznis/dashboard/internal/observability/tracing"
	"github.com/smallbiznis/dashboard/internal/overview"
	overviewdomain "github.com/smallbiznis/dashboard/internal/overview/domain"
	"github.com/smallbiznis/dashboard/internal/ratelimit"
	"github.com/smallbiznis/dashboard/internal/revenue"
	revenuedomain "github.com/smallbiznis/dashboard/internal/revenue/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	auth.Module,
	customer.Module,
	invoice.Module,
	revenue.Module,
	overview.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
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
	engine      *gin.Engine
	cfg         config.Config
	log         *zap.Logger
	authsvc     authdomain.Service
	sessions    *session.Manager
	invoiceSvc  invoicedomain.Service
	customerSvc customerdomain.Service
	revenueSvc  revenuedomain.Service
	overviewSvc overviewdomain.Service
	limiter     *ratelimit.LoginLimiter
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	Log         *zap.Logger
	Authsvc     authdomain.Service
	Sessions    *session.Manager
	InvoiceSvc  invoicedomain.Service
	CustomerSvc customerdomain.Service
	RevenueSvc  revenuedomain.Service
	OverviewSvc overviewdomain.Service
	Limiter     *ratelimit.LoginLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		log:         p.Log.Named("http.server"),
		authsvc:     p.Authsvc,
		sessions:    p.Sessions,
		invoiceSvc:  p.InvoiceSvc,
		customerSvc: p.CustomerSvc,
		revenueSvc:  p.RevenueSvc,
		overviewSvc: p.OverviewSvc,
		limiter:     p.Limiter,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/login", s.LoginRateLimit(), s.Login)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.AuthRequired(), SignalRecorder())

	// -------- Dashboard --------
	dashboard := api.Group("/dashboard")
	{
		dashboard.GET("/cards", s.GetCardTotals)
		dashboard.GET("/revenue", s.GetRevenue)
		dashboard.GET("/latest-invoices", s.GetLatestInvoices)
	}

	// -------- Invoices --------
	invoices := api.Group("/invoices")
	{
		invoices.GET("", s.ListInvoices)
		invoices.GET("/pages", s.GetInvoicePages)
		invoices.GET("/:id", s.GetInvoiceByID)
		invoices.POST("", s.CreateInvoice)
		invoices.PUT("/:id", s.UpdateInvoice)
		invoices.DELETE("/:id", s.DeleteInvoice)
	}

	// -------- Customers --------
	customers := api.Group("/customers")
	{
		customers.GET("", s.ListCustomers)
		customers.GET("/table", s.ListCustomersTable)
	}
}
