// Package server assembles the Gin engine: middleware, screens and the API
// passthrough.
package server

import (
	"fmt"
	"net/http"

	"github.com/felipe-souza17/stock-front/config"
	"github.com/felipe-souza17/stock-front/internal/auth"
	"github.com/felipe-souza17/stock-front/internal/clients"
	"github.com/felipe-souza17/stock-front/internal/flash"
	"github.com/felipe-souza17/stock-front/internal/handlers"
	"github.com/felipe-souza17/stock-front/internal/middleware"
	"github.com/felipe-souza17/stock-front/internal/proxy"
	"github.com/felipe-souza17/stock-front/internal/session"
	"github.com/felipe-souza17/stock-front/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// New builds the router. reg receives the HTTP metrics and is served on
// /metrics.
func New(cfg *config.Config, logger *logrus.Logger, reg *prometheus.Registry) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}

	api := clients.NewAPI(cfg.APIBaseURL, cfg.APITimeout, logger)
	store := session.NewStore(cfg.CookieSecure, logger)
	authLog := logger.WithField("component", "auth")
	provider := auth.NewProvider(clients.NewAuthClient(api), store, logger).
		WithObserver(func(s auth.State) {
			if s.User != nil {
				authLog.Debugf("Auth state: %s (%s)", s.Kind, s.User.Username)
				return
			}
			authLog.Debugf("Auth state: %s", s.Kind)
		})
	view := handlers.NewRenderer(provider, cfg.APITimeout)

	products, err := handlers.NewProductHandler(api, cfg.PageSize, view, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to configure product screens: %w", err)
	}
	categories, err := handlers.NewCategoryHandler(api, view, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to configure category screens: %w", err)
	}
	suppliers, err := handlers.NewSupplierHandler(api, view, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to configure supplier screens: %w", err)
	}

	apiProxy, err := proxy.NewReverseProxy(cfg.APIBaseURL, proxy.Prefix, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create API proxy: %w", err)
	}

	router := gin.New()
	router.RedirectTrailingSlash = false
	router.SetHTMLTemplate(tmpl)
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.NewMetrics(reg).Middleware(),
		flash.Secure(cfg.CookieSecure),
		middleware.AuthGate(logger),
	)

	router.StaticFS("/static", web.Static())
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	authHandler := handlers.NewAuthHandler(provider, view, logger)
	router.GET("/login", authHandler.ShowLogin)
	router.POST("/login", authHandler.Login)
	router.POST("/logout", authHandler.Logout)

	router.GET("/", handlers.NewHomeHandler(view).Show)
	products.Register(router)
	categories.Register(router)
	suppliers.Register(router)

	router.Any(proxy.Prefix+"/*path", proxy.ProxyHandler(apiProxy, logger))
	router.NoRoute(view.NotFound)

	return router, nil
}
