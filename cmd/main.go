package main

import (
	"os"

	"github.com/felipe-souza17/stock-front/config"
	"github.com/felipe-souza17/stock-front/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig(logger)
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	gin.SetMode(cfg.GinMode)

	logger.Info("Starting stock front end...")
	logger.Infof("Remote API: %s", cfg.APIBaseURL)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router, err := server.New(cfg, logger, reg)
	if err != nil {
		logger.Fatalf("Failed to build router: %v", err)
	}

	logger.Infof("Listening on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		logger.Errorf("Server stopped: %v", err)
		os.Exit(1)
	}
}
