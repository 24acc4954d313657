package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/varadpoddar/blog-services/internal/api"
	"github.com/varadpoddar/blog-services/internal/config"
	"github.com/varadpoddar/blog-services/internal/frontend"
	"github.com/varadpoddar/blog-services/internal/logging"
)

func main() {
	cfg, err := config.LoadFrontend()
	if err != nil {
		logrus.WithError(err).Fatal("Could not load config")
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format, os.Stdout); err != nil {
		logrus.WithError(err).Fatal("Could not configure logging")
	}

	// The auth API is configured for a future login UI but never called.
	logrus.WithFields(logrus.Fields{
		"blog_api": cfg.BlogAPIBase,
		"auth_api": cfg.AuthAPIBase,
		"timeout":  cfg.APITimeout.String(),
	}).Info("Frontend upstreams")

	client, err := frontend.NewClient(cfg.BlogAPIBase, cfg.APITimeout)
	if err != nil {
		logrus.WithError(err).Fatal("Could not create posts API client")
	}

	handler, err := frontend.NewHandler(client, cfg.SecretKey)
	if err != nil {
		logrus.WithError(err).Fatal("Could not create frontend")
	}

	server := api.NewServer(":"+cfg.Port, handler.Router(), cfg.HTTP)

	if err := server.StartWithGracefulShutdown(); err != nil {
		logrus.WithError(err).Error("Server stopped with error")
	}
}
