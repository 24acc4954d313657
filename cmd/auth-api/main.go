package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/varadpoddar/blog-services/internal/api"
	"github.com/varadpoddar/blog-services/internal/auth/controller"
	"github.com/varadpoddar/blog-services/internal/auth/password"
	"github.com/varadpoddar/blog-services/internal/auth/service"
	"github.com/varadpoddar/blog-services/internal/auth/token"
	"github.com/varadpoddar/blog-services/internal/config"
	"github.com/varadpoddar/blog-services/internal/database"
	"github.com/varadpoddar/blog-services/internal/logging"
)

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("Auth API stopped")
	}
}

func run() error {
	cfg, err := config.LoadAuth()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format, os.Stdout); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	jwt, err := token.NewJWT(cfg.JWT)
	if err != nil {
		return fmt.Errorf("configure tokens: %w", err)
	}

	ctx := context.Background()

	db, err := database.Open(ctx, cfg.Database())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(ctx, database.AuthSchema); err != nil {
		return err
	}

	authService, err := service.NewAuthService(db.DB, password.NewBcrypt(bcrypt.DefaultCost), jwt)
	if err != nil {
		return fmt.Errorf("create auth service: %w", err)
	}
	authController := controller.NewAuthController(authService)

	router := api.SetupAuthRoutes(authController, jwt)
	server := api.NewServer(":"+cfg.Port, router, cfg.HTTP)

	return server.StartWithGracefulShutdown()
}
