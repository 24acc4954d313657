package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/varadpoddar/blog-services/internal/api"
	"github.com/varadpoddar/blog-services/internal/config"
	"github.com/varadpoddar/blog-services/internal/database"
	"github.com/varadpoddar/blog-services/internal/logging"
	"github.com/varadpoddar/blog-services/internal/posts/controller"
	"github.com/varadpoddar/blog-services/internal/posts/service"
)

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("Blog API stopped")
	}
}

func run() error {
	cfg, err := config.LoadBlog()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format, os.Stdout); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	db, err := database.Open(context.Background(), cfg.Database())
	if err != nil {
		return err
	}
	defer db.Close()

	// /posts requests create the posts table, or recreate it if dropped.
	schema := db.LazyTable(database.BlogSchema, "posts")

	postController := controller.NewPostController(service.NewPostService(db.DB))

	router := api.SetupBlogRoutes(postController, schema)
	server := api.NewServer(":"+cfg.Port, router, cfg.HTTP)

	return server.StartWithGracefulShutdown()
}
