// Package bootstrap prepares a service database outside of the running
// services: it applies a schema and can seed demo content.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/varadpoddar/blog-services/internal/config"
	"github.com/varadpoddar/blog-services/internal/database"
	"github.com/varadpoddar/blog-services/internal/dbx"
	"github.com/varadpoddar/blog-services/internal/posts/repository"
)

type Options struct {
	Schema   database.Schema
	Database config.DatabaseConfig
	Seed     bool
}

var seedPosts = []struct{ title, content string }{
	{"First Post", "Content for the first post"},
	{"Second Post", "Content for the second post"},
}

// InitDB migrates the selected schema and, for the blog schema, optionally
// inserts the demo posts. Seeding is not idempotent.
func InitDB(ctx context.Context, opts Options) error {
	if opts.Schema != database.AuthSchema && opts.Schema != database.BlogSchema {
		return fmt.Errorf("unknown schema %q", opts.Schema)
	}
	if opts.Seed && opts.Schema != database.BlogSchema {
		return fmt.Errorf("only the %s schema can be seeded", database.BlogSchema)
	}

	log := logrus.WithFields(logrus.Fields{
		"schema": opts.Schema,
		"driver": opts.Database.Driver,
		"path":   opts.Database.Path,
	})
	log.Info("Initializing database")

	db, err := database.Open(ctx, opts.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(ctx, opts.Schema); err != nil {
		return err
	}

	if opts.Seed {
		err := dbx.WithTx(ctx, db.DB, func(ctx context.Context, tx dbx.DBTX) error {
			repo := repository.NewPostRepository(tx)
			for _, p := range seedPosts {
				if _, err := repo.Create(ctx, p.title, p.content); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("seed posts: %w", err)
		}
		log.WithField("posts", len(seedPosts)).Info("Seeded demo posts")
	}

	log.Info("Database initialized successfully")
	return nil
}
