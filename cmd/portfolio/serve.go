package main

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/traysir/portfolio/internal/assets"
	"github.com/traysir/portfolio/internal/config"
	"github.com/traysir/portfolio/internal/content"
	"github.com/traysir/portfolio/internal/session"
	"github.com/traysir/portfolio/internal/store"
	"github.com/traysir/portfolio/internal/web"
)

func newServeCmd() *cobra.Command {
	var port, assetRoot, dbPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("assets") {
				cfg.AssetRoot = assetRoot
			}
			if cmd.Flags().Changed("db") {
				cfg.DBPath = dbPath
			}
			if path, _ := cmd.Flags().GetString("content"); path != "" {
				cfg.ContentPath = path
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (default 8080, or PORT)")
	cmd.Flags().StringVar(&assetRoot, "assets", "", "Asset directory holding logos/ (or PORTFOLIO_ASSETS)")
	cmd.Flags().StringVar(&dbPath, "db", "", "Visitor log database, empty disables tracking (or PORTFOLIO_DB)")

	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	c, err := content.Load(cfg.ContentPath)
	if err != nil {
		return err
	}

	idx, err := assets.NewIndex(cfg.AssetRoot)
	if err != nil {
		return err
	}
	log.Printf("Assets: %d files under %s", idx.Len(), cfg.AssetRoot)
	go func() {
		if err := idx.Watch(ctx); err != nil {
			log.Printf("Asset watcher stopped: %v", err)
		}
	}()

	var visits *store.Store
	if cfg.DBPath != "" {
		salt := cfg.HashSalt
		if salt == "" {
			salt = uuid.NewString()
			log.Println("WARNING: PORTFOLIO_HASH_SALT not set, visitor hashes will change on restart")
		}
		visits, err = store.Open(cfg.DBPath, salt)
		if err != nil {
			return err
		}
		defer visits.Close()
		log.Printf("Visitor log: %s", cfg.DBPath)
	}

	sessions := session.NewRegistry(c, session.Config{
		TTL:         cfg.SessionTTL,
		MaxSessions: cfg.MaxSessions,
	})
	defer sessions.Close()
	go sessions.Run(ctx, cfg.SweepInterval)

	srv, err := web.New(cfg, web.Deps{
		Content:  c,
		Sessions: sessions,
		Assets:   idx,
		Visits:   visits,
	})
	if err != nil {
		return err
	}
	return srv.Run(ctx, cfg.Addr())
}
