// Package app is the composition root: it loads configuration and the
// persisted column preference, builds the API client and the table engine,
// and hands everything to the UI.
package app

import (
	"context"
	"fmt"

	"github.com/haukew/kartei/internal/api"
	"github.com/haukew/kartei/internal/config"
	"github.com/haukew/kartei/internal/handoff"
	"github.com/haukew/kartei/internal/prefs"
	"github.com/haukew/kartei/internal/table"
	"github.com/haukew/kartei/internal/ui"
)

// Options configure the kartei application.
type Options struct {
	ConfigPath  string // empty uses ~/.config/kartei/config.toml
	ColumnsPath string // empty uses ~/.config/kartei/columns_v1.json
}

// Run boots the kartei TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	columnsPath := opts.ColumnsPath
	if columnsPath == "" {
		columnsPath = cfg.ColumnsPath
	}

	client, err := api.NewClient(cfg.APIBaseURL, cfg.Token)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	engine := table.New()
	engine.InstallColumns(columnMapping(prefs.LoadColumns(columnsPath)))

	uiOpts := ui.Options{
		Store:       client,
		Engine:      engine,
		Handoff:     handoff.NewChannel(),
		ColumnsPath: columnsPath,
	}
	return ui.Run(ctx, uiOpts)
}

func columnMapping(saved map[string]bool) map[table.Column]bool {
	out := make(map[table.Column]bool, len(saved))
	for k, v := range saved {
		out[table.Column(k)] = v
	}
	return out
}
