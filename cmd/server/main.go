package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/youruser/moodboard/internal/api"
	"github.com/youruser/moodboard/internal/config"
	imagepkg "github.com/youruser/moodboard/internal/image"
	"github.com/youruser/moodboard/internal/layout"
	"github.com/youruser/moodboard/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	logger := cfg.Logger()
	slog.SetDefault(logger)
	imagepkg.SetLogger(logger)

	// Start from the preset when there is one (best-effort)
	settings, err := config.LoadPreset(cfg.PresetPath)
	if err != nil {
		slog.Warn("ignoring preset", "path", cfg.PresetPath, "err", err)
	}

	rnd := cfg.Rand()
	sess := session.New(settings, imagepkg.NewRenderer(rnd), rnd)
	sess.OnChange(func(lay *layout.Result) {
		if lay == nil {
			slog.Debug("board emptied")
			return
		}
		slog.Debug("layout recomputed", "mode", lay.Mode, "images", len(lay.Placements), "width", lay.Width, "height", lay.Height)
	})

	r := gin.Default()
	api.NewServer(sess, cfg.OutputDir).RegisterRoutes(r)

	slog.Info("starting server on http://localhost:" + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
