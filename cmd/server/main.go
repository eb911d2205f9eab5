package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"

	"github.com/youruser/decksim/internal/api"
	"github.com/youruser/decksim/internal/cards"
	"github.com/youruser/decksim/internal/config"
	"github.com/youruser/decksim/internal/session"
)

func main() {
	cfg := config.Load()

	// the catalog only adds artwork and names; the simulator runs without it
	catalog, err := cards.LoadCatalog(cfg.DataDir)
	if err != nil {
		color.Yellow("Warning: card catalog not loaded: %v", err)
	} else {
		color.Green("Loaded %d cards from %s", catalog.Len(), cfg.DataDir)
	}

	store := session.NewStore(cfg.MaxSessions)
	r := gin.Default()
	api.RegisterRoutes(r, api.NewHandlers(store, catalog))

	color.Cyan("starting server on http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
