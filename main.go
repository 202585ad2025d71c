package main

import (
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"handymanquotes/collections"
	"handymanquotes/config"
	"handymanquotes/handlers"
	"handymanquotes/logger"
	"handymanquotes/services"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.IsDevelopment())

	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: cfg.DataDir,
	})

	catalog := services.DefaultCatalog()
	store := services.NewQuoteStore(app)

	// Create the quote collections on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		if err := collections.Setup(app); err != nil {
			logger.Log.WithError(err).Error("collections setup failed; quote history will be unavailable")
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Pricing ──────────────────────────────────────────────
		se.Router.GET("/catalog", handlers.HandleCatalog(catalog))
		se.Router.POST("/estimate", handlers.HandleEstimate(catalog))

		// ── Quotes (specific /quotes/* routes before {id}) ───────
		se.Router.GET("/quotes/export", handlers.HandleQuotesExportExcel(store))
		se.Router.GET("/quotes", handlers.HandleQuoteList(store))
		se.Router.POST("/quotes", handlers.HandleQuoteSave(store))
		se.Router.POST("/quotes/{id}/status", handlers.HandleQuoteStatus(store))
		se.Router.GET("/quotes/{id}/pdf", handlers.HandleQuotePDF(store))
		se.Router.DELETE("/quotes/{id}", handlers.HandleQuoteDelete(store))

		// Redirect home to the quote history
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/quotes")
		})

		logger.Log.WithField("data_dir", cfg.DataDir).Info("quote routes registered")
		return se.Next()
	})

	// Without arguments, serve on the configured address.
	if len(os.Args) == 1 {
		app.RootCmd.SetArgs([]string{"serve", "--http", cfg.HTTPAddr})
	}

	if err := app.Start(); err != nil {
		logger.Log.WithError(err).Fatal("server stopped")
	}
}
