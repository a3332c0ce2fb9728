package main

import (
	"net/http"
	"os"

	"github.com/seifshamyy/aqar-scraper/api"
	"github.com/seifshamyy/aqar-scraper/config"
	"github.com/seifshamyy/aqar-scraper/jobs"
	"github.com/seifshamyy/aqar-scraper/scraper"
	"github.com/seifshamyy/aqar-scraper/storage"
	"github.com/seifshamyy/aqar-scraper/utils"
)

func main() {
	cfg := config.FromEnv()
	utils.Info("Scrape service starting | port=%s headless=%v default_pages=%d",
		cfg.Port, cfg.Headless, cfg.DefaultMaxPages)

	driver := scraper.NewChromeDriver(cfg)
	defer driver.Close()

	store := jobs.NewStore()

	runner := &jobs.Runner{
		Store:  store,
		Driver: driver,
		Pager: scraper.Options{
			ProbeSelector: cfg.ProbeSelector,
			ProbeTimeout:  cfg.ProbeTimeout,
			SettleDelay:   cfg.SettleDelay,
			PageDelayMin:  cfg.PageDelayMin,
			PageDelayMax:  cfg.PageDelayMax,
		},
	}

	if cfg.DatabaseURL != "" {
		var writer *storage.PostgresWriter
		err := utils.Retry(3, func() error {
			var err error
			writer, err = storage.NewPostgresWriter(cfg.DatabaseURL)
			return err
		})
		if err != nil {
			utils.Error("Failed to connect PostgreSQL: %v", err)
			os.Exit(1)
		}
		defer writer.Close()

		if err := writer.EnsureSchema(); err != nil {
			utils.Error("Failed to ensure PostgreSQL schema: %v", err)
			os.Exit(1)
		}

		runner.Snapshots = writer
		utils.Success("Result snapshots enabled")
	}

	handler := api.NewHandler(store, runner, cfg.DefaultMaxPages)
	router := api.NewRouter(handler)

	utils.Success("Listening on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		utils.Error("Server stopped: %v", err)
		os.Exit(1)
	}
}
