package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"jishodash/lib/configutil"
	configsqlite "jishodash/lib/configutil/sqlite"
	"jishodash/lib/serviceutil"
	"jishodash/lib/telemetry"
	"jishodash/lib/timezone"
	"jishodash/services/words"
	"jishodash/services/words/db"
)

type TrmnlConfig struct {
	ApiKey      string `json:"api_key"`
	HistoryFile string `json:"history_file"`
}

type Config struct {
	Port     int                 `json:"port"`
	Www      string              `json:"www"`
	Database configsqlite.Struct `json:"database"`
	Trmnl    TrmnlConfig         `json:"trmnl"`
	Verbose  bool                `json:"verbose"`
}

func main() {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("read config", err)
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.Trmnl.HistoryFile == "" {
		cfg.Trmnl.HistoryFile = "data/trmnl.json"
	}

	telemetry.SetupSlog(cfg.Verbose)

	ctx := serviceutil.SignalContext()
	t, err := telemetry.SetupFromEnv(ctx, "server")
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	defer t.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx)

	database, err := cfg.Database.OpenDB(db.Schema)
	if err != nil {
		serviceutil.Fatal("open database", err)
	}

	service := words.NewService(database, cfg.Www)

	apiKey := cfg.Trmnl.ApiKey
	if apiKey == "" {
		apiKey = os.Getenv("TRMNL_PLUGIN_API_KEY")
	}
	publisher := words.NewPublisher(service.Store(), apiKey, cfg.Trmnl.HistoryFile)
	go publishWorker(ctx, publisher)

	mux := http.NewServeMux()
	service.Register(mux)
	serviceutil.StartHttpServer(cfg.Port, mux)
}

// pushes once per hour; the publisher itself makes repeat pushes for the
// same date a no-op
func publishWorker(ctx context.Context, publisher *words.Publisher) {
	publishOnce(ctx, publisher)

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			publishOnce(ctx, publisher)
		}
	}
}

func publishOnce(ctx context.Context, publisher *words.Publisher) {
	err := publisher.PublishDaily(ctx, timezone.Today())
	if err != nil {
		slog.ErrorContext(ctx, "trmnl publish", "err", err)
	}
}
