package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrim-manager/internal/club"
	"github.com/mauv0809/scrim-manager/internal/config"
	"github.com/mauv0809/scrim-manager/internal/database"
	"github.com/mauv0809/scrim-manager/internal/discord"
	"github.com/mauv0809/scrim-manager/internal/export"
	server "github.com/mauv0809/scrim-manager/internal/http"
	"github.com/mauv0809/scrim-manager/internal/metrics"
	"github.com/mauv0809/scrim-manager/internal/notifier"
	discordnotifier "github.com/mauv0809/scrim-manager/internal/notifier/discord"
	"github.com/mauv0809/scrim-manager/internal/notifier/slack"
	"github.com/mauv0809/scrim-manager/internal/processor"
	"github.com/mauv0809/scrim-manager/internal/pubsub"
	"github.com/mauv0809/scrim-manager/internal/roster"
	"github.com/mauv0809/scrim-manager/internal/scrim"
	"github.com/mauv0809/scrim-manager/internal/session"
)

func openDatabase(cfg config.Config) (*sql.DB, func(), database.Dialect, error) {
	if cfg.Database.Driver == config.DriverPostgres {
		db, teardown, err := database.InitPostgres(cfg.Database.PostgresDSN)
		return db, teardown, database.Postgres, err
	}
	db, teardown, err := database.InitDB(cfg.Database.Name, cfg.Database.Turso.PrimaryURL, cfg.Database.Turso.AuthToken)
	return db, teardown, database.SQLite, err
}

func buildNotifier(cfg config.Config, m metrics.Metrics) notifier.Notifier {
	var multi notifier.Multi
	if cfg.SlackEnabled() {
		multi = append(multi, slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, m))
	}
	if cfg.DiscordAnnounceEnabled() {
		n, err := discordnotifier.NewNotifier(cfg.Discord.Token, cfg.Discord.AnnounceChannelID, m)
		if err != nil {
			log.Error("Discord announcements disabled", "error", err)
		} else {
			multi = append(multi, n)
		}
	}
	if len(multi) == 0 {
		log.Warn("No announcement channel configured")
	}
	return multi
}

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	db, dbTeardown, dialect, err := openDatabase(cfg)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds(), "driver", dialect)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	clubStore := club.New(db, dialect)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	notif := buildNotifier(cfg, metricsSvc)
	proc := processor.New(clubStore, notif, metricsSvc)

	var events pubsub.PubSubClient
	if cfg.ProjectID != "" {
		client, teardown, err := pubsub.New(cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
		defer teardown()
		events = client
	} else {
		log.Info("No GCP project configured, dispatching events in-process")
		events = pubsub.NewLocal(proc)
	}

	scrims := scrim.NewService(scrim.NewStore(db, dialect), events)
	discordClient := discord.NewClient(cfg.Discord.Token, cfg.Discord.GuildID, cfg.Discord.APIBase)
	rosterSvc := roster.NewService(discordClient, clubStore, events, cfg.Discord.GuildID, cfg.Roster.ExcludeName)
	sessions := session.NewStore(clubStore, scrims, cfg.SessionTTL)
	go sessions.Run(ctx, time.Minute)

	var sheets export.Publisher
	if cfg.SheetsEnabled() {
		p, err := export.NewSheetsPublisher(ctx, cfg.Google.CredentialsFile, cfg.Google.SpreadsheetID)
		if err != nil {
			log.Error("Google Sheets export disabled", "error", err)
		} else {
			sheets = p
		}
	}

	s := server.NewServer(server.Deps{
		DB:             db,
		Store:          clubStore,
		Scrims:         scrims,
		Roster:         rosterSvc,
		Sessions:       sessions,
		Notifier:       notif,
		Sheets:         sheets,
		Events:         proc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
	})

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)
		stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
