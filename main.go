package main

import (
	"context"
	"os"

	"github.com/clinidesk/clinidesk-BE/api"
	"github.com/clinidesk/clinidesk-BE/internal/db"
	"github.com/clinidesk/clinidesk-BE/internal/event"
	"github.com/clinidesk/clinidesk-BE/internal/mailer"
	"github.com/clinidesk/clinidesk-BE/internal/notification"
	"github.com/clinidesk/clinidesk-BE/internal/push"
	"github.com/clinidesk/clinidesk-BE/internal/util"
	"github.com/clinidesk/clinidesk-BE/internal/watcher"
	"github.com/clinidesk/clinidesk-BE/internal/worker"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configurations
	config, err := util.LoadConfig("./app.env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config file 😣")
	}

	log.Info().Msg("configurations loaded successfully ✅")

	// Create connection pool
	connPool, err := pgxpool.New(context.Background(), config.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to validate db connection string 😣")
	}

	pingErr := connPool.Ping(context.Background())
	if pingErr != nil {
		log.Fatal().Err(pingErr).Msg("failed to connect to db 😣")
	}
	log.Info().Msg("connected to db ✅")

	store := db.NewStore(connPool)

	redisDb := redis.NewClient(&redis.Options{
		Addr:     config.RedisServerAddress,
		Password: "", // no password set
		DB:       0,  // use default DB
	})

	redisOpt := asynq.RedisClientOpt{
		Addr: config.RedisServerAddress,
	}
	taskDistributor := worker.NewTaskDistributor(redisOpt)

	eventSender := event.NewSSEServer()
	go eventSender.Run()

	// The notification center owns the list; everything else holds a reference.
	center := notification.NewCenter(notification.CenterConfig{
		Snapshots:         notification.NewRedisSnapshotStore(redisDb, config.NotificationSnapshotKey),
		Distributor:       taskDistributor,
		Events:            eventSender,
		DedupResetOnClear: config.NotificationDedupResetOnClear,
	})
	if err = center.Load(context.Background()); err != nil {
		log.Warn().Err(err).Msg("failed to restore notification snapshot, starting empty")
	}

	go runTaskProcessor(config, redisOpt)

	w, err := watcher.NewWatcher(watcher.Config{
		Source:              store,
		Center:              center,
		EscalationThreshold: config.EscalationThreshold,
		EscalationInterval:  config.EscalationScanInterval,
		ReminderInterval:    config.ReminderScanInterval,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create watcher 😣")
	}

	if err = w.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start watcher 😣")
	}
	defer func() {
		if err := w.Stop(); err != nil {
			log.Error().Err(err).Msg("failed to stop watcher")
		}
	}()

	runHTTPServer(config, store, center, w, eventSender)
}

func runTaskProcessor(config util.Config, redisOpt asynq.RedisClientOpt) {
	pushSender := push.NewClient(config.WebPushEndpoint, config.WebPushServerKey)

	var escalationMailer worker.EscalationMailer = mailer.NoopSender{}
	if config.SMTPUsername != "" {
		gmailSender, err := mailer.NewGmailSender(config.SMTPUsername, config.SMTPPassword, config.EscalationMailbox)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create mailer service 😣")
		}
		escalationMailer = gmailSender
	}

	taskProcessor := worker.NewRedisTaskProcessor(redisOpt, pushSender, escalationMailer)

	log.Info().Msg("task processor started ✅")
	if err := taskProcessor.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start task processor 😣")
	}
}

func runHTTPServer(config util.Config, store db.Store, center *notification.Center, w *watcher.Watcher, eventSender event.EventSender) {
	server, err := api.NewServer(store, center, w, &config, eventSender)

	if err != nil {
		log.Fatal().Err(err).Msg("failed to create HTTP server 😣")
	}

	err = server.Start(config.HTTPServerAddress)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start HTTP server 😣")
	}
}
