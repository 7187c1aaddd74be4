package main

import (
	"context"
	"fmt"
	"log/slog"
	"meetup-bot/contract"
	"meetup-bot/domain"
	"meetup-bot/infrastructure/discord"
	"meetup-bot/internal"
	"meetup-bot/repositories"
	"meetup-bot/runtime"
	"meetup-bot/runtime/workers"
	"meetup-bot/services"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/Netflix/go-env"
	"github.com/bwmarrin/discordgo"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const shutdownTimeout = 10 * time.Second

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Meetup bot terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and blocks until the process is asked to stop.
// Keeping it apart from main lets every defer run before the exit code is returned.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, err
	}
	zone, err := config.Location()
	if err != nil {
		return exitConfig, err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Store
	repository, closeStore, err := openStore(ctx, log, config)
	if err != nil {
		return exitRuntime, err
	}
	defer closeStore()
	repository.OnChange(func(id string) {
		log.Debug("Meetup record changed", "meetup_id", id)
	})

	// 4. Discord
	session, err := discordgo.New("Bot " + config.DiscordToken)
	if err != nil {
		return exitConfig, fmt.Errorf("discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentMessageContent
	platform := discord.NewPlatform(log, session, config.EventBuffer, config.EventSendTimeout)
	if err = platform.Identify(ctx); err != nil {
		return exitRuntime, err
	}

	// 5. Live registry & commands
	registry := runtime.NewRegistry(log, platform, repository, domain.NewRenderer(zone), runtime.Options{
		Debounce:        config.RenderDebounce,
		Concurrency:     config.RehydrateConcurrency,
		RestartInterval: config.RestartInterval,
	})
	service := services.NewMeetupService(log, registry, repository)
	router := discord.NewRouter(log, session, service, config.AdminChannelID, config.CommandTimeout, zone)
	session.AddHandler(router.OnMessageCreate)

	if err = session.Open(); err != nil {
		return exitRuntime, fmt.Errorf("discord gateway: %w", err)
	}
	defer func() {
		log.Info("Closing Discord session...")
		_ = session.Close()
	}()

	live, err := registry.Init(ctx)
	if err != nil {
		return exitRuntime, fmt.Errorf("registry failed to start: %w", err)
	}
	defer registry.Teardown()
	log.Info("Meetup bot started", "live", live, "store", config.StoreDriver, "zone", zone.String())

	// 6. Background workers
	sup := workers.NewSupervisor(log, config.RestartInterval).
		Add(workers.NewExpiryWorker(log, registry, config.ExpiryInterval, config.EndGrace))
	go sup.Run(ctx)
	defer sup.Stop()

	if config.DebugPort > 0 {
		server := internal.StartDebugServer(log, config.DebugPort, "/inspect", inspectRows(repository, zone), func() map[string]any {
			return map[string]any{"Live": registry.Count(), "Store": config.StoreDriver, "Time": time.Now().In(zone).Format(time.RFC822)}
		})
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()
		log.Info("Debug server started", "port", config.DebugPort)
	}

	// 7. Wait for Stop
	<-ctx.Done()
	log.Info("Shutting down gracefully...")
	return exitOK, nil
}

func openStore(ctx context.Context, log *slog.Logger, config internal.Config) (contract.IMeetupRepository, func(), error) {
	switch config.StoreDriver {
	case internal.StoreMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.MongoURI))
		if err != nil {
			return nil, nil, fmt.Errorf("mongo connect: %w", err)
		}
		closeStore := func() {
			log.Info("Closing MongoDB...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = client.Disconnect(shutdownCtx)
		}
		if err = client.Ping(ctx, nil); err != nil {
			closeStore()
			return nil, nil, fmt.Errorf("mongo ping: %w", err)
		}
		repository := repositories.NewMongoMeetupRepository(client.Database(config.MongoDatabase), log)
		if err = repository.EnsureIndexes(ctx); err != nil {
			closeStore()
			return nil, nil, fmt.Errorf("mongo indexes: %w", err)
		}
		return repository, closeStore, nil
	default:
		db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).WithLoggingLevel(badger.WARNING))
		if err != nil {
			return nil, nil, fmt.Errorf("database opening failed: %w", err)
		}
		closeStore := func() {
			log.Info("Closing BadgerDB...")
			_ = db.Close()
		}
		return repositories.NewBadgerMeetupRepository(db, log), closeStore, nil
	}
}

func inspectRows(repository contract.IMeetupRepository, zone *time.Location) internal.RowSource {
	return func(ctx context.Context) ([]internal.InspectRow, error) {
		meetups, err := repository.Find(ctx, domain.Filter{})
		if err != nil {
			return nil, err
		}
		return lo.Map(meetups, func(m domain.Meetup, _ int) internal.InspectRow {
			return internal.InspectRow{
				ID:           m.ID,
				Version:      m.SchemaVersion,
				State:        m.State.Name(),
				Announcement: m.Announcement.Name(),
				Title:        m.Title,
				Time:         m.Timestamp.In(zone).Format(time.RFC822),
			}
		}), nil
	}
}
