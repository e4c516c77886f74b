package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"

	"github.com/KirkDiggler/closest/internal/common/clock"
	"github.com/KirkDiggler/closest/internal/common/logging"
	"github.com/KirkDiggler/closest/internal/common/uuid"
	"github.com/KirkDiggler/closest/internal/config"
	"github.com/KirkDiggler/closest/internal/handlers/api"
	"github.com/KirkDiggler/closest/internal/handlers/discord"
	"github.com/KirkDiggler/closest/internal/metrics"
	answerRepo "github.com/KirkDiggler/closest/internal/repositories/answer"
	"github.com/KirkDiggler/closest/internal/repositories/postgres"
	roundRepo "github.com/KirkDiggler/closest/internal/repositories/round"
	answerService "github.com/KirkDiggler/closest/internal/services/answer"
	"github.com/KirkDiggler/closest/internal/services/messaging"
	roundService "github.com/KirkDiggler/closest/internal/services/round"
	statsService "github.com/KirkDiggler/closest/internal/services/stats"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Value:   "config.yaml",
		Usage:   "path to the configuration file",
		EnvVars: []string{"CLOSEST_CONFIG"},
	}

	app := &cli.App{
		Name:  "closest",
		Usage: "run closest guess rounds over HTTP and Discord",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "serve the JSON API and the Discord bot",
				Flags:  []cli.Flag{configFlag},
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "create the Postgres schema",
				Flags:  []cli.Flag{configFlag},
				Action: migrate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// stores holds the repositories for the configured backend
type stores struct {
	rounds  roundRepo.Repository
	answers answerRepo.Repository
	close   func()
}

func setup(c *cli.Context) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(os.Stderr, level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(logger)

	return cfg, logger, nil
}

func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*stores, error) {
	switch cfg.Store {
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, err
		}

		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}

		rounds, err := roundRepo.NewPostgres(&roundRepo.PostgresConfig{Pool: pool})
		if err != nil {
			pool.Close()
			return nil, err
		}

		answers, err := answerRepo.NewPostgres(&answerRepo.PostgresConfig{Pool: pool})
		if err != nil {
			pool.Close()
			return nil, err
		}

		logger.Info("using postgres store")
		return &stores{rounds: rounds, answers: answers, close: pool.Close}, nil

	default:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		rounds, err := roundRepo.NewRedis(&roundRepo.Config{RedisClient: client})
		if err != nil {
			_ = client.Close()
			return nil, err
		}

		answers, err := answerRepo.NewRedis(&answerRepo.Config{RedisClient: client})
		if err != nil {
			_ = client.Close()
			return nil, err
		}

		logger.Info("using redis store", "addr", cfg.Redis.Addr)
		return &stores{rounds: rounds, answers: answers, close: func() { _ = client.Close() }}, nil
	}
}

func serve(c *cli.Context) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	st, err := openStores(startCtx, cfg, logger)
	cancel()
	if err != nil {
		return err
	}
	defer st.close()

	recorder := metrics.NewPrometheus()
	clk := &clock.DefaultClock{}

	rounds, err := roundService.New(&roundService.Config{
		RoundRepo:  st.rounds,
		AnswerRepo: st.answers,
		Clock:      clk,
		Metrics:    recorder,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create round service: %w", err)
	}

	answers, err := answerService.New(&answerService.Config{
		AnswerRepo: st.answers,
		Clock:      clk,
		Metrics:    recorder,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create answer service: %w", err)
	}

	stats, err := statsService.New(&statsService.Config{
		RoundRepo:  st.rounds,
		AnswerRepo: st.answers,
		Metrics:    recorder,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create stats service: %w", err)
	}

	errCh := make(chan error, 1)

	var server *http.Server
	if cfg.HTTP.Addr != "" {
		handler, err := api.New(&api.Config{
			RoundService:  rounds,
			AnswerService: answers,
			StatsService:  stats,
			UUID:          uuid.New(),
			Metrics:       recorder,
			Gatherer:      recorder.Registry(),
			SubmitRate:    cfg.RateLimit.SubmitRate,
			SubmitBurst:   cfg.RateLimit.SubmitBurst,
			Logger:        logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create API handler: %w", err)
		}

		server = &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           handler.Routes(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			logger.Info("http server listening", "addr", cfg.HTTP.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("http server: %w", err)
			}
		}()
	}

	var bot *discord.Bot
	if cfg.Discord.Token != "" {
		msgs, err := messaging.NewService(&messaging.ServiceConfig{})
		if err != nil {
			return fmt.Errorf("failed to create messaging service: %w", err)
		}

		cmd, err := discord.NewClosestCommand(&discord.ClosestCommandConfig{
			RoundService:     rounds,
			AnswerService:    answers,
			StatsService:     stats,
			MessagingService: msgs,
			Logger:           logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create closest command: %w", err)
		}

		bot, err = discord.New(&discord.Config{
			Token:         cfg.Discord.Token,
			ApplicationID: cfg.Discord.ApplicationID,
			GuildID:       cfg.Discord.GuildID,
			Command:       cmd,
			Logger:        logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create Discord bot: %w", err)
		}

		if err := bot.Start(); err != nil {
			return fmt.Errorf("failed to start Discord bot: %w", err)
		}
	}

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err = <-errCh:
		logger.Error("server failed", "error", err)
	}

	if bot != nil {
		if stopErr := bot.Stop(); stopErr != nil {
			logger.Error("failed to stop Discord bot", "error", stopErr)
		}
	}

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.Error("failed to shut down http server", "error", shutdownErr)
		}
	}

	return err
}

func migrate(c *cli.Context) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}

	if cfg.Store != config.StorePostgres {
		return fmt.Errorf("migrate needs the postgres store, configured store is %q", cfg.Store)
	}

	pool, err := postgres.NewPool(c.Context, cfg.Postgres.DSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.Migrate(c.Context, pool); err != nil {
		return err
	}

	logger.Info("schema is up to date")
	return nil
}
