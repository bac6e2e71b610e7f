package cli

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"training-hub-service/internal/app"
	"training-hub-service/internal/config"
	"training-hub-service/internal/infra/gemini"
	"training-hub-service/internal/infra/memory"
	redisgen "training-hub-service/internal/infra/redis"
	transport "training-hub-service/internal/transport/http"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewServeCmd builds the CLI subcommand to start the server.
func NewServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the training hub server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	store := memory.NewStore()
	store.Load(demoSnapshot())

	if cfg.Gemini.APIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, assessment generation will fail")
	}
	clientCfg := gemini.DefaultClientConfig(cfg.Gemini.APIKey)
	if cfg.Gemini.BaseURL != "" {
		clientCfg.BaseURL = cfg.Gemini.BaseURL
	}
	if cfg.Gemini.Model != "" {
		clientCfg.Model = cfg.Gemini.Model
	}
	clientCfg.Timeout = config.TTLDuration(cfg.Gemini.Timeout, clientCfg.Timeout)
	clientCfg.Logger = logger
	client := gemini.NewClient(clientCfg)

	genTTL := config.TTLDuration(cfg.Generation.TTL, 10*time.Minute)
	var generator app.Generator
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		generator = redisgen.NewGenerationCache(redisClient, client, genTTL)
	} else {
		generator = memory.NewGenerationCache(client, genTTL)
	}

	service := app.NewTrainingService(store, generator)
	handler := transport.NewHandler(store, service, logger)
	wsHandler := transport.NewWSHandler(store, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	handler.Register(mux)
	mux.HandleFunc("/ws/leaderboard", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting training hub on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
