package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/broadcast"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/config"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/service"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-rooms/transport/rest"
	"github.com/rocketscienceinc/tictactoe-rooms/transport/websocket"
)

const (
	shutdownTimeout  = 10 * time.Second
	historyQueueSize = 64
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	resultRepo, closeStorage, err := initResultRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeStorage()

	history := service.NewHistoryService(logger, resultRepo, historyQueueSize)
	historyDone := make(chan struct{})
	go func() {
		history.Run(ctx)
		close(historyDone)
	}()

	hub := websocket.NewHub(logger)
	coordinator := usecase.NewCoordinator(logger, repository.NewRoomRepository(), broadcast.NewGroups(), hub, history)

	wsServer := websocket.New(logger, hub, coordinator, websocket.Options{
		PingPeriod: conf.WebSocket.PingPeriod,
		PongWait:   conf.WebSocket.PongWait,
		WriteWait:  conf.WebSocket.WriteWait,
		SendBuffer: conf.WebSocket.SendBuffer,
	})

	router := rest.NewRouter(logger, rest.NewHandlers(logger, coordinator, history), wsServer.HandleWS)

	srv := &http.Server{
		Addr:              ":" + conf.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	// run HTTP and WebSocket server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.Port)
		if httpErr := srv.ListenAndServe(); httpErr != nil && !errors.Is(httpErr, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		cancel()
		<-historyDone
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("could not shut down HTTP server", "error", err)
	}

	// hijacked websocket connections are not closed by Shutdown
	hub.CloseAll()
	<-historyDone

	return nil
}

// initResultRepository connects to Redis when match history is enabled. The returned close
// function is always safe to call.
func initResultRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.ResultRepository, func(), error) {
	if !conf.Redis.Enabled {
		log.Info("match history is disabled")
		return nil, func() {}, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == ":" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeStorage := func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewResultRepository(redisStorage, conf.Redis.HistorySize), closeStorage, nil
}
