package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hollowgames/whisper-room/backend/internal/config"
	"github.com/hollowgames/whisper-room/backend/internal/handler"
	"github.com/hollowgames/whisper-room/backend/internal/model/script"
	"github.com/hollowgames/whisper-room/backend/internal/service/game"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	scripts, err := loadScripts(cfg.Game.ScriptPath)
	if err != nil {
		log.Fatalf("failed to load stage script: %v", err)
	}
	log.Printf("stage script loaded: %d stages", scripts.Count())

	gameService := game.NewService(scripts, cfg.Game)
	defer gameService.Shutdown()

	router := handler.NewRouter(gameService)
	startServer(ctx, cfg.Server, router)
}

func loadScripts(path string) (script.Store, error) {
	if path == "" {
		return script.NewMemoryStore(script.Seed()), nil
	}
	log.Printf("loading stage script override from %s", path)
	return script.Load(path)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Whisper Room backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
