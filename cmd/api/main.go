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

	"github.com/cloudwego/eino/components/model"
	"github.com/joho/godotenv"

	"github.com/mhollis/solace/backend/internal/config"
	"github.com/mhollis/solace/backend/internal/handler"
	"github.com/mhollis/solace/backend/internal/service/classifier"
	"github.com/mhollis/solace/backend/internal/service/response"
	"github.com/mhollis/solace/backend/internal/service/session"
	"github.com/mhollis/solace/backend/internal/service/therapy"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// The external classifier is selected once at startup: if credentials are
	// missing or the model cannot be built, every request takes the lexical
	// path instead of probing the model per call.
	var chatModel model.ChatModel
	if cfg.AI.Enabled() {
		chatModel, err = cfg.AI.NewChatModel(ctx)
		if err != nil {
			log.Printf("warning: failed to initialize chat model: %v", err)
			log.Println("continuing with lexical sentiment classification only")
			chatModel = nil
		} else {
			log.Println("external sentiment model initialized successfully")
		}
	} else {
		log.Println("model credentials not configured, using lexical sentiment classification")
	}

	classifierSvc, err := classifier.NewService(ctx, chatModel, cfg.Sentiment)
	if err != nil {
		log.Printf("warning: failed to initialize model classifier: %v", err)
		classifierSvc, _ = classifier.NewService(ctx, nil, cfg.Sentiment)
	}

	seed := time.Now().UnixNano()
	if cfg.Sentiment.ResponseSeed != nil {
		seed = *cfg.Sentiment.ResponseSeed
		log.Printf("response template selection seeded with %d", seed)
	}

	store := response.NewStore(response.Seed())
	composer := response.NewComposer(store, seed)
	ledger := session.NewService()
	therapySvc := therapy.NewService(classifierSvc, composer, ledger)

	router := handler.NewRouter(therapySvc)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Solace backend listening on %s", addr)
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
