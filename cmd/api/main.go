package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/blogifyhq/blogify/internal/config"
	"github.com/blogifyhq/blogify/internal/handler"
	chatHandler "github.com/blogifyhq/blogify/internal/handler/chat"
	"github.com/blogifyhq/blogify/internal/service/ai"
	blogservice "github.com/blogifyhq/blogify/internal/service/blog"
	chatservice "github.com/blogifyhq/blogify/internal/service/chat"
	"github.com/blogifyhq/blogify/internal/service/retrieval"
	"github.com/blogifyhq/blogify/internal/service/storage"
	userservice "github.com/blogifyhq/blogify/internal/service/user"
	"github.com/blogifyhq/blogify/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file, using system environment only")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	client, err := store.Connect(connectCtx, cfg.Mongo)
	cancel()
	if err != nil {
		logger.Fatal("mongodb connection failed", zap.Error(err))
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Warn("mongodb disconnect failed", zap.Error(err))
		}
	}()
	logger.Info("mongodb connected", zap.String("database", cfg.Mongo.Database))

	db := client.Database(cfg.Mongo.Database)
	if err := store.EnsureIndexes(ctx, db); err != nil {
		logger.Fatal("index creation failed", zap.Error(err))
	}

	objectStore, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("storage init failed", zap.Error(err))
	}

	sessions := store.NewSessionStore(db)
	blogs := store.NewBlogStore(db)
	comments := store.NewCommentStore(db)
	users := store.NewUserStore(db)

	tokens := userservice.NewTokenIssuer(cfg.Auth.JWTSecret)
	userSvc := userservice.NewService(users, objectStore, tokens, logger)
	blogSvc := blogservice.NewService(blogs, comments, objectStore, logger)

	var orchestrator chatHandler.Orchestrator
	if cfg.AI.Enabled() {
		gateway, err := ai.NewGateway(ctx, cfg.AI, logger)
		if err != nil {
			logger.Warn("ai gateway init failed, chat disabled", zap.Error(err))
		} else {
			retriever := retrieval.New(blogs, logger)
			orchestrator = chatservice.NewService(sessions, retriever, gateway, logger)
			logger.Info("ai chat enabled", zap.String("model", cfg.AI.Model))
		}
	} else {
		logger.Warn("GEMINI_API_KEY not set, chat disabled")
	}

	var uploadsDir string
	if local, ok := objectStore.(*storage.LocalStorage); ok {
		uploadsDir = local.Dir()
	}

	router := handler.NewRouter(handler.Deps{
		Users:        userSvc,
		Blogs:        blogSvc,
		Orchestrator: orchestrator,
		Verifier:     tokens,
		UploadsDir:   uploadsDir,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("blogify backend listening", zap.String("addr", cfg.Server.Addr))
	if err := runServer(ctx, srv); err != nil {
		logger.Fatal("server error", zap.Error(err))
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
