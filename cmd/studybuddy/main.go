package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/studybuddy/backend/internal/ai"
	"github.com/studybuddy/backend/internal/config"
	"github.com/studybuddy/backend/internal/db"
	"github.com/studybuddy/backend/internal/extract"
	"github.com/studybuddy/backend/internal/filestore"
	"github.com/studybuddy/backend/internal/handler"
	"github.com/studybuddy/backend/internal/job"
	"github.com/studybuddy/backend/internal/middleware"
	"github.com/studybuddy/backend/internal/repo"
	"github.com/studybuddy/backend/internal/schedule"
	"github.com/studybuddy/backend/internal/service"
	"github.com/studybuddy/backend/internal/session"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "studybuddy",
		Short: "study assistant backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run studybuddy server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			database, err := db.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := db.ApplyMigrations(database); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, database)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, database *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("ai_provider", cfg.AI.Provider),
		zap.String("file_store", cfg.FileStore.Type),
	)

	docRepo := repo.NewDocumentRepo(database)
	attemptRepo := repo.NewQuizAttemptRepo(database)

	store, err := filestore.New(cfg.FileStore)
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}

	provider, err := ai.NewProvider(cfg.AI.Provider, cfg.AI.Data)
	if err != nil {
		return fmt.Errorf("init ai provider: %w", err)
	}
	gateway := ai.NewGateway(ai.NewGenerator(provider, cfg.AI.Model), ai.GatewayConfig{
		Timeout:       cfg.AI.TimeoutSeconds,
		MaxInputChars: cfg.AI.MaxInputChars,
	})

	sessions := session.NewStore(time.Duration(cfg.Session.TTLMinutes) * time.Minute)
	documentService := service.NewDocumentService(extract.NewExtractor(), store, docRepo)
	chatService := service.NewChatService(gateway, cfg.AI.KeyPointCacheCap,
		time.Duration(cfg.AI.KeyPointCacheTTL)*time.Minute)
	quizService := service.NewQuizService(gateway)

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewSessionCleanupJob(sessions), cfg.Session.CleanupCron); err != nil {
		return fmt.Errorf("schedule session cleanup: %w", err)
	}

	deps := handler.RouterDeps{
		Sessions:     handler.NewSessionHandler(sessions),
		Documents:    handler.NewDocumentHandler(documentService, sessions),
		Chat:         handler.NewChatHandler(chatService, sessions),
		Quiz:         handler.NewQuizHandler(quizService, attemptRepo, sessions),
		AIRateWindow: time.Duration(cfg.Session.RateLimitSec) * time.Second,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.CORS(cfg.CORSOrigins),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler.Start(ctx)
	defer scheduler.Stop()

	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
