package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bevin/internal/cache"
	"bevin/internal/config"
	"bevin/internal/handler"
	"bevin/internal/logger"
	"bevin/internal/repository"
	"bevin/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	log.Info("bevin recommendation engine starting",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit),
	)

	gin.SetMode(cfg.Server.GinMode)

	// Recipe store
	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.Table,
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer repo.Close()

	probeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := repo.ProbeTable(probeCtx); err != nil {
		if cfg.Server.GinMode == gin.ReleaseMode {
			cancel()
			log.Fatal("recipe table probe failed", zap.Error(err))
		}
		log.Warn("recipe table probe failed (continuing in dev)", zap.Error(err))
	}
	cancel()
	log.Info("connected to PostgreSQL", zap.String("table", cfg.PostgreSQL.Table))

	// Text generation (optional; deterministic templates cover its absence)
	var generator service.TextGenerator
	if cfg.OpenAI.Enabled {
		generator = service.NewOpenAIClient(&cfg.OpenAI)
		log.Info("generation client initialized",
			zap.String("api_base", cfg.OpenAI.APIBase),
			zap.String("model", cfg.OpenAI.ChatModel),
		)
	} else {
		log.Warn("generation disabled, replies use deterministic templates")
	}

	// Reply cache (optional)
	var replies service.ReplyCache
	if cfg.Redis.Enabled {
		replyCache := cache.NewReplyCache(
			cfg.Redis.Addr,
			cfg.Redis.Password,
			cfg.Redis.DB,
			time.Duration(cfg.Redis.TTLSeconds)*time.Second,
			log,
		)
		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := replyCache.Ping(pingCtx); err != nil {
			log.Warn("reply cache unreachable, continuing without it", zap.Error(err))
		} else {
			replies = replyCache
			defer replyCache.Close()
			log.Info("reply cache enabled", zap.String("addr", cfg.Redis.Addr))
		}
		cancelPing()
	}

	// Services
	intentParser := service.NewIntentParser()
	retriever := service.NewRetriever(repo, log)
	composer := service.NewComposer(generator, cfg.Chat.PreviewCount, log)
	chatService := service.NewChatService(intentParser, retriever, composer, replies, cfg.Chat, log)

	chatHandler := handler.NewChatHandler(chatService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(handler.RequestID())
	router.Use(handler.RequestLogger(log))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.AllowedOrigins, ",")
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	router.Use(cors.New(corsConfig))

	// Non-POST on the chat endpoint must answer 405 with a JSON body.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(405, gin.H{"error": "method_not_allowed"})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "bevin-engine",
			"version": Version,
		})
	})

	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/chat", chatHandler.Chat)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", zap.String("addr", addr))

	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
}
