package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sociallyapp/socially-be/cache"
	"github.com/sociallyapp/socially-be/config"
	"github.com/sociallyapp/socially-be/db/mysql"
	"github.com/sociallyapp/socially-be/routes"
	"github.com/sociallyapp/socially-be/services"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	database, err := mysql.Connect(&mysql.Config{
		User:         cfg.DBUser,
		Password:     cfg.DBPassword,
		Host:         cfg.DBHost,
		Name:         cfg.DBName,
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
	})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := configureFirebaseCredentials(logger); err != nil {
		logger.Fatal("failed to configure firebase credentials", zap.Error(err))
	}
	firebaseApp, err := firebase.NewApp(context.Background(), nil)
	if err != nil {
		logger.Fatal("failed to initialize firebase", zap.Error(err))
	}
	authClient, err := firebaseApp.Auth(context.Background())
	if err != nil {
		logger.Fatal("failed to initialize auth client", zap.Error(err))
	}

	var bucket *services.StorageBucket
	if cfg.StorageBucket != "" {
		bucket, err = services.NewStorageBucket(context.Background(), firebaseApp, cfg.StorageBucket)
		if err != nil {
			logger.Fatal("failed to connect to the uploads bucket", zap.Error(err))
		}
	} else {
		logger.Warn("no storage bucket configured; avatar uploads disabled")
	}

	cacheStore := cache.New(context.Background(), cfg.RedisAddr)
	if cacheStore == nil && cfg.RedisAddr != "" {
		logger.Warn("redis unreachable; continuing without cache",
			zap.String("addr", cfg.RedisAddr))
	}
	defer cacheStore.Close()

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  strings.Split(cfg.FrontendOrigin, ";"),
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	routes.AddHealthCheckRoutes(&r.RouterGroup)
	routes.AddUserRoutes(&r.RouterGroup, database, authClient, bucket, logger)
	routes.AddThreadRoutes(&r.RouterGroup, database, authClient, logger)
	routes.AddCommunityRoutes(&r.RouterGroup, database, authClient, logger)
	routes.AddActivityRoutes(&r.RouterGroup, database, authClient, logger)
	routes.AddAPIRoutes(&r.RouterGroup, database, authClient, cacheStore, logger)

	logger.Info("starting server", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func initLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	return zapCfg.Build()
}

const (
	CredentialsPathEnvVar = "GOOGLE_APPLICATION_CREDENTIALS"
	CredentialsJsonEnvVar = "GOOGLE_APPLICATION_CREDENTIALS_JSON"
	TargetCredentialsFile = "./google-application-credentials.json"
)

// configureFirebaseCredentials supports platforms that can only inject the
// service account as an env string by spilling it to a file the SDK can read.
func configureFirebaseCredentials(logger *zap.Logger) error {
	credentialsPath, hasCredentialsPath := os.LookupEnv(CredentialsPathEnvVar)
	if hasCredentialsPath {
		logger.Info("credentials path detected in env",
			zap.String("path", credentialsPath))
		return nil
	}
	credentialsJson, hasCredentialsJson := os.LookupEnv(CredentialsJsonEnvVar)
	if hasCredentialsJson {
		if err := os.WriteFile(TargetCredentialsFile, []byte(credentialsJson), 0400); err != nil {
			return fmt.Errorf("error writing credentials to temp file: %w", err)
		}
		if err := os.Setenv(CredentialsPathEnvVar, TargetCredentialsFile); err != nil {
			return fmt.Errorf("error setting %v env var: %w", CredentialsPathEnvVar, err)
		}
		return nil
	}
	return fmt.Errorf("must specify either %v (a path)"+
		" or %v (credentials as JSON string)", CredentialsPathEnvVar, CredentialsJsonEnvVar)
}
