package main

import (
	"log"

	"github.com/ohmnow/content-gen/internal/config"
	"github.com/ohmnow/content-gen/internal/server"
	"github.com/ohmnow/content-gen/pkg/db/redis"
	"github.com/ohmnow/content-gen/pkg/logger"
)

func main() {
	log.Println("Starting server")
	configFile := "config.yml"
	cfgFile, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("loadConfig: %v", err)
	}
	cfg, err := config.ParseConfig(cfgFile)
	if err != nil {
		log.Fatalf("parseConfig: %v", err)
	}

	appLogger := logger.NewApiLogger(cfg)
	appLogger.InitLogger()
	appLogger.Infof("AppVersion: %s, LogLevel: %s, Mode: %s", cfg.Server.AppVersion, cfg.Logger.Level, cfg.Server.Mode)

	if cfg.Sora.APIKey == "" {
		appLogger.Fatal("SORA_API_KEY is not set")
	}

	redisClient, err := redis.NewRedisClient(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to redis: %s", err)
	}
	defer redisClient.Close()
	appLogger.Infof("redis connected")

	s := server.NewServer(cfg, redisClient, appLogger)
	if err = s.Run(); err != nil {
		appLogger.Fatalf("could not start server: %s", err)
	}
}
