package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/presenca-app/presenca/internal/attendance"
	"github.com/presenca-app/presenca/internal/config"
	"github.com/presenca-app/presenca/internal/db"
	"github.com/presenca-app/presenca/internal/notify"
	"github.com/presenca-app/presenca/internal/redis"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	if err := db.Init(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init failed")
	}
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}
	store := db.NewStore(db.DB)

	if cfg.RedisAddress != "" {
		redis.InitRedis(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
	}

	var publisher *notify.Publisher
	if cfg.MQTTBrokerURL != "" {
		publisher, err = notify.NewPublisher(cfg.MQTTBrokerURL, "presenca-server")
		if err != nil {
			log.Fatal().Err(err).Msg("mqtt init failed")
		}
		defer publisher.Close()
	}

	service := attendance.NewService(store, cfg.Location)

	r := gin.Default()
	RegisterRoutes(r, cfg, store, service, publisher)

	log.Info().Str("address", cfg.ServerAddress).Str("timezone", cfg.Timezone).Msg("listening")
	if err := r.Run(cfg.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
