package main

import (
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/catatduitmu/backend/internal/bot"
	"github.com/catatduitmu/backend/internal/config"
	"github.com/catatduitmu/backend/internal/models"
	"github.com/catatduitmu/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// gin uses debug as the default mode, we use release for
	// security reasons
	gin.SetMode(cfg.GinMode)

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	output := io.Writer(os.Stdout)
	if cfg.LogFormat == "human" || (cfg.LogFormat == "" && gin.IsDebugging()) {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	// Create the data directory for the default database location
	err = os.MkdirAll(filepath.Dir(cfg.DBDSN), os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	err = models.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	apiURL, err := url.Parse(os.Getenv("API_URL"))
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, err := router.Config(apiURL, cfg.CORSAllowOrigins)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	var botHandler *bot.Handler
	if cfg.TelegramBotToken != "" {
		var sessions bot.Store = bot.NewMemoryStore(cfg.SessionTTL)
		if cfg.RedisAddr != "" {
			client := redis.NewClient(&redis.Options{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
			})
			sessions = bot.NewRedisStore(client, cfg.SessionTTL)
		}

		sender := bot.NewTelegramClient(cfg.TelegramBotToken)
		botHandler = bot.NewHandler(models.DB, sessions, sender, cfg.BotAuthURL)
		log.Info().Msg("telegram bot enabled")
	}

	router.AttachRoutes(&r.RouterGroup, cfg.JWTSecret, cfg.EnablePprof, botHandler)

	if err := r.Run(cfg.APIHost); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
