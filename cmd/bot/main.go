package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/Kose-dev-T/line-weather-bot-final/internal/catalog"
	"github.com/Kose-dev-T/line-weather-bot-final/internal/config"
	"github.com/Kose-dev-T/line-weather-bot-final/internal/engine"
	"github.com/Kose-dev-T/line-weather-bot-final/internal/forecast"
	"github.com/Kose-dev-T/line-weather-bot-final/internal/geocoder"
	"github.com/Kose-dev-T/line-weather-bot-final/internal/handler"
	"github.com/Kose-dev-T/line-weather-bot-final/internal/line"
	"github.com/Kose-dev-T/line-weather-bot-final/internal/observability"
	"github.com/Kose-dev-T/line-weather-bot-final/internal/repository"
	"github.com/Kose-dev-T/line-weather-bot-final/internal/service"
	"github.com/Kose-dev-T/line-weather-bot-final/internal/station"
)

func main() {
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	ctx := context.Background()

	// Database connection
	conn, err := pgxpool.New(ctx, cfg.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	repo := repository.NewRepository(conn)
	if err := repo.InitSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("cannot initialize schema")
	}

	metrics := observability.NewMetrics()
	logger := log.Logger

	// Resolution backends by mode: the menu flow walks the place catalog,
	// the free-text flow geocodes and snaps to the nearest station.
	var eng *engine.Engine
	switch engine.Mode(cfg.ResolveMode) {
	case engine.ModeMenu:
		var places catalog.Catalog = catalog.NewStatic()
		if cfg.CatalogURL != "" {
			places = catalog.NewRemote(cfg.CatalogURL, cfg.HTTPClientTimeout, logger)
		}
		eng = engine.New(engine.ModeMenu, places, nil, nil, repo, logger)
	case engine.ModeFreeText:
		geo := geocoder.NewCached(geocoder.NewNominatim(cfg.GeocodeBaseURL, cfg.HTTPClientTimeout), 256)
		eng = engine.New(engine.ModeFreeText, nil, geo, station.DefaultStations, repo, logger)
	default:
		log.Fatal().Str("mode", cfg.ResolveMode).Msg("unknown resolve mode")
	}

	messenger := line.NewClient(cfg.LineChannelAccessToken, cfg.LineAPIBaseURL, cfg.HTTPClientTimeout)
	forecasts := forecast.NewClient(cfg.ForecastBaseURL, cfg.HTTPClientTimeout)

	bot := service.NewBotService(eng, repo, messenger, forecasts, metrics, logger)
	webhook := handler.NewWebhookHandler(cfg.LineChannelSecret, bot, logger)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/callback", webhook.Callback)

	r.Run(cfg.ServerAddress)
}
