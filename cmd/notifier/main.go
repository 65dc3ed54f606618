package main

import (
	"context"
	"flag"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/Kose-dev-T/line-weather-bot-final/internal/config"
	"github.com/Kose-dev-T/line-weather-bot-final/internal/forecast"
	"github.com/Kose-dev-T/line-weather-bot-final/internal/line"
	"github.com/Kose-dev-T/line-weather-bot-final/internal/notifier"
	"github.com/Kose-dev-T/line-weather-bot-final/internal/observability"
	"github.com/Kose-dev-T/line-weather-bot-final/internal/repository"
)

func main() {
	once := flag.Bool("once", false, "send one forecast round and exit instead of running the daily loop")
	promptUnregistered := flag.Bool("prompt-unregistered", false, "nudge users without a registered location and exit")
	flag.Parse()

	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	ctx := context.Background()

	conn, err := pgxpool.New(ctx, cfg.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	repo := repository.NewRepository(conn)
	pusher := line.NewClient(cfg.LineChannelAccessToken, cfg.LineAPIBaseURL, cfg.HTTPClientTimeout)
	forecasts := forecast.NewClient(cfg.ForecastBaseURL, cfg.HTTPClientTimeout)

	n := notifier.NewNotifier(repo, pusher, forecasts, observability.NewMetrics(), clockwork.NewRealClock(), log.Logger)

	switch {
	case *promptUnregistered:
		if err := n.PromptUnregistered(ctx); err != nil {
			log.Fatal().Err(err).Msg("prompt run failed")
		}
	case *once:
		if err := n.SendDailyForecasts(ctx); err != nil {
			log.Fatal().Err(err).Msg("forecast run failed")
		}
	default:
		if err := n.RunDaily(ctx, cfg.NotifyHour); err != nil {
			log.Fatal().Err(err).Msg("daily loop stopped")
		}
	}
}
