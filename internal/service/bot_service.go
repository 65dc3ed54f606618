package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Kose-dev-T/line-weather-bot-final/internal/engine"
	"github.com/Kose-dev-T/line-weather-bot-final/internal/forecast"
	"github.com/Kose-dev-T/line-weather-bot-final/internal/line"
	"github.com/Kose-dev-T/line-weather-bot-final/internal/models"
	"github.com/Kose-dev-T/line-weather-bot-final/internal/observability"
)

const (
	msgForecastFailed      = "天気情報の取得に失敗しました。"
	msgForecastUnsupported = "この地点の天気予報は現在提供していません。"
)

// StateStore is what the service needs from the persistence layer.
type StateStore interface {
	GetState(ctx context.Context, userID string) (string, error)
	SetState(ctx context.Context, userID, token string) error
	SetLocation(ctx context.Context, userID string, loc models.ResolvedLocation) error
}

// Messenger replies to inbound events.
type Messenger interface {
	Reply(ctx context.Context, replyToken string, messages ...line.Message) error
}

// ForecastFetcher retrieves today's forecast for a station code.
type ForecastFetcher interface {
	Fetch(ctx context.Context, stationCode string) (forecast.Forecast, error)
}

// EventEngine is the location resolution state machine.
type EventEngine interface {
	Handle(ctx context.Context, ev engine.Event, st engine.State) engine.Result
}

// BotService glues one inbound event to one outbound reply: load state, run
// the engine, persist the outcome, render the directive.
type BotService struct {
	engine    EventEngine
	store     StateStore
	messenger Messenger
	forecasts ForecastFetcher
	metrics   *observability.Metrics
	logger    zerolog.Logger
}

// NewBotService creates the bot service.
func NewBotService(eng EventEngine, store StateStore, messenger Messenger, forecasts ForecastFetcher, metrics *observability.Metrics, logger zerolog.Logger) *BotService {
	return &BotService{
		engine:    eng,
		store:     store,
		messenger: messenger,
		forecasts: forecasts,
		metrics:   metrics,
		logger:    logger,
	}
}

// HandleEvent processes one webhook event end to end. State is read once at
// the start and written at most once at the end; concurrent events for the
// same user race with last-write-wins semantics.
func (s *BotService) HandleEvent(ctx context.Context, ev engine.Event) error {
	start := time.Now()
	defer func() {
		s.metrics.WebhookDuration.Observe(time.Since(start).Seconds())
	}()

	token, err := s.store.GetState(ctx, ev.UserID)
	if err != nil {
		// Degrade to a fresh conversation rather than dropping the event.
		s.logger.Warn().Err(err).Str("user_id", ev.UserID).Msg("state load failed, treating as idle")
		token = ""
	}
	st := engine.DecodeToken(token)

	res := s.engine.Handle(ctx, ev, st)
	s.metrics.EventsHandled.WithLabelValues(string(ev.Type), string(res.Directive.Kind)).Inc()

	if res.Resolved != nil {
		// SetLocation clears conversation state in the same write.
		if err := s.store.SetLocation(ctx, ev.UserID, *res.Resolved); err != nil {
			s.logger.Error().Err(err).Str("user_id", ev.UserID).Msg("persist location failed")
			return s.messenger.Reply(ctx, ev.ReplyToken, line.NewTextMessage(msgForecastFailed))
		}
		s.metrics.LocationsResolved.Inc()
		s.logger.Info().
			Str("user_id", ev.UserID).
			Str("location", res.Resolved.DisplayName).
			Str("station_code", res.Resolved.StationCode).
			Msg("location registered")
	} else if err := s.store.SetState(ctx, ev.UserID, res.State.Token()); err != nil {
		s.logger.Error().Err(err).Str("user_id", ev.UserID).Msg("persist state failed")
	}

	return s.messenger.Reply(ctx, ev.ReplyToken, s.render(ctx, res.Directive)...)
}

func (s *BotService) render(ctx context.Context, d engine.Directive) []line.Message {
	switch d.Kind {
	case engine.DirectivePrompt:
		return []line.Message{line.NewPromptMessage(d.Text, d.Choices)}
	case engine.DirectiveForecast:
		return []line.Message{s.renderForecast(ctx, d.Location)}
	default:
		return []line.Message{line.NewTextMessage(d.Text)}
	}
}

func (s *BotService) renderForecast(ctx context.Context, loc *models.ResolvedLocation) line.Message {
	if loc == nil || !loc.HasStationCode() {
		// Coordinate-addressed deployments have no station-keyed provider.
		return line.NewTextMessage(msgForecastUnsupported)
	}

	f, err := s.forecasts.Fetch(ctx, loc.StationCode)
	if err != nil {
		s.metrics.ForecastFetches.WithLabelValues("error").Inc()
		s.logger.Warn().Err(err).Str("station_code", loc.StationCode).Msg("forecast fetch failed")
		return line.NewTextMessage(msgForecastFailed)
	}
	s.metrics.ForecastFetches.WithLabelValues("success").Inc()
	return forecast.BuildFlexMessage(f, loc.DisplayName)
}
