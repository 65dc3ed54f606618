package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/Kose-dev-T/line-weather-bot-final/internal/forecast"
	"github.com/Kose-dev-T/line-weather-bot-final/internal/line"
	"github.com/Kose-dev-T/line-weather-bot-final/internal/models"
	"github.com/Kose-dev-T/line-weather-bot-final/internal/observability"
)

const msgReRegister = "毎日の天気予報を通知するために、地点の再登録をお願いします。下のメニューの「地点を登録」から登録できます。"

// UserLister enumerates notification targets.
type UserLister interface {
	ListUsersWithLocation(ctx context.Context) ([]models.UserLocation, error)
	ListUsersWithoutLocation(ctx context.Context) ([]string, error)
}

// Pusher sends messages outside a reply context.
type Pusher interface {
	Push(ctx context.Context, userID string, messages ...line.Message) error
}

// ForecastFetcher retrieves today's forecast for a station code.
type ForecastFetcher interface {
	Fetch(ctx context.Context, stationCode string) (forecast.Forecast, error)
}

// Notifier pushes the morning forecast to every registered user.
type Notifier struct {
	users     UserLister
	pusher    Pusher
	forecasts ForecastFetcher
	metrics   *observability.Metrics
	clock     clockwork.Clock
	logger    zerolog.Logger
}

// NewNotifier creates a notifier.
func NewNotifier(users UserLister, pusher Pusher, forecasts ForecastFetcher, metrics *observability.Metrics, clock clockwork.Clock, logger zerolog.Logger) *Notifier {
	return &Notifier{
		users:     users,
		pusher:    pusher,
		forecasts: forecasts,
		metrics:   metrics,
		clock:     clock,
		logger:    logger,
	}
}

// SendDailyForecasts pushes today's forecast to every user with a registered
// location. Per-user failures are counted and logged but do not stop the run.
func (n *Notifier) SendDailyForecasts(ctx context.Context) error {
	users, err := n.users.ListUsersWithLocation(ctx)
	if err != nil {
		return fmt.Errorf("notifier: list users: %w", err)
	}
	n.logger.Info().Int("users", len(users)).Msg("starting daily forecast run")

	// Station codes repeat across users, so fetch each forecast once.
	cache := make(map[string]forecast.Forecast)
	for _, u := range users {
		if !u.Location.HasStationCode() {
			// Coordinate-addressed locations have no station-keyed provider.
			n.metrics.Notifications.WithLabelValues("skipped").Inc()
			continue
		}

		f, ok := cache[u.Location.StationCode]
		if !ok {
			f, err = n.forecasts.Fetch(ctx, u.Location.StationCode)
			if err != nil {
				n.metrics.Notifications.WithLabelValues("error").Inc()
				n.logger.Warn().Err(err).Str("station_code", u.Location.StationCode).Msg("forecast fetch failed")
				continue
			}
			cache[u.Location.StationCode] = f
		}

		msg := forecast.BuildFlexMessage(f, u.Location.DisplayName)
		if err := n.pusher.Push(ctx, u.UserID, msg); err != nil {
			n.metrics.Notifications.WithLabelValues("error").Inc()
			n.logger.Warn().Err(err).Str("user_id", u.UserID).Msg("push failed")
			continue
		}
		n.metrics.Notifications.WithLabelValues("sent").Inc()
	}
	return nil
}

// PromptUnregistered nudges users who talked to the bot but never finished
// registering a location.
func (n *Notifier) PromptUnregistered(ctx context.Context) error {
	ids, err := n.users.ListUsersWithoutLocation(ctx)
	if err != nil {
		return fmt.Errorf("notifier: list unregistered users: %w", err)
	}
	n.logger.Info().Int("users", len(ids)).Msg("prompting unregistered users")

	for _, id := range ids {
		if err := n.pusher.Push(ctx, id, line.NewTextMessage(msgReRegister)); err != nil {
			n.metrics.Notifications.WithLabelValues("error").Inc()
			n.logger.Warn().Err(err).Str("user_id", id).Msg("push failed")
			continue
		}
		n.metrics.Notifications.WithLabelValues("sent").Inc()
	}
	return nil
}

// RunDaily blocks, running SendDailyForecasts every day at the given local
// hour, until the context is cancelled.
func (n *Notifier) RunDaily(ctx context.Context, hour int) error {
	for {
		wait := n.untilNext(hour)
		n.logger.Info().Dur("wait", wait).Msg("sleeping until next run")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-n.clock.After(wait):
		}
		if err := n.SendDailyForecasts(ctx); err != nil {
			n.logger.Error().Err(err).Msg("daily forecast run failed")
		}
	}
}

func (n *Notifier) untilNext(hour int) time.Duration {
	now := n.clock.Now()
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next.Sub(now)
}
