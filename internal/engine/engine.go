package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Kose-dev-T/line-weather-bot-final/internal/catalog"
	"github.com/Kose-dev-T/line-weather-bot-final/internal/geocoder"
	"github.com/Kose-dev-T/line-weather-bot-final/internal/models"
	"github.com/Kose-dev-T/line-weather-bot-final/internal/station"
)

// Mode selects how free-form location input is resolved.
type Mode string

const (
	// ModeMenu walks the user through area → prefecture → city selection
	// against the place catalog.
	ModeMenu Mode = "menu"
	// ModeFreeText resolves a single free-text place name through the
	// geocoder, then matches the nearest station when one is configured.
	ModeFreeText Mode = "freetext"
)

// User-facing copy.
const (
	msgGreeting          = "友達追加ありがとうございます！毎日の通知を受け取る地点を登録してください。"
	msgPromptArea        = "エリアを選択してください。"
	msgPromptPrefecture  = "都道府県を選択してください。"
	msgPromptCity        = "最後に都市名を選択してください。"
	msgPromptFreeText    = "通知を受け取りたい地名（例: 大阪市, 新宿区）をメッセージで送ってください。"
	msgRetryArea         = "ボタンから正しいエリア名を選択してください。"
	msgRetryPrefecture   = "ボタンから正しい都道府県名を選択してください。"
	msgRetryCity         = "ボタンから正しい都市名を選択してください。"
	msgRetryFreeText     = "地名を解決できませんでした。別の表記でもう一度お試しください。"
	msgUnavailable       = "地域情報を取得できませんでした。時間をおいてもう一度お試しください。"
	msgUnregistered      = "地点が未登録です。先に地点を登録してください。"
	msgUseMenu           = "下のメニューから操作を選択してください。"
	msgConfirmedTemplate = "地点を「%s」に設定しました！"
)

// LocationGetter is the narrow read the engine needs from the persistence
// layer: whether a user already has a resolved location.
type LocationGetter interface {
	GetLocation(ctx context.Context, userID string) (*models.ResolvedLocation, error)
}

// Result is the outcome of handling one event. Resolved is non-nil exactly
// when a register flow completed; the caller persists it.
type Result struct {
	State     State
	Directive Directive
	Resolved  *models.ResolvedLocation
}

// Engine is the location resolution state machine. It is stateless between
// calls: per-user position travels in and out as State.
type Engine struct {
	mode      Mode
	catalog   catalog.Catalog
	geocoder  geocoder.Geocoder
	stations  []station.Station
	locations LocationGetter
	logger    zerolog.Logger
}

// New creates an engine. geo may be nil in ModeMenu; stations may be empty
// in ModeFreeText deployments that store raw coordinates.
func New(mode Mode, cat catalog.Catalog, geo geocoder.Geocoder, stations []station.Station, locations LocationGetter, logger zerolog.Logger) *Engine {
	return &Engine{
		mode:      mode,
		catalog:   cat,
		geocoder:  geo,
		stations:  stations,
		locations: locations,
		logger:    logger,
	}
}

// Handle consumes one inbound event plus the user's current state and
// produces the next state and a response directive. It never fails past its
// boundary: every internal error becomes an error directive, with the state
// left unchanged so the user can retry.
func (e *Engine) Handle(ctx context.Context, ev Event, st State) Result {
	switch ev.Type {
	case EventFollow:
		return e.startFlow(ctx, FlowRegister, msgGreeting, st)
	case EventPostback:
		return e.handlePostback(ctx, ev, st)
	case EventText:
		if !st.IsIdle() {
			return e.handleStep(ctx, ev, st)
		}
		return e.handleIdleText(ctx, ev, st)
	default:
		return Result{State: st, Directive: newError(msgUseMenu)}
	}
}

func (e *Engine) handlePostback(ctx context.Context, ev Event, st State) Result {
	switch ev.PostbackData {
	case PostbackRegister:
		return e.startFlow(ctx, FlowRegister, "", st)
	case PostbackLookup:
		return e.startFlow(ctx, FlowLookup, "", st)
	default:
		return Result{State: st, Directive: newError(msgUseMenu)}
	}
}

// handleIdleText covers text arriving with no active flow: a registered user
// gets a one-off forecast, an unregistered one is pulled into the register
// flow first.
func (e *Engine) handleIdleText(ctx context.Context, ev Event, st State) Result {
	loc, err := e.locations.GetLocation(ctx, ev.UserID)
	if err != nil {
		e.logger.Warn().Err(err).Str("user_id", ev.UserID).Msg("location lookup failed")
		return Result{State: st, Directive: newError(msgUseMenu)}
	}
	if loc != nil {
		return Result{State: st, Directive: newForecastRequest(*loc)}
	}
	return e.startFlow(ctx, FlowRegister, msgUnregistered, st)
}

// startFlow enters the first step of a selection flow. prefix, when set, is
// prepended to the opening prompt. On catalog failure the state is left
// exactly as it was.
func (e *Engine) startFlow(ctx context.Context, flow Flow, prefix string, st State) Result {
	if e.mode == ModeFreeText {
		text := msgPromptFreeText
		if prefix != "" {
			text = prefix + "\n" + text
		}
		return Result{
			State:     State{Flow: flow, Step: StepFreeText},
			Directive: newPrompt(text, nil),
		}
	}

	areas, err := e.loadAreas(ctx)
	if err != nil {
		return Result{State: st, Directive: newError(msgUnavailable)}
	}

	text := msgPromptArea
	if prefix != "" {
		text = prefix + "\n" + text
	}
	return Result{
		State:     State{Flow: flow, Step: StepArea},
		Directive: newPrompt(text, areas),
	}
}

func (e *Engine) handleStep(ctx context.Context, ev Event, st State) Result {
	switch st.Step {
	case StepArea:
		return e.handleArea(ctx, ev, st)
	case StepPrefecture:
		return e.handlePrefecture(ctx, ev, st)
	case StepCity:
		return e.handleCity(ctx, ev, st)
	case StepFreeText:
		return e.handleFreeText(ctx, ev, st)
	default:
		return Result{State: Idle(), Directive: newError(msgUseMenu)}
	}
}

func (e *Engine) handleArea(ctx context.Context, ev Event, st State) Result {
	prefs, err := e.loadPrefectures(ctx, ev.Text)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return Result{State: st, Directive: newError(msgRetryArea)}
	case err != nil:
		return Result{State: st, Directive: newError(msgUnavailable)}
	}

	return Result{
		State:     State{Flow: st.Flow, Step: StepPrefecture, Area: ev.Text},
		Directive: newPrompt(msgPromptPrefecture, prefs),
	}
}

func (e *Engine) handlePrefecture(ctx context.Context, ev Event, st State) Result {
	cities, err := e.loadCities(ctx, st.Area, ev.Text)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return Result{State: st, Directive: newError(msgRetryPrefecture)}
	case err != nil:
		return Result{State: st, Directive: newError(msgUnavailable)}
	}

	names := make([]string, len(cities))
	for i, c := range cities {
		names[i] = c.Name
	}
	return Result{
		State:     State{Flow: st.Flow, Step: StepCity, Area: st.Area, Prefecture: ev.Text},
		Directive: newPrompt(msgPromptCity, names),
	}
}

func (e *Engine) handleCity(ctx context.Context, ev Event, st State) Result {
	cities, err := e.loadCities(ctx, st.Area, st.Prefecture)
	if err != nil {
		// The upstream selection was validated when the user made it, so
		// ErrNotFound here means the catalog itself went away.
		return Result{State: st, Directive: newError(msgUnavailable)}
	}

	for _, c := range cities {
		if c.Name == ev.Text {
			loc := models.ResolvedLocation{DisplayName: c.Name, StationCode: c.Code}
			return e.finish(st.Flow, loc)
		}
	}
	return Result{State: st, Directive: newError(msgRetryCity)}
}

func (e *Engine) handleFreeText(ctx context.Context, ev Event, st State) Result {
	if e.geocoder == nil {
		e.logger.Error().Msg("free-text step reached without a geocoder")
		return Result{State: st, Directive: newError(msgUnavailable)}
	}

	res, err := e.geocoder.Resolve(ctx, ev.Text)
	if err != nil {
		// NotFound, network errors, and malformed responses all read the
		// same to the user: could not resolve, try again.
		e.logger.Debug().Err(err).Str("input", ev.Text).Msg("geocode failed")
		return Result{State: st, Directive: newError(msgRetryFreeText)}
	}

	loc := models.ResolvedLocation{
		DisplayName: res.CanonicalName,
		Latitude:    res.Latitude,
		Longitude:   res.Longitude,
	}
	if len(e.stations) > 0 {
		nearest, err := station.Nearest(res.Latitude, res.Longitude, e.stations)
		if err != nil {
			return Result{State: st, Directive: newError(msgUnavailable)}
		}
		loc = models.ResolvedLocation{DisplayName: nearest.Name, StationCode: nearest.Code}
	}
	return e.finish(st.Flow, loc)
}

// finish collapses a completed flow back to Idle. Register flows hand the
// location to the caller for persistence; lookup flows request a one-off
// forecast without touching the stored location.
func (e *Engine) finish(flow Flow, loc models.ResolvedLocation) Result {
	if flow == FlowLookup {
		return Result{State: Idle(), Directive: newForecastRequest(loc)}
	}
	return Result{
		State:     Idle(),
		Directive: newConfirmation(fmt.Sprintf(msgConfirmedTemplate, loc.DisplayName)),
		Resolved:  &loc,
	}
}

func (e *Engine) loadAreas(ctx context.Context) ([]string, error) {
	if e.catalog == nil {
		return nil, catalog.ErrUnavailable
	}
	if err := e.catalog.Load(ctx); err != nil {
		return nil, err
	}
	return e.catalog.Areas()
}

func (e *Engine) loadPrefectures(ctx context.Context, area string) ([]string, error) {
	if e.catalog == nil {
		return nil, catalog.ErrUnavailable
	}
	if err := e.catalog.Load(ctx); err != nil {
		return nil, err
	}
	return e.catalog.PrefecturesOf(area)
}

func (e *Engine) loadCities(ctx context.Context, area, prefecture string) ([]catalog.City, error) {
	if e.catalog == nil {
		return nil, catalog.ErrUnavailable
	}
	if err := e.catalog.Load(ctx); err != nil {
		return nil, err
	}
	return e.catalog.CitiesOf(area, prefecture)
}
