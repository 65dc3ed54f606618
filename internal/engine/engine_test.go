package engine

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Kose-dev-T/line-weather-bot-final/internal/catalog"
	"github.com/Kose-dev-T/line-weather-bot-final/internal/geocoder"
	"github.com/Kose-dev-T/line-weather-bot-final/internal/models"
	"github.com/Kose-dev-T/line-weather-bot-final/internal/station"
)

// MockLocationGetter is a mock implementation of the LocationGetter interface.
type MockLocationGetter struct {
	mock.Mock
}

func (m *MockLocationGetter) GetLocation(ctx context.Context, userID string) (*models.ResolvedLocation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ResolvedLocation), args.Error(1)
}

// MockGeocoder is a mock implementation of the geocoder.Geocoder interface.
type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Resolve(ctx context.Context, placeName string) (geocoder.Result, error) {
	args := m.Called(ctx, placeName)
	return args.Get(0).(geocoder.Result), args.Error(1)
}

// unavailableCatalog fails every operation, as a remote catalog does when its
// source is down.
type unavailableCatalog struct{}

func (unavailableCatalog) Load(context.Context) error            { return catalog.ErrUnavailable }
func (unavailableCatalog) Areas() ([]string, error)              { return nil, catalog.ErrUnavailable }
func (unavailableCatalog) PrefecturesOf(string) ([]string, error) {
	return nil, catalog.ErrUnavailable
}
func (unavailableCatalog) CitiesOf(string, string) ([]catalog.City, error) {
	return nil, catalog.ErrUnavailable
}

func menuEngine(t *testing.T) (*Engine, *MockLocationGetter) {
	t.Helper()
	locations := new(MockLocationGetter)
	e := New(ModeMenu, catalog.NewStatic(), nil, nil, locations, zerolog.Nop())
	return e, locations
}

func TestEngine_MenuFlow(t *testing.T) {
	e, _ := menuEngine(t)
	ctx := context.Background()
	cat := catalog.NewStatic()

	// Follow starts the register flow with area choices.
	res := e.Handle(ctx, Event{UserID: "U1", Type: EventFollow}, Idle())
	assert.Equal(t, DirectivePrompt, res.Directive.Kind)
	areas, err := cat.Areas()
	require.NoError(t, err)
	assert.Equal(t, areas, res.Directive.Choices)
	assert.Equal(t, State{Flow: FlowRegister, Step: StepArea}, res.State)
	assert.Nil(t, res.Resolved)

	// Valid area advances to prefecture selection.
	res = e.Handle(ctx, Event{UserID: "U1", Type: EventText, Text: "関東"}, res.State)
	assert.Equal(t, DirectivePrompt, res.Directive.Kind)
	prefs, err := cat.PrefecturesOf("関東")
	require.NoError(t, err)
	assert.Equal(t, prefs, res.Directive.Choices)
	assert.Equal(t, State{Flow: FlowRegister, Step: StepPrefecture, Area: "関東"}, res.State)

	// Invalid prefecture leaves the state untouched and re-prompts.
	before := res.State
	res = e.Handle(ctx, Event{UserID: "U1", Type: EventText, Text: "大阪府"}, before)
	assert.Equal(t, DirectiveError, res.Directive.Kind)
	assert.Equal(t, before, res.State)

	// Valid prefecture advances to city selection.
	res = e.Handle(ctx, Event{UserID: "U1", Type: EventText, Text: "東京都"}, before)
	assert.Equal(t, DirectivePrompt, res.Directive.Kind)
	assert.Equal(t, []string{"東京", "大島", "八丈島", "父島"}, res.Directive.Choices)
	assert.Equal(t, State{Flow: FlowRegister, Step: StepCity, Area: "関東", Prefecture: "東京都"}, res.State)

	// Valid city resolves, confirms, and collapses to Idle.
	res = e.Handle(ctx, Event{UserID: "U1", Type: EventText, Text: "八丈島"}, res.State)
	assert.Equal(t, DirectiveConfirmation, res.Directive.Kind)
	assert.Contains(t, res.Directive.Text, "八丈島")
	assert.Equal(t, Idle(), res.State)
	require.NotNil(t, res.Resolved)
	assert.Equal(t, models.ResolvedLocation{DisplayName: "八丈島", StationCode: "130030"}, *res.Resolved)
}

func TestEngine_MenuFlow_AllCatalogTriples(t *testing.T) {
	e, _ := menuEngine(t)
	ctx := context.Background()
	cat := catalog.NewStatic()

	areas, err := cat.Areas()
	require.NoError(t, err)

	for _, area := range areas {
		prefs, err := cat.PrefecturesOf(area)
		require.NoError(t, err)
		for _, pref := range prefs {
			cities, err := cat.CitiesOf(area, pref)
			require.NoError(t, err)
			for _, city := range cities {
				res := e.Handle(ctx, Event{UserID: "U1", Type: EventPostback, PostbackData: PostbackRegister}, Idle())
				res = e.Handle(ctx, Event{UserID: "U1", Type: EventText, Text: area}, res.State)
				res = e.Handle(ctx, Event{UserID: "U1", Type: EventText, Text: pref}, res.State)
				res = e.Handle(ctx, Event{UserID: "U1", Type: EventText, Text: city.Name}, res.State)

				require.NotNilf(t, res.Resolved, "%s/%s/%s did not resolve", area, pref, city.Name)
				assert.Equal(t, city.Code, res.Resolved.StationCode)
				assert.Equal(t, city.Name, res.Resolved.DisplayName)
				assert.Equal(t, Idle(), res.State)
			}
		}
	}
}

func TestEngine_InvalidInputKeepsState(t *testing.T) {
	e, _ := menuEngine(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		state State
		text  string
	}{
		{
			name:  "unknown area",
			state: State{Flow: FlowRegister, Step: StepArea},
			text:  "欧州",
		},
		{
			name:  "unknown prefecture",
			state: State{Flow: FlowRegister, Step: StepPrefecture, Area: "四国"},
			text:  "東京都",
		},
		{
			name:  "unknown city",
			state: State{Flow: FlowLookup, Step: StepCity, Area: "四国", Prefecture: "高知県"},
			text:  "高松",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Handle(ctx, Event{UserID: "U1", Type: EventText, Text: tt.text}, tt.state)
			assert.Equal(t, DirectiveError, res.Directive.Kind)
			assert.Equal(t, tt.state, res.State)
			assert.Nil(t, res.Resolved)

			// Retry is idempotent.
			again := e.Handle(ctx, Event{UserID: "U1", Type: EventText, Text: tt.text}, res.State)
			assert.Equal(t, res, again)
		})
	}
}

func TestEngine_LookupFlowRequestsForecast(t *testing.T) {
	e, _ := menuEngine(t)
	ctx := context.Background()

	res := e.Handle(ctx, Event{UserID: "U1", Type: EventPostback, PostbackData: PostbackLookup}, Idle())
	assert.Equal(t, State{Flow: FlowLookup, Step: StepArea}, res.State)

	res = e.Handle(ctx, Event{UserID: "U1", Type: EventText, Text: "近畿"}, res.State)
	res = e.Handle(ctx, Event{UserID: "U1", Type: EventText, Text: "大阪府"}, res.State)
	res = e.Handle(ctx, Event{UserID: "U1", Type: EventText, Text: "大阪"}, res.State)

	assert.Equal(t, DirectiveForecast, res.Directive.Kind)
	require.NotNil(t, res.Directive.Location)
	assert.Equal(t, "270000", res.Directive.Location.StationCode)
	assert.Equal(t, Idle(), res.State)
	// Lookup never persists a location.
	assert.Nil(t, res.Resolved)
}

func TestEngine_IdleText(t *testing.T) {
	ctx := context.Background()

	t.Run("registered user gets one-off forecast", func(t *testing.T) {
		e, locations := menuEngine(t)
		stored := &models.ResolvedLocation{DisplayName: "大阪", StationCode: "270000"}
		locations.On("GetLocation", mock.Anything, "U1").Return(stored, nil)

		res := e.Handle(ctx, Event{UserID: "U1", Type: EventText, Text: "今日の天気"}, Idle())
		assert.Equal(t, DirectiveForecast, res.Directive.Kind)
		assert.Equal(t, stored, res.Directive.Location)
		assert.Equal(t, Idle(), res.State)
		locations.AssertExpectations(t)
	})

	t.Run("unregistered user is pulled into register flow", func(t *testing.T) {
		e, locations := menuEngine(t)
		locations.On("GetLocation", mock.Anything, "U2").Return(nil, nil)

		res := e.Handle(ctx, Event{UserID: "U2", Type: EventText, Text: "今日の天気"}, Idle())
		assert.Equal(t, DirectivePrompt, res.Directive.Kind)
		assert.Contains(t, res.Directive.Text, "未登録")
		assert.Equal(t, State{Flow: FlowRegister, Step: StepArea}, res.State)
	})

	t.Run("storage error falls back to menu hint", func(t *testing.T) {
		e, locations := menuEngine(t)
		locations.On("GetLocation", mock.Anything, "U3").Return(nil, assert.AnError)

		res := e.Handle(ctx, Event{UserID: "U3", Type: EventText, Text: "今日の天気"}, Idle())
		assert.Equal(t, DirectiveError, res.Directive.Kind)
		assert.Equal(t, Idle(), res.State)
	})
}

func TestEngine_UnknownPostbackKeepsState(t *testing.T) {
	e, _ := menuEngine(t)

	st := State{Flow: FlowRegister, Step: StepPrefecture, Area: "関東"}
	res := e.Handle(context.Background(), Event{UserID: "U1", Type: EventPostback, PostbackData: "action=unknown"}, st)

	assert.Equal(t, DirectiveError, res.Directive.Kind)
	assert.Equal(t, st, res.State)
}

func TestEngine_CatalogUnavailable(t *testing.T) {
	locations := new(MockLocationGetter)
	e := New(ModeMenu, unavailableCatalog{}, nil, nil, locations, zerolog.Nop())
	ctx := context.Background()

	tests := []struct {
		name  string
		event Event
		state State
	}{
		{
			name:  "flow start",
			event: Event{UserID: "U1", Type: EventPostback, PostbackData: PostbackRegister},
			state: Idle(),
		},
		{
			name:  "area step",
			event: Event{UserID: "U1", Type: EventText, Text: "関東"},
			state: State{Flow: FlowRegister, Step: StepArea},
		},
		{
			name:  "prefecture step",
			event: Event{UserID: "U1", Type: EventText, Text: "東京都"},
			state: State{Flow: FlowRegister, Step: StepPrefecture, Area: "関東"},
		},
		{
			name:  "city step",
			event: Event{UserID: "U1", Type: EventText, Text: "東京"},
			state: State{Flow: FlowRegister, Step: StepCity, Area: "関東", Prefecture: "東京都"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Handle(ctx, tt.event, tt.state)
			assert.Equal(t, DirectiveError, res.Directive.Kind)
			assert.Equal(t, msgUnavailable, res.Directive.Text)
			// State is byte-for-byte what it was before the call.
			assert.Equal(t, tt.state.Token(), res.State.Token())
			assert.Nil(t, res.Resolved)
		})
	}
}

func TestEngine_FreeTextMode(t *testing.T) {
	ctx := context.Background()
	stations := []station.Station{
		{Code: "130010", Name: "東京", Latitude: 35.689, Longitude: 139.692},
		{Code: "270000", Name: "大阪", Latitude: 34.686, Longitude: 135.520},
	}

	t.Run("start prompts for a place name", func(t *testing.T) {
		geo := new(MockGeocoder)
		e := New(ModeFreeText, nil, geo, stations, new(MockLocationGetter), zerolog.Nop())

		res := e.Handle(ctx, Event{UserID: "U1", Type: EventPostback, PostbackData: PostbackRegister}, Idle())
		assert.Equal(t, DirectivePrompt, res.Directive.Kind)
		assert.Empty(t, res.Directive.Choices)
		assert.Equal(t, State{Flow: FlowRegister, Step: StepFreeText}, res.State)
	})

	t.Run("resolution matches nearest station", func(t *testing.T) {
		geo := new(MockGeocoder)
		// Kyoto is closer to Osaka than to Tokyo.
		geo.On("Resolve", mock.Anything, "京都市").
			Return(geocoder.Result{Latitude: 35.021, Longitude: 135.754, CanonicalName: "京都市"}, nil)
		e := New(ModeFreeText, nil, geo, stations, new(MockLocationGetter), zerolog.Nop())

		st := State{Flow: FlowRegister, Step: StepFreeText}
		res := e.Handle(ctx, Event{UserID: "U1", Type: EventText, Text: "京都市"}, st)

		assert.Equal(t, DirectiveConfirmation, res.Directive.Kind)
		assert.Equal(t, Idle(), res.State)
		require.NotNil(t, res.Resolved)
		assert.Equal(t, models.ResolvedLocation{DisplayName: "大阪", StationCode: "270000"}, *res.Resolved)
		geo.AssertExpectations(t)
	})

	t.Run("without stations coordinates are stored directly", func(t *testing.T) {
		geo := new(MockGeocoder)
		geo.On("Resolve", mock.Anything, "新宿区").
			Return(geocoder.Result{Latitude: 35.694, Longitude: 139.703, CanonicalName: "新宿区"}, nil)
		e := New(ModeFreeText, nil, geo, nil, new(MockLocationGetter), zerolog.Nop())

		st := State{Flow: FlowRegister, Step: StepFreeText}
		res := e.Handle(ctx, Event{UserID: "U1", Type: EventText, Text: "新宿区"}, st)

		require.NotNil(t, res.Resolved)
		assert.Equal(t, models.ResolvedLocation{
			DisplayName: "新宿区",
			Latitude:    35.694,
			Longitude:   139.703,
		}, *res.Resolved)
		assert.False(t, res.Resolved.HasStationCode())
	})

	t.Run("geocode failure keeps state and re-prompts", func(t *testing.T) {
		geo := new(MockGeocoder)
		geo.On("Resolve", mock.Anything, "どこでもない場所").
			Return(geocoder.Result{}, geocoder.ErrNotFound)
		e := New(ModeFreeText, nil, geo, stations, new(MockLocationGetter), zerolog.Nop())

		st := State{Flow: FlowRegister, Step: StepFreeText}
		res := e.Handle(ctx, Event{UserID: "U1", Type: EventText, Text: "どこでもない場所"}, st)

		assert.Equal(t, DirectiveError, res.Directive.Kind)
		assert.Equal(t, st, res.State)
		assert.Nil(t, res.Resolved)
	})

	t.Run("lookup flow requests a one-off forecast", func(t *testing.T) {
		geo := new(MockGeocoder)
		geo.On("Resolve", mock.Anything, "京都市").
			Return(geocoder.Result{Latitude: 35.021, Longitude: 135.754, CanonicalName: "京都市"}, nil)
		e := New(ModeFreeText, nil, geo, stations, new(MockLocationGetter), zerolog.Nop())

		st := State{Flow: FlowLookup, Step: StepFreeText}
		res := e.Handle(ctx, Event{UserID: "U1", Type: EventText, Text: "京都市"}, st)

		assert.Equal(t, DirectiveForecast, res.Directive.Kind)
		require.NotNil(t, res.Directive.Location)
		assert.Equal(t, "270000", res.Directive.Location.StationCode)
		assert.Nil(t, res.Resolved)
	})
}

// wideCatalog exposes more areas than the platform can show at once.
type wideCatalog struct {
	*catalog.StaticCatalog
	areas []string
}

func (c wideCatalog) Load(context.Context) error { return nil }
func (c wideCatalog) Areas() ([]string, error)   { return c.areas, nil }

func TestEngine_PromptChoicesCapped(t *testing.T) {
	areas := make([]string, 20)
	for i := range areas {
		areas[i] = string(rune('A' + i))
	}
	e := New(ModeMenu, wideCatalog{catalog.NewStatic(), areas}, nil, nil, new(MockLocationGetter), zerolog.Nop())

	res := e.Handle(context.Background(), Event{UserID: "U1", Type: EventPostback, PostbackData: PostbackRegister}, Idle())
	assert.Equal(t, DirectivePrompt, res.Directive.Kind)
	assert.Len(t, res.Directive.Choices, MaxChoices)
	assert.Equal(t, areas[:MaxChoices], res.Directive.Choices)
}
