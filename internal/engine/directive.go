package engine

import "github.com/Kose-dev-T/line-weather-bot-final/internal/models"

// MaxChoices is the platform cap on quick-reply items. Prompt choices are
// truncated for display only; input matching always runs against the full
// catalog data.
const MaxChoices = 13

// DirectiveKind discriminates the outbound directive variants.
type DirectiveKind string

const (
	DirectivePrompt       DirectiveKind = "prompt"
	DirectiveConfirmation DirectiveKind = "confirmation"
	DirectiveForecast     DirectiveKind = "forecast_request"
	DirectiveError        DirectiveKind = "error"
)

// Directive tells the caller what to send back to the user.
type Directive struct {
	Kind     DirectiveKind
	Text     string
	Choices  []string                 // DirectivePrompt only, at most MaxChoices
	Location *models.ResolvedLocation // DirectiveForecast only
}

func newPrompt(text string, choices []string) Directive {
	if len(choices) > MaxChoices {
		choices = choices[:MaxChoices]
	}
	return Directive{Kind: DirectivePrompt, Text: text, Choices: choices}
}

func newConfirmation(text string) Directive {
	return Directive{Kind: DirectiveConfirmation, Text: text}
}

func newForecastRequest(loc models.ResolvedLocation) Directive {
	return Directive{Kind: DirectiveForecast, Location: &loc}
}

func newError(text string) Directive {
	return Directive{Kind: DirectiveError, Text: text}
}
