package engine

import "encoding/json"

// Flow identifies the user-facing purpose of an active selection flow.
type Flow string

const (
	FlowNone     Flow = ""
	FlowRegister Flow = "register"
	FlowLookup   Flow = "lookup"
)

// Step identifies where in the selection flow a user currently is.
type Step string

const (
	StepNone       Step = ""
	StepArea       Step = "area"
	StepPrefecture Step = "prefecture"
	StepCity       Step = "city"
	StepFreeText   Step = "free_text"
)

// State is the per-user conversation position. The zero value is Idle (no
// active flow). Partial selections carry the already-confirmed upper levels:
// Area is set from StepPrefecture onward, Prefecture from StepCity.
type State struct {
	Flow       Flow   `json:"flow,omitempty"`
	Step       Step   `json:"step,omitempty"`
	Area       string `json:"area,omitempty"`
	Prefecture string `json:"prefecture,omitempty"`
}

// Idle is the terminal "no active flow" state.
func Idle() State {
	return State{}
}

// IsIdle reports whether no flow is active.
func (s State) IsIdle() bool {
	return s.Step == StepNone
}

// valid checks that the partial selection matches what the step requires.
func (s State) valid() bool {
	switch s.Step {
	case StepNone:
		return s.Flow == FlowNone && s.Area == "" && s.Prefecture == ""
	case StepArea:
		return s.flowKnown() && s.Area == "" && s.Prefecture == ""
	case StepPrefecture:
		return s.flowKnown() && s.Area != "" && s.Prefecture == ""
	case StepCity:
		return s.flowKnown() && s.Area != "" && s.Prefecture != ""
	case StepFreeText:
		return s.flowKnown() && s.Area == "" && s.Prefecture == ""
	default:
		return false
	}
}

func (s State) flowKnown() bool {
	return s.Flow == FlowRegister || s.Flow == FlowLookup
}

// Token serializes the state for the storage layer. Idle encodes to the
// empty string so fresh users and finished flows look identical in storage.
func (s State) Token() string {
	if s.IsIdle() {
		return ""
	}
	b, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return string(b)
}

// DecodeToken parses a stored token. Anything ill-formed — bad JSON, unknown
// step, or a partial selection that does not match the step — decodes to
// Idle rather than failing.
func DecodeToken(token string) State {
	if token == "" {
		return Idle()
	}
	var s State
	if err := json.Unmarshal([]byte(token), &s); err != nil {
		return Idle()
	}
	if !s.valid() {
		return Idle()
	}
	return s
}
