package session

// Inbound event types sent by the page.
const (
	EventContextMenu = "contextmenu"
	EventMeasured    = "measured"
	EventClick       = "click"
	EventKeyDown     = "keydown"
)

// Outbound message types.
const (
	MessageState = "state"
	MessageError = "error"
)

// Inbound is one event forwarded by the page script.
type Inbound struct {
	Type           string  `json:"type"`
	Row            *int    `json:"row,omitempty"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Inside         bool    `json:"inside"`
	Key            string  `json:"key"`
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	ViewportWidth  float64 `json:"viewport_width"`
	ViewportHeight float64 `json:"viewport_height"`
}

// Position is where the page must place the panel.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Outbound is the state pushed back after every handled event.
type Outbound struct {
	Type     string    `json:"type"`
	State    string    `json:"state"`
	Selected *int      `json:"selected"`
	Visible  bool      `json:"visible"`
	HTML     string    `json:"html,omitempty"`
	Position *Position `json:"position"`
}

// ErrorMessage reports an event the session could not apply.
type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}
