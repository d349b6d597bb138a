// Package session connects one browser page to its panel.Controller over a
// websocket. Every connection gets its own controller, so selection state
// lives exactly as long as the page that owns it.
package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"comprobantes/internal/metrics"
	"comprobantes/internal/panel"
	"comprobantes/internal/store"
	"comprobantes/internal/views"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// ErrUnknownEvent is returned for an event type the session does not handle.
var ErrUnknownEvent = errors.New("unknown event type")

// ErrMissingRow is returned when a row event carries no row index.
var ErrMissingRow = errors.New("event has no row")

// MaxEventSize bounds a single inbound frame. Events are small JSON objects.
const MaxEventSize = 4096

// Session handles the events of one page.
type Session struct {
	ID    string
	ctrl  *panel.Controller
	views *views.Views
	log   zerolog.Logger
}

// New creates a session with an idle controller over s.
func New(id string, s store.Store, v *views.Views, margin float64, log zerolog.Logger) *Session {
	return &Session{
		ID:    id,
		ctrl:  panel.NewController(s, margin),
		views: v,
		log:   log.With().Str("session", id).Logger(),
	}
}

// Handle applies one event. A nil reply with a nil error means there is
// nothing to send back.
func (s *Session) Handle(msg Inbound) (*Outbound, error) {
	metrics.SessionEvents.WithLabelValues(eventLabel(msg.Type)).Inc()

	var (
		view panel.View
		err  error
	)
	switch msg.Type {
	case EventContextMenu:
		if msg.Row == nil {
			return nil, ErrMissingRow
		}
		view, err = s.ctrl.ContextMenu(panel.ContextMenuEvent{
			Row:     *msg.Row,
			Pointer: panel.Point{X: msg.X, Y: msg.Y},
		})
		if err != nil {
			return nil, err
		}
		metrics.PanelOpens.Inc()
		s.log.Debug().Int("row", *msg.Row).Msg("panel opened")

	case EventMeasured:
		if msg.Row == nil {
			return nil, ErrMissingRow
		}
		view, err = s.ctrl.Measured(panel.MeasuredEvent{
			Row:      *msg.Row,
			Panel:    panel.Size{Width: msg.Width, Height: msg.Height},
			Viewport: panel.Size{Width: msg.ViewportWidth, Height: msg.ViewportHeight},
		})
		if errors.Is(err, panel.ErrStaleMeasurement) || errors.Is(err, panel.ErrPanelHidden) {
			// The page already moved on; its next state message supersedes this one.
			s.log.Debug().Err(err).Msg("measurement dropped")
			return nil, nil
		}
		if err != nil {
			return nil, err
		}

	case EventClick:
		was := s.ctrl.State()
		view = s.ctrl.Click(panel.ClickEvent{
			Pointer: panel.Point{X: msg.X, Y: msg.Y},
			Inside:  msg.Inside,
		})
		if was == view.State {
			return nil, nil
		}

	case EventKeyDown:
		was := s.ctrl.State()
		view = s.ctrl.KeyDown(panel.KeyEvent{Key: msg.Key})
		if was == view.State {
			return nil, nil
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, msg.Type)
	}

	return s.render(view)
}

// eventLabel keeps client-supplied types out of metric labels
func eventLabel(t string) string {
	switch t {
	case EventContextMenu, EventMeasured, EventClick, EventKeyDown:
		return t
	}
	return "unknown"
}

func (s *Session) render(view panel.View) (*Outbound, error) {
	out := &Outbound{
		Type:     MessageState,
		State:    view.State.String(),
		Selected: view.Selected,
		Visible:  view.Visible,
	}
	if view.Content != nil {
		html, err := s.views.Panel(*view.Content)
		if err != nil {
			return nil, err
		}
		out.HTML = html
	}
	if view.Position != nil {
		out.Position = &Position{X: view.Position.X, Y: view.Position.Y}
	}
	return out, nil
}

// Serve reads events from conn until it closes, replying to each one.
func (s *Session) Serve(conn *websocket.Conn) error {
	defer s.ctrl.Close()
	conn.SetReadLimit(MaxEventSize)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return err
			}
			return nil
		}

		var msg Inbound
		var reply *Outbound
		if err = json.Unmarshal(data, &msg); err != nil {
			err = fmt.Errorf("malformed event: %w", err)
		} else {
			reply, err = s.Handle(msg)
		}
		if err != nil {
			s.log.Warn().Err(err).Str("type", msg.Type).Msg("event rejected")
			if werr := conn.WriteJSON(ErrorMessage{Type: MessageError, Error: err.Error()}); werr != nil {
				return werr
			}
			continue
		}
		if reply == nil {
			continue
		}
		if err := conn.WriteJSON(reply); err != nil {
			return err
		}
	}
}
