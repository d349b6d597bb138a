// Package panel drives the comprobantes table: which row is selected and the
// contextual panel that shows a row's creation and cancellation details.
//
// A Controller belongs to a single page session. Its methods are the event
// handlers of that page and must be called from one goroutine at a time.
package panel

import (
	"errors"
	"fmt"

	"comprobantes/internal/store"
)

// State of a page session.
type State int

const (
	// Idle: no row selected, panel hidden.
	Idle State = iota
	// RowSelected: exactly one row marked, panel visible.
	RowSelected
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case RowSelected:
		return "row_selected"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// KeyEscape is the key that closes the panel.
const KeyEscape = "Escape"

var (
	// ErrPanelHidden is returned when a measurement arrives with no panel open.
	ErrPanelHidden = errors.New("panel is not open")
	// ErrStaleMeasurement is returned when a measurement belongs to a row
	// that is no longer selected.
	ErrStaleMeasurement = errors.New("measurement for a row that is no longer selected")
)

// ContextMenuEvent is a right-click over a row.
type ContextMenuEvent struct {
	Row     int
	Pointer Point
}

// MeasuredEvent reports the rendered panel size for Row, with the viewport
// it was measured in.
type MeasuredEvent struct {
	Row      int
	Panel    Size
	Viewport Size
}

// ClickEvent is a primary click anywhere in the page. Inside is the client's
// own hit test against the panel element.
type ClickEvent struct {
	Pointer Point
	Inside  bool
}

// KeyEvent is a key press anywhere in the page.
type KeyEvent struct {
	Key string
}

// View is the observable state after an event.
type View struct {
	State    State
	Selected *int
	Visible  bool
	Content  *Content
	Position *Point
}

// Controller owns the selection and the panel of one page session.
type Controller struct {
	store  store.Store
	margin float64

	selected int
	anchor   Point
	content  *Content
	bounds   *Rect
}

// NewController creates an idle controller over s.
func NewController(s store.Store, margin float64) *Controller {
	return &Controller{
		store:    s,
		margin:   margin,
		selected: -1,
	}
}

// State returns the current state.
func (c *Controller) State() State {
	if c.selected < 0 {
		return Idle
	}
	return RowSelected
}

// Rows returns the table rows in store order with the selection marked.
func (c *Controller) Rows() []Row {
	rows := BuildRows(c.store.All())
	if c.selected >= 0 && c.selected < len(rows) {
		rows[c.selected].Selected = true
	}
	return rows
}

// View returns the current observable state.
func (c *Controller) View() View {
	v := View{State: c.State()}
	if c.selected < 0 {
		return v
	}
	sel := c.selected
	v.Selected = &sel
	v.Visible = true
	if c.content != nil {
		content := *c.content
		v.Content = &content
	}
	if c.bounds != nil {
		pos := c.bounds.Origin
		v.Position = &pos
	}
	return v
}

// ContextMenu selects the clicked row, replacing any previous selection, and
// opens the panel with that row's content. The panel stays unpositioned until
// the client reports its measured size.
func (c *Controller) ContextMenu(ev ContextMenuEvent) (View, error) {
	rec, err := c.store.Get(ev.Row)
	if err != nil {
		return c.View(), err
	}

	content := BuildContent(ev.Row, rec)
	c.selected = ev.Row
	c.anchor = ev.Pointer
	c.content = &content
	c.bounds = nil
	return c.View(), nil
}

// Measured positions the open panel now that its rendered size is known.
func (c *Controller) Measured(ev MeasuredEvent) (View, error) {
	if c.selected < 0 {
		return c.View(), ErrPanelHidden
	}
	if ev.Row != c.selected {
		return c.View(), ErrStaleMeasurement
	}

	pos := Place(c.anchor, ev.Panel, ev.Viewport, c.margin)
	c.bounds = &Rect{Origin: pos, Size: ev.Panel}
	return c.View(), nil
}

// Click closes the panel when the click lands outside it. A click counts as
// inside when either the client's hit test or the placed bounds say so.
func (c *Controller) Click(ev ClickEvent) View {
	if c.selected < 0 {
		return c.View()
	}
	inside := ev.Inside || (c.bounds != nil && c.bounds.Contains(ev.Pointer))
	if !inside {
		c.Close()
	}
	return c.View()
}

// KeyDown closes the panel on Escape.
func (c *Controller) KeyDown(ev KeyEvent) View {
	if ev.Key == KeyEscape {
		c.Close()
	}
	return c.View()
}

// Close hides the panel and clears the selection.
func (c *Controller) Close() {
	c.selected = -1
	c.anchor = Point{}
	c.content = nil
	c.bounds = nil
}
