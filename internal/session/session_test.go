package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"comprobantes/internal/panel"
	"comprobantes/internal/store"
	"comprobantes/internal/views"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	s, err := store.Load(context.Background(), store.Embedded{})
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}
	return New("test", s, views.New(), panel.DefaultMargin, zerolog.Nop())
}

func row(i int) *int { return &i }

func TestHandleContextMenuThenMeasured(t *testing.T) {
	s := newSession(t)

	out, err := s.Handle(Inbound{Type: EventContextMenu, Row: row(3), X: 900, Y: 700})
	if err != nil {
		t.Fatalf("contextmenu: %v", err)
	}
	if out.State != "row_selected" || !out.Visible || out.Selected == nil || *out.Selected != 3 {
		t.Fatalf("unexpected state %+v", out)
	}
	if out.Position != nil {
		t.Fatal("position sent before measurement")
	}
	if !strings.Contains(out.HTML, "Creación") || !strings.Contains(out.HTML, "Anulación") {
		t.Fatalf("expected both sections for a voided row:\n%s", out.HTML)
	}

	out, err = s.Handle(Inbound{Type: EventMeasured, Row: row(3), Width: 200, Height: 250, ViewportWidth: 1000, ViewportHeight: 800})
	if err != nil {
		t.Fatalf("measured: %v", err)
	}
	if out.Position == nil || out.Position.X != 790 || out.Position.Y != 540 {
		t.Fatalf("unexpected position %+v", out.Position)
	}
}

func TestHandleEscapeAndClick(t *testing.T) {
	s := newSession(t)
	s.Handle(Inbound{Type: EventContextMenu, Row: row(0), X: 10, Y: 10})

	out, err := s.Handle(Inbound{Type: EventClick, X: 20, Y: 20, Inside: true})
	if err != nil || out != nil {
		t.Fatalf("inside click should be silent, got %+v, %v", out, err)
	}

	out, err = s.Handle(Inbound{Type: EventKeyDown, Key: "Escape"})
	if err != nil {
		t.Fatalf("keydown: %v", err)
	}
	if out.State != "idle" || out.Visible || out.Selected != nil || out.HTML != "" {
		t.Fatalf("expected idle state, got %+v", out)
	}

	out, err = s.Handle(Inbound{Type: EventKeyDown, Key: "Escape"})
	if err != nil || out != nil {
		t.Fatalf("Escape while idle should be silent, got %+v, %v", out, err)
	}

	s.Handle(Inbound{Type: EventContextMenu, Row: row(1)})
	out, err = s.Handle(Inbound{Type: EventClick, X: 500, Y: 500})
	if err != nil || out == nil || out.State != "idle" {
		t.Fatalf("outside click should close, got %+v, %v", out, err)
	}
}

func TestHandleErrors(t *testing.T) {
	s := newSession(t)

	if _, err := s.Handle(Inbound{Type: "scroll"}); !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("expected ErrUnknownEvent, got %v", err)
	}
	if _, err := s.Handle(Inbound{Type: EventContextMenu}); !errors.Is(err, ErrMissingRow) {
		t.Fatalf("expected ErrMissingRow, got %v", err)
	}
	if _, err := s.Handle(Inbound{Type: EventContextMenu, Row: row(99)}); !errors.Is(err, store.ErrRowNotFound) {
		t.Fatalf("expected ErrRowNotFound, got %v", err)
	}

	out, err := s.Handle(Inbound{Type: EventMeasured, Row: row(0), Width: 1, Height: 1})
	if err != nil || out != nil {
		t.Fatalf("measurement with no panel open should be dropped, got %+v, %v", out, err)
	}
}

func TestServeRoundTrip(t *testing.T) {
	s, err := store.Load(context.Background(), store.Embedded{})
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}
	v := views.New()
	hub := NewHub()
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		hub.Add(conn, "rt")
		defer hub.Remove(conn)
		New("rt", s, v, panel.DefaultMargin, zerolog.Nop()).Serve(conn)
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	if err := conn.WriteJSON(Inbound{Type: EventContextMenu, Row: row(6), X: 5, Y: 5}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var state Outbound
	if err := conn.ReadJSON(&state); err != nil {
		t.Fatalf("read: %v", err)
	}
	if state.Type != MessageState || state.Selected == nil || *state.Selected != 6 {
		t.Fatalf("unexpected reply %+v", state)
	}
	if hub.Count() != 1 {
		t.Fatalf("expected one registered session, got %d", hub.Count())
	}

	if err := conn.WriteJSON(Inbound{Type: "bogus"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var msg ErrorMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != MessageError || !strings.Contains(msg.Error, "bogus") {
		t.Fatalf("unexpected error reply %+v", msg)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	msg = ErrorMessage{}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != MessageError || !strings.Contains(msg.Error, "malformed") {
		t.Fatalf("unexpected error reply %+v", msg)
	}

	if err := conn.WriteJSON(Inbound{Type: EventKeyDown, Key: "Escape"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	state = Outbound{}
	if err := conn.ReadJSON(&state); err != nil {
		t.Fatalf("read: %v", err)
	}
	if state.State != "idle" || state.Visible {
		t.Fatalf("expected idle after Escape, got %+v", state)
	}
}

func TestServeRejectsOversizedFrames(t *testing.T) {
	s, err := store.Load(context.Background(), store.Embedded{})
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}
	v := views.New()
	upgrader := websocket.Upgrader{}
	done := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		defer close(done)
		New("big", s, v, panel.DefaultMargin, zerolog.Nop()).Serve(conn)
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	frame := `{"type":"keydown","key":"` + strings.Repeat("x", MaxEventSize) + `"}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("session kept reading after an oversized frame")
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected the connection to be closed")
	}
}
