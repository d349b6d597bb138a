package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"comprobantes/internal/handlers"
	"comprobantes/internal/health"
	"comprobantes/internal/models"
	"comprobantes/internal/panel"
	"comprobantes/internal/services"
	"comprobantes/internal/session"
	"comprobantes/internal/store"
	"comprobantes/internal/views"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	s, err := store.Load(context.Background(), store.Embedded{})
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}
	v := views.New()
	svc := services.NewComprobanteService(s, v, s.Fingerprint())
	export := services.NewExportService(s, s.Fingerprint(), "Comprobantes")

	return NewRouter(
		handlers.NewPageHandler(v, svc, "Comprobantes"),
		handlers.NewComprobanteHandler(svc, export),
		handlers.NewSessionHandler(s, v, session.NewHub(), panel.DefaultMargin),
		handlers.NewHealthHandler(health.NewHealthChecker(nil, s.Len())),
	)
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestComprobantesPage(t *testing.T) {
	rec := get(newTestRouter(t), "/comprobantes")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`id="comprobantes-table"`, `id="context-menu"`, "00001-000006", "263.442,63"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestListComprobantes(t *testing.T) {
	rec := get(newTestRouter(t), "/api/comprobantes")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var list []models.Comprobante
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 8 {
		t.Fatalf("len = %d, want 8", len(list))
	}
	if list[0].Number != "00000-000002" {
		t.Errorf("first number = %q", list[0].Number)
	}
}

func TestGetComprobante(t *testing.T) {
	r := newTestRouter(t)

	rec := get(r, "/api/comprobantes/3")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var detail services.ComprobanteDetail
	if err := json.NewDecoder(rec.Body).Decode(&detail); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(detail.Panel.Sections) != 2 {
		t.Errorf("sections = %d, want 2", len(detail.Panel.Sections))
	}

	if rec := get(r, "/api/comprobantes/42"); rec.Code != http.StatusNotFound {
		t.Errorf("missing row status = %d, want 404", rec.Code)
	}
	if rec := get(r, "/api/comprobantes/-"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad index status = %d, want 400", rec.Code)
	}
}

func TestGetPanel(t *testing.T) {
	rec := get(newTestRouter(t), "/api/comprobantes/0/panel")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Creación") {
		t.Errorf("panel fragment missing creation section")
	}
}

func TestExports(t *testing.T) {
	r := newTestRouter(t)

	rec := get(r, "/api/comprobantes/export.xlsx")
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Body.String(), "PK") {
		t.Errorf("xlsx export status=%d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "comprobantes.xlsx") {
		t.Errorf("content disposition = %q", cd)
	}

	rec = get(r, "/api/comprobantes/export.pdf")
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Errorf("pdf export status=%d", rec.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/health", "/health/ready", "/metrics"} {
		if rec := get(r, path); rec.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, rec.Code)
		}
	}
}

func TestStaticAssets(t *testing.T) {
	rec := get(newTestRouter(t), "/static/js/comprobantes.js")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "contextmenu") {
		t.Errorf("script does not forward contextmenu events")
	}
}

func TestSessionOverRouter(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+handlers.SessionPath, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	row := 1
	if err := conn.WriteJSON(session.Inbound{Type: session.EventContextMenu, Row: &row, X: 20, Y: 30}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var out session.Outbound
	if err := conn.ReadJSON(&out); err != nil {
		t.Fatalf("read: %v", err)
	}
	if out.State != "row_selected" || !out.Visible || out.Position != nil {
		t.Fatalf("unexpected open reply %+v", out)
	}

	if err := conn.WriteJSON(session.Inbound{
		Type: session.EventMeasured, Row: &row,
		Width: 200, Height: 100, ViewportWidth: 1024, ViewportHeight: 768,
	}); err != nil {
		t.Fatalf("write: %v", err)
	}
	out = session.Outbound{}
	if err := conn.ReadJSON(&out); err != nil {
		t.Fatalf("read: %v", err)
	}
	if out.Position == nil || out.Position.X != 20 || out.Position.Y != 30 {
		t.Fatalf("unexpected position %+v", out.Position)
	}
}
