package ws

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/visorhq/visor/host/internal/bridge"
	"github.com/visorhq/visor/host/internal/deeplink"
	"github.com/visorhq/visor/host/internal/infrastructure/logging"
	"github.com/visorhq/visor/host/internal/infrastructure/monitoring"
)

type nopCommander struct{}

func (nopCommander) Minimize(context.Context) error                       { return nil }
func (nopCommander) Maximize(context.Context) error                       { return nil }
func (nopCommander) Unmaximize(context.Context) error                     { return nil }
func (nopCommander) Close(context.Context) error                          { return nil }
func (nopCommander) Reload(context.Context) error                         { return nil }
func (nopCommander) SetRepresentedFilename(context.Context, string) error { return nil }
func (nopCommander) SetColorScheme(context.Context, string) error         { return nil }
func (nopCommander) SetLanguage(context.Context, string) error            { return nil }
func (nopCommander) HandleTitleBarDoubleClick(context.Context) error      { return nil }

// attach dials the boundary endpoint and waits for the welcome frame, so
// all attach bookkeeping has run by the time it returns.
func attach(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/bridge" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	if _, _, err := conn.ReadMessage(); err != nil {
		conn.Close()
		t.Fatalf("welcome frame read failed: %v", err)
	}
	return conn
}

func TestShellAttachLeavesResetPending(t *testing.T) {
	gin.SetMode(gin.TestMode)

	intake, err := deeplink.NewIntake(
		[]string{"visor://open?doc=1"},
		"visor",
		deeplink.NewFileSentinel(t.TempDir()),
	)
	if err != nil {
		t.Fatalf("NewIntake failed: %v", err)
	}
	if err := intake.Reset(context.Background(), nopCommander{}); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	handler := NewHandler(bridge.NewRegistry(), intake, NewHub(), logging.NewDefault(), monitoring.NewMetrics())
	router := gin.New()
	router.GET("/bridge", handler.HandleConnection)
	srv := httptest.NewServer(router)
	defer srv.Close()

	// the shell reconnecting mid reset cycle is not a page load: it must
	// not consume the sentinel out from under the reloading renderer
	shell := attach(t, srv, "?role=shell")
	defer shell.Close()
	if links := intake.Links(); len(links) != 1 {
		t.Fatalf("Shell attach disturbed the pending reset: %v", links)
	}

	renderer := attach(t, srv, "")
	defer renderer.Close()
	if links := intake.Links(); len(links) != 0 {
		t.Errorf("Renderer attach redelivered stale links after reset: %v", links)
	}
}
