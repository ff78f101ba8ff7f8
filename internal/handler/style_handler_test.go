package handler_test

import (
	"bytes"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gema-css-lab/internal/dto"
	"github.com/noah-isme/gema-css-lab/internal/service"
)

func TestStyleEditorsList(t *testing.T) {
	env := setupApp(t, service.AssistantConfig{})

	resp := doJSON(t, env.app, http.MethodGet, "/api/v2/styles", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload envelope[[]map[string]interface{}]
	decodeResponse(t, resp, &payload)
	require.Len(t, payload.Data, 8)
	require.Equal(t, 8, payload.Meta["count"])
	require.Equal(t, "box-shadow", payload.Data[0]["property"])
	require.NotEmpty(t, payload.Data[0]["declaration"])
}

func TestStyleFormat(t *testing.T) {
	env := setupApp(t, service.AssistantConfig{})

	req := httptest.NewRequest(http.MethodPost, "/api/v2/styles/box-shadow", bytes.NewBufferString(`{"offsetX": 10, "opacity": 0.5}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload envelope[dto.StyleFormatResponse]
	decodeResponse(t, resp, &payload)
	require.Equal(t, "box-shadow", payload.Data.Property)
	require.Equal(t, "10px 4px 8px 0px rgba(0, 0, 0, 0.50)", payload.Data.Value)
	require.Equal(t, "box-shadow: 10px 4px 8px 0px rgba(0, 0, 0, 0.50);", payload.Data.Declaration)

	resp = doJSON(t, env.app, http.MethodPost, "/api/v2/styles/filter", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeResponse(t, resp, &payload)
	require.Equal(t, "none", payload.Data.Value)
}

func TestStyleFormatErrors(t *testing.T) {
	env := setupApp(t, service.AssistantConfig{})

	resp := doJSON(t, env.app, http.MethodPost, "/api/v2/styles/margin", nil, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodPost, "/api/v2/styles/box-shadow", map[string]interface{}{"opacity": 3}, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var invalid envelope[any]
	decodeResponse(t, resp, &invalid)
	require.Equal(t, "validation failed", invalid.Message)
	require.Equal(t, "lte=1", invalid.Details["Opacity"])

	resp = doJSON(t, env.app, http.MethodPost, "/api/v2/styles/filter", map[string]interface{}{"blur": "x"}, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodGet, "/api/v2/styles/ws", nil, "")
	require.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}

func TestStyleStream(t *testing.T) {
	env := setupApp(t, service.AssistantConfig{})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = env.app.Listener(ln) }()
	t.Cleanup(func() { _ = env.app.Shutdown() })

	var conn *websocket.Conn
	require.Eventually(t, func() bool {
		conn, _, err = websocket.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/api/v2/styles/ws", nil)
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"property": "border-radius",
		"params":   map[string]interface{}{"topLeft": 12, "topRight": 12, "bottomRight": 12, "bottomLeft": 12, "unit": "px"},
	}))
	var formatted dto.StyleFormatResponse
	require.NoError(t, conn.ReadJSON(&formatted))
	require.Equal(t, "border-radius", formatted.Property)
	require.Equal(t, "12px", formatted.Value)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	var frameErr dto.StyleStreamError
	require.NoError(t, conn.ReadJSON(&frameErr))
	require.NotEmpty(t, frameErr.Error)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"property": "margin"}))
	frameErr = dto.StyleStreamError{}
	require.NoError(t, conn.ReadJSON(&frameErr))
	require.Equal(t, "unknown property", frameErr.Error)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"property": "filter"}))
	formatted = dto.StyleFormatResponse{}
	require.NoError(t, conn.ReadJSON(&formatted))
	require.Equal(t, "filter: none;", formatted.Declaration)
}
