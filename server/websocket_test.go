package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createDevice(t *testing.T, router *gin.Engine, token, name, serial string) uint {
	t.Helper()

	body := fmt.Sprintf(`{"name": %q, "serial_number": %q}`, name, serial)
	w := doJSON(router, "POST", "/api/v1/devices", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data.ID
}

func dialDeviceWS(t *testing.T, srv *httptest.Server, token string, deviceID uint) (*websocket.Conn, *http.Response, error) {
	t.Helper()

	wsURL := strings.Replace(srv.URL, "http", "ws", 1)
	url := fmt.Sprintf("%s/ws?device_id=%d&token=%s", wsURL, deviceID, token)
	return websocket.DefaultDialer.Dial(url, nil)
}

func readWSMessage(t *testing.T, conn *websocket.Conn) map[string]string {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg map[string]string
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func connectedDeviceIDs(t *testing.T, router *gin.Engine, token string) []uint {
	t.Helper()

	w := doJSON(router, "GET", "/api/v1/devices/connected", token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data  []uint `json:"data"`
		Count int    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, resp.Count)
	return resp.Data
}

func TestWebsocketReadingIngest(t *testing.T) {
	router := newTestRouter(t)
	srv := httptest.NewServer(router)
	defer srv.Close()

	token := registerAndLogin(t, router, "alice", "p@ss1")
	deviceID := createDevice(t, router, token, "sensor1", "SN-001")

	conn, _, err := dialDeviceWS(t, srv, token, deviceID)
	require.NoError(t, err)
	defer conn.Close()

	// Heartbeats are acked without touching the store.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"heartbeat"}`)))
	assert.Equal(t, "heartbeat_ack", readWSMessage(t, conn)["type"])

	// A reading message lands in the same store the HTTP adapter reads.
	reading := `{"type":"reading","reading_date":"2026-01-02T03:04:05Z","value":21.5}`
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(reading)))
	assert.Equal(t, "reading_ack", readWSMessage(t, conn)["type"])

	w := doJSON(router, "GET", fmt.Sprintf("/api/v1/devices/%d/readings", deviceID), token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var listResp struct {
		Data []struct {
			DeviceID uint    `json:"device_id"`
			Value    float64 `json:"value"`
		} `json:"data"`
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	require.Equal(t, 1, listResp.Count)
	assert.Equal(t, deviceID, listResp.Data[0].DeviceID)
	assert.Equal(t, 21.5, listResp.Data[0].Value)

	// Garbage and unknown message types get an error reply, not a close.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"mystery"}`)))
	assert.Equal(t, "error", readWSMessage(t, conn)["type"])
}

func TestWebsocketRejectsForeignAndUnauthenticated(t *testing.T) {
	router := newTestRouter(t)
	srv := httptest.NewServer(router)
	defer srv.Close()

	aliceToken := registerAndLogin(t, router, "alice", "p@ss1")
	bobToken := registerAndLogin(t, router, "bob", "p@ss2")
	deviceID := createDevice(t, router, aliceToken, "sensor1", "SN-001")

	// Someone else's device reads as nonexistent during the handshake.
	conn, resp, err := dialDeviceWS(t, srv, bobToken, deviceID)
	require.Error(t, err)
	require.Nil(t, conn)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	conn, resp, err = dialDeviceWS(t, srv, "not-a-token", deviceID)
	require.Error(t, err)
	require.Nil(t, conn)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestConnectedDevicesScopedToOwner(t *testing.T) {
	router := newTestRouter(t)
	srv := httptest.NewServer(router)
	defer srv.Close()

	aliceToken := registerAndLogin(t, router, "alice", "p@ss1")
	bobToken := registerAndLogin(t, router, "bob", "p@ss2")
	deviceID := createDevice(t, router, aliceToken, "sensor1", "SN-001")

	conn, _, err := dialDeviceWS(t, srv, aliceToken, deviceID)
	require.NoError(t, err)
	defer conn.Close()

	assert.Contains(t, connectedDeviceIDs(t, router, aliceToken), deviceID)
	assert.NotContains(t, connectedDeviceIDs(t, router, bobToken), deviceID,
		"bob must not see alice's connected device id")

	// Disconnecting clears the registration.
	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool {
		w := doJSON(router, "GET", "/api/v1/devices/connected", aliceToken, "")
		return w.Code == http.StatusOK && strings.Contains(w.Body.String(), `"count":0`)
	}, 2*time.Second, 20*time.Millisecond)
}
