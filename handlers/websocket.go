package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"device-hub/auth"
	httpHandler "device-hub/handlers/http"
	"device-hub/usecases"
	"device-hub/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Websocket message envelopes
type incomingMessage struct {
	Type string `json:"type"` // reading | heartbeat
}

type readingPayload struct {
	Type        string    `json:"type"`
	ReadingDate time.Time `json:"reading_date"`
	Value       float64   `json:"value"`
}

// WSHandler streams readings from a connected device into the same
// owner-scoped reading path the HTTP adapter uses.
type WSHandler struct {
	mgr         *ws.Manager
	authService *auth.Service
	users       auth.UserSource
	useCase     *usecases.DeviceUseCase
}

func NewWSHandler(mgr *ws.Manager, authService *auth.Service, users auth.UserSource, useCase *usecases.DeviceUseCase) *WSHandler {
	return &WSHandler{mgr: mgr, authService: authService, users: users, useCase: useCase}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// HandleDeviceWS upgrades to websocket and ingests reading messages.
// GET /ws?device_id=<id>&token=<bearer token>
// The token must belong to the device's owner; a device owned by someone
// else is treated as unknown.
func (h *WSHandler) HandleDeviceWS(c *gin.Context) {
	caller, err := h.authService.ResolveCaller(h.users, c.Query("token"))
	if err != nil {
		log.Printf("websocket token rejected: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	deviceID64, err := strconv.ParseUint(c.Query("device_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid device_id"})
		return
	}
	deviceID := uint(deviceID64)

	if _, err := h.useCase.GetDevice(deviceID, caller.ID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	h.mgr.Register(deviceID, conn)
	log.Printf("device connected: %d", deviceID)

	defer func() {
		h.mgr.Unregister(deviceID)
		log.Printf("device disconnected: %d", deviceID)
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket read error: %v", err)
			}
			return
		}

		var envelope incomingMessage
		if err := json.Unmarshal(message, &envelope); err != nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"error","error":"bad message"}`))
			continue
		}

		switch envelope.Type {
		case "heartbeat":
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"heartbeat_ack"}`))

		case "reading":
			var payload readingPayload
			if err := json.Unmarshal(message, &payload); err != nil {
				_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"error","error":"bad reading"}`))
				continue
			}
			if _, err := h.useCase.CreateReading(deviceID, caller.ID, payload.ReadingDate, payload.Value); err != nil {
				log.Printf("websocket reading rejected for device %d: %v", deviceID, err)
				_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"error","error":"reading rejected"}`))
				continue
			}
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"reading_ack"}`))

		default:
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"error","error":"unknown message type"}`))
		}
	}
}

// GetConnectedDevices handles GET /api/v1/devices/connected. Only the
// caller's own connections are reported; another tenant's connected device
// stays as invisible here as everywhere else.
func (h *WSHandler) GetConnectedDevices(c *gin.Context) {
	caller := httpHandler.Caller(c)
	ids := make([]uint, 0)
	for _, id := range h.mgr.List() {
		if _, err := h.useCase.GetDevice(id, caller.ID); err != nil {
			continue
		}
		ids = append(ids, id)
	}
	c.JSON(http.StatusOK, gin.H{"data": ids, "count": len(ids)})
}
