package handler

import (
	"net/http"
	"strconv"
	"time"

	"nakshatra/config"
	"nakshatra/internal/auth"
	"nakshatra/internal/domain"
	"nakshatra/internal/models"
	"nakshatra/internal/repository"
	"nakshatra/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	chatWriteWait  = 10 * time.Second
	chatPongWait   = 60 * time.Second
	chatPingPeriod = (chatPongWait * 9) / 10
)

var chatUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type wsMessage struct {
	Type     string `json:"type"`
	Content  string `json:"content"`
	MediaURL string `json:"media_url,omitempty"`
	SenderID uint   `json:"sender_id,omitempty"`
}

// UpgradeChatWS upgrades to a websocket for in-session messaging.
// Query: token, session_id. The session must be ACTIVE and the caller
// must be the client or the astrologer of that session.
func UpgradeChatWS(cfg *config.JWTConfig, hub *ws.Hub, sessionRepo *repository.SessionRepository, astroRepo *repository.AstrologerRepository, messageRepo *repository.MessageRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		sessionIDStr := c.Query("session_id")
		if token == "" || sessionIDStr == "" {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "token and session_id required")
			return
		}
		claims, err := auth.ParseAccessToken(cfg, token)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
			return
		}
		sessionID64, err := strconv.ParseUint(sessionIDStr, 10, 64)
		if err != nil || sessionID64 == 0 {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid session_id")
			return
		}
		sessionID := uint(sessionID64)
		session, err := sessionRepo.GetByID(sessionID)
		if err != nil {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "session not found")
			return
		}
		if session.Status != domain.SessionStatusActive {
			respondError(c, http.StatusForbidden, "FORBIDDEN", "session is not active")
			return
		}
		astrologer, err := astroRepo.GetByID(session.AstrologerID)
		if err != nil {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "astrologer not found")
			return
		}
		if !isParticipant(session, astrologer, claims.UserID) {
			respondError(c, http.StatusForbidden, "FORBIDDEN", "not part of this session")
			return
		}

		conn, err := chatUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		client := &ws.Client{UserID: claims.UserID, Send: make(chan []byte, 256)}
		room := hub.GetOrCreateRoom(sessionID)
		room.Join(client)
		defer func() {
			room.Leave(client)
			client.Close()
			if room.Empty() {
				hub.RemoveRoom(sessionID)
			}
		}()

		go chatWritePump(client, conn)
		chatReadPump(conn, client, room, messageRepo, sessionID)
	}
}

func chatReadPump(conn *websocket.Conn, client *ws.Client, room *ws.Room, messageRepo *repository.MessageRepository, sessionID uint) {
	conn.SetReadDeadline(time.Now().Add(chatPongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(chatPongWait))
		return nil
	})
	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Type != "message" || (msg.Content == "" && msg.MediaURL == "") {
			continue
		}
		record := &models.ChatMessage{
			SessionID: sessionID,
			SenderID:  client.UserID,
			Content:   msg.Content,
			MediaURL:  msg.MediaURL,
		}
		// Persistence is best-effort; delivery still happens.
		_ = messageRepo.Create(record)
		msg.SenderID = client.UserID
		room.Broadcast(client, msg)
	}
}

func chatWritePump(client *ws.Client, conn *websocket.Conn) {
	ticker := time.NewTicker(chatPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-client.Send:
			conn.SetWriteDeadline(time.Now().Add(chatWriteWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(chatWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
