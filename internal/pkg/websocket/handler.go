package websocket

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/yigit/hostelsphere/internal/app/models/dto"
	"github.com/yigit/hostelsphere/internal/pkg/auth"
)

// Context keys set by the JWT middleware
const (
	contextSubject = "subject"
	contextRole    = "role"
)

// Handler for WebSocket connections
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewHandler creates a new WebSocket handler. allowedOrigins of ["*"] accepts any origin.
func NewHandler(hub *Hub, allowedOrigins []string, logger zerolog.Logger) *Handler {
	anyOrigin := len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*")
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return anyOrigin || origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
		logger: logger,
	}
}

// HandleConnection godoc
// @Summary Subscribe to live hostel updates
// @Description Upgrades the connection to a WebSocket. Admins receive every event; students receive events about themselves.
// @Tags live
// @Security BearerAuth
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	subject := c.GetString(contextSubject)
	role, _ := c.Get(contextRole)
	if subject == "" {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	topic := StudentTopic(subject)
	if role == auth.RoleAdmin {
		topic = TopicAdmin
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Str("subject", subject).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:     h.hub,
		conn:    conn,
		send:    make(chan []byte, 64),
		subject: subject,
		topic:   topic,
		logger:  h.logger,
	}
	if !h.hub.add(client) {
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Str("subject", subject).
		Str("topic", topic).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
