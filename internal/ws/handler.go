package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"skillswap/internal/search"
	"skillswap/internal/session"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Authenticator resolves the optional ?token= query parameter.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (session.Identity, error)
}

type Handler struct {
	hub      *Hub
	searcher search.Searcher
	auth     Authenticator
	debounce time.Duration
	upgrader websocket.Upgrader
	logger   *log.Logger
}

// NewHandler accepts upgrades from the given browser origins. An empty list
// or "*" allows any origin.
func NewHandler(hub *Hub, searcher search.Searcher, auth Authenticator, debounce time.Duration, allowedOrigins []string, logger *log.Logger) *Handler {
	return &Handler{
		hub:      hub,
		searcher: searcher,
		auth:     auth,
		debounce: debounce,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowed []string) func(*http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		o = strings.ToLower(strings.TrimSpace(o))
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		if o != "" {
			set[o] = true
		}
	}
	if len(set) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		// non-browser clients send no Origin
		if origin == "" {
			return true
		}
		return set[strings.ToLower(origin)]
	}
}

type searchRequest struct {
	Query string `json:"query"`
}

func (h *Handler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/ws/events", h.HandleEvents)
	r.Get("/ws/search", h.HandleSearch)
}

// HandleEvents streams hub messages only.
func (h *Handler) HandleEvents(c fiber.Ctx) error {
	return h.serve(c, false)
}

// HandleSearch streams hub messages and answers {"query": "..."} messages
// with debounced search results.
func (h *Handler) HandleSearch(c fiber.Ctx) error {
	return h.serve(c, true)
}

func (h *Handler) serve(c fiber.Ctx, withSearch bool) error {
	if h == nil || h.hub == nil || (withSearch && h.searcher == nil) {
		return fiber.ErrServiceUnavailable
	}

	fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := h.identify(r)
		if !ok {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logf("[WS] upgrade error | error=%v", err)
			return
		}

		client := NewClient(h.hub, conn, userID, h.logger)
		if withSearch {
			h.attachSearch(client)
		}
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})

	return fiberHandler(c)
}

// identify returns uuid.Nil for anonymous connections. A token that is
// present but invalid is rejected.
func (h *Handler) identify(r *http.Request) (uuid.UUID, bool) {
	token := r.URL.Query().Get("token")
	if token == "" {
		return uuid.Nil, true
	}
	if h.auth == nil {
		return uuid.Nil, false
	}
	id, err := h.auth.Authenticate(r.Context(), token)
	if err != nil {
		return uuid.Nil, false
	}
	return id.UserID, true
}

func (h *Handler) attachSearch(client *Client) {
	sess := search.NewSession(context.Background(), h.searcher, h.debounce, func(resp search.Response) {
		b, err := encodeSearchResponse(resp)
		if err != nil {
			h.logf("[WS] encode search response failed | error=%v", err)
			return
		}
		if !client.Send(b) {
			h.logf("[WS] search response dropped | generation=%d", resp.Generation)
		}
	}, h.logger)

	client.onMessage = func(raw []byte) {
		var req searchRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			if b, err := json.Marshal(SearchErrorMessage{Type: TypeError, Message: "Invalid message"}); err == nil {
				client.Send(b)
			}
			return
		}
		sess.Submit(req.Query)
	}
	client.onClose = sess.Close
}

func (h *Handler) logf(format string, args ...any) {
	if h != nil && h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
