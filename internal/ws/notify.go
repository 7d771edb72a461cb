package ws

import (
	"context"
	"encoding/json"
	"time"

	"skillswap/internal/search"
	"skillswap/internal/session"

	"github.com/google/uuid"
)

const (
	TypeDirectoryUpdated = "directory_updated"
	TypeSignedIn         = "signed_in"
	TypeSignedOut        = "signed_out"
	TypeSearchResults    = "search_results"
	TypeSearchError      = "search_error"
	TypeError            = "error"
)

type Event struct {
	Type      string     `json:"type"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Timestamp string     `json:"timestamp"`
}

type SearchResultsMessage struct {
	Type       string          `json:"type"`
	Generation uint64          `json:"generation"`
	Query      string          `json:"query"`
	Results    []search.Result `json:"results"`
}

type SearchErrorMessage struct {
	Type       string `json:"type"`
	Generation uint64 `json:"generation,omitempty"`
	Query      string `json:"query,omitempty"`
	Message    string `json:"message"`
}

// Notifier turns application changes into hub messages.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

// DirectoryChanged tells every connected client to refetch the directory.
func (n *Notifier) DirectoryChanged(context.Context) {
	if n == nil || n.hub == nil {
		return
	}
	if b, ok := n.encode(Event{Type: TypeDirectoryUpdated}); ok {
		n.hub.Broadcast(b)
	}
}

// SessionEvent forwards sign-in and sign-out to that user's own
// connections. A sign-up adds a profile, so everyone gets a directory
// refresh instead.
func (n *Notifier) SessionEvent(ev session.Event) {
	if n == nil || n.hub == nil {
		return
	}
	switch ev.Type {
	case session.EventSignedUp:
		n.DirectoryChanged(context.Background())
	case session.EventSignedIn, session.EventSignedOut:
		userID := ev.UserID
		typ := TypeSignedIn
		if ev.Type == session.EventSignedOut {
			typ = TypeSignedOut
		}
		if b, ok := n.encode(Event{Type: typ, UserID: &userID}); ok {
			n.hub.SendTo(ev.UserID, b)
		}
	}
}

func (n *Notifier) encode(ev Event) ([]byte, bool) {
	ev.Timestamp = n.now().UTC().Format(time.RFC3339)
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, false
	}
	return b, true
}

func encodeSearchResponse(r search.Response) ([]byte, error) {
	if r.Err != nil {
		return json.Marshal(SearchErrorMessage{
			Type:       TypeSearchError,
			Generation: r.Generation,
			Query:      r.Query,
			Message:    "Search failed. Please try again.",
		})
	}
	results := r.Results
	if results == nil {
		results = []search.Result{}
	}
	return json.Marshal(SearchResultsMessage{
		Type:       TypeSearchResults,
		Generation: r.Generation,
		Query:      r.Query,
		Results:    results,
	})
}
