package ws

import (
	"log/slog"
	"sync"

	"kakilima/internal/geo"
	"kakilima/internal/proximity"

	"github.com/google/uuid"
)

// frameWriter is the slice of *websocket.Conn the session needs; tests swap
// in a capturing fake.
type frameWriter interface {
	WriteJSON(v any) error
	Close() error
}

// session is the broker-side state of one websocket connection. It owns the
// outbound queue: all writes to the wire go through the write pump so the
// gorilla connection never sees concurrent writers.
type session struct {
	id     string
	conn   frameWriter
	logger *slog.Logger

	send      chan Envelope
	closeOnce sync.Once

	mu       sync.Mutex
	userID   uuid.UUID
	roles    []string
	authed   bool
	onMap    bool // member of the buyer topic after joinMap
	viewer   *geo.Point
	followed map[uuid.UUID]struct{}
	tracker  *proximity.Tracker
}

func newSession(id string, conn frameWriter, queueLen int, alertRadiusMeters float64, logger *slog.Logger) *session {
	if queueLen <= 0 {
		queueLen = 32
	}

	return &session{
		id:       id,
		conn:     conn,
		logger:   logger,
		send:     make(chan Envelope, queueLen),
		followed: make(map[uuid.UUID]struct{}),
		tracker:  proximity.NewTracker(alertRadiusMeters),
	}
}

// writePump drains the outbound queue onto the wire. It exits when the queue
// is closed or a write fails; a failed write is terminal for the connection.
func (s *session) writePump() {
	for env := range s.send {
		if err := s.conn.WriteJSON(env); err != nil {
			s.logger.Debug("websocket write failed",
				slog.String("connectionID", s.id),
				slog.String("error", err.Error()))

			return
		}
	}
}

// enqueue offers an envelope to the outbound queue without blocking. A full
// queue drops the frame; realtime position fan-out tolerates loss, a slow
// consumer must not stall the broker.
func (s *session) enqueue(env Envelope) bool {
	select {
	case s.send <- env:
		return true
	default:
		s.logger.Warn("dropping frame for slow websocket consumer",
			slog.String("connectionID", s.id),
			slog.String("kind", string(env.Kind)))

		return false
	}
}

// close shuts the outbound queue and the transport. Safe to call twice.
func (s *session) close() {
	s.closeOnce.Do(func() {
		close(s.send)
		_ = s.conn.Close()
	})
}

func (s *session) setAuth(userID uuid.UUID, roles []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
	s.roles = roles
	s.authed = true
}

// auth returns the authenticated user, if any.
func (s *session) auth() (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.userID, s.authed
}

func (s *session) joinMap() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onMap = true
}

// isBuyerTopic reports whether the session is the given buyer's topic member.
func (s *session) isBuyerTopic(buyerID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.onMap && s.authed && s.userID == buyerID
}

func (s *session) follow(vendorID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.followed[vendorID] = struct{}{}
}

func (s *session) unfollow(vendorID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.followed, vendorID)
	s.tracker.Forget(vendorID)
}

func (s *session) follows(vendorID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.followed[vendorID]

	return ok
}

func (s *session) setViewer(pt geo.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewer = &pt
}

func (s *session) viewerPosition() (geo.Point, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.viewer == nil {
		return geo.Point{}, false
	}

	return *s.viewer, true
}
