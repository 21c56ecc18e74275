package engine

import (
	"sync"
	"time"

	"github.com/guildline/engage-api/models"
)

// VoiceSession tracks one member's in-flight voice channel presence
type VoiceSession struct {
	ChannelID string
	JoinedAt  time.Time
	Streaming bool
	Camera    bool
}

// PresenceSession tracks one member's in-flight activity
type PresenceSession struct {
	StartedAt time.Time
	Kind      models.ActivityKind
	Name      string
}

type sessionKey struct {
	communityID string
	userID      string
}

// SessionStore holds the ephemeral voice and presence session maps. Entries
// are created on a start event and consumed on the matching end event.
// Intentionally non-durable: a restart loses in-flight sessions, bounded to
// the current session's duration, and the adapter rebuilds from the platform
// snapshot on reconnect.
type SessionStore struct {
	mu       sync.Mutex
	voice    map[sessionKey]*VoiceSession
	presence map[sessionKey]*PresenceSession
	now      func() time.Time
}

// NewSessionStore creates an empty session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		voice:    make(map[sessionKey]*VoiceSession),
		presence: make(map[sessionKey]*PresenceSession),
		now:      time.Now,
	}
}

// UpsertVoice records a voice join, or updates the flags of the running
// session. Streaming/camera are sticky for the life of the session so a
// member who streamed at any point keeps the bonus.
func (s *SessionStore) UpsertVoice(communityID, userID, channelID string, streaming, camera bool) {
	key := sessionKey{communityID: communityID, userID: userID}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.voice[key]; ok && sess.ChannelID == channelID {
		sess.Streaming = sess.Streaming || streaming
		sess.Camera = sess.Camera || camera
		return
	}
	s.voice[key] = &VoiceSession{
		ChannelID: channelID,
		JoinedAt:  s.now(),
		Streaming: streaming,
		Camera:    camera,
	}
}

// EndVoice consumes and returns the member's voice session, if any
func (s *SessionStore) EndVoice(communityID, userID string) (*VoiceSession, bool) {
	key := sessionKey{communityID: communityID, userID: userID}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.voice[key]
	if ok {
		delete(s.voice, key)
	}
	return sess, ok
}

// StartPresence records an activity start, replacing any unfinished session
// for the member (the platform never delivers a stop for the replaced one)
func (s *SessionStore) StartPresence(communityID, userID string, kind models.ActivityKind, name string) {
	key := sessionKey{communityID: communityID, userID: userID}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.presence[key] = &PresenceSession{
		StartedAt: s.now(),
		Kind:      kind,
		Name:      name,
	}
}

// EndPresence consumes and returns the member's presence session, if any
func (s *SessionStore) EndPresence(communityID, userID string) (*PresenceSession, bool) {
	key := sessionKey{communityID: communityID, userID: userID}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.presence[key]
	if ok {
		delete(s.presence, key)
	}
	return sess, ok
}

// SweepStale drops sessions older than maxAge. Covers members whose end
// event was lost in a gateway gap; their session would otherwise pin memory
// forever. Returns the number of sessions removed.
func (s *SessionStore) SweepStale(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, sess := range s.voice {
		if now.Sub(sess.JoinedAt) > maxAge {
			delete(s.voice, key)
			removed++
		}
	}
	for key, sess := range s.presence {
		if now.Sub(sess.StartedAt) > maxAge {
			delete(s.presence, key)
			removed++
		}
	}
	return removed
}
