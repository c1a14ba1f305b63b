package wit

import "sync"

// sessionTracker arbitrates concurrent RunActions calls on the same
// session id. Each call obtains a request number from begin; only the
// call holding the highest number for a session is "latest" and may
// keep running callbacks. Older calls observe they have been
// superseded via isLatest and bow out at the next step boundary.
//
// The tracker is owned by the Client rather than being package state,
// so two clients never interfere with each other's sessions.
type sessionTracker struct {
	mu      sync.Mutex
	current map[string]int
}

func newSessionTracker() *sessionTracker {
	return &sessionTracker{current: make(map[string]int)}
}

// begin registers a new call for the session and returns its request
// number: 1 for a fresh session, previous+1 otherwise. The returned
// number becomes the session's current value, superseding any call
// still running with a lower one.
func (t *sessionTracker) begin(sessionID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := t.current[sessionID] + 1
	t.current[sessionID] = n
	return n
}

// isLatest reports whether requestNumber is still the session's
// current value.
func (t *sessionTracker) isLatest(sessionID string, requestNumber int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current[sessionID] == requestNumber
}

// endIfLatest removes the session entry, but only if requestNumber is
// still current. A superseded call leaves the entry alone: it belongs
// to the newer call now.
func (t *sessionTracker) endIfLatest(sessionID string, requestNumber int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current[sessionID] == requestNumber {
		delete(t.current, sessionID)
	}
}
