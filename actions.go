package wit

import "log/slog"

// Request carries one conversation step into a handler: the session it
// belongs to, the context as of this step, the user's message (empty
// after the first step), and the entities the API extracted.
//
// Context is a shallow copy of the loop's working context, so a handler
// mutating it in place does not leak into later steps. ActionHandlers
// change the conversation state by returning a new context instead.
type Request struct {
	SessionID string
	Context   map[string]any
	Text      string
	Entities  map[string]any
}

// Response is what the bot wants said to the user when a msg response
// is dispatched to the Send handler.
type Response struct {
	Text         string
	QuickReplies []string
}

// SendHandler delivers a bot message to the user. Its return value, if
// it had one, would be ignored; message delivery does not change the
// conversation context.
type SendHandler func(req Request, resp Response)

// ActionHandler runs a named side effect and returns the new
// conversation context. Returning nil is tolerated (the loop logs a
// warning and continues with an empty context) but is almost always a
// handler bug.
type ActionHandler func(req Request) map[string]any

// Actions is the handler registry RunActions dispatches to. Send
// receives msg responses; Named maps action names from the API to
// their handlers.
type Actions struct {
	Send  SendHandler
	Named map[string]ActionHandler
}

// validate warns about registry defects without rejecting the registry.
// A client with a broken registry still constructs; the defect bites
// later, per dispatch, only if the conversation actually needs the
// missing piece. Integrations that never see msg responses can omit
// Send.
func (a *Actions) validate(logger *slog.Logger) {
	if a.Send == nil {
		logger.Warn("actions registry has no Send handler; msg responses will fail")
	}
	for name, h := range a.Named {
		if !isIdentifier(name) {
			logger.Warn("action name is not an identifier", "action", name)
		}
		if h == nil {
			logger.Warn("action has a nil handler", "action", name)
		}
	}
}

// isIdentifier reports whether s looks like a handler name the API can
// dispatch to: letters, digits, and underscores, not starting with a
// digit, non-empty.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
