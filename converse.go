package wit

import (
	"context"
	"net/http"
	"net/url"
)

// Converse response types. The set is closed: anything else out of the
// API is an UnknownResponseTypeError.
const (
	typeMsg    = "msg"    // bot has something to say; dispatch to Send
	typeAction = "action" // bot wants a named side effect run
	typeStop   = "stop"   // conversation turn is complete
	typeError  = "error"  // API refused the step
	typeMerge  = "merge"  // legacy alias for action "merge"
)

// ConverseResponse is one step of a conversation as returned by the
// converse endpoint. Which fields are set depends on Type: Msg and
// QuickReplies for msg responses, Action for action responses.
type ConverseResponse struct {
	Type         string         `json:"type"`
	Msg          string         `json:"msg,omitempty"`
	Action       string         `json:"action,omitempty"`
	QuickReplies []string       `json:"quickreplies,omitempty"`
	Entities     map[string]any `json:"entities,omitempty"`
	Confidence   float64        `json:"confidence,omitempty"`
}

// rawConverseResponse distinguishes "type absent" from "type empty" on
// the wire so a malformed response surfaces as ErrMissingResponseType
// instead of an unknown-type error.
type rawConverseResponse struct {
	Type *string `json:"type"`
	ConverseResponse
}

// Converse runs one conversation step: it posts the session context and
// an optional user message, and returns the bot's next move. reset asks
// the API to discard its server-side conversation state first.
//
// Most callers want RunActions, which drives Converse in a loop and
// dispatches the responses; Converse is the single-step primitive.
func (c *Client) Converse(ctx context.Context, sessionID, message string, sessionContext map[string]any, reset bool) (*ConverseResponse, error) {
	query := url.Values{"session_id": {sessionID}}
	if message != "" {
		query.Set("q", message)
	}
	if reset {
		query.Set("reset", "true")
	}

	if sessionContext == nil {
		sessionContext = map[string]any{}
	}

	var out rawConverseResponse
	if err := c.do(ctx, http.MethodPost, "/converse", query, sessionContext, &out); err != nil {
		return nil, err
	}
	if out.Type == nil {
		return nil, ErrMissingResponseType
	}
	resp := out.ConverseResponse
	resp.Type = *out.Type
	return &resp, nil
}
