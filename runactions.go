package wit

import (
	"context"
	"maps"
)

// DefaultMaxSteps is the converse-call budget RunActions uses when the
// caller passes maxSteps <= 0.
const DefaultMaxSteps = 5

// RunActions drives a conversation to completion: it calls converse,
// dispatches the response to the registered handlers, and repeats until
// the API says stop, the step budget runs out, or something fails. It
// returns the final conversation context, which the caller feeds into
// the next RunActions call for the same session.
//
// message is the user's utterance for the first step only; later steps
// converse without one. A nil sessionContext starts a fresh
// conversation.
//
// Concurrent calls for the same session id race deliberately: the
// later call wins. The earlier call stops invoking handlers as soon as
// it observes it has been superseded and returns its last context with
// a nil error; preemption is a normal outcome, not a failure. The
// check happens at step boundaries only; a converse call already in
// flight is allowed to finish (its result is discarded).
func (c *Client) RunActions(ctx context.Context, sessionID, message string, sessionContext map[string]any, maxSteps int) (map[string]any, error) {
	if c.actions == nil {
		return nil, ErrNoActions
	}
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	if sessionContext == nil {
		sessionContext = map[string]any{}
	}

	requestNumber := c.sessions.begin(sessionID)
	defer c.sessions.endIfLatest(sessionID, requestNumber)

	return c.runActions(ctx, sessionID, requestNumber, message, sessionContext, maxSteps)
}

// runActions is the loop body, carrying all conversation state
// explicitly. One iteration is one converse step.
func (c *Client) runActions(ctx context.Context, sessionID string, requestNumber int, message string, current map[string]any, stepsLeft int) (map[string]any, error) {
	for {
		if stepsLeft <= 0 {
			return nil, ErrStepLimit
		}

		resp, err := c.Converse(ctx, sessionID, message, current, false)
		if err != nil {
			return nil, err
		}

		// Preemption check: a newer call for this session may have
		// started while converse was in flight. If so this call is
		// stale: hand back the context untouched and run nothing.
		if !c.sessions.isLatest(sessionID, requestNumber) {
			c.logger.Debug("conversation superseded, stopping",
				"session_id", sessionID,
				"request_number", requestNumber,
			)
			return current, nil
		}

		// Older API versions said {type: merge} where newer ones say
		// {type: action, action: merge}. Normalize before dispatch.
		kind, action := resp.Type, resp.Action
		if kind == typeMerge {
			kind, action = typeAction, "merge"
		}

		switch kind {
		case typeError:
			return nil, ErrConverseRefused

		case typeStop:
			return current, nil

		case typeMsg:
			if c.actions.Send == nil {
				return nil, &UnknownActionError{Action: "send"}
			}
			c.actions.Send(
				c.handlerRequest(sessionID, message, current, resp),
				Response{Text: resp.Msg, QuickReplies: resp.QuickReplies},
			)
			// Delivering a message does not change the context.

		case typeAction:
			h, ok := c.actions.Named[action]
			if !ok || h == nil {
				return nil, &UnknownActionError{Action: action}
			}
			next := h(c.handlerRequest(sessionID, message, current, resp))
			if next == nil {
				c.logger.Warn("action returned no context, assuming empty",
					"session_id", sessionID,
					"action", action,
				)
				next = map[string]any{}
			}
			current = next

		default:
			return nil, &UnknownResponseTypeError{Type: kind}
		}

		// Re-check after the handler: it may have blocked long enough
		// for a newer call to arrive.
		if !c.sessions.isLatest(sessionID, requestNumber) {
			return current, nil
		}

		message = ""
		stepsLeft--
	}
}

// handlerRequest builds the Request passed to a handler. The context is
// cloned shallowly so the handler cannot reach into the loop's working
// copy by reference.
func (c *Client) handlerRequest(sessionID, message string, current map[string]any, resp *ConverseResponse) Request {
	return Request{
		SessionID: sessionID,
		Context:   maps.Clone(current),
		Text:      message,
		Entities:  resp.Entities,
	}
}
