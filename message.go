package wit

import (
	"context"
	"net/http"
	"net/url"
)

// MessageResponse is the parse result for one utterance.
type MessageResponse struct {
	MsgID    string         `json:"msg_id"`
	Text     string         `json:"_text"`
	Entities map[string]any `json:"entities"`
}

// Message runs a one-shot NLU parse of q.
func (c *Client) Message(ctx context.Context, q string) (*MessageResponse, error) {
	query := url.Values{"q": {q}}
	var out MessageResponse
	if err := c.do(ctx, http.MethodGet, "/message", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
