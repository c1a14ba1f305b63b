package wit

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMessage_Parse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/message" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "weather in Brussels" {
			t.Errorf("q = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"msg_id": "abc123",
			"_text": "weather in Brussels",
			"entities": {"location": [{"value": "Brussels", "confidence": 0.98}]}
		}`)
	}))
	defer srv.Close()

	c := New("t", WithAPIHost(srv.URL), WithLogger(testLogger()))
	resp, err := c.Message(context.Background(), "weather in Brussels")
	if err != nil {
		t.Fatalf("Message: %v", err)
	}

	if resp.MsgID != "abc123" {
		t.Errorf("MsgID = %q", resp.MsgID)
	}
	if resp.Text != "weather in Brussels" {
		t.Errorf("Text = %q", resp.Text)
	}
	if _, ok := resp.Entities["location"]; !ok {
		t.Errorf("missing location entity: %v", resp.Entities)
	}
}
