// Package wit is a client for the Wit natural-language-understanding
// HTTP API. It covers the message and converse endpoints, entity
// management, and a callback-driven conversation loop (RunActions)
// that repeatedly calls converse and dispatches on the response type
// until the conversation stops.
//
// Conversations are grouped by caller-chosen session ids. When two
// RunActions calls race on the same session, the later call wins: the
// earlier one notices it has been superseded at its next step boundary
// and returns without running further callbacks.
package wit
