package wit

import (
	"context"
	"net/http"
	"net/url"
	"reflect"
	"sort"
)

// fieldKind is the shape a payload field must have on the wire.
type fieldKind int

const (
	kindString fieldKind = iota
	kindList
)

func (k fieldKind) String() string {
	if k == kindList {
		return "list"
	}
	return "string"
}

// payloadSchema maps allowed field names to their required shapes.
// Fields outside the schema are dropped, not rejected.
type payloadSchema map[string]fieldKind

// Payload schemas for the mutating entity endpoints.
var (
	entityCreateSchema = payloadSchema{"id": kindString, "doc": kindString, "values": kindList, "lookups": kindList}
	entityUpdateSchema = payloadSchema{"id": kindString, "doc": kindString, "values": kindList}
	valueSchema        = payloadSchema{"value": kindString, "expressions": kindList, "metadata": kindString}
	expressionSchema   = payloadSchema{"expression": kindString}
)

// validatePayload whitelists data against schema: unknown fields are
// silently dropped, and each remaining field must match its required
// shape. Fields are checked in sorted name order so the reported field
// is deterministic when several are wrong.
func validatePayload(data map[string]any, schema payloadSchema) (map[string]any, error) {
	fields := make([]string, 0, len(schema))
	for name := range schema {
		fields = append(fields, name)
	}
	sort.Strings(fields)

	clean := make(map[string]any, len(data))
	for _, name := range fields {
		v, ok := data[name]
		if !ok {
			continue
		}
		switch schema[name] {
		case kindString:
			if _, ok := v.(string); !ok {
				return nil, &SchemaError{Field: name, Want: "string"}
			}
		case kindList:
			if rv := reflect.ValueOf(v); rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
				return nil, &SchemaError{Field: name, Want: "list"}
			}
		}
		clean[name] = v
	}
	return clean, nil
}

// GetEntities lists the ids of all entities in the app.
func (c *Client) GetEntities(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodGet, "/entities", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PostEntities creates an entity. data allows id, doc, values, and
// lookups; anything else is dropped before the request is sent.
func (c *Client) PostEntities(ctx context.Context, data map[string]any) (map[string]any, error) {
	clean, err := validatePayload(data, entityCreateSchema)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := c.do(ctx, http.MethodPost, "/entities", nil, clean, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetEntity fetches one entity with its values.
func (c *Client) GetEntity(ctx context.Context, entityID string) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, http.MethodGet, "/entities/"+url.PathEscape(entityID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PutEntity updates an entity. data allows id, doc, and values.
func (c *Client) PutEntity(ctx context.Context, entityID string, data map[string]any) (map[string]any, error) {
	clean, err := validatePayload(data, entityUpdateSchema)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := c.do(ctx, http.MethodPut, "/entities/"+url.PathEscape(entityID), nil, clean, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteEntity deletes an entity.
func (c *Client) DeleteEntity(ctx context.Context, entityID string) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, http.MethodDelete, "/entities/"+url.PathEscape(entityID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PostValue adds a possible value to a keyword entity. data allows
// value, expressions, and metadata.
func (c *Client) PostValue(ctx context.Context, entityID string, data map[string]any) (map[string]any, error) {
	clean, err := validatePayload(data, valueSchema)
	if err != nil {
		return nil, err
	}
	path := "/entities/" + url.PathEscape(entityID) + "/values"
	var out map[string]any
	if err := c.do(ctx, http.MethodPost, path, nil, clean, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteValue removes a value from a keyword entity.
func (c *Client) DeleteValue(ctx context.Context, entityID, value string) (map[string]any, error) {
	path := "/entities/" + url.PathEscape(entityID) + "/values/" + url.PathEscape(value)
	var out map[string]any
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PostExpression adds an expression to an entity value. data allows
// only expression.
func (c *Client) PostExpression(ctx context.Context, entityID, value string, data map[string]any) (map[string]any, error) {
	clean, err := validatePayload(data, expressionSchema)
	if err != nil {
		return nil, err
	}
	path := "/entities/" + url.PathEscape(entityID) + "/values/" + url.PathEscape(value) + "/expressions"
	var out map[string]any
	if err := c.do(ctx, http.MethodPost, path, nil, clean, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteExpression removes an expression from an entity value.
func (c *Client) DeleteExpression(ctx context.Context, entityID, value, expression string) (map[string]any, error) {
	path := "/entities/" + url.PathEscape(entityID) + "/values/" + url.PathEscape(value) +
		"/expressions/" + url.PathEscape(expression)
	var out map[string]any
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
