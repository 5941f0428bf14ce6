// Package codec is the serialization boundary between the stores and the
// durable record store.
//
// Every record is wrapped in a versioned envelope
//
//	{"schema": "community-feed", "version": 1, "data": [...]}
//
// and decoded into explicit schema structs. Documents written by the earlier
// browser portal (bare JSON arrays or objects, no envelope) are recognised as
// version 0 and migrated on read. Anything else is rejected with one of the
// sentinel errors below.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// CurrentVersion is written by every Encode call.
const CurrentVersion = 1

// legacyVersion marks documents without an envelope.
const legacyVersion = 0

var (
	ErrMalformed          = errors.New("malformed record")
	ErrSchemaMismatch     = errors.New("record schema mismatch")
	ErrUnsupportedVersion = errors.New("unsupported record version")
)

type envelope struct {
	Schema  string          `json:"schema"`
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

func seal(schema string, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", schema, err)
	}
	return json.Marshal(envelope{Schema: schema, Version: CurrentVersion, Data: data})
}

// open unwraps raw and returns the payload with its version.
func open(schema string, raw []byte) (json.RawMessage, int, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, 0, fmt.Errorf("%w: empty %s", ErrMalformed, schema)
	}

	if trimmed[0] == '[' {
		return trimmed, legacyVersion, nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return nil, 0, fmt.Errorf("%w: %s: %v", ErrMalformed, schema, err)
	}
	if _, ok := probe["schema"]; !ok {
		return trimmed, legacyVersion, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, 0, fmt.Errorf("%w: %s: %v", ErrMalformed, schema, err)
	}
	if env.Schema != schema {
		return nil, 0, fmt.Errorf("%w: want %q, got %q", ErrSchemaMismatch, schema, env.Schema)
	}
	if env.Version != CurrentVersion {
		return nil, 0, fmt.Errorf("%w: %s version %d", ErrUnsupportedVersion, schema, env.Version)
	}
	if len(env.Data) == 0 {
		return nil, 0, fmt.Errorf("%w: %s has no data", ErrMalformed, schema)
	}
	return env.Data, env.Version, nil
}

// strict decodes data into v rejecting unknown fields.
func strict(schema string, data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, schema, err)
	}
	return nil
}

// lenient decodes legacy data, ignoring fields the browser portal may have
// added over time.
func lenient(schema string, data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: legacy %s: %v", ErrMalformed, schema, err)
	}
	return nil
}

func decode(schema string, raw []byte, current, legacy any) (bool, error) {
	data, version, err := open(schema, raw)
	if err != nil {
		return false, err
	}
	if version == legacyVersion {
		return true, lenient(schema, data, legacy)
	}
	return false, strict(schema, data, current)
}
