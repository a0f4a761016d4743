package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/randalmurphal/animexpr/pkg/animexpr/expr"
)

// Version is the current record format version.
// Increment when making breaking changes to the record structure.
const Version = 1

// Record is the persisted form of one engine node.
// Value nodes carry Value; expression nodes carry Config.
type Record struct {
	Version   int       `json:"version"`
	EngineID  string    `json:"engine_id"`
	Tag       expr.Tag  `json:"tag"`
	Timestamp time.Time `json:"timestamp"`

	Value  *float64        `json:"value,omitempty"`
	Config json.RawMessage `json:"config,omitempty"`
}

// NewValueRecord creates a record for a value node.
func NewValueRecord(engineID string, tag expr.Tag, v float64) *Record {
	return &Record{
		Version:   Version,
		EngineID:  engineID,
		Tag:       tag,
		Timestamp: time.Now().UTC(),
		Value:     &v,
	}
}

// NewConfigRecord creates a record for an expression node.
// Config must already be JSON-serialized.
func NewConfigRecord(engineID string, tag expr.Tag, config []byte) *Record {
	return &Record{
		Version:   Version,
		EngineID:  engineID,
		Tag:       tag,
		Timestamp: time.Now().UTC(),
		Config:    config,
	}
}

// IsExpression reports whether the record holds an expression config.
func (r *Record) IsExpression() bool {
	return len(r.Config) > 0
}

// Marshal serializes a record to JSON.
func (r *Record) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// Unmarshal deserializes a record from JSON.
func Unmarshal(data []byte) (*Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	if r.Version > Version {
		return nil, fmt.Errorf("record version %d newer than supported %d", r.Version, Version)
	}
	return &r, nil
}
