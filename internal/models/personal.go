package models

import (
	"encoding/json"
	"fmt"
)

// PersonalInfo is one submission of the personal-data form. Submissions are
// never updated; each save appends a new record.
type PersonalInfo struct {
	ID        string
	Email     string
	Timestamp string

	// Fields holds the submitted form fields (e.g. nombreCompleto, edad).
	Fields map[string]Value
}

// reservedPersonalKeys are managed by the server and cannot be set through Fields.
var reservedPersonalKeys = map[string]bool{
	"id":        true,
	"email":     true,
	"timestamp": true,
}

// IsReservedPersonalKey reports whether key is managed by the server.
func IsReservedPersonalKey(key string) bool {
	return reservedPersonalKeys[key]
}

func (p *PersonalInfo) GetID() string { return p.ID }
func (p *PersonalInfo) SetID(id string) { p.ID = id }

// MarshalJSON writes the record as a single flat object.
func (p PersonalInfo) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Fields)+3)
	for k, v := range p.Fields {
		if reservedPersonalKeys[k] || !v.IsValid() {
			continue
		}
		out[k] = v
	}
	out["id"] = p.ID
	out["email"] = p.Email
	out["timestamp"] = p.Timestamp
	return json.Marshal(out)
}

// UnmarshalJSON reads a flat object. Non-scalar fields are skipped, matching
// what the service accepts on input.
func (p *PersonalInfo) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = PersonalInfo{Fields: make(map[string]Value)}
	for k, msg := range raw {
		switch k {
		case "id":
			if err := json.Unmarshal(msg, &p.ID); err != nil {
				return fmt.Errorf("personal info id: %w", err)
			}
		case "email":
			if err := json.Unmarshal(msg, &p.Email); err != nil {
				return fmt.Errorf("personal info email: %w", err)
			}
		case "timestamp":
			if err := json.Unmarshal(msg, &p.Timestamp); err != nil {
				return fmt.Errorf("personal info timestamp: %w", err)
			}
		default:
			var v Value
			if err := v.UnmarshalJSON(msg); err != nil {
				continue
			}
			p.Fields[k] = v
		}
	}
	return nil
}
