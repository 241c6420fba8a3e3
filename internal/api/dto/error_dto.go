package dto

import "encoding/json"

// ErrorResponse is the backend error payload. Message is always top level;
// Error is either the HTTP reason phrase or a nested object.
type ErrorResponse struct {
	Status  int             `json:"status,omitempty"`
	Error   json.RawMessage `json:"error,omitempty"`
	Code    string          `json:"code,omitempty"`
	Message string          `json:"message,omitempty"`
	Details map[string]any  `json:"details,omitempty"`
}

// ServerMessage extracts the most specific message in the payload.
func (e ErrorResponse) ServerMessage() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Error) == 0 {
		return ""
	}
	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(e.Error, &nested); err == nil && nested.Message != "" {
		return nested.Message
	}
	var plain string
	if err := json.Unmarshal(e.Error, &plain); err == nil {
		return plain
	}
	return ""
}
