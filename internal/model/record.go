package model

// RawRecord is the intermediate type produced by sources and consumed by the engine.
// Fields holds the decoded JSON object exactly as it appeared in the input.
type RawRecord struct {
	Source string         // source tag of the originating location
	Fields map[string]any // decoded object, numbers kept as json.Number
}

// Record is a reconciled, classified message.
// Every optional field is a pointer; nil encodes as JSON null.
type Record struct {
	Timestamp    *string        `json:"timestamp"`
	Author       *string        `json:"author"`
	Message      *string        `json:"message"`
	Description  *string        `json:"description"`
	Source       string         `json:"source"`
	Time         *Clock         `json:"time"`
	Hour         *int           `json:"hour"`
	MessageTypes []string       `json:"message_types"`
	Extra        map[string]any `json:"extra,omitempty"` // unrecognized input fields
}

// HasType reports whether the record carries the given category label.
func (r Record) HasType(label string) bool {
	for _, t := range r.MessageTypes {
		if t == label {
			return true
		}
	}
	return false
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns the pointed-to string, or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
