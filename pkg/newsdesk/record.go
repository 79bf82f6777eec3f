package newsdesk

import "github.com/crimson-sun/newsdesk/internal/model"

// Record is one reconciled, classified message.
// This is the stable public type; internal representations may evolve
// independently without breaking consumers.
type Record struct {
	Timestamp    *string        `json:"timestamp"`       // raw time text, nil when absent or "now"
	Author       *string        `json:"author"`          // nil when absent
	Message      *string        `json:"message"`         // nil when absent
	Description  *string        `json:"description"`     // nil when absent
	Source       string         `json:"source"`          // tag of the export it came from
	Time         *string        `json:"time"`            // HH:MM:SS when Timestamp parses as a clock time
	Hour         *int           `json:"hour"`            // hour of Time
	MessageTypes []string       `json:"message_types"`   // never empty
	Extra        map[string]any `json:"extra,omitempty"` // unrecognized input fields
}

// Dataset is the result of one Load.
type Dataset struct {
	Records  []Record // never nil
	Warnings []string // one per export that exists but could not be read
	Loaded   map[string]int
	NoData   bool // no export yielded any record
}

func recordFromModel(r model.Record) Record {
	out := Record{
		Timestamp:    r.Timestamp,
		Author:       r.Author,
		Message:      r.Message,
		Description:  r.Description,
		Source:       r.Source,
		Hour:         r.Hour,
		MessageTypes: r.MessageTypes,
		Extra:        r.Extra,
	}
	if r.Time != nil {
		s := r.Time.String()
		out.Time = &s
	}
	return out
}
