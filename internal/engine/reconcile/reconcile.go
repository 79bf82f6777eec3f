// Package reconcile maps the field names used by the various exports onto
// the canonical record schema.
package reconcile

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/crimson-sun/newsdesk/internal/model"
)

// Field is a canonical field and the input names that map onto it, in
// precedence order. The first name present with a non-null value wins.
type Field struct {
	Canonical string
	Names     []string
	set       func(r *model.Record, v *string)
}

// Fields is the synonym table. Canonical names come first in each list.
var Fields = []Field{
	{
		Canonical: "timestamp",
		Names:     []string{"timestamp", "Time", "Timestamp"},
		set:       func(r *model.Record, v *string) { r.Timestamp = v },
	},
	{
		Canonical: "author",
		Names:     []string{"author", "Author_Name", "sender"},
		set:       func(r *model.Record, v *string) { r.Author = v },
	},
	{
		Canonical: "message",
		Names:     []string{"message", "Message", "content"},
		set:       func(r *model.Record, v *string) { r.Message = v },
	},
	{
		Canonical: "description",
		Names:     []string{"description", "Description"},
		set:       func(r *model.Record, v *string) { r.Description = v },
	},
}

// reserved are input keys that never land in Extra: every synonym plus the
// fields the engine derives or stamps itself.
var reserved = func() map[string]bool {
	m := map[string]bool{"source": true, "time": true, "hour": true, "message_types": true}
	for _, f := range Fields {
		for _, n := range f.Names {
			m[n] = true
		}
	}
	return m
}()

// Reconcile renames synonym fields into a canonical Record. The raw source tag
// is carried over; derived fields are left empty. Keys outside the synonym
// table are kept in Extra.
func Reconcile(raw model.RawRecord) (model.Record, error) {
	rec := model.Record{Source: raw.Source}

	for _, f := range Fields {
		for _, name := range f.Names {
			v, ok := raw.Fields[name]
			if !ok || v == nil {
				continue
			}
			s, err := scalarText(v)
			if err != nil {
				return model.Record{}, fmt.Errorf("field %q: %w", name, err)
			}
			f.set(&rec, &s)
			break
		}
	}

	for k, v := range raw.Fields {
		if reserved[k] {
			continue
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]any)
		}
		rec.Extra[k] = v
	}
	return rec, nil
}

// scalarText renders a decoded JSON scalar as text.
func scalarText(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case json.Number:
		return x.String(), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(x), nil
	default:
		return "", fmt.Errorf("expected a scalar, got %T", v)
	}
}
