package jsonarray

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/crimson-sun/newsdesk/internal/model"
	"github.com/crimson-sun/newsdesk/internal/source"
)

func init() {
	source.Register("json", func() source.Source {
		return &Source{}
	})
}

// Source reads a file holding a single JSON array of objects.
// A top-level null yields no records.
type Source struct{}

func (s *Source) Load(ctx context.Context, loc source.Location) ([]model.RawRecord, error) {
	f, err := source.Open(loc)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", loc.Path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var items []json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("%s: %w", loc.Path, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%s: unexpected data after JSON array", loc.Path)
	}

	records := make([]model.RawRecord, 0, len(items))
	for i, item := range items {
		obj, err := source.DecodeObject(item)
		if err != nil {
			return nil, fmt.Errorf("%s element %d: %w", loc.Path, i, err)
		}
		records = append(records, model.RawRecord{Fields: obj})
	}
	return records, nil
}
