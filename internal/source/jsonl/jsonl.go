package jsonl

import (
	"bufio"
	"bytes"
	"context"
	"fmt"

	"github.com/crimson-sun/newsdesk/internal/model"
	"github.com/crimson-sun/newsdesk/internal/source"
)

const maxLineSize = 16 * 1024 * 1024

func init() {
	source.Register("jsonl", func() source.Source {
		return &Source{}
	})
}

// Source reads line-delimited JSON: one object per line.
// Blank lines are skipped; any other line that is not a single object fails the whole file.
type Source struct{}

func (s *Source) Load(ctx context.Context, loc source.Location) ([]model.RawRecord, error) {
	f, err := source.Open(loc)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []model.RawRecord
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	line := 0
	for sc.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		obj, err := source.DecodeObject(b)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", loc.Path, line, err)
		}
		records = append(records, model.RawRecord{Fields: obj})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", loc.Path, err)
	}
	return records, nil
}
