package stdout

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/newsdesk/internal/model"
	"github.com/crimson-sun/newsdesk/internal/output"
)

func testRecord() model.Record {
	return model.Record{
		Timestamp:    model.Ptr("08:29"),
		Author:       model.Ptr("A"),
		Message:      model.Ptr(`אזעקה <b>&</b> "צבע אדום"`),
		Source:       "cleansed",
		Time:         &model.Clock{Hour: 8, Minute: 29},
		Hour:         model.Ptr(8),
		MessageTypes: []string{"אזעקה"},
	}
}

func TestOutputCompactJSON(t *testing.T) {
	var buf bytes.Buffer
	out := NewWriter(&buf, output.Standard, false)
	require.NoError(t, out.Write(context.Background(), testRecord()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "NDJSON is one line per record")

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &m))
	assert.Equal(t, "cleansed", m["source"])
	assert.Contains(t, lines[0], "<b>&</b>", "HTML is not escaped")
	assert.Contains(t, lines[0], "אזעקה", "non-ASCII written verbatim")
}

func TestOutputPrettyJSON(t *testing.T) {
	var buf bytes.Buffer
	out := NewWriter(&buf, output.Standard, true)
	require.NoError(t, out.Write(context.Background(), testRecord()))

	assert.Greater(t, strings.Count(buf.String(), "\n"), 1)
	assert.Contains(t, buf.String(), `  "message_types": [`)
}

func TestOutputMinimalDropsDescription(t *testing.T) {
	rec := testRecord()
	rec.Description = model.Ptr("פרטים")

	var buf bytes.Buffer
	out := NewWriter(&buf, output.Minimal, false)
	require.NoError(t, out.Write(context.Background(), rec))
	assert.NotContains(t, buf.String(), "פרטים")
}

func TestClose(t *testing.T) {
	assert.NoError(t, New(output.Standard, false).Close())
}
