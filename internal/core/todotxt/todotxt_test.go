package todotxt

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTask(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		want     Task
		wantErr  bool
		wantLine string
	}{
		{
			name: "priority and tags",
			line: "(A) Buy milk +home +shopping",
			want: Task{
				Priority:    "A",
				Description: "Buy milk +home +shopping",
				Projects:    []string{"home", "shopping"},
			},
		},
		{
			name: "creation date and metadata",
			line: "(B) 2026-10-01 Call mom @phone deadline:2026-10-20-10-00 due:2026-10-20",
			want: Task{
				Priority:    "B",
				CreatedDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
				Description: "Call mom @phone deadline:2026-10-20-10-00 due:2026-10-20",
				Contexts:    []string{"phone"},
				Metadata: Metadata{
					{Key: "deadline", Value: "2026-10-20-10-00"},
					{Key: "due", Value: "2026-10-20"},
				},
			},
		},
		{
			name: "completed with dates",
			line: "x 2026-10-02 2026-10-01 Write report +work",
			want: Task{
				Completed:     true,
				CompletedDate: time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC),
				CreatedDate:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
				Description:   "Write report +work",
				Projects:      []string{"work"},
			},
		},
		{
			name: "plain text",
			line: "just some text",
			want: Task{Description: "just some text"},
		},
		{
			name: "urls are not metadata",
			line: "read https://example.com/post",
			want: Task{Description: "read https://example.com/post"},
		},
		{
			name: "lone markers are text",
			line: "a + b @ c",
			want: Task{Description: "a + b @ c"},
		},
		{
			name:     "surrounding whitespace trimmed",
			line:     "  (C) tidy up  \r",
			want:     Task{Priority: "C", Description: "tidy up"},
			wantLine: "(C) tidy up",
		},
		{
			name:    "priority only",
			line:    "(A)",
			wantErr: true,
		},
		{
			name:    "completion marker only",
			line:    "x 2026-10-02",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTask(tt.line)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrEmptyTask)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			wantLine := tt.wantLine
			if wantLine == "" {
				wantLine = tt.line
			}
			assert.Equal(t, wantLine, got.String())
		})
	}
}

func TestTaskString_AppendsFieldsNotInDescription(t *testing.T) {
	task := Task{
		Description: "Buy milk",
		Priority:    "A",
		Projects:    []string{"home", "shopping"},
		Contexts:    []string{"store"},
	}
	task.Metadata.Set("deadline", "2026-10-20-10-00")

	assert.Equal(t, "(A) Buy milk +home +shopping @store deadline:2026-10-20-10-00", task.String())
}

func TestTaskString_DoesNotDuplicateInlineTags(t *testing.T) {
	task := Task{
		Description: "Plan +trip with @family",
		Projects:    []string{"trip", "travel"},
		Contexts:    []string{"family"},
	}

	assert.Equal(t, "Plan +trip with @family +travel", task.String())
}

func TestMetadataSet(t *testing.T) {
	var m Metadata
	m.Set("deadline", "a")
	m.Set("due", "b")
	m.Set("deadline", "c")

	v, ok := m.Get("deadline")
	assert.True(t, ok)
	assert.Equal(t, "c", v)
	assert.Len(t, m, 2)

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestTaskValidate(t *testing.T) {
	tests := []struct {
		name    string
		task    Task
		wantErr bool
	}{
		{"valid", Task{Description: "ok", Priority: "A"}, false},
		{"blank", Task{Description: "   "}, true},
		{"newline", Task{Description: "one\ntwo"}, true},
		{"bad priority", Task{Description: "ok", Priority: "a"}, true},
		{"metadata with space", Task{Description: "ok", Metadata: Metadata{{Key: "k", Value: "a b"}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate()
			assert.Equal(t, tt.wantErr, err != nil, "Validate() error = %v", err)
		})
	}
}

func TestParse_SkipsBlankLines(t *testing.T) {
	input := "(A) first +one\n\n   \nsecond @two\n"

	list, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first +one", list[0].Description)
	assert.Equal(t, "second @two", list[1].Description)
}

func TestParse_MalformedLineFailsWholeFile(t *testing.T) {
	input := "ok task\n(B)\nanother"

	list, err := Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyTask)
	assert.Contains(t, err.Error(), "line 2")
	assert.Nil(t, list)

	var lineErr *LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 2, lineErr.Line)
}

func TestParseTask_NormalizesPrefixSpacing(t *testing.T) {
	task, err := ParseTask("(A)  2026-10-01   two  spaces  +p")
	require.NoError(t, err)

	assert.Equal(t, "two  spaces  +p", task.Description, "body is kept verbatim")
	assert.Equal(t, "(A) 2026-10-01 two  spaces  +p", task.String(), "prefix fields are separated by one space")
}

func TestWrite_NoTrailingNewline(t *testing.T) {
	list := List{
		{Priority: "A", Description: "first"},
		{Description: "second", Projects: []string{"p"}},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, list))
	assert.Equal(t, "(A) first\nsecond +p", buf.String())
}

func TestWrite_EmptyList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestListAppend_RoundTrip(t *testing.T) {
	input := "(A) one +a\n(B) two +b deadline:2026-10-20-10-00\nx 2026-10-01 three +c"

	list, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	list.Append(Task{Description: "four", Priority: "C", Projects: []string{"d"}})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, list))
	assert.Equal(t, input+"\n(C) four +d", buf.String())

	reread, err := Parse(&buf)
	require.NoError(t, err)
	require.Len(t, reread, 4)
	assert.Equal(t, "four +d", reread[3].Description)
	assert.Equal(t, []string{"d"}, reread[3].Projects)
	assert.Equal(t, "C", reread[3].Priority)
}
