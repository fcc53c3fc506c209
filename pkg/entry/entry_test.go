package entry

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRoundTrip(t *testing.T) {
	tests := map[string][]*Entry{
		"empty": {},
		"one":   {New("01A", "Beach", "Sand everywhere.", "3/14/2025, 9:26:53 PM")},
		"many": {
			New("01A", "Beach", "Sand everywhere.", "3/14/2025, 9:26:53 PM"),
			New("01B", "Goals", "Run, read,\nwrite \"more\".", "3/15/2025, 7:01:00 AM"),
			New("01C", "Happiness", "ünïcödé ✓", "3/16/2025, 11:59:59 PM"),
		},
	}
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			data, err := MarshalList(want)
			require.NoError(t, err)

			got, err := UnmarshalList(data)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMarshalListNil(t *testing.T) {
	data, err := MarshalList(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestUnmarshalListWireFormat(t *testing.T) {
	data := []byte(`[{"id":"1700000000000","title":"Day at the Beach","text":"Waves.","timestamp":"11/14/2023, 10:13:20 PM"},null]`)
	got, err := UnmarshalList(data)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1700000000000", got[0].ID)
	assert.Equal(t, "Day at the Beach", got[0].Title)
	assert.Equal(t, "Waves.", got[0].Text)
	assert.Equal(t, "11/14/2023, 10:13:20 PM", got[0].Timestamp)
}

func TestUnmarshalListNullAndGarbage(t *testing.T) {
	got, err := UnmarshalList([]byte(`null`))
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = UnmarshalList([]byte(`{not json`))
	assert.Error(t, err)
}

func TestSummary(t *testing.T) {
	e := New("id", "t", "first line\nsecond line", "")
	assert.Equal(t, "first line …", e.Summary(80))

	long := New("id", "t", "abcdefghij", "")
	assert.Equal(t, "abcd…", long.Summary(5))
	assert.Equal(t, "abcdefghij", long.Summary(0))
}

func TestFormatTimestamp(t *testing.T) {
	at := time.Date(2025, time.March, 14, 21, 26, 53, 0, time.Local)
	assert.Equal(t, "3/14/2025, 9:26:53 PM", FormatTimestamp(at, ""))
	assert.Equal(t, "2025-03-14", FormatTimestamp(at, "2006-01-02"))
}

func TestIDSourceUniqueWithinMillisecond(t *testing.T) {
	src := NewIDSource()
	at := time.Now()
	seen := make(map[string]struct{})
	prev := ""
	for i := 0; i < 1000; i++ {
		id := src.New(at)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestCreatedFromID(t *testing.T) {
	at := time.Date(2025, time.March, 14, 21, 26, 53, 0, time.UTC)
	e := New(NewIDSource().New(at), "Beach", "cold", "")

	got, ok := e.Created()
	require.True(t, ok)
	assert.True(t, at.Equal(got), "got %v", got)

	_, ok = New("1700000000000", "Old", "id", "").Created()
	assert.False(t, ok)
}
