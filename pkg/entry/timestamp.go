package entry

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// DefaultLayout renders times the way an en-US locale string does,
// e.g. "3/14/2025, 9:26:53 PM".
const DefaultLayout = "1/2/2006, 3:04:05 PM"

// FormatTimestamp renders t in local time. An empty layout uses DefaultLayout.
func FormatTimestamp(t time.Time, layout string) string {
	if layout == "" {
		layout = DefaultLayout
	}
	return t.Local().Format(layout)
}

// IDSource hands out entry ids. Ids are ULIDs drawn from monotonic entropy,
// so two ids minted in the same millisecond still differ and sort in the
// order they were created.
type IDSource struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func NewIDSource() *IDSource {
	return &IDSource{
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
}

// New returns a fresh id stamped with t.
func (s *IDSource) New(t time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), s.entropy).String()
}

// Created is the time encoded in the entry's id. Ids not minted by an
// IDSource report false.
func (e *Entry) Created() (time.Time, bool) {
	id, err := ulid.ParseStrict(e.ID)
	if err != nil {
		return time.Time{}, false
	}
	return ulid.Time(id.Time()), true
}
