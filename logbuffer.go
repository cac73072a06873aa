package statusscreen

// LogBuffer keeps the most recent messages shown in the log region, oldest
// first.
//
// Storage is allocated once with room for exactly Cap() entries and never
// grows; once full, every Push drops the oldest entry.
type LogBuffer struct {
	entries []string
	n       int
	total   uint64
}

// NewLogBuffer creates an empty buffer holding at most capacity entries.
// The capacity must be positive.
func NewLogBuffer(capacity int) *LogBuffer {
	if capacity <= 0 {
		panic("statusscreen: log capacity must be positive")
	}
	return &LogBuffer{entries: make([]string, capacity)}
}

// Push appends line, evicting the oldest entry when the buffer is full.
func (b *LogBuffer) Push(line string) {
	b.total++
	if b.n < len(b.entries) {
		b.entries[b.n] = line
		b.n++
		return
	}
	// Shift toward the front, capacity is small enough that a ring index
	// isn't worth it.
	copy(b.entries, b.entries[1:])
	b.entries[len(b.entries)-1] = line
}

// OverwriteLast replaces the newest entry with line. On an empty buffer it
// is the same as Push.
func (b *LogBuffer) OverwriteLast(line string) {
	if b.n == 0 {
		b.Push(line)
		return
	}
	b.entries[b.n-1] = line
}

// Snapshot returns a copy of the entries in display order.
func (b *LogBuffer) Snapshot() []string {
	out := make([]string, b.n)
	copy(out, b.entries[:b.n])
	return out
}

// Len returns the number of stored entries.
func (b *LogBuffer) Len() int {
	return b.n
}

// Cap returns the maximum number of entries.
func (b *LogBuffer) Cap() int {
	return len(b.entries)
}

// TotalPushed returns how many lines were ever pushed, evicted ones included.
func (b *LogBuffer) TotalPushed() uint64 {
	return b.total
}
