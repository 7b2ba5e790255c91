package brand

// List accumulates brand names preserving first-seen order with exact-match
// deduplication, capped at MaxRank entries. Index 0 is rank 1.
type List struct {
	names []string
	seen  map[string]struct{}
}

func NewList() *List {
	return &List{seen: make(map[string]struct{})}
}

// Add appends name unless it is a duplicate or the list is full. It reports
// whether the name was kept.
func (l *List) Add(name string) bool {
	if len(l.names) >= MaxRank {
		return false
	}
	if _, dup := l.seen[name]; dup {
		return false
	}
	l.seen[name] = struct{}{}
	l.names = append(l.names, name)
	return true
}

func (l *List) Len() int { return len(l.names) }

// Names returns the ranked names in discovery order.
func (l *List) Names() []string { return l.names }

// Merge combines two ranked slices, primary order first, dropping duplicates
// and truncating to limit.
func Merge(primary, extra []string, limit int) []string {
	if limit <= 0 || limit > MaxRank {
		limit = MaxRank
	}
	merged := make([]string, 0, limit)
	seen := make(map[string]struct{}, limit)
	for _, names := range [][]string{primary, extra} {
		for _, name := range names {
			if len(merged) >= limit {
				return merged
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			merged = append(merged, name)
		}
	}
	return merged
}
