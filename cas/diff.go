package cas

type ChangeKind int

const (
	Added ChangeKind = iota
	Changed
	Removed
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "+"
	case Changed:
		return "~"
	case Removed:
		return "-"
	}
	return "?"
}

type Change struct {
	Kind ChangeKind
	Path string
	Old  string
	New  string
}

// Diff lists what changed between two snapshots. A nil prev means every
// entry of next is new. Additions and changes follow next's order, removals
// follow prev's.
func Diff(prev, next *Snapshot) []Change {
	var before []Entry
	if prev != nil {
		before = prev.Entries()
	}
	after := next.Entries()

	old := make(map[string]Binding, len(before))
	for _, e := range before {
		old[e.Path] = e.Binding
	}
	var out []Change
	present := make(map[string]bool, len(after))
	for _, e := range after {
		present[e.Path] = true
		b, ok := old[e.Path]
		switch {
		case !ok:
			out = append(out, Change{Kind: Added, Path: e.Path, New: e.Binding.String()})
		case b.String() != e.Binding.String():
			out = append(out, Change{Kind: Changed, Path: e.Path, Old: b.String(), New: e.Binding.String()})
		}
	}
	for _, e := range before {
		if !present[e.Path] {
			out = append(out, Change{Kind: Removed, Path: e.Path, Old: e.Binding.String()})
		}
	}
	return out
}
