package cas

import (
	"bytes"
	"strings"
	"testing"

	"github.com/minj-lang/minj/interp"
	"github.com/minj-lang/minj/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, src string) *interp.Interpreter {
	t.Helper()
	f, err := syntax.Parse("snap.mj", src)
	require.NoError(t, err)
	ip := interp.New(&bytes.Buffer{}, strings.NewReader(""))
	require.NoError(t, ip.Execute(f))
	return ip
}

const program = `
class Node {
    var label = "n"
    var next = 0
}
var a = new Node()
var b = new Node()
a.next = b
b.next = a
val limit = 3
var xs = [1, 2.5, 'c']
`

func TestTakeFlattensObjects(t *testing.T) {
	ip := execute(t, program)
	s := Take(ip.State)

	names := make([]string, len(s.Globals))
	for i, g := range s.Globals {
		names[i] = g.Name
	}
	assert.Equal(t, []string{"a", "b", "limit", "xs"}, names)

	// The cycle between a and b is encoded once per instance.
	require.Len(t, s.Objects, 2)
	assert.Equal(t, s.Globals[0].Value.Ref, s.Objects[0].ID)
	assert.Equal(t, s.Objects[1].ID, s.Objects[0].Fields[1].Value.Ref)

	assert.Equal(t, "val int = 3", s.Globals[2].String())
	assert.Equal(t, "var dynamic list = [1, 2.5, c]", s.Globals[3].String())
	assert.True(t, strings.HasPrefix(s.Objects[0].Label(), "Node@"))
	assert.Len(t, s.Objects[0].Label(), len("Node@")+8)
}

func TestMemoryCASRoundTrip(t *testing.T) {
	ip := execute(t, program)
	store := NewMemoryCAS()

	h, err := store.Put(Take(ip.State))
	require.NoError(t, err)
	assert.True(t, store.Has(h))
	assert.False(t, store.Has(h+1))

	// An unchanged state hashes to the same key.
	h2, err := store.Put(Take(ip.State))
	require.NoError(t, err)
	assert.Equal(t, h, h2)
	assert.Equal(t, 1, store.Len())

	got, err := Retrieve[*Snapshot](store, h)
	require.NoError(t, err)
	assert.Empty(t, Diff(Take(ip.State), got))
	assert.Len(t, got.Objects, 2)

	_, err = Retrieve[*Snapshot](store, h+1)
	require.Error(t, err)
}

func TestLRUCache(t *testing.T) {
	ip := execute(t, program)
	store := NewMemoryCAS()
	cache := NewLRUCache(store, 2)

	var hashes []Hash
	for i := 0; i < 3; i++ {
		s := Take(ip.State)
		s.Globals = s.Globals[:i+1]
		h, err := cache.Put(s)
		require.NoError(t, err)
		hashes = append(hashes, h)
	}
	assert.Equal(t, 3, store.Len())
	assert.Equal(t, 2, cache.Stats().Size)
	for _, h := range hashes {
		assert.True(t, cache.Has(h))
	}

	// The first entry was evicted and comes back from the underlying store.
	got, err := Retrieve[*Snapshot](cache, hashes[0])
	require.NoError(t, err)
	assert.Len(t, got.Globals, 1)
	_, err = Retrieve[*Snapshot](cache, hashes[0])
	require.NoError(t, err)

	stats := cache.Stats()
	assert.Equal(t, 1, stats.Misses)
	assert.Equal(t, 1, stats.Hits)
	assert.Equal(t, 2, stats.Size)
}

func TestDiff(t *testing.T) {
	f, err := syntax.Parse("diff.mj", `
class Box {
    var v = 1
}
var x = 1
var gone = "bye"
var box = new Box()
x = 2
box.v = 5
`)
	require.NoError(t, err)
	ip := interp.New(&bytes.Buffer{}, nil)

	var snaps []*Snapshot
	ip.AfterDecl = func(int, syntax.Decl) error {
		snaps = append(snaps, Take(ip.State))
		return nil
	}
	require.NoError(t, ip.Execute(f))
	require.Len(t, snaps, 6)

	changes := Diff(nil, snaps[1])
	require.Len(t, changes, 1)
	assert.Equal(t, Change{Kind: Added, Path: "x", New: "var dynamic int = 1"}, changes[0])

	changes = Diff(snaps[3], snaps[4])
	require.Len(t, changes, 1)
	assert.Equal(t, Changed, changes[0].Kind)
	assert.Equal(t, "var dynamic int = 1", changes[0].Old)
	assert.Equal(t, "var dynamic int = 2", changes[0].New)

	changes = Diff(snaps[4], snaps[5])
	require.Len(t, changes, 1)
	assert.True(t, strings.HasSuffix(changes[0].Path, ".v"))
	assert.Equal(t, "~", changes[0].Kind.String())

	changes = Diff(snaps[5], snaps[1])
	kinds := map[ChangeKind]int{}
	for _, c := range changes {
		kinds[c.Kind]++
	}
	assert.Equal(t, map[ChangeKind]int{Changed: 1, Removed: 3}, kinds)
}
