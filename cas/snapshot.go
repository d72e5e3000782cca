package cas

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/minj-lang/minj/interp"
	"github.com/minj-lang/minj/value"
	"github.com/shamaton/msgpack/v2"
)

// Snapshot is a serializable picture of the global bindings of a run.
// Objects reachable from the globals are flattened into Objects, keyed by
// instance id, so shared and cyclic references encode once.
type Snapshot struct {
	Globals []Binding
	Objects []Instance
}

type Binding struct {
	Name    string
	Type    string
	Mutable bool
	Dynamic bool
	Value   Value
}

type Instance struct {
	ID     string
	Class  string
	Fields []Binding
}

// Value is an encoded runtime value. Scalars keep their printed form, lists
// keep their elements and objects keep a reference into Snapshot.Objects.
type Value struct {
	Tag   string
	Text  string
	Elems []Value
	Ref   string
}

func (s *Snapshot) Serialize(w io.Writer) error {
	return msgpack.MarshalWrite(w, s)
}

func (s *Snapshot) Deserialize(r io.Reader) error {
	return msgpack.UnmarshalRead(r, s)
}

type snapshotter struct {
	seen  map[uuid.UUID]bool
	queue []*value.ObjectValue
}

// Take snapshots the globals of st. Bindings and fields are sorted by name
// and objects appear in discovery order, so equal states encode equally.
func Take(st *interp.State) *Snapshot {
	sn := &snapshotter{seen: make(map[uuid.UUID]bool)}
	s := &Snapshot{}
	for _, name := range st.Globals.Names() {
		s.Globals = append(s.Globals, sn.binding(name, st.Globals.Variables[name]))
	}
	for i := 0; i < len(sn.queue); i++ {
		obj := sn.queue[i]
		inst := Instance{ID: obj.ID.String(), Class: obj.Class.Name}
		names := make([]string, 0, len(obj.Fields))
		for name := range obj.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			inst.Fields = append(inst.Fields, sn.binding(name, obj.Fields[name]))
		}
		s.Objects = append(s.Objects, inst)
	}
	return s
}

func (sn *snapshotter) binding(name string, c *value.Cell) Binding {
	return Binding{
		Name:    name,
		Type:    c.Type.String(),
		Mutable: c.Mutable,
		Dynamic: c.Dynamic,
		Value:   sn.value(c.Value),
	}
}

func (sn *snapshotter) value(v value.Value) Value {
	out := Value{Tag: v.Tag().String()}
	switch x := v.(type) {
	case *value.ListValue:
		out.Elems = make([]Value, len(x.Elems))
		for i, e := range x.Elems {
			out.Elems[i] = sn.value(e)
		}
	case *value.ObjectValue:
		out.Ref = x.ID.String()
		out.Text = x.String()
		if !sn.seen[x.ID] {
			sn.seen[x.ID] = true
			sn.queue = append(sn.queue, x)
		}
	default:
		out.Text = v.String()
	}
	return out
}

func (v Value) String() string {
	if v.Tag != value.TagList.String() {
		return v.Text
	}
	parts := make([]string, len(v.Elems))
	for i, e := range v.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (b Binding) String() string {
	kind := "var"
	if !b.Mutable {
		kind = "val"
	}
	typ := b.Type
	if b.Dynamic {
		typ = "dynamic " + typ
	}
	return fmt.Sprintf("%s %s = %s", kind, typ, b.Value)
}

// Label is the printed form of an instance, for example Point@1a2b3c4d.
func (i Instance) Label() string {
	id := i.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return i.Class + "@" + id
}

// Entries flattens the snapshot into ordered path/binding pairs: globals by
// name, then each field as Label.field.
func (s *Snapshot) Entries() []Entry {
	var out []Entry
	for _, b := range s.Globals {
		out = append(out, Entry{Path: b.Name, Binding: b})
	}
	for _, inst := range s.Objects {
		for _, f := range inst.Fields {
			out = append(out, Entry{Path: inst.Label() + "." + f.Name, Binding: f})
		}
	}
	return out
}

type Entry struct {
	Path    string
	Binding Binding
}
