package interp

import (
	"testing"

	"github.com/minj-lang/minj/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOrder(t *testing.T) {
	st := NewState()
	st.Globals.StoreVar("x", value.NewCell(value.StrValue("global"), value.TagString, true, true))
	st.Globals.StoreVar("g", value.NewCell(value.IntValue(1), value.TagInt, true, false))

	class := value.NewClass("C")
	class.AddField("x", value.NewCell(value.StrValue("field"), value.TagString, true, true))
	obj := class.Instantiate()

	v, err := st.Resolve("x")
	require.NoError(t, err)
	assert.Equal(t, value.StrValue("global"), v)

	// Enter a method with a receiver.
	frame := NewStackFrame()
	frame.StoreVar(thisName, value.NewCell(obj, value.TagObject, false, false))
	st.Frame, st.inMethod = frame, true

	v, err = st.Resolve("x")
	require.NoError(t, err)
	assert.Equal(t, value.StrValue("field"), v)

	frame.StoreVar("x", value.NewCell(value.StrValue("local"), value.TagString, true, true))
	v, err = st.Resolve("x")
	require.NoError(t, err)
	assert.Equal(t, value.StrValue("local"), v)

	v, err = st.Resolve("g")
	require.NoError(t, err)
	assert.Equal(t, value.IntValue(1), v)

	_, err = st.Resolve("nope")
	require.ErrorIs(t, err, value.ErrUndefinedVariable)

	this, ok := st.This()
	require.True(t, ok)
	assert.Same(t, obj, this)
}

func TestResolveCellSharesIdentity(t *testing.T) {
	st := NewState()
	c := value.NewCell(value.IntValue(1), value.TagInt, true, false)
	st.Globals.StoreVar("n", c)

	got, err := st.ResolveCell("n")
	require.NoError(t, err)
	require.NoError(t, got.Set(value.IntValue(2)))
	assert.Equal(t, value.IntValue(2), c.Value)
	assert.Equal(t, []string{"n"}, st.Globals.Names())
}
