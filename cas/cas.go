package cas

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/dgryski/go-farm"
)

// CAS is a content-addressed store: items are keyed by the hash of their
// serialized form, so storing an equal item twice yields the same key.
type CAS interface {
	Put(item Hashable) (Hash, error)
	Has(hash Hash) bool
}

type Serde interface {
	Serialize(w io.Writer) error
	Deserialize(r io.Reader) error
}

type Hashable interface {
	Serde
}

type directStore interface {
	getValue(h Hash) (bool, []byte, error)
}

type Hash uint64

func (h Hash) String() string {
	return fmt.Sprintf("%016x", uint64(h))
}

// Retrieve loads the item stored under hash and decodes it as a T.
func Retrieve[T Hashable](c CAS, hash Hash) (T, error) {
	var t T
	v, ok := c.(directStore)
	if !ok {
		return t, errors.New("CAS does not support direct retrieval")
	}

	has, data, err := v.getValue(hash)
	if err != nil {
		return t, err
	}
	if !has {
		return t, fmt.Errorf("hash not found in CAS: %s", hash)
	}

	entry := &TypedEntry{}
	if err := entry.Deserialize(bytes.NewReader(data)); err != nil {
		return t, fmt.Errorf("deserializing TypedEntry: %w", err)
	}
	instance, err := createInstance(entry.TypeTag)
	if err != nil {
		return t, fmt.Errorf("creating instance: %w", err)
	}
	if err := instance.Deserialize(bytes.NewReader(entry.Data)); err != nil {
		return t, fmt.Errorf("deserializing data: %w", err)
	}
	result, ok := instance.(T)
	if !ok {
		return t, fmt.Errorf("type mismatch: expected %T, got %T", t, instance)
	}
	return result, nil
}

// HashOf returns the key item is stored under.
func HashOf(item Hashable) (Hash, error) {
	data, err := encode(item)
	if err != nil {
		return 0, err
	}
	return Hash(farm.Hash64(data)), nil
}

// encode serializes item inside its TypedEntry envelope.
func encode(item Hashable) ([]byte, error) {
	var data bytes.Buffer
	if err := item.Serialize(&data); err != nil {
		return nil, err
	}
	entry := &TypedEntry{TypeTag: getTypeTag(item), Data: data.Bytes()}
	var buf bytes.Buffer
	if err := entry.Serialize(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
