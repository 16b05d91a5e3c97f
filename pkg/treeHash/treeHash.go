// Package treeHash computes SSZ hash tree roots of fixed-shape records whose
// fields are fixed-size byte vectors. It backs both domain and signing root
// computation so the two share one field layout.
package treeHash

import (
	"errors"
	"fmt"

	ssz "github.com/ferranbt/fastssz"
)

var (
	// ErrNoFields is returned when a record without any fields is hashed
	ErrNoFields = errors.New("record has no fields")
	// ErrEmptyField is returned when a field has zero length
	ErrEmptyField = errors.New("record field is empty")
)

// ObjectRoot is implemented by any value exposing an SSZ hash tree root.
// fastssz-generated types and the go-eth2-client phase0 types satisfy it.
type ObjectRoot interface {
	HashTreeRoot() ([32]byte, error)
}

// HashFixedFields returns the hash tree root of a container whose fields are
// the given fixed-size byte vectors, in order. Fields of up to 32 bytes are
// packed into a single right-padded chunk; longer fields are merkleized into
// their own subtree first.
func HashFixedFields(fields ...[]byte) ([32]byte, error) {
	if len(fields) == 0 {
		return [32]byte{}, ErrNoFields
	}

	hh := ssz.DefaultHasherPool.Get()
	defer ssz.DefaultHasherPool.Put(hh)

	indx := hh.Index()
	for i, field := range fields {
		if len(field) == 0 {
			return [32]byte{}, fmt.Errorf("field %d: %w", i, ErrEmptyField)
		}
		hh.PutBytes(field)
	}
	hh.Merkleize(indx)

	return hh.HashRoot()
}

// ForkData is the SSZ ForkData container.
type ForkData struct {
	CurrentVersion        [4]byte
	GenesisValidatorsRoot [32]byte
}

// HashTreeRoot ssz hashes the ForkData object
func (f *ForkData) HashTreeRoot() ([32]byte, error) {
	return HashFixedFields(f.CurrentVersion[:], f.GenesisValidatorsRoot[:])
}

// SigningData is the SSZ SigningData container.
type SigningData struct {
	ObjectRoot [32]byte
	Domain     [32]byte
}

// HashTreeRoot ssz hashes the SigningData object
func (s *SigningData) HashTreeRoot() ([32]byte, error) {
	return HashFixedFields(s.ObjectRoot[:], s.Domain[:])
}
