// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package addresshash

import (
	"encoding/hex"
	"fmt"

	"github.com/bitmark-inc/chainindex/fault"
)

// Type - the address type discriminant
type Type uint8

// known address types
const (
	NoAddress         Type = 0
	PubKeyHash        Type = 1
	ScriptHash        Type = 2
	WitnessPubKeyHash Type = 3
	WitnessScriptHash Type = 4
)

// byte sizes of the two hash forms
const (
	PrimarySize   = 20
	AlternateSize = 32
	TypeSize      = 1
)

// HashSize - number of hash bytes that follow a type byte
//
// defined for every value so that unknown types can still be read
func (t Type) HashSize() int {
	if WitnessScriptHash == t {
		return AlternateSize
	}
	return PrimarySize
}

// PackedSize - type byte plus hash
func (t Type) PackedSize() int {
	return TypeSize + t.HashSize()
}

// Known - true for the types this package assigns a meaning to
func (t Type) Known() bool {
	return t <= WitnessScriptHash
}

func (t Type) String() string {
	switch t {
	case NoAddress:
		return "none"
	case PubKeyHash:
		return "p2pkh"
	case ScriptHash:
		return "p2sh"
	case WitnessPubKeyHash:
		return "p2wpkh"
	case WitnessScriptHash:
		return "p2wsh"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}

// Hash - either a Primary or an Alternate hash
type Hash interface {
	Bytes() []byte
	Size() int
	String() string
	isHash()
}

// Primary - 20 byte hash160
type Primary [PrimarySize]byte

// Alternate - 32 byte witness script hash
type Alternate [AlternateSize]byte

// Bytes - copy of the hash
func (h Primary) Bytes() []byte {
	b := make([]byte, PrimarySize)
	copy(b, h[:])
	return b
}

// Size - PrimarySize
func (h Primary) Size() int      { return PrimarySize }
func (h Primary) String() string { return hex.EncodeToString(h[:]) }
func (h Primary) isHash()        {}

// Bytes - copy of the hash
func (h Alternate) Bytes() []byte {
	b := make([]byte, AlternateSize)
	copy(b, h[:])
	return b
}

// Size - AlternateSize
func (h Alternate) Size() int      { return AlternateSize }
func (h Alternate) String() string { return hex.EncodeToString(h[:]) }
func (h Alternate) isHash()        {}

// Address - a type discriminant with the matching hash variant
//
// values are comparable with == and can be used as map keys; a zero
// hash is always held as nil so every zero hash address of a type has
// a single representation, the same as the Go zero value for type 0
type Address struct {
	addressType Type
	hash        Hash
}

// New - create an address from a type and raw hash bytes
//
// the length of hash must agree with the type
func New(addressType Type, hash []byte) (Address, error) {
	if len(hash) != addressType.HashSize() {
		return Address{}, fault.ErrHashLength
	}
	return Address{
		addressType: addressType,
		hash:        canonical(hashFromBytes(addressType, hash)),
	}, nil
}

// NewPrimary - create an address using the 20 byte form
func NewPrimary(addressType Type, hash Primary) (Address, error) {
	if PrimarySize != addressType.HashSize() {
		return Address{}, fault.ErrMismatchedAddressType
	}
	return Address{
		addressType: addressType,
		hash:        canonical(hash),
	}, nil
}

// NewAlternate - create a witness script hash address
func NewAlternate(hash Alternate) Address {
	return Address{
		addressType: WitnessScriptHash,
		hash:        canonical(hash),
	}
}

// Type - the discriminant
func (a Address) Type() Type {
	return a.addressType
}

// Hash - the hash variant, a zero hash of the right width for an
// uninitialised address
func (a Address) Hash() Hash {
	if nil == a.hash {
		return hashFromBytes(a.addressType, make([]byte, a.addressType.HashSize()))
	}
	return a.hash
}

// PackedSize - bytes produced by Pack
func (a Address) PackedSize() int {
	return a.addressType.PackedSize()
}

// Pack - type byte followed by the hash
func (a Address) Pack() []byte {
	return a.AppendTo(make([]byte, 0, a.PackedSize()))
}

// AppendTo - append the packed address to a buffer
func (a Address) AppendTo(buffer []byte) []byte {
	buffer = append(buffer, byte(a.addressType))
	return a.AppendHashTo(buffer)
}

// AppendHashTo - append only the hash bytes, for records that carry
// the type elsewhere
func (a Address) AppendHashTo(buffer []byte) []byte {
	switch h := a.Hash().(type) {
	case Primary:
		return append(buffer, h[:]...)
	case Alternate:
		return append(buffer, h[:]...)
	default:
		return append(buffer, make([]byte, a.addressType.HashSize())...)
	}
}

func (a Address) String() string {
	return fmt.Sprintf("%d:%s", uint8(a.addressType), a.Hash().String())
}

// Unpack - read an address from the front of a buffer
//
// returns the address and the number of bytes consumed
func Unpack(buffer []byte) (Address, int, error) {
	if len(buffer) < TypeSize {
		return Address{}, 0, fault.ErrTruncatedInput
	}
	addressType := Type(buffer[0])
	hash, n, err := UnpackHash(addressType, buffer[TypeSize:])
	if nil != err {
		return Address{}, 0, err
	}
	return Address{
		addressType: addressType,
		hash:        canonical(hash),
	}, TypeSize + n, nil
}

// UnpackHash - read the hash for a previously read type
func UnpackHash(addressType Type, buffer []byte) (Hash, int, error) {
	n := addressType.HashSize()
	if len(buffer) < n {
		return nil, 0, fault.ErrTruncatedInput
	}
	return hashFromBytes(addressType, buffer[:n]), n, nil
}

// FromTypeAndHash - combine a separately read type and hash
func FromTypeAndHash(addressType Type, hash Hash) (Address, error) {
	if nil == hash || hash.Size() != addressType.HashSize() {
		return Address{}, fault.ErrMismatchedAddressType
	}
	return Address{
		addressType: addressType,
		hash:        canonical(hash),
	}, nil
}

// internal: nil for an all zero hash
func canonical(hash Hash) Hash {
	switch h := hash.(type) {
	case Primary:
		if (Primary{}) == h {
			return nil
		}
	case Alternate:
		if (Alternate{}) == h {
			return nil
		}
	}
	return hash
}

// internal: buffer must be exactly addressType.HashSize() bytes
func hashFromBytes(addressType Type, buffer []byte) Hash {
	if AlternateSize == addressType.HashSize() {
		h := Alternate{}
		copy(h[:], buffer)
		return h
	}
	h := Primary{}
	copy(h[:], buffer)
	return h
}
