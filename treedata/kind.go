// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package treedata

import (
	"reflect"
	"strconv"
)

// Kind is the kind of value that a model column holds.
type Kind int32

const (
	// Invalid is the kind of the zero [Value] and is never a valid column kind.
	Invalid Kind = iota
	Bool
	Int8
	Uint8
	Int32
	Uint32
	Int
	Uint
	Int64
	Uint64

	// Enum is a signed enumeration value, optionally restricted to
	// a Go type through [Type.Elem].
	Enum

	// Flags is an unsigned bit flag value.
	Flags

	Float32
	Float64
	String

	// Pointer is an opaque pointer that is never copied or released.
	Pointer

	// Boxed is a copyable value that is deep copied whenever it is
	// read out of or written into a model.
	Boxed

	// Object is a shared value whose lifetime is tracked through
	// [Referencer] when it implements it.
	Object

	kindN
)

var kindNames = [...]string{
	Invalid: "Invalid",
	Bool:    "Bool",
	Int8:    "Int8",
	Uint8:   "Uint8",
	Int32:   "Int32",
	Uint32:  "Uint32",
	Int:     "Int",
	Uint:    "Uint",
	Int64:   "Int64",
	Uint64:  "Uint64",
	Enum:    "Enum",
	Flags:   "Flags",
	Float32: "Float32",
	Float64: "Float64",
	String:  "String",
	Pointer: "Pointer",
	Boxed:   "Boxed",
	Object:  "Object",
}

func (k Kind) String() string {
	if k >= 0 && k < kindN {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsNumeric returns whether values of the kind can be converted
// to and from each other. This is the boolean, integer, enum, flags
// and floating point kinds.
func (k Kind) IsNumeric() bool {
	return k >= Bool && k <= Float64
}

func (k Kind) isSigned() bool {
	switch k {
	case Int8, Int32, Int, Int64, Enum:
		return true
	}
	return false
}

func (k Kind) isUnsigned() bool {
	switch k {
	case Uint8, Uint32, Uint, Uint64, Flags:
		return true
	}
	return false
}

func (k Kind) isFloat() bool {
	return k == Float32 || k == Float64
}

func (k Kind) isHandle() bool {
	return k == Pointer || k == Boxed || k == Object
}

// Type is the declared type of a model column.
type Type struct {
	Kind Kind

	// Elem optionally restricts the Go type of Enum, Flags, Pointer,
	// Boxed and Object values stored in the column. For an interface
	// type, stored values must implement it; otherwise they must be
	// assignable to it.
	Elem reflect.Type
}

// TypeOf returns the unrestricted column type of the given kind.
func TypeOf(k Kind) Type {
	return Type{Kind: k}
}

// Types returns the unrestricted column types of the given kinds.
func Types(kinds ...Kind) []Type {
	ts := make([]Type, len(kinds))
	for i, k := range kinds {
		ts[i] = Type{Kind: k}
	}
	return ts
}

func (t Type) String() string {
	if t.Elem == nil {
		return t.Kind.String()
	}
	return t.Kind.String() + "(" + t.Elem.String() + ")"
}

// CheckType returns whether t is a type that a column can be declared with.
func CheckType(t Type) bool {
	return t.Kind > Invalid && t.Kind < kindN
}

// accepts returns whether a Go value of type rt may be stored in a
// column restricted to t.Elem.
func (t Type) accepts(rt reflect.Type) bool {
	if t.Elem == nil || rt == nil {
		return true
	}
	if t.Elem.Kind() == reflect.Interface {
		return rt.Implements(t.Elem)
	}
	return rt.AssignableTo(t.Elem)
}
