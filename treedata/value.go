// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package treedata

import (
	"fmt"
	"reflect"
)

// Value is a single dynamically typed cell value. It is immutable;
// the zero Value is invalid. Accessors return the zero value of
// their Go type when called on a Value of a different kind.
type Value struct {
	kind Kind

	// i holds Bool, signed integer and Enum values.
	i int64

	// u holds unsigned integer and Flags values.
	u uint64

	f float64
	s string

	// p holds Pointer, Boxed and Object values, and the Go value
	// of Enum and Flags values with a declared element type.
	p any
}

func NewBool(v bool) Value {
	if v {
		return Value{kind: Bool, i: 1}
	}
	return Value{kind: Bool}
}

func NewInt8(v int8) Value     { return Value{kind: Int8, i: int64(v)} }
func NewUint8(v uint8) Value   { return Value{kind: Uint8, u: uint64(v)} }
func NewInt32(v int32) Value   { return Value{kind: Int32, i: int64(v)} }
func NewUint32(v uint32) Value { return Value{kind: Uint32, u: uint64(v)} }
func NewInt(v int) Value       { return Value{kind: Int, i: int64(v)} }
func NewUint(v uint) Value     { return Value{kind: Uint, u: uint64(v)} }
func NewInt64(v int64) Value   { return Value{kind: Int64, i: v} }
func NewUint64(v uint64) Value { return Value{kind: Uint64, u: v} }

// NewEnum returns an Enum value. The optional typed value is used
// to check the value against a column restricted to an enum type.
func NewEnum(v int64, typed ...any) Value {
	val := Value{kind: Enum, i: v}
	if len(typed) > 0 {
		val.p = typed[0]
	}
	return val
}

// NewFlags returns a Flags value. See [NewEnum] for typed.
func NewFlags(v uint64, typed ...any) Value {
	val := Value{kind: Flags, u: v}
	if len(typed) > 0 {
		val.p = typed[0]
	}
	return val
}

func NewFloat32(v float32) Value { return Value{kind: Float32, f: float64(v)} }
func NewFloat64(v float64) Value { return Value{kind: Float64, f: v} }
func NewString(v string) Value   { return Value{kind: String, s: v} }

// NewPointer returns a Pointer value, which is stored as is.
func NewPointer(p any) Value { return Value{kind: Pointer, p: p} }

// NewBoxed returns a Boxed value. The value is not copied here;
// models copy it when storing and reading it. See [Copy].
func NewBoxed(b any) Value { return Value{kind: Boxed, p: b} }

// NewObject returns an Object value. See [Referencer].
func NewObject(o any) Value { return Value{kind: Object, p: o} }

// ValueOf returns a Value for the given Go value, choosing the kind
// from its dynamic type. Values that are not booleans, numbers or
// strings become Boxed values, and a nil interface gives the
// invalid Value.
func ValueOf(x any) Value {
	switch v := x.(type) {
	case nil:
		return Value{}
	case Value:
		return v
	case bool:
		return NewBool(v)
	case int8:
		return NewInt8(v)
	case uint8:
		return NewUint8(v)
	case int32:
		return NewInt32(v)
	case uint32:
		return NewUint32(v)
	case int:
		return NewInt(v)
	case uint:
		return NewUint(v)
	case int64:
		return NewInt64(v)
	case uint64:
		return NewUint64(v)
	case float32:
		return NewFloat32(v)
	case float64:
		return NewFloat64(v)
	case string:
		return NewString(v)
	}
	return NewBoxed(x)
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// IsValid returns whether the value has a kind.
func (v Value) IsValid() bool { return v.kind != Invalid }

func (v Value) Bool() bool {
	return v.kind == Bool && v.i != 0
}

func (v Value) Int8() int8 {
	if v.kind != Int8 {
		return 0
	}
	return int8(v.i)
}

func (v Value) Uint8() uint8 {
	if v.kind != Uint8 {
		return 0
	}
	return uint8(v.u)
}

func (v Value) Int32() int32 {
	if v.kind != Int32 {
		return 0
	}
	return int32(v.i)
}

func (v Value) Uint32() uint32 {
	if v.kind != Uint32 {
		return 0
	}
	return uint32(v.u)
}

func (v Value) Int() int {
	if v.kind != Int {
		return 0
	}
	return int(v.i)
}

func (v Value) Uint() uint {
	if v.kind != Uint {
		return 0
	}
	return uint(v.u)
}

func (v Value) Int64() int64 {
	if v.kind != Int64 {
		return 0
	}
	return v.i
}

func (v Value) Uint64() uint64 {
	if v.kind != Uint64 {
		return 0
	}
	return v.u
}

func (v Value) Enum() int64 {
	if v.kind != Enum {
		return 0
	}
	return v.i
}

func (v Value) Flags() uint64 {
	if v.kind != Flags {
		return 0
	}
	return v.u
}

func (v Value) Float32() float32 {
	if v.kind != Float32 {
		return 0
	}
	return float32(v.f)
}

func (v Value) Float64() float64 {
	if v.kind != Float64 {
		return 0
	}
	return v.f
}

func (v Value) String() string {
	if v.kind != String {
		if v.kind == Invalid {
			return "<invalid>"
		}
		return fmt.Sprint(v.Any())
	}
	return v.s
}

// Str returns the string of a String value and "" otherwise.
// Unlike [Value.String] it does not format other kinds.
func (v Value) Str() string {
	if v.kind != String {
		return ""
	}
	return v.s
}

func (v Value) Pointer() any {
	if v.kind != Pointer {
		return nil
	}
	return v.p
}

func (v Value) Boxed() any {
	if v.kind != Boxed {
		return nil
	}
	return v.p
}

func (v Value) Object() any {
	if v.kind != Object {
		return nil
	}
	return v.p
}

// Any returns the value as a Go value of the natural type for its kind.
func (v Value) Any() any {
	switch v.kind {
	case Bool:
		return v.i != 0
	case Int8:
		return int8(v.i)
	case Uint8:
		return uint8(v.u)
	case Int32:
		return int32(v.i)
	case Uint32:
		return uint32(v.u)
	case Int:
		return int(v.i)
	case Uint:
		return uint(v.u)
	case Int64, Enum:
		if v.kind == Enum && v.p != nil {
			return v.p
		}
		return v.i
	case Uint64, Flags:
		if v.kind == Flags && v.p != nil {
			return v.p
		}
		return v.u
	case Float32:
		return float32(v.f)
	case Float64:
		return v.f
	case String:
		return v.s
	case Pointer, Boxed, Object:
		return v.p
	}
	return nil
}

// goType returns the Go type used to check the value against
// a restricted column type, or nil if there is nothing to check.
func (v Value) goType() reflect.Type {
	if v.p == nil {
		return nil
	}
	return reflect.TypeOf(v.p)
}
