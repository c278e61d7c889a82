// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package treedata

import (
	"fmt"
	"reflect"

	"cogentcore.org/treemodel/base/errors"
	"github.com/jinzhu/copier"
)

// ErrIncompatible is returned by [Convert] when a value cannot be
// stored in a column of the requested type.
var ErrIncompatible = errors.New("treedata: incompatible value type")

// BoxedCopier is implemented by Boxed values that know how to copy
// themselves. Other Boxed values are deep copied with copier.
type BoxedCopier interface {
	CopyBoxed() any
}

// Freer is implemented by Boxed values that hold resources to be
// released when the value is removed from a model.
type Freer interface {
	Free()
}

// Referencer is implemented by Object values that track how many
// models and readers hold them.
type Referencer interface {
	Ref()
	Unref()
}

// Zero returns the default value of a column of the given type,
// which is what unset cells read as.
func Zero(t Type) Value {
	return Value{kind: t.Kind}
}

// Convert returns v as a value of type t. A value of the same kind
// is returned unchanged if it satisfies t.Elem. Values of the numeric
// kinds are converted to each other with Go conversion semantics.
// Anything else fails with [ErrIncompatible].
func Convert(v Value, t Type) (Value, error) {
	if v.kind == t.Kind {
		if !t.accepts(v.goType()) {
			return Value{}, fmt.Errorf("%w: %v is not %v", ErrIncompatible, v.goType(), t)
		}
		return v, nil
	}
	if !v.kind.IsNumeric() || !t.Kind.IsNumeric() || t.Elem != nil {
		return Value{}, fmt.Errorf("%w: cannot convert %v to %v", ErrIncompatible, v.kind, t)
	}
	switch t.Kind {
	case Bool:
		return NewBool(v.isNonZero()), nil
	case Int8:
		return NewInt8(int8(v.asInt())), nil
	case Uint8:
		return NewUint8(uint8(v.asUint())), nil
	case Int32:
		return NewInt32(int32(v.asInt())), nil
	case Uint32:
		return NewUint32(uint32(v.asUint())), nil
	case Int:
		return NewInt(int(v.asInt())), nil
	case Uint:
		return NewUint(uint(v.asUint())), nil
	case Int64:
		return NewInt64(v.asInt()), nil
	case Uint64:
		return NewUint64(v.asUint()), nil
	case Enum:
		return NewEnum(v.asInt()), nil
	case Flags:
		return NewFlags(v.asUint()), nil
	case Float32:
		return NewFloat32(float32(v.asFloat())), nil
	default:
		return NewFloat64(v.asFloat()), nil
	}
}

// CanConvert returns whether values of kind from can be converted
// to a column of kind to.
func CanConvert(from, to Kind) bool {
	return from == to || (from.IsNumeric() && to.IsNumeric())
}

func (v Value) isNonZero() bool {
	switch {
	case v.kind.isUnsigned():
		return v.u != 0
	case v.kind.isFloat():
		return v.f != 0
	}
	return v.i != 0
}

func (v Value) asInt() int64 {
	switch {
	case v.kind.isUnsigned():
		return int64(v.u)
	case v.kind.isFloat():
		return int64(v.f)
	}
	return v.i
}

func (v Value) asUint() uint64 {
	switch {
	case v.kind.isUnsigned():
		return v.u
	case v.kind.isFloat():
		return uint64(v.f)
	}
	return uint64(v.i)
}

func (v Value) asFloat() float64 {
	switch {
	case v.kind.isUnsigned():
		return float64(v.u)
	case v.kind.isFloat():
		return v.f
	}
	return float64(v.i)
}

// Copy returns a copy of v suitable for handing to a new owner.
// Boxed values are deep copied, through [BoxedCopier] if they
// implement it and with copier otherwise. Objects implementing
// [Referencer] are referenced. All other values are returned as is.
// Every copy should eventually be passed to [Release].
func Copy(v Value) Value {
	switch v.kind {
	case Boxed:
		if v.p == nil {
			return v
		}
		if bc, ok := v.p.(BoxedCopier); ok {
			return NewBoxed(bc.CopyBoxed())
		}
		return NewBoxed(deepCopy(v.p))
	case Object:
		if r, ok := v.p.(Referencer); ok {
			r.Ref()
		}
	}
	return v
}

// deepCopy copies struct, map and slice values and pointers to them.
// Other values have no shared state and are returned as is.
func deepCopy(src any) any {
	rt := reflect.TypeOf(src)
	base := rt
	if base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	switch base.Kind() {
	case reflect.Struct, reflect.Map, reflect.Slice:
	default:
		return src
	}
	if rt.Kind() != reflect.Struct && reflect.ValueOf(src).IsNil() {
		return src
	}
	opt := copier.Option{DeepCopy: true, CaseSensitive: true}
	if rt.Kind() == reflect.Pointer {
		dst := reflect.New(rt.Elem())
		if errors.Log(copier.CopyWithOption(dst.Interface(), src, opt)) != nil {
			return src
		}
		return dst.Interface()
	}
	dst := reflect.New(rt)
	if errors.Log(copier.CopyWithOption(dst.Interface(), src, opt)) != nil {
		return src
	}
	return dst.Elem().Interface()
}

// Release releases v, which its owner must not use afterwards.
// Objects implementing [Referencer] are unreferenced and Boxed values
// implementing [Freer] are freed.
func Release(v Value) {
	switch v.kind {
	case Boxed:
		if f, ok := v.p.(Freer); ok {
			f.Free()
		}
	case Object:
		if r, ok := v.p.(Referencer); ok {
			r.Unref()
		}
	}
}
