// Copyright (c) 2025, The AutoPkg Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package document

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindUint
	KindFloat
	KindBool
	KindTime
	KindData
	KindList
	KindMap
)

var kindNames = [...]string{
	KindNull:   "null",
	KindString: "string",
	KindInt:    "int",
	KindUint:   "uint",
	KindFloat:  "float",
	KindBool:   "bool",
	KindTime:   "time",
	KindData:   "data",
	KindList:   "list",
	KindMap:    "map",
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Value is a decoded recipe value: a scalar, a sequence, or a mapping.
// The zero Value is null, so a missing key and an explicit null read the same.
type Value struct {
	kind Kind
	v    any
}

// Map is a decoded mapping with string keys.
type Map map[string]Value

// Convenience constructors for each variant.
func Null() Value                { return Value{} }
func String(v string) Value      { return Value{kind: KindString, v: v} }
func Int(v int64) Value          { return Value{kind: KindInt, v: v} }
func Uint(v uint64) Value        { return Value{kind: KindUint, v: v} }
func Float(v float64) Value      { return Value{kind: KindFloat, v: v} }
func Bool(v bool) Value          { return Value{kind: KindBool, v: v} }
func Time(v time.Time) Value     { return Value{kind: KindTime, v: v} }
func Data(v []byte) Value        { return Value{kind: KindData, v: v} }
func List(items ...Value) Value  { return Value{kind: KindList, v: items} }
func MapValue(m Map) Value       { return Value{kind: KindMap, v: m} }

// FromAny converts decoder output into a Value. It understands the shapes
// produced by gopkg.in/yaml.v3, howett.net/plist, and encoding/json.
// Unsupported types fall back to their fmt representation.
func FromAny(v any) Value {
	switch val := v.(type) {
	case nil:
		return Null()
	case Value:
		return val
	case Map:
		return MapValue(val)
	case string:
		return String(val)
	case bool:
		return Bool(val)
	case int:
		return Int(int64(val))
	case int8:
		return Int(int64(val))
	case int16:
		return Int(int64(val))
	case int32:
		return Int(int64(val))
	case int64:
		return Int(val)
	case uint:
		return Uint(uint64(val))
	case uint8:
		return Uint(uint64(val))
	case uint16:
		return Uint(uint64(val))
	case uint32:
		return Uint(uint64(val))
	case uint64:
		return Uint(val)
	case float32:
		return Float(float64(val))
	case float64:
		return Float(val)
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return Int(i)
		}
		if f, err := val.Float64(); err == nil {
			return Float(f)
		}
		return String(val.String())
	case time.Time:
		return Time(val)
	case []byte:
		return Data(val)
	case []any:
		items := make([]Value, len(val))
		for i, item := range val {
			items[i] = FromAny(item)
		}
		return List(items...)
	case map[string]any:
		m := make(Map, len(val))
		for k, item := range val {
			m[k] = FromAny(item)
		}
		return MapValue(m)
	case map[any]any:
		m := make(Map, len(val))
		for k, item := range val {
			m[fmt.Sprintf("%v", k)] = FromAny(item)
		}
		return MapValue(m)
	default:
		return String(fmt.Sprintf("%v", val))
	}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null or was never set.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string payload and whether v is a string.
func (v Value) Str() (string, bool) {
	s, ok := v.v.(string)
	return s, ok && v.kind == KindString
}

// Bool returns the boolean payload and whether v is a bool.
func (v Value) Bool() (bool, bool) {
	b, ok := v.v.(bool)
	return b, ok && v.kind == KindBool
}

// Map returns the mapping payload and whether v is a mapping.
func (v Value) Map() (Map, bool) {
	m, ok := v.v.(Map)
	return m, ok && v.kind == KindMap
}

// List returns the sequence payload and whether v is a sequence.
func (v Value) List() ([]Value, bool) {
	l, ok := v.v.([]Value)
	return l, ok && v.kind == KindList
}

// Truthy follows the usual scripting notion of truth: null, empty strings,
// zero numbers, false, and empty collections are false.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindString:
		return v.v.(string) != ""
	case KindInt:
		return v.v.(int64) != 0
	case KindUint:
		return v.v.(uint64) != 0
	case KindFloat:
		return v.v.(float64) != 0
	case KindBool:
		return v.v.(bool)
	case KindData:
		return len(v.v.([]byte)) > 0
	case KindList:
		return len(v.v.([]Value)) > 0
	case KindMap:
		return len(v.v.(Map)) > 0
	default:
		return true
	}
}

// Any returns the native payload: string, int64, uint64, float64, bool,
// time.Time, []byte, []Value, Map, or nil.
func (v Value) Any() any { return v.v }

// String returns a display form of the value.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindString:
		return v.v.(string)
	default:
		b, err := json.Marshal(v.ToJSON())
		if err != nil {
			return fmt.Sprintf("%v", v.v)
		}
		return string(b)
	}
}

// ToJSON returns an equivalent tree built only from JSON-compatible types:
// nil, string, int64, uint64, float64, bool, []any and map[string]any.
// Dates become RFC 3339 strings, binary data becomes base64, and
// non-finite floats become their string spelling.
func (v Value) ToJSON() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindTime:
		return v.v.(time.Time).UTC().Format(time.RFC3339)
	case KindData:
		return base64.StdEncoding.EncodeToString(v.v.([]byte))
	case KindFloat:
		f := v.v.(float64)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return strconv.FormatFloat(f, 'g', -1, 64)
		}
		return f
	case KindList:
		items := v.v.([]Value)
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = item.ToJSON()
		}
		return out
	case KindMap:
		return v.v.(Map).ToJSON()
	default:
		return v.v
	}
}

// Equal reports whether two values hold the same JSON rendering.
func (v Value) Equal(other Value) bool {
	a, errA := json.Marshal(v.ToJSON())
	b, errB := json.Marshal(other.ToJSON())
	return errA == nil && errB == nil && string(a) == string(b)
}

// MarshalJSON renders the JSON-compatible form of the value.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.ToJSON())
}

// UnmarshalJSON decodes any JSON value, keeping integers exact.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytesReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*v = FromAny(raw)
	return nil
}

// MarshalYAML renders the JSON-compatible form of the value.
func (v Value) MarshalYAML() (any, error) {
	return v.ToJSON(), nil
}
