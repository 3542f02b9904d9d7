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
	"bytes"
	"io"
	"sort"
)

// Get returns the value at key, or null when the key is absent.
func (m Map) Get(key string) Value {
	if m == nil {
		return Null()
	}
	return m[key]
}

// String returns the string at key and whether it was a string.
func (m Map) String(key string) (string, bool) {
	return m.Get(key).Str()
}

// Map returns the mapping at key, or an empty map when the key is absent
// or holds something other than a mapping.
func (m Map) Map(key string) Map {
	sub, ok := m.Get(key).Map()
	if !ok {
		return Map{}
	}
	return sub
}

// List returns the sequence at key, or nil when absent or not a sequence.
func (m Map) List(key string) []Value {
	l, _ := m.Get(key).List()
	return l
}

// Lookup walks nested mappings along path. Any missing or non-mapping
// intermediate yields null.
func (m Map) Lookup(path ...string) Value {
	if len(path) == 0 {
		return MapValue(m)
	}
	cur := m
	for _, key := range path[:len(path)-1] {
		next, ok := cur.Get(key).Map()
		if !ok {
			return Null()
		}
		cur = next
	}
	return cur.Get(path[len(path)-1])
}

// Keys returns the keys in lexical order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ToJSON returns the mapping as map[string]any of JSON-compatible values.
func (m Map) ToJSON() map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v.ToJSON()
	}
	return out
}

func bytesReader(b []byte) io.Reader {
	return bytes.NewReader(b)
}
