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
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAny_Kinds(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   any
		want Kind
	}{
		{"nil", nil, KindNull},
		{"string", "x", KindString},
		{"int", 3, KindInt},
		{"int64", int64(3), KindInt},
		{"uint64", uint64(3), KindUint},
		{"float", 1.5, KindFloat},
		{"bool", true, KindBool},
		{"time", ts, KindTime},
		{"data", []byte("abc"), KindData},
		{"list", []any{"a", 1}, KindList},
		{"map", map[string]any{"a": 1}, KindMap},
		{"yaml map", map[any]any{1: "one"}, KindMap},
		{"json number", json.Number("42"), KindInt},
		{"unknown", struct{ A int }{1}, KindString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromAny(tt.in).Kind())
		})
	}
}

func TestMap_DefaultingAccessors(t *testing.T) {
	doc := FromAny(map[string]any{
		"Identifier": "com.github.autopkg.munki.Foo",
		"Input": map[string]any{
			"NAME":    "Foo",
			"pkginfo": map[string]any{"display_name": "Foo App"},
		},
		"Process": "not a list",
	})
	m, ok := doc.Map()
	require.True(t, ok)

	id, ok := m.String("Identifier")
	assert.True(t, ok)
	assert.Equal(t, "com.github.autopkg.munki.Foo", id)

	_, ok = m.String("Missing")
	assert.False(t, ok)

	assert.Empty(t, m.Map("Missing"))
	assert.Empty(t, m.Map("Identifier"))
	assert.Nil(t, m.List("Process"))

	display, _ := m.Lookup("Input", "pkginfo", "display_name").Str()
	assert.Equal(t, "Foo App", display)
	assert.True(t, m.Lookup("Input", "NAME", "deeper").IsNull())
	assert.True(t, m.Lookup("Nope", "pkginfo").IsNull())

	var nilMap Map
	assert.True(t, nilMap.Get("x").IsNull())
}

func TestValue_Truthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"null", Null(), false},
		{"empty string", String(""), false},
		{"string", String("p1"), true},
		{"zero", Int(0), false},
		{"one", Int(1), true},
		{"false", Bool(false), false},
		{"empty list", List(), false},
		{"empty map", MapValue(Map{}), false},
		{"map", MapValue(Map{"a": Null()}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Truthy())
		})
	}
}

func TestValue_ToJSON(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))
	v := FromAny(map[string]any{
		"when":  ts,
		"blob":  []byte("hi"),
		"nan":   math.NaN(),
		"list":  []any{true, nil, int64(2)},
		"plain": "text",
	})

	want := map[string]any{
		"when":  "2024-05-01T11:00:00Z",
		"blob":  "aGk=",
		"nan":   "NaN",
		"list":  []any{true, nil, int64(2)},
		"plain": "text",
	}
	if diff := cmp.Diff(want, v.ToJSON()); diff != "" {
		t.Errorf("ToJSON() mismatch (-want +got):\n%s", diff)
	}
}

func TestValue_JSONRoundTrip(t *testing.T) {
	in := FromAny(map[string]any{
		"flag":  false,
		"none":  nil,
		"count": int64(12),
		"ratio": 0.5,
		"names": []any{"a", "b"},
	})

	first, err := json.Marshal(in)
	require.NoError(t, err)

	var out Value
	require.NoError(t, json.Unmarshal(first, &out))

	second, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(second))
	assert.True(t, in.Equal(out))
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "", Null().String())
	assert.Equal(t, "abc", String("abc").String())
	assert.Equal(t, "7", Int(7).String())
	assert.Equal(t, `["a"]`, List(String("a")).String())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "map", KindMap.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
