// Copyright 2025 walteh LLC
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

package reencode

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/unityconv/pkg/rewrite"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty_stream",
			input: "",
			want:  "[]",
		},
		{
			name: "unity_objects",
			input: "%YAML 1.1\n" +
				"--- &100\n" +
				"GameObject:\n" +
				"  id: 100\n" +
				"  m_Name: Foo\n" +
				"  m_Component:\n" +
				"  - component: {fileID: 400}\n" +
				"  m_IsActive: 1\n" +
				"--- &400\n" +
				"Transform:\n" +
				"  id: 400\n" +
				"  m_LocalPosition: {x: 0.5, y: -1, z: 0}\n" +
				"  m_Father: {fileID: 0}\n",
			want: `[{"GameObject":{"id":"100","m_Name":"Foo","m_Component":[{"component":{"fileID":400}}],"m_IsActive":1}},` +
				`{"Transform":{"id":"400","m_LocalPosition":{"x":0.5,"y":-1,"z":0},"m_Father":{"fileID":0}}}]`,
		},
		{
			name:  "large_integers_stay_exact",
			input: "a: 8926484042661614527\nb: 18446744073709551615\nc: -42\n",
			want:  `[{"a":8926484042661614527,"b":18446744073709551615,"c":-42}]`,
		},
		{
			name:  "nested_id_keeps_its_type",
			input: "A:\n  id: 5\n  b:\n    id: 6\n",
			want:  `[{"A":{"id":"5","b":{"id":6}}}]`,
		},
		{
			name:  "aliases_resolve",
			input: "base: &x {a: 1}\nother: *x\n",
			want:  `[{"base":{"a":1},"other":{"a":1}}]`,
		},
		{
			name:  "scalar_kinds",
			input: "n: ~\nt: true\ns: 'yes'\nf: .nan\nq: \"<a&b>\"\n",
			want:  `[{"n":null,"t":true,"s":"yes","f":".nan","q":"<a&b>"}]`,
		},
		{
			name:  "sequence_document",
			input: "- 1\n- two\n---\nk: v\n",
			want:  `[[1,"two"],{"k":"v"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(context.Background(), []byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
			assert.True(t, json.Valid(got), "output should be valid json")
		})
	}
}

func TestEncode_ParseError(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantDoc int
	}{
		{name: "unclosed_flow", input: "A:\n  b: [1, 2\n", wantDoc: 0},
		{name: "second_document", input: "a: 1\n---\nb: [\n", wantDoc: 1},
		{name: "bad_indent", input: "name: Foo\n  id: 100\n", wantDoc: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(context.Background(), []byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, got, "no partial output on failure")

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.wantDoc, perr.Document)
		})
	}
}

func TestEncode_AfterJSONRewrite(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name: "trailing_blank_line",
			input: "%YAML 1.1\n" +
				"%TAG !u! tag:unity3d.com,2011:\n" +
				"--- !u!1 &100\n" +
				"name: Foo\n" +
				"--- !u!1 &200 stripped\n" +
				"name: Bar\n" +
				"\n",
			want: `[{"name":"Foo","id":"100"},{"name":"Bar","id":"200"}]`,
		},
		{
			// the last line never gets an id after it
			name: "body_on_last_line",
			input: "%YAML 1.1\n" +
				"%TAG !u! tag:unity3d.com,2011:\n" +
				"--- !u!1 &100\n" +
				"name: Foo\n" +
				"--- !u!1 &200 stripped\n" +
				"name: Bar\n",
			want: `[{"name":"Foo","id":"100"},{"name":"Bar"}]`,
		},
		{
			name: "four_space_body",
			input: "--- !u!1 &100\n" +
				"GameObject:\n" +
				"    m_Name: Foo\n" +
				"    m_Layer: 0\n",
			want: `[{"GameObject":{"id":"100","m_Name":"Foo","m_Layer":0}}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, _ := rewrite.RewriteString(tt.input, rewrite.DefaultOptions(rewrite.ModeJSON))

			got, err := Encode(context.Background(), []byte(text))
			require.NoError(t, err, "rewritten text should decode")
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestEncode_UnityTagsNeedRewrite(t *testing.T) {
	raw := "%YAML 1.1\n%TAG !u! tag:unity3d.com,2011:\n--- !u!1 &100\nGameObject:\n  m_Name: Foo\n"

	text, _ := rewrite.RewriteString(raw, rewrite.DefaultOptions(rewrite.ModeJSON))
	got, err := Encode(context.Background(), []byte(text))
	require.NoError(t, err)
	assert.Equal(t, `[{"GameObject":{"id":"100","m_Name":"Foo"}}]`, string(got))
}

func TestDocuments_Empty(t *testing.T) {
	docs, err := Documents(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.NotNil(t, docs)
}
