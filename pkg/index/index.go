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

// Package index maps the ids of a converted Unity file to its objects.
//
// Both output formats are accepted. YAML input (converted or not) is passed
// through the JSON line rules first so Unity tags do not reach the decoder.
package index

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/unityconv/pkg/reencode"
	"github.com/walteh/unityconv/pkg/rewrite"
)

// 🧱 Object is one document of a Unity file
type Object struct {
	ID       string // empty when the document has no id field
	Type     string // the single root key, e.g. GameObject
	Position int    // zero based document number
	Document any
}

// 📇 Index holds the objects of a file in document order
type Index struct {
	Objects []Object
	byID    map[string]int
}

// 🏗️ Build decodes text and indexes every document
func Build(ctx context.Context, text []byte) (*Index, error) {
	docs, err := decode(ctx, text)
	if err != nil {
		return nil, err
	}

	idx := &Index{
		Objects: make([]Object, 0, len(docs)),
		byID:    make(map[string]int, len(docs)),
	}

	for i, doc := range docs {
		obj := objectOf(doc)
		obj.Position = i
		if obj.ID != "" {
			if prev, ok := idx.byID[obj.ID]; ok {
				zerolog.Ctx(ctx).Warn().
					Str("id", obj.ID).
					Int("first", prev).
					Int("duplicate", i).
					Msg("duplicate object id, keeping the first")
			} else {
				idx.byID[obj.ID] = i
			}
		}
		idx.Objects = append(idx.Objects, obj)
	}

	zerolog.Ctx(ctx).Debug().Int("objects", len(idx.Objects)).Int("ids", len(idx.byID)).Msg("built index")
	return idx, nil
}

// Lookup finds the object carrying id
func (idx *Index) Lookup(id string) (Object, bool) {
	i, ok := idx.byID[id]
	if !ok {
		return Object{}, false
	}
	return idx.Objects[i], true
}

// Types counts objects per type, sorted by type name
func (idx *Index) Types() []TypeCount {
	counts := map[string]int{}
	for _, obj := range idx.Objects {
		counts[obj.Type]++
	}

	out := make([]TypeCount, 0, len(counts))
	for typ, n := range counts {
		out = append(out, TypeCount{Type: typ, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// TypeCount is one row of Types
type TypeCount struct {
	Type  string
	Count int
}

func decode(ctx context.Context, text []byte) ([]any, error) {
	trimmed := bytes.TrimSpace(text)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		var docs []any
		decoder := json.NewDecoder(bytes.NewReader(trimmed))
		decoder.UseNumber()
		if err := decoder.Decode(&docs); err != nil {
			return nil, errors.Errorf("decoding json: %w", err)
		}
		return docs, nil
	}

	normalized, _ := rewrite.RewriteString(string(text), rewrite.DefaultOptions(rewrite.ModeJSON))
	docs, err := reencode.Documents(ctx, []byte(normalized))
	if err != nil {
		return nil, errors.Errorf("decoding yaml: %w", err)
	}
	return docs, nil
}

func objectOf(doc any) Object {
	obj := Object{Document: doc}

	root, ok := doc.(map[string]any)
	if !ok {
		return obj
	}

	if id, ok := root[rewrite.IDKey]; ok {
		obj.ID = idString(id)
	}

	if len(root) != 1 {
		return obj
	}
	for typ, body := range root {
		if typ == rewrite.IDKey {
			break
		}
		obj.Type = typ
		if fields, ok := body.(map[string]any); ok {
			if id, ok := fields[rewrite.IDKey]; ok {
				obj.ID = idString(id)
			}
		}
	}
	return obj
}

func idString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
