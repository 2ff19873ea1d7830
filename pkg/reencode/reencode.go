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

// Package reencode turns a rewritten Unity YAML stream into compact JSON.
package reencode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/walteh/unityconv/pkg/rewrite"
)

// ❌ ParseError reports YAML that could not be decoded
type ParseError struct {
	Document int // zero based index of the failing document
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing yaml document %d: %v", e.Document, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// 📜 Decode reads every document of a YAML stream in file order
func Decode(ctx context.Context, text []byte) ([]*yaml.Node, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(text))

	var docs []*yaml.Node
	for {
		var doc yaml.Node
		err := decoder.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Document: len(docs), Err: err}
		}
		docs = append(docs, &doc)
	}

	zerolog.Ctx(ctx).Debug().Int("documents", len(docs)).Msg("decoded yaml stream")
	return docs, nil
}

// 🔄 Encode decodes text as a YAML stream and returns a compact JSON array
// holding one value per document. Nothing is returned on failure.
func Encode(ctx context.Context, text []byte) ([]byte, error) {
	docs, err := Decode(ctx, text)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, doc := range docs {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeNode(&buf, doc, 0); err != nil {
			return nil, errors.Errorf("encoding document %d: %w", i, err)
		}
	}
	buf.WriteByte(']')

	return buf.Bytes(), nil
}

// 📦 Documents returns the stream as generic values, in the same shape
// Encode would write
func Documents(ctx context.Context, text []byte) ([]any, error) {
	data, err := Encode(ctx, text)
	if err != nil {
		return nil, err
	}

	var out []any
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&out); err != nil {
		return nil, errors.Errorf("decoding encoded documents: %w", err)
	}
	if out == nil {
		out = []any{}
	}
	return out, nil
}

// writeNode writes n as JSON. depth counts mappings above n; the id key
// is forced to a string in the document root and in the per-type mapping.
func writeNode(buf *bytes.Buffer, n *yaml.Node, depth int) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeNode(buf, n.Content[0], depth)
	case yaml.AliasNode:
		if n.Alias == nil {
			return errors.Errorf("line %d: alias %q has no target", n.Line, n.Value)
		}
		return writeNode(buf, n.Alias, depth)
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeNode(buf, item, depth); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case yaml.MappingNode:
		return writeMapping(buf, n, depth)
	case yaml.ScalarNode:
		return writeScalar(buf, n)
	default:
		return errors.Errorf("line %d: unsupported yaml node kind %d", n.Line, n.Kind)
	}
}

func writeMapping(buf *bytes.Buffer, n *yaml.Node, depth int) error {
	if len(n.Content)%2 != 0 {
		return errors.Errorf("line %d: mapping has a dangling key", n.Line)
	}

	buf.WriteByte('{')
	for i := 0; i < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if key.Kind == yaml.AliasNode && key.Alias != nil {
			key = key.Alias
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		writeString(buf, key.Value)
		buf.WriteByte(':')

		if depth <= 1 && key.Value == rewrite.IDKey && value.Kind == yaml.ScalarNode {
			writeString(buf, value.Value)
			continue
		}
		if err := writeNode(buf, value, depth+1); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeScalar(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.ShortTag() {
	case "!!null":
		buf.WriteString("null")
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return errors.Errorf("line %d: decoding bool: %w", n.Line, err)
		}
		buf.WriteString(strconv.FormatBool(b))
	case "!!int":
		writeInt(buf, n)
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return errors.Errorf("line %d: decoding float: %w", n.Line, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			writeString(buf, n.Value)
			return nil
		}
		buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	default:
		writeString(buf, n.Value)
	}
	return nil
}

// writeInt keeps integers exact; fileIDs do not survive a float64 trip
func writeInt(buf *bytes.Buffer, n *yaml.Node) {
	var i int64
	if err := n.Decode(&i); err == nil {
		buf.WriteString(strconv.FormatInt(i, 10))
		return
	}
	var u uint64
	if err := n.Decode(&u); err == nil {
		buf.WriteString(strconv.FormatUint(u, 10))
		return
	}
	writeString(buf, n.Value)
}

func writeString(buf *bytes.Buffer, s string) {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	// a plain string always encodes
	_ = enc.Encode(s)
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
}
