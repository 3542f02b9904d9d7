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

package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"howett.net/plist"

	"github.com/autopkg/index/pkg/defaults"
	"github.com/autopkg/index/pkg/document"
)

// Format is the on-disk encoding of a recipe.
type Format string

const (
	// FormatPlist covers XML and binary property lists.
	FormatPlist Format = "plist"
	// FormatYAML covers .recipe.yaml files.
	FormatYAML Format = "yaml"
)

// Label returns the human spelling used in diagnostics.
func (f Format) Label() string {
	if f == FormatYAML {
		return "YAML"
	}
	return "plist"
}

// FormatFromPath picks the decoder for path: files ending in .yaml are
// YAML, everything else is a property list.
func FormatFromPath(path string) Format {
	if strings.HasSuffix(path, ".yaml") {
		return FormatYAML
	}
	return FormatPlist
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxSize sets the maximum recipe size in bytes. Default is
// defaults.MaxRecipeBytes.
func WithMaxSize(size int) Option {
	return func(p *Parser) {
		p.maxSize = size
	}
}

// Parser decodes recipe files into document maps.
type Parser struct {
	maxSize int
}

// NewParser creates a Parser with the provided options.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		maxSize: defaults.MaxRecipeBytes,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = NewParser()

// ParseFile decodes path with the default parser.
func ParseFile(path string) (document.Map, error) {
	return defaultParser.ParseFile(path)
}

// ParseFile reads and decodes the recipe at path. It returns a *ParseError
// when the bytes cannot be read or decoded and an *EmptyDocumentError when
// decoding yields nothing usable.
func (p *Parser) ParseFile(path string) (document.Map, error) {
	format := FormatFromPath(path)

	f, err := os.Open(path)
	if err != nil {
		return nil, newParseError(format, path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, int64(p.maxSize)+1))
	if err != nil {
		return nil, newParseError(format, path, err)
	}
	if len(data) > p.maxSize {
		return nil, newParseError(format, path, fmt.Errorf("file exceeds maximum size of %d bytes", p.maxSize))
	}

	return p.Parse(format, path, data)
}

// Parse decodes data as format. path is used only for error reporting.
func (p *Parser) Parse(format Format, path string, data []byte) (document.Map, error) {
	var (
		raw any
		err error
	)
	switch format {
	case FormatYAML:
		raw, err = decodeYAML(data)
	case FormatPlist:
		raw, err = decodePlist(data)
	default:
		return nil, newParseError(format, path, fmt.Errorf("unsupported format %q", format))
	}
	if err != nil {
		return nil, newParseError(format, path, err)
	}

	m, ok := document.FromAny(raw).Map()
	if !ok || len(m) == 0 {
		return nil, &EmptyDocumentError{Format: format, Path: path}
	}
	return m, nil
}

// decodeYAML decodes exactly one YAML document. An empty stream yields nil.
func decodeYAML(data []byte) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var raw any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, errors.New("expected a single document in the stream")
	}
	return raw, nil
}

func decodePlist(data []byte) (raw any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed property list: %v", r)
		}
	}()

	format, err := plist.Unmarshal(data, &raw)
	if err != nil {
		return nil, err
	}
	// Recipes are XML or binary; the decoder's OpenStep fallback would
	// otherwise accept arbitrary text as a bare string.
	if format != plist.XMLFormat && format != plist.BinaryFormat {
		return nil, fmt.Errorf("unsupported property list format %s", plist.FormatNames[format])
	}
	return raw, nil
}
