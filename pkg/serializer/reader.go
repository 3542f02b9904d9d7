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

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FormatFromPath determines the format from a file extension:
// .yaml and .yml are YAML, .table and .txt are table, everything else JSON.
// Query strings of URLs are ignored.
func FormatFromPath(filePath string) Format {
	lowerPath := strings.ToLower(filePath)
	if i := strings.IndexAny(lowerPath, "?#"); i >= 0 {
		lowerPath = lowerPath[:i]
	}
	switch {
	case strings.HasSuffix(lowerPath, ".yaml"), strings.HasSuffix(lowerPath, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lowerPath, ".table"), strings.HasSuffix(lowerPath, ".txt"):
		return FormatTable
	case strings.HasSuffix(lowerPath, ".json"):
		return FormatJSON
	default:
		slog.Debug("unknown file extension, defaulting to JSON", "path", filePath)
		return FormatJSON
	}
}

// Reader deserializes JSON or YAML from an io.Reader.
// Close must be called when the Reader was created by NewFileReader.
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
}

// NewReader creates a Reader. Table format cannot be read back.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	if err := readable(format); err != nil {
		return nil, err
	}
	r := &Reader{
		format: format,
		input:  input,
	}
	if c, ok := input.(io.Closer); ok {
		r.closer = c
	}
	return r, nil
}

func readable(format Format) error {
	if format.IsUnknown() {
		return fmt.Errorf("unknown format: %s", format)
	}
	if format == FormatTable {
		return fmt.Errorf("table format does not support deserialization")
	}
	return nil
}

// NewFileReader opens a local file for reading.
func NewFileReader(format Format, filePath string) (*Reader, error) {
	if err := readable(format); err != nil {
		return nil, err
	}
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return &Reader{
		format: format,
		input:  file,
		closer: file,
	}, nil
}

// Deserialize decodes the input into v.
func (r *Reader) Deserialize(v any) error {
	if r == nil {
		return fmt.Errorf("reader is nil")
	}
	if r.input == nil {
		return fmt.Errorf("input source is nil")
	}

	switch r.format {
	case FormatJSON:
		if err := json.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
		return nil
	case FormatYAML:
		if err := yaml.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}
}

// Close releases the underlying file. Safe to call more than once.
func (r *Reader) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// Source reads serialized data from a path, URL, or ConfigMap.
type Source struct {
	http     *HttpReader
	clientFn ClientFunc
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithHttpReader sets the reader used for http and https locations.
func WithHttpReader(r *HttpReader) SourceOption {
	return func(s *Source) {
		s.http = r
	}
}

// WithSourceClientFunc sets how the Kubernetes client is obtained for
// cm:// locations.
func WithSourceClientFunc(fn ClientFunc) SourceOption {
	return func(s *Source) {
		s.clientFn = fn
	}
}

// NewSource creates a Source with default HTTP and Kubernetes access.
func NewSource(opts ...SourceOption) *Source {
	s := &Source{clientFn: defaultClient}
	for _, opt := range opts {
		opt(s)
	}
	if s.http == nil {
		s.http = NewHttpReader()
	}
	return s
}

// Load returns the raw content at location and its format. Locations are
// local paths, http(s) URLs, or cm://namespace/name.
func (s *Source) Load(ctx context.Context, location string) ([]byte, Format, error) {
	switch {
	case strings.HasPrefix(location, ConfigMapURIScheme):
		namespace, name, err := parseConfigMapURI(location)
		if err != nil {
			return nil, "", err
		}
		k8s, err := s.clientFn()
		if err != nil {
			return nil, "", fmt.Errorf("failed to get kubernetes client: %w", err)
		}
		return readConfigMap(ctx, k8s, namespace, name)

	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		data, err := s.http.ReadWithContext(ctx, location)
		if err != nil {
			return nil, "", err
		}
		return data, FormatFromPath(location), nil

	default:
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", location, err)
		}
		return data, FormatFromPath(location), nil
	}
}

// Into is a generic helper that loads location and decodes it into a new T.
func Into[T any](ctx context.Context, s *Source, location string) (*T, error) {
	data, format, err := s.Load(ctx, location)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(format, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var v T
	if err := r.Deserialize(&v); err != nil {
		return nil, fmt.Errorf("failed to deserialize %q: %w", location, err)
	}
	slog.Debug("loaded object", "location", location, "format", format, "bytes", len(data))
	return &v, nil
}

// FromFile loads location with a default Source.
func FromFile[T any](ctx context.Context, location string) (*T, error) {
	return Into[T](ctx, NewSource(), location)
}
