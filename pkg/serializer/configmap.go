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
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"

	"github.com/autopkg/index/pkg/defaults"
	"github.com/autopkg/index/pkg/header"
	"github.com/autopkg/index/pkg/k8s/client"
)

const (
	// ConfigMapURIScheme prefixes ConfigMap destinations: cm://namespace/name.
	ConfigMapURIScheme = "cm://"

	// ConfigMapDataPrefix is the data key stem; the key is index.<ext>.
	ConfigMapDataPrefix = "index"

	configMapFormatKey    = "format"
	configMapTimestampKey = "timestamp"
	configMapFieldManager = "recipe-index"
	configMapAppName      = "recipe-index"
)

// ClientFunc returns the Kubernetes client used for ConfigMap access.
type ClientFunc func() (client.Interface, error)

func defaultClient() (client.Interface, error) {
	c, _, err := client.GetKubeClient()
	return c, err
}

// ConfigMapOption configures a ConfigMapWriter.
type ConfigMapOption func(*ConfigMapWriter)

// WithHeader labels and annotates the ConfigMap from h.
func WithHeader(h *header.Header) ConfigMapOption {
	return func(w *ConfigMapWriter) {
		w.header = h
	}
}

// WithClientFunc overrides how the Kubernetes client is obtained.
func WithClientFunc(fn ClientFunc) ConfigMapOption {
	return func(w *ConfigMapWriter) {
		w.clientFn = fn
	}
}

// ConfigMapWriter publishes a serialized value into a Kubernetes ConfigMap
// with server-side apply, creating it when missing.
type ConfigMapWriter struct {
	namespace string
	name      string
	format    Format
	header    *header.Header
	clientFn  ClientFunc
}

// NewConfigMapWriter creates a writer for namespace/name. Unknown formats
// fall back to JSON.
func NewConfigMapWriter(namespace, name string, format Format, opts ...ConfigMapOption) *ConfigMapWriter {
	w := &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    orJSON(format),
		clientFn:  defaultClient,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// DataKey returns the ConfigMap data key holding the content.
func (w *ConfigMapWriter) DataKey() string {
	return dataKey(w.format)
}

func dataKey(format Format) string {
	return fmt.Sprintf("%s.%s", ConfigMapDataPrefix, format.Extension())
}

// Serialize renders v and applies the ConfigMap.
func (w *ConfigMapWriter) Serialize(ctx context.Context, v any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	content, err := Marshal(w.format, v)
	if err != nil {
		return err
	}

	k8s, err := w.clientFn()
	if err != nil {
		return fmt.Errorf("failed to get kubernetes client: %w", err)
	}

	slog.Info("applying ConfigMap",
		"namespace", w.namespace,
		"name", w.name,
		"format", w.format,
		"bytes", len(content))

	_, err = k8s.CoreV1().ConfigMaps(w.namespace).Apply(
		writeCtx,
		w.applyConfig(content),
		metav1.ApplyOptions{
			FieldManager: configMapFieldManager,
			Force:        true,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}
	return nil
}

func (w *ConfigMapWriter) applyConfig(content []byte) *accorev1.ConfigMapApplyConfiguration {
	version := "unknown"
	kind := header.KindRecipeIndex.String()
	timestamp := time.Now().UTC().Format(time.RFC3339)
	annotations := map[string]string{}

	if w.header != nil {
		if w.header.Kind != "" {
			kind = w.header.Kind.String()
		}
		if v := w.header.Metadata[header.MetadataVersion]; v != "" {
			version = v
		}
		if ts := w.header.Metadata[header.MetadataTimestamp]; ts != "" {
			timestamp = ts
		}
		if id := w.header.BuildID(); id != "" {
			annotations["autopkg.github.io/build-id"] = id
		}
	}

	return accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":      configMapAppName,
			"app.kubernetes.io/component": kind,
			"app.kubernetes.io/version":   version,
		}).
		WithAnnotations(annotations).
		WithData(map[string]string{
			w.DataKey():           string(content),
			configMapFormatKey:    string(w.format),
			configMapTimestampKey: timestamp,
		})
}

// Close is a no-op.
func (w *ConfigMapWriter) Close() error {
	return nil
}

// parseConfigMapURI splits cm://namespace/name.
func parseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	parts := strings.SplitN(strings.TrimPrefix(uri, ConfigMapURIScheme), "/", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])
	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}
	if strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot contain '/'")
	}
	return namespace, name, nil
}

// readConfigMap returns the content and format stored by ConfigMapWriter.
func readConfigMap(ctx context.Context, k8s client.Interface, namespace, name string) ([]byte, Format, error) {
	cm, err := k8s.CoreV1().ConfigMaps(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("failed to get ConfigMap %s/%s: %w", namespace, name, err)
	}

	format := FormatJSON
	if f, ok := cm.Data[configMapFormatKey]; ok {
		format = Format(f)
	}
	if format.IsUnknown() || format == FormatTable {
		return nil, "", fmt.Errorf("ConfigMap %s/%s has unreadable format %q", namespace, name, format)
	}

	content, ok := cm.Data[dataKey(format)]
	if !ok {
		return nil, "", fmt.Errorf("ConfigMap %s/%s has no %s key", namespace, name, dataKey(format))
	}
	return []byte(content), format, nil
}
