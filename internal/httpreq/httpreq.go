// Package httpreq renders request bodies as raw HTTP/1.1 requests that can be
// pasted into an intercepting proxy. Nothing is sent over the network.
package httpreq

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sanixdarker/gqlpath/internal/config"
	"github.com/sanixdarker/gqlpath/pkg/querygen"
)

var reservedHeaders = map[string]bool{
	"host":           true,
	"content-length": true,
	"content-type":   true,
}

// Body encodes a request body as compact JSON.
func Body(body querygen.QueryBody) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		return nil, fmt.Errorf("failed to encode body: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Build renders body as a raw request addressed to target. Lines end with
// CRLF. Extra headers are emitted in name order, skipping Host,
// Content-Length and Content-Type which are always derived.
func Build(target config.Target, body querygen.QueryBody) (string, error) {
	payload, err := Body(body)
	if err != nil {
		return "", err
	}

	method := strings.ToUpper(strings.TrimSpace(target.Method))
	if method == "" {
		method = "POST"
	}
	path := strings.TrimSpace(target.Path)
	if path == "" {
		path = "/graphql"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	contentType := strings.TrimSpace(target.ContentType)
	if contentType == "" {
		contentType = "application/json"
	}

	lines := []string{
		method + " " + path + " HTTP/1.1",
		"Host: " + HostHeader(target),
		"Content-Type: " + contentType,
		"Content-Length: " + strconv.Itoa(len(payload)),
	}

	names := make([]string, 0, len(target.Headers))
	for name := range target.Headers {
		if n := strings.TrimSpace(name); n != "" && !reservedHeaders[strings.ToLower(n)] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		lines = append(lines, strings.TrimSpace(name)+": "+target.Headers[name])
	}

	lines = append(lines, "", string(payload))
	return strings.Join(lines, "\r\n"), nil
}

// HostHeader returns host[:port], omitting the port when it is the default
// for the scheme.
func HostHeader(target config.Target) string {
	host := target.Host
	if target.Port == 0 {
		return host
	}
	switch {
	case target.Port == 443 && strings.EqualFold(target.Scheme, "https"):
		return host
	case target.Port == 80 && strings.EqualFold(target.Scheme, "http"):
		return host
	}
	return host + ":" + strconv.Itoa(target.Port)
}

// URL returns the endpoint URL described by target.
func URL(target config.Target) string {
	scheme := target.Scheme
	if scheme == "" {
		scheme = "https"
	}
	path := target.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return scheme + "://" + HostHeader(target) + path
}

// WriteFiles writes one .http file per body into dir, named after the
// position and operation name, and returns the paths written.
func WriteFiles(dir string, target config.Target, bodies []querygen.QueryBody) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create request directory: %w", err)
	}

	var written []string
	for i, body := range bodies {
		raw, err := Build(target, body)
		if err != nil {
			return written, err
		}
		name := fmt.Sprintf("%03d_%s.http", i+1, body.OperationName)
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", name, err)
		}
		written = append(written, path)
	}
	return written, nil
}
