package models

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

// ParseYAMLRequest decodes a YAML forecast request.
func ParseYAMLRequest(data []byte) (*ForecastRequest, error) {
	var req ForecastRequest
	if err := yaml.UnmarshalStrict(data, &req); err != nil {
		return nil, fmt.Errorf("decode yaml request: %w", err)
	}
	return &req, nil
}

// ParseJSONRequest decodes a JSON forecast request.
func ParseJSONRequest(data []byte) (*ForecastRequest, error) {
	var req ForecastRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("decode json request: %w", err)
	}
	return &req, nil
}

// LoadRequest reads a request document from disk. Files ending in .json are
// decoded as JSON, everything else as YAML.
func LoadRequest(path string) (*ForecastRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseJSONRequest(data)
	}
	return ParseYAMLRequest(data)
}

// IsYAML reports whether a Content-Type header names a YAML body.
func IsYAML(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	switch strings.TrimSpace(strings.ToLower(mediaType)) {
	case "application/x-yaml", "application/yaml", "text/yaml", "text/x-yaml":
		return true
	}
	return false
}
