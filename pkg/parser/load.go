package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/powerset/pkg/schema"
)

// LoadFile reads a definition from disk, choosing the decoder by extension.
// .yaml, .yml and .json go through schema.DecodeYAML; anything else is the text format.
// When the definition has no name, the file name without extension is used.
func LoadFile(path string) (*schema.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var def *schema.Definition
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml", ".json":
		def, err = schema.DecodeYAML(data)
	default:
		def, err = New().ParseBytes(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return def, nil
}
