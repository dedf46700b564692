package schema

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Decode converts a loosely typed map (from YAML, JSON or frontmatter) into a Definition.
func Decode(raw map[string]any) (*Definition, error) {
	var def Definition
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &def,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode definition: %w", err)
	}
	def.normalize()
	return &def, nil
}

// DecodeYAML parses YAML (or JSON, which is valid YAML) into a Definition.
func DecodeYAML(data []byte) (*Definition, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("failed to parse yaml: document is empty")
	}
	return Decode(raw)
}

// EncodeYAML renders a Definition as YAML.
func EncodeYAML(def *Definition) ([]byte, error) {
	return yaml.Marshal(def)
}

// normalize trims whitespace that comma-splitting leaves behind.
func (d *Definition) normalize() {
	trim := func(in []string) []string {
		out := in[:0]
		for _, s := range in {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	d.Name = strings.TrimSpace(d.Name)
	d.Start = strings.TrimSpace(d.Start)
	d.States = trim(d.States)
	d.Alphabet = trim(d.Alphabet)
	d.Accept = trim(d.Accept)
	for i := range d.Transitions {
		d.Transitions[i].From = strings.TrimSpace(d.Transitions[i].From)
		d.Transitions[i].Symbol = strings.TrimSpace(d.Transitions[i].Symbol)
		d.Transitions[i].To = trim(d.Transitions[i].To)
	}
}
