// Package locale resolves the preset user-facing messages the pipeline
// emits, localized by UI language name with English as the fallback.
package locale

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

// catalog is the parsed shape of presets.yaml.
type catalog struct {
	Languages map[string]string            `yaml:"languages"`
	Messages  map[string]map[string]string `yaml:"messages"`
}

var presets catalog

func init() {
	if err := yaml.Unmarshal(presetsYAML, &presets); err != nil {
		panic(fmt.Sprintf("locale: invalid presets.yaml: %v", err))
	}
}

// DefaultLanguage is the language every message is guaranteed to exist in.
const DefaultLanguage = "English"

// Code maps a UI language name to its two-letter code, defaulting to "en".
func Code(langName string) string {
	if code, ok := presets.Languages[langName]; ok {
		return code
	}
	return "en"
}

// Supported reports whether the given UI language name has presets.
func Supported(langName string) bool {
	_, ok := presets.Languages[langName]
	return ok
}

// Languages returns the supported UI language names.
func Languages() []string {
	out := make([]string, 0, len(presets.Languages))
	for name := range presets.Languages {
		out = append(out, name)
	}
	return out
}

// Preset returns the message for the given key in the given UI language,
// falling back to English, then to the empty string for unknown keys.
func Preset(key, langName string) string {
	msg, ok := presets.Messages[key]
	if !ok {
		return ""
	}
	if text, ok := msg[Code(langName)]; ok {
		return text
	}
	return msg["en"]
}

// Presetf is Preset with {name} placeholders substituted from pairs of
// name, value arguments.
func Presetf(key, langName string, pairs ...string) string {
	text := Preset(key, langName)
	for i := 0; i+1 < len(pairs); i += 2 {
		text = strings.ReplaceAll(text, "{"+pairs[i]+"}", pairs[i+1])
	}
	return text
}
