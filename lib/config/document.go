package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/oops"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// document is a parsed configuration file organised in named sections of
// key/value pairs.
type document interface {
	hasSection(name string) bool
	value(section, key string) (string, bool)
}

// loadDocument parses the file at path. YAML is selected by extension,
// anything else is read as INI, which is what keylime.conf uses.
func loadDocument(path string) (document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadYAMLDocument(path)
	default:
		return loadINIDocument(path)
	}
}

type iniDocument struct {
	file *ini.File
}

func loadINIDocument(path string) (document, error) {
	// Values are returned as stored: no inline comment stripping and no
	// %(key)s interpolation.
	f, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, path)
	if err != nil {
		return nil, oops.Wrapf(err, "failed to load INI file %s", path)
	}
	return &iniDocument{file: f}, nil
}

func (d *iniDocument) hasSection(name string) bool {
	return d.file.HasSection(name)
}

func (d *iniDocument) value(section, key string) (string, bool) {
	sec, err := d.file.GetSection(section)
	if err != nil {
		return "", false
	}
	if !sec.HasKey(key) {
		return "", false
	}
	return sec.Key(key).Value(), true
}

// yamlDocument holds a top-level mapping of section name to a mapping of
// scalar values. An entry with no value is an empty section; scalars and
// sequences are not sections.
type yamlDocument struct {
	sections map[string]map[string]any
}

func loadYAMLDocument(path string) (document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.Wrapf(err, "failed to read YAML file %s", path)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, oops.Wrapf(err, "failed to parse YAML file %s", path)
	}

	doc := &yamlDocument{sections: make(map[string]map[string]any, len(raw))}
	for name, v := range raw {
		if sec, ok := yamlSection(v); ok {
			doc.sections[name] = sec
		}
	}
	return doc, nil
}

// yamlSection converts a decoded top-level value into a section. yaml.v3
// decodes a mapping with any non-string key into map[any]any, so keys are
// stringified the same way values are.
func yamlSection(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case nil:
		return map[string]any{}, true
	case map[string]any:
		return m, true
	case map[any]any:
		sec := make(map[string]any, len(m))
		for k, val := range m {
			sec[fmt.Sprint(k)] = val
		}
		return sec, true
	default:
		return nil, false
	}
}

func (d *yamlDocument) hasSection(name string) bool {
	_, ok := d.sections[name]
	return ok
}

func (d *yamlDocument) value(section, key string) (string, bool) {
	sec, ok := d.sections[section]
	if !ok {
		return "", false
	}
	v, ok := sec[key]
	if !ok {
		return "", false
	}
	if v == nil {
		return "", true
	}
	return fmt.Sprint(v), true
}
