// Package movement expands multi-movement compositions into per-track
// work/part assignments, and loads the composition catalogs that drive it.
package movement

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/listenupapp/albumtag/internal/errors"
	"github.com/listenupapp/albumtag/internal/validation"
)

//go:embed catalogs/*.yaml
var builtinFS embed.FS

// Composition is a multi-movement work.
type Composition struct {
	Title     string   `yaml:"title" toml:"title" json:"title" validate:"notblank"`
	Movements []string `yaml:"movements" toml:"movements" json:"movements" validate:"min=1,dive,notblank"`
}

// Catalog maps composition ids to compositions. It is read-only once loaded.
type Catalog map[string]Composition

// IDs returns the composition ids, numeric ids in numeric order first.
func (c Catalog) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return lessID(ids[i], ids[j])
	})
	return ids
}

// lessID orders "2" before "10" and numbers before names.
func lessID(a, b string) bool {
	an, aok := atoi(a)
	bn, bok := atoi(b)
	switch {
	case aok && bok:
		return an < bn
	case aok != bok:
		return aok
	default:
		return a < b
	}
}

func atoi(s string) (int, bool) {
	if s == "" || len(s) > 9 {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// catalogFile is the on-disk shape shared by YAML and TOML catalogs.
type catalogFile struct {
	Compositions map[string]Composition `yaml:"compositions" toml:"compositions" validate:"min=1,dive"`
	Name         string                 `yaml:"name,omitempty" toml:"name"`
}

// Format is a catalog file encoding.
type Format string

// Supported catalog encodings.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Parse decodes and validates a catalog.
func Parse(data []byte, format Format) (Catalog, error) {
	var f catalogFile
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, errors.Wrap(err, errors.CodeValidation, "decode yaml catalog")
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, errors.Wrap(err, errors.CodeValidation, "decode toml catalog")
		}
	default:
		return nil, errors.Validationf("unsupported catalog format %q", format)
	}

	if err := validation.New().Validate(f); err != nil {
		return nil, err
	}
	return Catalog(f.Compositions), nil
}

// LoadFile reads a catalog from a .yaml, .yml or .toml file.
func LoadFile(path string) (Catalog, error) {
	format, err := formatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("catalog file %s does not exist", path)
		}
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	catalog, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return catalog, nil
}

func formatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.Validationf("catalog %s: expected a .yaml, .yml or .toml file", path)
	}
}

// BuiltinNames lists the catalogs compiled into the binary.
func BuiltinNames() []string {
	entries, err := builtinFS.ReadDir("catalogs")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Builtin returns a catalog compiled into the binary.
func Builtin(name string) (Catalog, error) {
	data, err := builtinFS.ReadFile("catalogs/" + name + ".yaml")
	if err != nil {
		return nil, errors.NotFoundf("no builtin catalog named %q", name)
	}
	return Parse(data, FormatYAML)
}

// Resolve returns the builtin catalog with the given name, or loads it from
// a file when no builtin matches.
func Resolve(nameOrPath string) (Catalog, error) {
	if nameOrPath == "" {
		return nil, errors.Validation("no catalog given")
	}
	for _, name := range BuiltinNames() {
		if name == nameOrPath {
			return Builtin(name)
		}
	}
	if _, err := formatFromPath(nameOrPath); err != nil {
		return nil, errors.NotFoundf("catalog %q is neither a builtin (%s) nor a catalog file",
			nameOrPath, strings.Join(BuiltinNames(), ", "))
	}
	return LoadFile(nameOrPath)
}
