package locale

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/klauspost/compress/zstd"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"github.com/ZaguanLabs/chattr"
)

// Supported lang file formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatPo   = "po"
)

const zstdExt = ".zst"

// File is a parsed lang file.
type File struct {
	Path   string
	Locale string
	Table  Table
}

// FormatOf returns the format of a lang file name, looking through a .zst
// suffix, or "" if the extension is not supported.
func FormatOf(name string) string {
	name = strings.TrimSuffix(strings.ToLower(name), zstdExt)
	switch filepath.Ext(name) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	case ".po":
		return FormatPo
	}
	return ""
}

// LocaleOf derives the locale from a lang file name ("de_DE.json.zst" → "de_de").
func LocaleOf(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, zstdExt)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return chattr.NormalizeLocale(base)
}

// LoadFile reads and parses a lang file.
func LoadFile(path string) (*File, error) {
	format := FormatOf(path)
	if format == "" {
		return nil, &LoadError{Path: path, Cause: fmt.Errorf("unsupported file type")}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Cause: err}
	}

	if strings.HasSuffix(strings.ToLower(path), zstdExt) {
		data, err = decompress(data)
		if err != nil {
			return nil, &LoadError{Path: path, Cause: err}
		}
	}

	table, err := Parse(format, data)
	if err != nil {
		return nil, &LoadError{Path: path, Cause: err}
	}

	return &File{Path: path, Locale: LocaleOf(path), Table: table}, nil
}

// Parse parses lang file contents in the given format. Nested objects are
// flattened with "." separators.
func Parse(format string, data []byte) (Table, error) {
	switch format {
	case FormatJSON:
		return parseJSON(data)
	case FormatTOML:
		var raw map[string]any
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
		return flatten(raw)
	case FormatYAML:
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		return flatten(raw)
	case FormatPo:
		return ParsePo(data), nil
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

func parseJSON(data []byte) (Table, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parse json: invalid document")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("parse json: top level must be an object")
	}

	table := make(MapTable)
	var err error
	var walk func(prefix string, v gjson.Result)
	walk = func(prefix string, v gjson.Result) {
		v.ForEach(func(k, val gjson.Result) bool {
			key := joinKey(prefix, k.String())
			switch {
			case val.IsObject():
				walk(key, val)
			case val.IsArray():
				err = fmt.Errorf("parse json: %s: lists are not supported", key)
				return false
			default:
				table[key] = val.String()
			}
			return err == nil
		})
	}
	walk("", root)
	if err != nil {
		return nil, err
	}
	return table, nil
}

func flatten(raw map[string]any) (MapTable, error) {
	table := make(MapTable)
	if err := flattenInto(table, "", raw); err != nil {
		return nil, err
	}
	return table, nil
}

func flattenInto(table MapTable, prefix string, raw map[string]any) error {
	for k, v := range raw {
		key := joinKey(prefix, k)
		switch val := v.(type) {
		case map[string]any:
			if err := flattenInto(table, key, val); err != nil {
				return err
			}
		case []any:
			return fmt.Errorf("%s: lists are not supported", key)
		case nil:
			table[key] = ""
		case string:
			table[key] = val
		default:
			table[key] = fmt.Sprint(val)
		}
	}
	return nil
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	return out, nil
}

// LoadDir loads every supported lang file in dir (not recursive) into store
// and returns the files in the order they were added. Files are parsed
// concurrently but added in name order, so a later file of the same locale
// overrides an earlier one.
func LoadDir(ctx context.Context, store *Store, dir string) ([]*File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{Path: dir, Cause: err}
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || FormatOf(e.Name()) == "" {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	files := make([]*File, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := LoadFile(path)
			if err != nil {
				return err
			}
			files[i] = f
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, f := range files {
		store.Add(f.Locale, f.Table)
	}
	return files, nil
}
