package locale

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// WriteJSON writes entries as an indented JSON lang file with sorted keys.
func WriteJSON(w io.Writer, entries map[string]string) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if entries == nil {
		entries = map[string]string{}
	}
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encode lang file: %w", err)
	}
	return nil
}

// WriteFile writes entries to path as JSON, zstd-compressed when the path
// ends in .zst.
func WriteFile(path string, entries map[string]string) error {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, entries); err != nil {
		return err
	}

	data := buf.Bytes()
	if strings.HasSuffix(strings.ToLower(path), zstdExt) {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return err
		}
		data = enc.EncodeAll(data, nil)
		enc.Close()
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write lang file: %w", err)
	}
	return nil
}
