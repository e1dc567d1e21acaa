package data

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

// zstdExt marks compressed data files (e.g. 02000001.yaml.zst).
const zstdExt = ".zst"

// decodeFile decodes a YAML data file into out. Files ending in .zst are
// zstd-decompressed first.
func decodeFile(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, zstdExt) {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return fmt.Errorf("opening zstd stream %s: %w", path, err)
		}
		defer dec.Close()
		r = dec
	}

	if err := yaml.NewDecoder(r).Decode(out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// isDataFile reports whether name is a (possibly compressed) YAML file.
func isDataFile(name string) bool {
	name = strings.TrimSuffix(name, zstdExt)
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
