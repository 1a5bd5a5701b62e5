package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Decode reads one dataset document from r.
func Decode(r io.Reader) (Dataset, error) {
	var ds Dataset
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil {
		if errors.Is(err, io.EOF) {
			return Dataset{}, ErrEmptyDataset
		}
		return Dataset{}, fmt.Errorf("decode dataset: %w", err)
	}
	return ds, nil
}

// LoadFile reads and validates a dataset YAML file.
func LoadFile(path string) (Dataset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read dataset: %w", err)
	}
	ds, err := Decode(bytes.NewReader(b))
	if err != nil {
		return Dataset{}, fmt.Errorf("%s: %w", path, err)
	}
	if ds.Name == "" {
		ds.Name = filepath.Base(path)
	}
	if err := ds.Validate(); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

// Load reads a dataset from a file, or from every shard discovered under a directory.
// Shards are concatenated in path order and must agree on the feature count.
func Load(path string) (Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("load dataset: %w", err)
	}
	if !info.IsDir() {
		return LoadFile(path)
	}

	shards, err := DiscoverShards(path)
	if err != nil {
		return Dataset{}, err
	}
	if len(shards) == 0 {
		return Dataset{}, fmt.Errorf("load dataset %s: %w: no shards", path, ErrEmptyDataset)
	}
	parts := make([]Dataset, 0, len(shards))
	for _, shard := range shards {
		ds, err := LoadFile(shard)
		if err != nil {
			return Dataset{}, err
		}
		log.Debug().Str("shard", shard).Int("examples", ds.Len()).Msg("loaded dataset shard")
		parts = append(parts, ds)
	}
	ds := Concat(filepath.Base(path), parts...)
	if err := ds.Validate(); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

// Write encodes ds as YAML.
func Write(w io.Writer, ds Dataset) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ds); err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	return enc.Close()
}

// BuiltinPrefix marks a dataset reference naming a built-in dataset, e.g. "builtin:or".
const BuiltinPrefix = "builtin:"

// Open resolves a dataset reference: a built-in name behind BuiltinPrefix, or a file or directory path.
func Open(ref string) (Dataset, error) {
	if strings.HasPrefix(ref, BuiltinPrefix) {
		name := strings.TrimPrefix(ref, BuiltinPrefix)
		ds, ok := Builtin(name)
		if !ok {
			return Dataset{}, fmt.Errorf("unknown built-in dataset %q", name)
		}
		return ds, nil
	}
	return Load(ref)
}
