package zones

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads zone overrides from a YAML reader and merges them onto
// the defaults.
func LoadYAML(r io.Reader) (Config, error) {
	var o Overrides
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&o); err != nil && err != io.EOF {
		return Config{}, err
	}
	cfg := Default().Merge(o)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile loads zone overrides from a YAML file on disk.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return LoadYAML(f)
}
