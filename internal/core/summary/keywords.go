package summary

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type keywordFile struct {
	Sectors []string `yaml:"sectors"`
}

// LoadSectorKeywords reads a YAML override for the bare sector keyword
// detectors. An empty path keeps the defaults.
func LoadSectorKeywords(path string) ([]string, error) {
	if path == "" {
		return DefaultSectorKeywords, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sector keywords: %w", err)
	}
	var file keywordFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse sector keywords: %w", err)
	}
	if len(file.Sectors) == 0 {
		return DefaultSectorKeywords, nil
	}
	return file.Sectors, nil
}
