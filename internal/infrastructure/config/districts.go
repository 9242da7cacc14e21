package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gradepeek/svue-api/internal/core/domain"
)

type districtsFile struct {
	Districts []domain.District `yaml:"districts"`
}

// LoadDistricts reads a YAML seed file of the form
//
//	districts:
//	  - id: mcps
//	    name: Montgomery County Public Schools
//	    host: md-mcps-psv.edupoint.com
//	    state: MD
//
// Environment variables in the file are expanded.
func LoadDistricts(path string) ([]domain.District, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read districts file: %w", err)
	}

	var f districtsFile
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(content))), &f); err != nil {
		return nil, fmt.Errorf("decode districts file: %w", err)
	}
	return f.Districts, nil
}
