package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zatekoja/hospitalsite/internal/domain/entities"
	apperrors "github.com/zatekoja/hospitalsite/pkg/errors"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Departments []entities.Department `yaml:"departments"`
	Doctors     []entities.Doctor     `yaml:"doctors"`
	Timeslots   []string              `yaml:"timeslots"`
}

// Default returns the built-in demo catalog.
func Default() (*entities.Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from path, or the built-in one when path is empty.
func Load(path string) (*entities.Catalog, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Sprintf("read catalog %s", path), err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog. Unknown keys are rejected.
func Parse(data []byte) (*entities.Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f catalogFile
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, apperrors.NewValidationError("decode catalog", err)
	}

	c := entities.NewCatalog(f.Departments, f.Doctors, f.Timeslots)
	if err := c.Validate(); err != nil {
		return nil, apperrors.NewValidationError("invalid catalog", err)
	}
	return c, nil
}
