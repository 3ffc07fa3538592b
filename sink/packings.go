package sink

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/domino14/wordpack/packer"
)

type packingsFile struct {
	Fingerprint string           `yaml:"fingerprint"`
	Count       int              `yaml:"count"`
	Packings    []packer.Packing `yaml:"packings"`
}

// EncodePackings writes packings, with their fingerprint, as one YAML
// document.
func EncodePackings(w io.Writer, packings []packer.Packing) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	err := enc.Encode(packingsFile{
		Fingerprint: fmt.Sprintf("%016x", packer.Fingerprint(packings)),
		Count:       len(packings),
		Packings:    packings,
	})
	if err != nil {
		return err
	}
	return enc.Close()
}

// WritePackings writes packings to a YAML file at path.
func WritePackings(path string, packings []packer.Packing) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodePackings(f, packings); err != nil {
		f.Close()
		return fmt.Errorf("writing packings: %w", err)
	}
	return f.Close()
}

// ReadPackings reads a file written by WritePackings.
func ReadPackings(path string) ([]packer.Packing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pf packingsFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return pf.Packings, nil
}
