// Package manifest builds bulker manifests from CWL tool descriptions.
package manifest

import (
	"bytes"
	"fmt"
	"io"

	"github.com/me/cwl2man/internal/extract"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultName is the manifest name used when none is given.
const DefaultName = "cwl_manifest"

// Manifest is the bulker manifest body.
type Manifest struct {
	Name     string            `yaml:"name"`
	Version  string            `yaml:"version,omitempty"`
	Commands []extract.Command `yaml:"commands"`
}

// document is the on-disk shape: the manifest nested under a "manifest" key.
type document struct {
	Manifest Manifest `yaml:"manifest"`
}

// New returns an empty manifest with the given name.
func New(name string) *Manifest {
	return &Manifest{Name: name, Commands: []extract.Command{}}
}

// Add appends a command entry.
func (m *Manifest) Add(c extract.Command) {
	m.Commands = append(m.Commands, c)
}

// Encode writes m as YAML. Keys keep their declared order, so encoding the
// same manifest always yields the same bytes.
func Encode(w io.Writer, m *Manifest) error {
	out := *m
	if out.Commands == nil {
		out.Commands = []extract.Command{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document{Manifest: out}); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return enc.Close()
}

// Marshal returns the YAML encoding of m.
func Marshal(m *Manifest) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes m into the file at path, replacing any existing content.
func Write(fs afero.Fs, path string, m *Manifest) error {
	data, err := Marshal(m)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	return nil
}

// Load reads a manifest file. A null or missing command list loads as empty.
func Load(fs afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	m := doc.Manifest
	if m.Commands == nil {
		m.Commands = []extract.Command{}
	}
	return &m, nil
}
