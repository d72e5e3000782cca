package project

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// SourceExt is the extension of MinJ source files.
const SourceExt = ".mj"

// Project describes what to run: a source file, an optional entrypoint and
// trace settings. It is loaded from a TOML or YAML project file, or built
// directly around a source file.
type Project struct {
	Program ProgramConfig `toml:"program" yaml:"program"`
	Trace   TraceConfig   `toml:"trace" yaml:"trace"`
}

type ProgramConfig struct {
	File string `toml:"file,omitempty" yaml:"file,omitempty"`
	// Entrypoint names a global method to call after the top level runs.
	Entrypoint string `toml:"entrypoint,omitempty" yaml:"entrypoint,omitempty"`
}

type TraceConfig struct {
	Details bool `toml:"details,omitempty" yaml:"details,omitempty"`
}

var ErrUnknownFormat = errors.New("unknown project file format")

func parseTOML(r io.Reader) (*Project, error) {
	var out Project
	_, err := toml.NewDecoder(r).Decode(&out)
	return &out, err
}

func parseYAML(r io.Reader) (*Project, error) {
	var out Project
	err := yaml.NewDecoder(r).Decode(&out)
	if errors.Is(err, io.EOF) {
		err = nil
	}
	return &out, err
}

// Load returns the project for path: a project file is decoded, a source
// file becomes a project of its own.
func Load(path string) (*Project, error) {
	if strings.EqualFold(filepath.Ext(path), SourceExt) {
		return &Project{Program: ProgramConfig{File: filepath.Clean(path)}}, nil
	}
	return LoadFromFile(path)
}

// LoadFromFile decodes a project file by extension. An empty program file
// defaults to the project file's name with the source extension, and a
// relative file resolves against the project file's directory.
func LoadFromFile(path string) (*Project, error) {
	var parse func(io.Reader) (*Project, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		parse = parseTOML
	case ".yaml", ".yml":
		parse = parseYAML
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceError{Path: path, Err: err}
	}
	defer f.Close()
	p, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if p.Program.File == "" {
		base := filepath.Base(path)
		p.Program.File = strings.TrimSuffix(base, filepath.Ext(base)) + SourceExt
	}
	if !filepath.IsAbs(p.Program.File) {
		p.Program.File = filepath.Join(filepath.Dir(path), p.Program.File)
	}
	p.Program.File = filepath.Clean(p.Program.File)
	return p, nil
}
