package parser

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/me/cwl2man/pkg/cwl"
	"github.com/spf13/afero"
)

// Parser loads CWL documents and the files they include from a filesystem.
type Parser struct {
	fs     afero.Fs
	logger *slog.Logger
}

// New creates a Parser reading from fs.
func New(fs afero.Fs, logger *slog.Logger) *Parser {
	return &Parser{fs: fs, logger: logger.With("component", "parser")}
}

// ParseFile reads and parses the CWL document at path.
// The file is read fully and closed before parsing.
func (p *Parser) ParseFile(path string) (*cwl.Document, error) {
	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := cwl.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	p.logger.Debug("parsed document", "path", path, "class", doc.Class())
	return doc, nil
}

// IncludeError is returned when an $include target cannot be loaded.
type IncludeError struct {
	Source string // document holding the directive
	Target string // path as written in the directive
	Err    error
}

func (e *IncludeError) Error() string {
	return fmt.Sprintf("%s: include %q: %v", e.Source, e.Target, e.Err)
}

func (e *IncludeError) Unwrap() error { return e.Err }

// ReadInclude returns the whitespace-trimmed contents of an $include target.
// Relative targets resolve against the directory of sourcePath. Only one level
// of inclusion is followed: the contents are used verbatim.
func (p *Parser) ReadInclude(target, sourcePath string) (string, error) {
	local, err := cwl.LocalPath(target)
	if err != nil {
		return "", &IncludeError{Source: sourcePath, Target: target, Err: err}
	}
	fullPath := local
	if !filepath.IsAbs(local) {
		fullPath = filepath.Join(filepath.Dir(sourcePath), local)
	}

	data, err := afero.ReadFile(p.fs, fullPath)
	if err != nil {
		return "", &IncludeError{Source: sourcePath, Target: target, Err: err}
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		return "", &IncludeError{Source: sourcePath, Target: target, Err: fmt.Errorf("file is empty")}
	}

	p.logger.Debug("resolved include", "source", sourcePath, "target", fullPath)
	return content, nil
}
