package manifest

import (
	"log/slog"

	"github.com/me/cwl2man/internal/extract"
	"github.com/me/cwl2man/internal/parser"
	"github.com/spf13/afero"
)

// Failures lists input files that were excluded from the manifest, by reason,
// in processing order.
type Failures struct {
	CommandMissing []string
	ImageMissing   []string
}

// Empty reports whether no file failed.
func (f *Failures) Empty() bool {
	return len(f.CommandMissing) == 0 && len(f.ImageMissing) == 0
}

// Builder drives extraction over a set of CWL files.
type Builder struct {
	fs        afero.Fs
	parser    *parser.Parser
	extractor *extract.Extractor
	logger    *slog.Logger
}

// NewBuilder creates a Builder reading from fs.
func NewBuilder(fs afero.Fs, logger *slog.Logger) *Builder {
	p := parser.New(fs, logger)
	return &Builder{
		fs:        fs,
		parser:    p,
		extractor: extract.New(p, logger),
		logger:    logger.With("component", "manifest"),
	}
}

// Build expands patterns and extracts every resulting file, in order.
//
// Files that are not CommandLineTools are skipped. Tools missing a base
// command or an image are listed in the returned Failures. Any other problem,
// including a file that cannot be read or parsed, aborts the build and no
// manifest is returned.
func (b *Builder) Build(patterns []string, name string) (*Manifest, *Failures, error) {
	files := ExpandPatterns(b.fs, patterns)
	b.logger.Debug("expanded patterns", "patterns", len(patterns), "files", len(files))

	m := New(name)
	failures := &Failures{}
	for _, path := range files {
		doc, err := b.parser.ParseFile(path)
		if err != nil {
			return nil, nil, err
		}

		res, err := b.extractor.Extract(doc, path)
		if err != nil {
			return nil, nil, err
		}

		switch res.Outcome {
		case extract.OutcomeExtracted:
			m.Add(res.Command)
		case extract.OutcomeCommandMissing:
			failures.CommandMissing = append(failures.CommandMissing, path)
		case extract.OutcomeImageMissing:
			failures.ImageMissing = append(failures.ImageMissing, path)
		}
	}
	return m, failures, nil
}

// ExpandPatterns expands each glob pattern against fs. A pattern with no
// matches, or one that is not a valid glob, is kept as a literal path so that
// it is still attempted and reported.
func ExpandPatterns(fs afero.Fs, patterns []string) []string {
	var files []string
	for _, pattern := range patterns {
		matches, err := afero.Glob(fs, pattern)
		if err != nil || len(matches) == 0 {
			files = append(files, pattern)
			continue
		}
		files = append(files, matches...)
	}
	return files
}
