// Package extract pulls the base command and container image out of a CWL
// CommandLineTool document.
package extract

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/me/cwl2man/pkg/cwl"
)

// Outcome classifies the result of extracting one document.
type Outcome int

const (
	// OutcomeSkipped means the document is not a CommandLineTool.
	OutcomeSkipped Outcome = iota
	// OutcomeExtracted means Result.Command is fully populated.
	OutcomeExtracted
	// OutcomeCommandMissing means the tool has no usable baseCommand.
	OutcomeCommandMissing
	// OutcomeImageMissing means no Docker image could be found in
	// requirements or hints.
	OutcomeImageMissing
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeExtracted:
		return "extracted"
	case OutcomeCommandMissing:
		return "command-missing"
	case OutcomeImageMissing:
		return "image-missing"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Command is one manifest entry: the command name, the image providing it,
// and the command to run inside the container.
type Command struct {
	Command       string `yaml:"command"`
	DockerImage   string `yaml:"docker_image"`
	DockerCommand string `yaml:"docker_command"`
}

// Result is the outcome of extracting one document.
type Result struct {
	Outcome Outcome
	Source  string
	Command Command // set only when Outcome is OutcomeExtracted
}

// IncludeReader loads the contents of an $include target.
type IncludeReader interface {
	ReadInclude(target, sourcePath string) (string, error)
}

// Extractor turns CWL tool documents into manifest entries.
type Extractor struct {
	includes IncludeReader
	logger   *slog.Logger
}

// New creates an Extractor. includes resolves $include directives found in
// dockerPull values.
func New(includes IncludeReader, logger *slog.Logger) *Extractor {
	return &Extractor{includes: includes, logger: logger.With("component", "extract")}
}

// Extract inspects doc, read from source. Expected failures (missing base
// command, missing image) are reported through Result.Outcome. A returned error
// means the document is abnormal, e.g. an unreadable $include target, and the
// caller should stop.
func (e *Extractor) Extract(doc *cwl.Document, source string) (Result, error) {
	res := Result{Source: source}

	if class := doc.Class(); class != cwl.ClassCommandLineTool {
		e.logger.Info("CWL file of wrong class", "file", source, "class", class)
		res.Outcome = OutcomeSkipped
		return res, nil
	}

	command, ok, err := e.baseCommand(doc, source)
	if err != nil {
		return res, err
	}
	if !ok {
		e.logger.Info("can't find base command", "file", source)
		res.Outcome = OutcomeCommandMissing
		return res, nil
	}

	image, ok, err := e.image(doc, source)
	if err != nil {
		return res, err
	}
	if !ok {
		e.logger.Info("can't find image", "command", command, "file", source)
		res.Outcome = OutcomeImageMissing
		return res, nil
	}

	e.logger.Info("adding image", "image", image, "command", command, "file", source)
	res.Outcome = OutcomeExtracted
	res.Command = Command{
		Command:       command,
		DockerImage:   image,
		DockerCommand: command,
	}
	return res, nil
}

// baseCommand resolves the command name. A scalar is used directly; for a
// sequence the first element is the command. Absolute paths are reduced to
// their final component.
func (e *Extractor) baseCommand(doc *cwl.Document, source string) (string, bool, error) {
	v := doc.Root.Field("baseCommand")
	if v.Kind() == cwl.KindSequence {
		items := v.Items()
		if len(items) == 0 {
			return "", false, nil
		}
		v = items[0]
	}

	switch v.Kind() {
	case cwl.KindNull:
		return "", false, nil
	case cwl.KindScalar:
	default:
		return "", false, fmt.Errorf("%s: baseCommand: expected string, got %s", source, v.Kind())
	}

	command := v.String()
	if command == "" {
		return "", false, nil
	}
	if filepath.IsAbs(command) {
		e.logger.Debug("converting base command to relative", "command", command)
		command = filepath.Base(command)
	}
	e.logger.Debug("base command", "command", command, "file", source)
	return command, true, nil
}

// image resolves the Docker image, trying requirements before hints. A section
// whose shape prevents reading dockerPull counts as no image. An $include
// directive is followed once; failures there are returned as errors.
func (e *Extractor) image(doc *cwl.Document, source string) (string, bool, error) {
	for _, section := range []string{"requirements", "hints"} {
		dr, err := cwl.FindDockerRequirement(doc.Root.Field(section), section)
		if err != nil {
			e.logger.Debug("malformed docker requirement", "file", source, "error", err)
			return "", false, nil
		}
		if dr == nil {
			continue
		}

		target, isInclude, err := cwl.IncludeTarget(dr.DockerPull)
		if err != nil {
			return "", false, fmt.Errorf("%s: %s.dockerPull: %w", source, section, err)
		}
		if isInclude {
			image, err := e.includes.ReadInclude(target, source)
			if err != nil {
				return "", false, err
			}
			return image, true, nil
		}

		switch dr.DockerPull.Kind() {
		case cwl.KindScalar:
			if image := dr.DockerPull.String(); image != "" {
				return image, true, nil
			}
		case cwl.KindNull:
		default:
			e.logger.Debug("dockerPull is not a string", "file", source, "section", section, "kind", dr.DockerPull.Kind())
			return "", false, nil
		}
	}
	return "", false, nil
}
