package cwl

import "fmt"

// Class names recognized by the extractor.
const (
	ClassCommandLineTool   = "CommandLineTool"
	ClassDockerRequirement = "DockerRequirement"
)

// DockerRequirement specifies container execution.
// See https://www.commonwl.org/v1.2/CommandLineTool.html#DockerRequirement
type DockerRequirement struct {
	// DockerPull is the raw dockerPull value. It is usually a scalar image
	// reference but may hold an $include directive.
	DockerPull Node

	// Line is the source line of the requirement entry.
	Line int
}

// StructureError reports a requirements or hints section whose shape does not
// allow a DockerRequirement to be read.
type StructureError struct {
	Section string
	Reason  string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%s: %s", e.Section, e.Reason)
}

// FindDockerRequirement looks up a DockerRequirement in a requirements or
// hints section. CWL allows both forms:
//
//	requirements: {DockerRequirement: {dockerPull: ...}}
//	requirements: [{class: DockerRequirement, dockerPull: ...}]
//
// In the sequence form the first matching entry wins. A nil requirement and nil
// error mean the section holds no DockerRequirement.
func FindDockerRequirement(section Node, name string) (*DockerRequirement, error) {
	switch section.Kind() {
	case KindMapping:
		entry, ok := section.Lookup(ClassDockerRequirement)
		if !ok {
			return nil, nil
		}
		return dockerFromEntry(entry, name+"."+ClassDockerRequirement)

	case KindSequence:
		for i, entry := range section.Items() {
			if entry.Kind() != KindMapping {
				return nil, &StructureError{
					Section: fmt.Sprintf("%s[%d]", name, i),
					Reason:  fmt.Sprintf("expected mapping, got %s", entry.Kind()),
				}
			}
			if entry.Field("class").String() != ClassDockerRequirement {
				continue
			}
			return dockerFromEntry(entry, fmt.Sprintf("%s[%d]", name, i))
		}
	}
	return nil, nil
}

func dockerFromEntry(entry Node, where string) (*DockerRequirement, error) {
	if entry.Kind() != KindMapping {
		return nil, &StructureError{Section: where, Reason: fmt.Sprintf("expected mapping, got %s", entry.Kind())}
	}
	pull, ok := entry.Lookup("dockerPull")
	if !ok {
		return nil, &StructureError{Section: where, Reason: "missing dockerPull"}
	}
	return &DockerRequirement{DockerPull: pull, Line: entry.Line()}, nil
}
