package cwl

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// IncludeDirective is the key of a CWL $include reference.
const IncludeDirective = "$include"

// IncludeTarget returns the path referenced by an $include directive held by n.
//
// Two spellings are recognized: a one-key mapping {$include: path}, and a
// scalar beginning with "$include" that parses as such a mapping, e.g.
// "$include: image.txt". ok is false when n is not an include at all; err is set
// when n looks like an include but is malformed.
func IncludeTarget(n Node) (target string, ok bool, err error) {
	switch n.Kind() {
	case KindScalar:
		s := n.String()
		if !strings.HasPrefix(s, IncludeDirective) {
			return "", false, nil
		}
		var parsed yaml.Node
		if err := yaml.Unmarshal([]byte(s), &parsed); err != nil {
			return "", true, fmt.Errorf("parse %s directive %q: %w", IncludeDirective, s, err)
		}
		target, err := includeFromMapping(NewNode(&parsed))
		return target, true, err

	case KindMapping:
		if _, has := n.Lookup(IncludeDirective); !has {
			return "", false, nil
		}
		target, err := includeFromMapping(n)
		return target, true, err
	}
	return "", false, nil
}

func includeFromMapping(n Node) (string, error) {
	if n.Kind() != KindMapping || n.Len() != 1 {
		return "", fmt.Errorf("%s directive must be a one-key mapping", IncludeDirective)
	}
	v, ok := n.Lookup(IncludeDirective)
	if !ok {
		return "", fmt.Errorf("%s directive must be a one-key mapping", IncludeDirective)
	}
	target, ok := v.Scalar()
	if !ok || target == "" {
		return "", fmt.Errorf("%s target must be a non-empty string", IncludeDirective)
	}
	return target, nil
}
