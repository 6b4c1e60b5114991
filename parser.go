package diffscope

import "errors"

// Parser parses raw diff text into domain types.
type Parser interface {
	// Parse converts unified-diff text into a DiffSet. Implementations may
	// be strict (reject malformed input with an error) or permissive
	// (skip what they cannot understand and never fail).
	Parse(text string) (*DiffSet, error)
}

// MultiParser tries each parser in order and returns the first successful
// result. A strict parser placed ahead of a permissive one gives precise
// results for well-formed diffs and best-effort results for everything else.
type MultiParser []Parser

var _ Parser = (MultiParser)(nil)

// Parse implements Parser.
func (m MultiParser) Parse(text string) (*DiffSet, error) {
	var errs []error
	for _, p := range m {
		ds, err := p.Parse(text)
		if err == nil {
			return ds, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, errors.New("diffscope: no parsers configured")
	}
	return nil, errors.Join(errs...)
}
