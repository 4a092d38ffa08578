package templates

import (
	"regexp"

	derrors "github.com/igor47/dcsm/internal/errors"
)

// Placeholder grammar. Alternatives are tried in order, so the escape wins
// over both placeholder forms: $$DCSM{VAR} collapses to the literal text
// $DCSM{VAR} rather than being resolved.
var placeholderPattern = regexp.MustCompile(`\$\$DCSM|\$DCSM\{([A-Za-z0-9_]+)\}|\$DCSM_([A-Z][A-Z0-9_]*)`)

const escapeSequence = "$$DCSM"

// Render substitutes every placeholder in content against the secret
// mapping. Both the braced form $DCSM{name} and the named form $DCSM_NAME
// are resolved; a doubled sigil escapes to a literal $DCSM; a bare $DCSM
// that matches neither form is copied through unchanged.
//
// Substitution is a single literal pass: values are inserted verbatim, with
// no escaping and no re-scanning of values that themselves contain the
// sigil. A placeholder naming an unknown secret fails the render; file is
// only used to attribute that failure.
func Render(content []byte, mapping map[string]string, file string) ([]byte, error) {
	var missing error

	rendered := placeholderPattern.ReplaceAllFunc(content, func(match []byte) []byte {
		if string(match) == escapeSequence {
			return []byte("$DCSM")
		}

		groups := placeholderPattern.FindSubmatch(match)
		name := string(groups[1])
		if name == "" {
			name = string(groups[2])
		}

		value, ok := mapping[name]
		if !ok {
			if missing == nil {
				missing = &derrors.MissingSecretError{Name: name, File: file}
			}
			return match
		}
		return []byte(value)
	})

	if missing != nil {
		return nil, missing
	}
	return rendered, nil
}
