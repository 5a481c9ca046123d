package render

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/valyala/fasttemplate"
)

// Helper transforms a variable value before it is
// written to the output.
type Helper func(value string) string

// DefaultHelpers returns the helpers available to every
// Engine that does not declare its own.
func DefaultHelpers() map[string]Helper {
	return map[string]Helper{
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}

// pathToken matches __name__ and __helper name__ tokens
// inside file and directory names.
var pathToken = regexp.MustCompile(`__+.*?__`)

// Engine expands placeholders against a variable set.
type Engine struct {
	StartTag string
	EndTag   string
	Helpers  map[string]Helper
}

// Render substitutes every placeholder in text. A tag
// holding a single word is a variable lookup; missing
// variables render empty. A tag holding two words is a
// helper call on a variable. Anything else is an error.
func (en *Engine) Render(
	text string,
	vars map[string]interface{},
) (string, error) {
	const errCtx = "rendering template"

	startTag, endTag := en.tags()
	helpers := en.helpers()

	out, err := fasttemplate.ExecuteFuncStringWithErr(
		text, startTag, endTag,
		func(w io.Writer, tag string) (int, error) {
			val, err := evalTag(tag, vars, helpers)
			if err != nil {
				return 0, err
			}

			return io.WriteString(w, val)
		},
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return out, nil
}

// TranslatePath rewrites __name__ tokens in path into
// placeholders and renders the result. The two leading
// and two trailing underscores of each token are dropped.
func (en *Engine) TranslatePath(
	path string,
	vars map[string]interface{},
) (string, error) {
	const errCtx = "translating path"

	startTag, endTag := en.tags()

	tpl := pathToken.ReplaceAllStringFunc(
		path,
		func(tok string) string {
			return startTag + tok[2:len(tok)-2] + endTag
		},
	)

	out, err := en.Render(tpl, vars)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", errCtx, path, err)
	}

	return out, nil
}

// HelperNames lists the helpers known to the engine in
// lexical order.
func (en *Engine) HelperNames() []string {
	helpers := en.helpers()

	names := make([]string, 0, len(helpers))
	for name := range helpers {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// tags returns the configured start/end tags, falling
// back to double-brace defaults.
func (en *Engine) tags() (string, string) {
	startTag := en.StartTag
	if startTag == "" {
		startTag = "{{"
	}

	endTag := en.EndTag
	if endTag == "" {
		endTag = "}}"
	}

	return startTag, endTag
}

func (en *Engine) helpers() map[string]Helper {
	if en.Helpers == nil {
		return DefaultHelpers()
	}

	return en.Helpers
}

func evalTag(
	tag string,
	vars map[string]interface{},
	helpers map[string]Helper,
) (string, error) {
	fields := strings.Fields(tag)

	switch len(fields) {
	case 1:
		return lookup(vars, fields[0])
	case 2:
		hl, ok := helpers[fields[0]]
		if !ok {
			return "", fmt.Errorf(
				"unknown helper %q in tag %q",
				fields[0], tag,
			)
		}

		val, err := lookup(vars, fields[1])
		if err != nil {
			return "", err
		}

		return hl(val), nil
	default:
		return "", fmt.Errorf("malformed tag %q", tag)
	}
}

// lookup resolves a variable name. Dotted names walk
// nested objects; a missing key at any level renders
// empty. Objects and lists cannot be rendered.
func lookup(
	vars map[string]interface{},
	name string,
) (string, error) {
	var cur interface{} = vars

	for _, key := range strings.Split(name, ".") {
		if key == "" {
			return "", fmt.Errorf("malformed variable name %q", name)
		}

		switch obj := cur.(type) {
		case nil:
			return "", nil
		case map[string]interface{}:
			cur = obj[key]
		case map[interface{}]interface{}:
			cur = obj[key]
		default:
			return "", fmt.Errorf(
				"variable %q: cannot look up %q in a %T",
				name, key, cur,
			)
		}
	}

	switch val := cur.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case map[string]interface{}, map[interface{}]interface{}, []interface{}:
		return "", fmt.Errorf(
			"variable %q is not a scalar value", name,
		)
	default:
		return fmt.Sprint(val), nil
	}
}
