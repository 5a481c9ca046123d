package stamper

import (
	"fmt"
	"os"
	"strings"

	"github.com/valyala/fasttemplate"
)

// LoadStamps reads stamp files and merges them into a
// single map. Each line is "KEY VALUE" with the first
// space as delimiter. Blank lines, lines starting with
// '#' and lines without a space are skipped. Later files
// override earlier ones.
func LoadStamps(
	infoFiles []string,
) (map[string]interface{}, error) {
	const errCtx = "loading stamps"

	stamps := make(map[string]interface{})

	for _, sf := range infoFiles {
		content, err := os.ReadFile(sf) //nolint:gosec // paths from CLI flags
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		for _, line := range strings.Split(
			string(content), "\n",
		) {
			line = strings.TrimRight(line, "\r")
			if strings.HasPrefix(line, "#") {
				continue
			}

			key, val, ok := strings.Cut(line, " ")
			if ok && key != "" {
				stamps[key] = val
			}
		}
	}

	return stamps, nil
}

// MergeVariables layers the variable sources of a
// scaffold run. Stamps are the base, config variables
// override stamps, and NAME=VALUE overrides win over
// both. Override values have {KEY} stamp references
// expanded before they are stored.
func MergeVariables(
	stamps map[string]interface{},
	base map[string]interface{},
	overrides []string,
) (map[string]interface{}, error) {
	const errCtx = "merging variables"

	out := make(
		map[string]interface{},
		len(stamps)+len(base)+len(overrides),
	)

	for key, val := range stamps {
		out[key] = val
	}

	for key, val := range base {
		out[key] = val
	}

	for _, ov := range overrides {
		name, val, ok := strings.Cut(ov, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf(
				"%s: variable must be NAME=value, got %s",
				errCtx, ov,
			)
		}

		out[name] = expand(val, stamps)
	}

	return out, nil
}

func expand(
	format string,
	stamps map[string]interface{},
) string {
	return fasttemplate.ExecuteStringStd(
		format, "{", "}", stamps,
	)
}
