// Package prompts holds the embedded prompt templates and the loader that
// renders them. Templates are markdown with {variable} placeholders; a
// profile can override the system template by dropping its own system.md
// into its directory.
package prompts

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed templates
var templates embed.FS

// Template names accepted by Loader.Load.
const (
	SystemTemplate      = "system.md"
	DomainOpenPartial   = "partials/domain_open.md"
	DomainClosedPartial = "partials/domain_closed.md"
)

// Loader resolves templates, preferring per-profile overrides on disk over
// the embedded defaults.
type Loader struct {
	overrideDir string
}

// NewLoader creates a loader. overrideDir may be empty, in which case only
// the embedded templates are used.
func NewLoader(overrideDir string) *Loader {
	return &Loader{overrideDir: overrideDir}
}

// Load returns the named template. A file with the same name under the
// override directory wins over the embedded copy.
func (l *Loader) Load(name string) (string, error) {
	if l.overrideDir != "" {
		data, err := os.ReadFile(filepath.Join(l.overrideDir, filepath.FromSlash(name)))
		if err == nil {
			return string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
	}

	data, err := templates.ReadFile("templates/" + name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Render substitutes {variable} placeholders. Unknown placeholders are left
// as-is so a missing variable is visible rather than silently blank.
func Render(template string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
