// Package hints builds the "hint:" lines appended to CLI error messages.
// Every hint starts on its own line, indented by two spaces.
package hints

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alnah/go-htmltoc/internal/fileutil"
)

const prefix = "\n  hint: "

// hint joins the non-empty parts into one hint line, or returns "" when
// there is nothing to say.
func hint(parts ...string) string {
	parts = slices.DeleteFunc(slices.Clone(parts), func(s string) bool { return s == "" })
	if len(parts) == 0 {
		return ""
	}
	return prefix + strings.Join(parts, "; ")
}

// ForConfigNotFound suggests --config, and creating the first candidate
// under the user config directory when searched lists one.
func ForConfigNotFound(searched []string) string {
	msg := "use --config /path/to/file.yaml"
	marker := string(filepath.Separator) + "htmltoc" + string(filepath.Separator)
	if i := slices.IndexFunc(searched, func(p string) bool { return strings.Contains(p, marker) }); i >= 0 {
		msg += " or create " + searched[i]
	}
	return hint(msg)
}

// ForSourceDirectory explains a source argument that is not a directory.
func ForSourceDirectory(source string) string {
	if fileutil.FileExists(source) {
		return hint("source must be a directory; pass the folder containing " + filepath.Base(source))
	}
	return hint("check the path, or set input.defaultDir in the config")
}

// ForOutputDirectory explains a destination that could not be created.
func ForOutputDirectory() string {
	return hint("check parent directory exists and is writable")
}

// ForRegistryOverflow suggests a capacity large enough for pages, and
// points at HTMLTOC_CAPACITY when it is what capped the table. It is empty
// when pages fit.
func ForRegistryOverflow(pages, capacity int) string {
	if pages <= capacity {
		return ""
	}
	var env string
	if v := os.Getenv("HTMLTOC_CAPACITY"); v != "" {
		env = "HTMLTOC_CAPACITY=" + v + " overrides the config file"
	}
	return hint(fmt.Sprintf("use --capacity %d or set registry.capacity", pages), env)
}

// ForTemplatePath explains an unusable --template-path.
func ForTemplatePath(dir string) string {
	var rel string
	if !filepath.IsAbs(dir) {
		rel = "relative paths resolve from the working directory"
	}
	return hint(rel, "the directory may hold declarations.tmpl and definitions.tmpl")
}

// ForBrokenLinks explains a reference to target that no registered page
// answers. Pages are registered flat under "/" plus their base name.
func ForBrokenLinks(target string) string {
	var flat string
	if strings.Count(target, "/") > 1 {
		flat = "pages are served as /" + path.Base(target) + ", subdirectories are dropped"
	}
	return hint(flat, "add the missing file under the source directory")
}

// ForInvalidIdentifier explains asset names that cannot form C identifiers.
func ForInvalidIdentifier() string {
	return hint("rename the file using letters, digits, dots and underscores only")
}
