package module

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/joho/godotenv"
	"github.com/lumenlang/lumen/internal/langerr"
)

// Settings holds the module search path, loaded from a .env file (via
// joho/godotenv) and/or the LUMEN_INCLUDE environment variable, split on
// the platform's path-list separator.
type Settings struct {
	SearchPaths []string
}

const defaultSearchPath = "lib/"

// LoadSettings reads envFile (if it exists; a missing .env is not an
// error, matching godotenv.Load's typical CLI usage) and LUMEN_INCLUDE.
func LoadSettings(envFile string) (*Settings, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, langerr.Configuration("failed to load %q: %s", envFile, err)
			}
		}
	}
	raw := os.Getenv("LUMEN_INCLUDE")
	if raw == "" {
		raw = defaultSearchPath
	}
	var paths []string
	for _, p := range strings.Split(raw, string(os.PathListSeparator)) {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return &Settings{SearchPaths: paths}, nil
}

const fileExt = ".lm"

// ResolveRelative resolves a `.`-prefixed import relative to the
// directory of currentScriptPath. Importing from a path-less
// context (e.g. a REPL) is an ImportErr.
func ResolveRelative(currentScriptPath, importPath string) (string, error) {
	if currentScriptPath == "" {
		return "", langerr.Import("relative imports (starting with '.') can only be used in script files")
	}
	dir := filepath.Dir(currentScriptPath)
	rel := strings.TrimPrefix(importPath, ".")
	full := filepath.Join(dir, rel)
	return withExtension(full), nil
}

// ResolveSearchPath resolves a non-relative import: current working
// directory first, then each configured search path (where the import path
// may also match as a doublestar glob), probing a directory module's
// `pkg/index.lm` in each location.
func ResolveSearchPath(importPath string, searchPaths []string) (string, error) {
	withExt := withExtension(importPath)

	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, withExt)
		if fileExists(candidate) {
			return candidate, nil
		}
		if idx := indexModuleCandidate(cwd, importPath); idx != "" {
			return idx, nil
		}
	}

	for _, dir := range searchPaths {
		candidate := filepath.Join(dir, withExt)
		if fileExists(candidate) {
			return candidate, nil
		}
		matches, _ := doublestar.Glob(os.DirFS(dir), withExt)
		if len(matches) > 0 {
			return filepath.Join(dir, matches[0]), nil
		}
		if idx := indexModuleCandidate(dir, importPath); idx != "" {
			return idx, nil
		}
	}

	return "", langerr.Import("module %q not found in current directory or search paths: [%s]", importPath, strings.Join(searchPaths, ", "))
}

func indexModuleCandidate(base, importPath string) string {
	candidate := filepath.Join(base, importPath, "index"+fileExt)
	if fileExists(candidate) {
		return candidate
	}
	return ""
}

func withExtension(p string) string {
	if strings.HasSuffix(p, fileExt) {
		return p
	}
	return p + fileExt
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
