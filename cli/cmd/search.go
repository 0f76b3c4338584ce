package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ardnew/mung"

	"github.com/ardnew/pcalc/pkg"
)

// PathEnv names the environment variable listing script directories.
var PathEnv = strings.ToUpper(pkg.Name) + "_PATH"

// SearchPath returns the directories searched for scripts: dirs, then those
// listed in [PathEnv]. Empty and repeated entries are dropped.
func SearchPath(dirs []string) []string {
	joined := mung.Make(
		mung.WithSubjectItems(filepath.SplitList(os.Getenv(PathEnv))...),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(dirs...),
	).String()

	seen := make(map[string]struct{})

	var path []string

	for _, dir := range filepath.SplitList(joined) {
		if dir == "" {
			continue
		}

		dir = filepath.Clean(dir)
		if _, ok := seen[dir]; ok {
			continue
		}

		seen[dir] = struct{}{}
		path = append(path, dir)
	}

	return path
}

// Locate returns name if it names a regular file, or else the first
// regular file with that name in a search path directory. Absolute names
// are never searched.
func Locate(name string, path []string) (string, bool) {
	if isFile(name) {
		return name, true
	}

	if filepath.IsAbs(name) {
		return "", false
	}

	for _, dir := range path {
		if p := filepath.Join(dir, name); isFile(p) {
			return p, true
		}
	}

	return "", false
}

func isFile(name string) bool {
	info, err := os.Stat(name)

	return err == nil && info.Mode().IsRegular()
}
