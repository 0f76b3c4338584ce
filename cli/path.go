package cli

import (
	"os"
	"path/filepath"

	"github.com/ardnew/pcalc/pkg"
)

// baseConfig is the base name of the configuration file and the key of the
// optional top-level mapping holding its flags.
const baseConfig = "config"

// configExt is the extension of the YAML configuration file.
const configExt = ".yaml"

// defaultDirMode is the permission mode for created directories.
var defaultDirMode os.FileMode = 0o700

// configPath returns the path formed by joining the configuration directory
// with the given elements.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{pkg.ConfigDir()}, elem...)...)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{pkg.ConfigDir(), pkg.CacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
