package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type searchPathKey struct{}

// WithSearchPath returns a new context.Context carrying the script search
// path built from dirs and the [PathEnv] environment variable.
func WithSearchPath(ctx context.Context, dirs []string) context.Context {
	return context.WithValue(ctx, searchPathKey{}, SearchPath(dirs))
}

func searchPathFrom(ctx context.Context) []string {
	path, _ := ctx.Value(searchPathKey{}).([]string)

	return path
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// script is an opened script file.
type script struct {
	name string
	io.ReadCloser
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// openScripts opens each named script in order, looking names up in path
// when they are not found directly. "-" reads stdin.
//
// A file named more than once, by any path, is opened only the first time.
// On error every script already opened is closed.
func openScripts(names, path []string) (scripts []script, err error) {
	defer func() {
		if err != nil {
			closeScripts(scripts)
			scripts = nil
		}
	}()

	seen := make(map[fileKey]struct{})

	for _, name := range names {
		if name == stdinSource {
			if key, ok := statKey(os.Stdin.Stat()); ok {
				if _, dup := seen[key]; dup {
					continue
				}

				seen[key] = struct{}{}
			}

			scripts = append(scripts, script{name: name, ReadCloser: io.NopCloser(os.Stdin)})

			continue
		}

		found, ok := Locate(name, path)
		if !ok {
			return scripts, ErrScriptNotFound.With(
				slog.String("file", name),
				slog.Any("path", path),
			)
		}

		s, dup, err := openUnique(found, seen)
		if err != nil {
			return scripts, ErrReadScript.Wrap(err).With(slog.String("file", found))
		}

		if !dup {
			scripts = append(scripts, s)
		}
	}

	return scripts, nil
}

// openUnique opens the file at path unless its device/inode pair is already
// in seen.
func openUnique(path string, seen map[fileKey]struct{}) (s script, dup bool, err error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return s, false, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		return s, false, err
	}

	if key, ok := statKey(file.Stat()); ok {
		if _, exists := seen[key]; exists {
			_ = file.Close()

			return s, true, nil
		}

		seen[key] = struct{}{}
	}

	return script{name: path, ReadCloser: file}, false, nil
}

// statKey creates a fileKey from the result of a Stat call.
// Returns false if Stat failed or its Sys() data is not a *syscall.Stat_t.
func statKey(info os.FileInfo, err error) (key fileKey, ok bool) {
	if err != nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}

func closeScripts(scripts []script) {
	for _, s := range scripts {
		_ = s.Close()
	}
}
