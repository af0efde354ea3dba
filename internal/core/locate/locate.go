// Package locate resolves which todo.txt file a run operates on.
package locate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when no usable todo file could be resolved.
var ErrNotFound = errors.New("todo file not found")

// Result is a resolved todo file.
type Result struct {
	Path string
	// Discovered is true when Path came from probing default locations
	// rather than an explicit argument.
	Discovered bool
}

// Resolve returns arg when it names an existing file. An explicit arg that
// does not exist is an error; no fallback search happens. With an empty
// arg the candidates are checked in order and the first existing file wins.
func Resolve(arg string, candidates []string) (Result, error) {
	if arg != "" {
		path := ExpandHome(arg)
		if !isFile(path) {
			return Result{}, fmt.Errorf("%w: %s", ErrNotFound, arg)
		}
		return Result{Path: path}, nil
	}

	for _, c := range candidates {
		path := ExpandHome(c)
		if path != "" && isFile(path) {
			return Result{Path: path, Discovered: true}, nil
		}
	}

	return Result{}, fmt.Errorf("%w: searched %s", ErrNotFound, strings.Join(candidates, ", "))
}

// DefaultCandidates returns the conventional per-user todo file locations:
// $XDG_CONFIG_HOME/todo/todo.txt (defaulting to ~/.config) and
// ~/.todo/todo.txt.
func DefaultCandidates() []string {
	home, _ := os.UserHomeDir()

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}

	return []string{
		filepath.Join(configHome, "todo", "todo.txt"),
		filepath.Join(home, ".todo", "todo.txt"),
	}
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
