// Package config resolves the listening port and the root directory of the dev server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// DefaultPort is used when no port argument is given.
const DefaultPort = 8080

// Config holds the settings fixed for the lifetime of the server.
type Config struct {
	// Port is the TCP port to listen on, across all local interfaces.
	Port int
	// Root is the absolute directory that all served files must live under.
	Root string
}

// ArgError reports an invalid command-line argument.
type ArgError struct {
	Arg string
	Err error
}

func (e *ArgError) Error() string {
	return fmt.Sprintf("invalid port argument %q: %v", e.Arg, e.Err)
}

func (e *ArgError) Unwrap() error { return e.Err }

// Resolve builds a Config from the positional arguments left after flag parsing
// and an optional root directory override.
//
// An empty args slice selects DefaultPort. An empty dir selects the directory
// containing the running executable.
func Resolve(args []string, dir string) (Config, error) {
	port, err := ParsePort(args)
	if err != nil {
		return Config{}, err
	}

	root, err := resolveRoot(dir)
	if err != nil {
		return Config{}, err
	}

	return Config{Port: port, Root: root}, nil
}

// ParsePort returns the port named by args[0], or DefaultPort if args is empty.
// Arguments after the first are ignored.
func ParsePort(args []string) (int, error) {
	if len(args) == 0 {
		return DefaultPort, nil
	}

	port, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, &ArgError{Arg: args[0], Err: err}
	}
	if port < 0 || port > 65535 {
		return 0, &ArgError{Arg: args[0], Err: fmt.Errorf("port must be in range 0-65535")}
	}
	return port, nil
}

func resolveRoot(dir string) (string, error) {
	if dir == "" {
		exe, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("locate executable: %w", err)
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		dir = filepath.Dir(exe)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve directory: %w", err)
	}

	info, err := os.Stat(absDir)
	if err != nil {
		return "", fmt.Errorf("stat root directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("root %s is not a directory", absDir)
	}
	return absDir, nil
}
