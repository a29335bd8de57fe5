package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParsePort(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    int
		wantErr bool
	}{
		{name: "No argument", args: nil, want: 8080},
		{name: "Explicit port", args: []string{"9090"}, want: 9090},
		{name: "Zero", args: []string{"0"}, want: 0},
		{name: "Upper bound", args: []string{"65535"}, want: 65535},
		{name: "Not a number", args: []string{"abc"}, wantErr: true},
		{name: "Trailing junk", args: []string{"80x"}, wantErr: true},
		{name: "Negative", args: []string{"-1"}, wantErr: true},
		{name: "Too large", args: []string{"70000"}, wantErr: true},
		{name: "Extra arguments ignored", args: []string{"8081", "abc", "9090"}, want: 8081},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePort(tt.args)
			if tt.wantErr {
				var argErr *ArgError
				if !errors.As(err, &argErr) {
					t.Fatalf("ParsePort(%q) error = %v, want *ArgError", tt.args, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePort(%q) unexpected error: %v", tt.args, err)
			}
			if got != tt.want {
				t.Errorf("ParsePort(%q) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}

func TestResolveDir(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Resolve([]string{"9090"}, dir)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if !filepath.IsAbs(cfg.Root) {
		t.Errorf("Root %q is not absolute", cfg.Root)
	}
	if cfg.Root != filepath.Clean(dir) {
		t.Errorf("Root = %q, want %q", cfg.Root, dir)
	}
}

func TestResolveDefaultsToExecutableDir(t *testing.T) {
	cfg, err := Resolve(nil, "")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}

	exe, err := os.Executable()
	if err != nil {
		t.Fatalf("os.Executable() error: %v", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	if want := filepath.Dir(exe); cfg.Root != want {
		t.Errorf("Root = %q, want %q", cfg.Root, want)
	}
}

func TestResolveErrors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Resolve([]string{"abc"}, dir); err == nil {
		t.Error("Resolve() with non-numeric port should fail")
	}
	if _, err := Resolve(nil, filepath.Join(dir, "missing")); err == nil {
		t.Error("Resolve() with missing directory should fail")
	}
	if _, err := Resolve(nil, file); err == nil {
		t.Error("Resolve() with a file as root should fail")
	}
}
