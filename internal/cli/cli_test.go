package cli

import (
	"io"
	"path/filepath"
	"reflect"
	"testing"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"generate", "batch", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); !reflect.DeepEqual(got, []string{"dxf"}) {
		t.Errorf("parseFormats(\"\") = %v, want [dxf]", got)
	}
	if got := parseFormats("dxf,svg"); !reflect.DeepEqual(got, []string{"dxf", "svg"}) {
		t.Errorf("parseFormats = %v", got)
	}
}

func TestParseIntList(t *testing.T) {
	got, err := parseIntList("500, 1000,2000")
	if err != nil {
		t.Fatalf("parseIntList: %v", err)
	}
	if !reflect.DeepEqual(got, []int{500, 1000, 2000}) {
		t.Errorf("parseIntList = %v", got)
	}

	if _, err := parseIntList("abc"); err == nil {
		t.Error("expected error for non-numeric input")
	}
	if _, err := parseIntList(""); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestCacheDirRespectsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	got, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	if got != filepath.Join(dir, appName) {
		t.Errorf("cacheDir = %q", got)
	}
}
