//go:build linux || darwin || freebsd || openbsd || netbsd || dragonfly || solaris

package dirstream_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/calvinalkan/dirstream"
)

const (
	testNumFilesBig = 500
	testNamePad     = 200
)

func writeFile(t *testing.T, root, rel string, data []byte) {
	t.Helper()

	fullPath := filepath.Join(root, rel)
	parent := filepath.Dir(fullPath)

	err := os.MkdirAll(parent, 0o750)
	if err != nil {
		t.Fatalf("mkdir %s: %v", parent, err)
	}

	err = os.WriteFile(fullPath, data, 0o600)
	if err != nil {
		t.Fatalf("write %s: %v", fullPath, err)
	}
}

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()

	for _, name := range names {
		writeFile(t, root, name, []byte("x"))
	}
}

func openDirFile(t *testing.T, path string) *os.File {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}

	t.Cleanup(func() { _ = f.Close() })

	return f
}

func openStream(t *testing.T, path string, opts ...dirstream.Option) *dirstream.Dir {
	t.Helper()

	d, err := dirstream.OpenPath(path, opts...)
	if err != nil {
		t.Fatalf("OpenPath %s: %v", path, err)
	}

	t.Cleanup(func() { _ = d.Close() })

	return d
}

// readNames drains d and returns the names it yielded, excluding "." and "..".
// Fails the test on any error.
func readNames(t *testing.T, d *dirstream.Dir) []string {
	t.Helper()

	var names []string

	for {
		e, err := d.Next()
		if errors.Is(err, io.EOF) {
			return names
		}

		if err != nil {
			t.Fatalf("next: %v", err)
		}

		if e.IsDot() {
			continue
		}

		names = append(names, e.NameString())
	}
}

func sorted(names []string) []string {
	out := append([]string(nil), names...)
	sort.Strings(out)

	return out
}

func assertNoDuplicates(t *testing.T, names []string) {
	t.Helper()

	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			t.Fatalf("duplicate entry %q", name)
		}

		seen[name] = struct{}{}
	}
}
