package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
)

func makeTree(t *testing.T, names ...string) string {
	t.Helper()

	root := t.TempDir()

	for _, name := range names {
		err := os.WriteFile(filepath.Join(root, name), nil, 0o600)
		if err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	return root
}

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return log
}

func lineNames(t *testing.T, out string) []string {
	t.Helper()

	var names []string

	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}

		fields := strings.SplitN(line, "\t", 3)
		if len(fields) != 3 {
			t.Fatalf("malformed line %q", line)
		}

		names = append(names, fields[2])
	}

	return names
}

func Test_ListDir_Prints_Sorted_Names_When_Sort_Is_Set(t *testing.T) {
	t.Parallel()

	root := makeTree(t, "c", "a", "b")

	var buf bytes.Buffer

	n, err := listDir(root, listOptions{sort: true}, &buf)
	if err != nil {
		t.Fatalf("listDir: %v", err)
	}

	if n != 3 {
		t.Fatalf("count: got=%d want=3", n)
	}

	if diff := cmp.Diff([]string{"a", "b", "c"}, lineNames(t, buf.String())); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func Test_ListDir_Includes_Dots_When_All_Is_Set(t *testing.T) {
	t.Parallel()

	root := makeTree(t, "x")

	var buf bytes.Buffer

	_, err := listDir(root, listOptions{all: true, sort: true}, &buf)
	if err != nil {
		t.Fatalf("listDir: %v", err)
	}

	got := lineNames(t, buf.String())
	if !sort.StringsAreSorted(got) || !containsAll(got, ".", "..", "x") {
		t.Fatalf("expected sorted listing with dots, got %v", got)
	}
}

func Test_ListDir_Emits_JSON_Objects_When_JSON_Is_Set(t *testing.T) {
	t.Parallel()

	root := makeTree(t, "one", "two")

	err := os.Mkdir(filepath.Join(root, "sub"), 0o750)
	if err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	var buf bytes.Buffer

	_, err = listDir(root, listOptions{sort: true, jsonOut: true}, &buf)
	if err != nil {
		t.Fatalf("listDir: %v", err)
	}

	dec := json.NewDecoder(&buf)

	var got []listEntry

	for {
		var le listEntry

		err := dec.Decode(&le)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			t.Fatalf("decode: %v", err)
		}

		if le.Ino == 0 {
			t.Fatalf("entry %q has zero inode", le.Name)
		}

		got = append(got, le)
	}

	names := make([]string, 0, len(got))
	for _, le := range got {
		names = append(names, le.Name)

		if le.Name == "sub" && le.Type != "dir" && le.Type != "unknown" {
			t.Fatalf("sub type: got=%q", le.Type)
		}
	}

	if diff := cmp.Diff([]string{"one", "sub", "two"}, names); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func Test_ListDir_Fails_When_Directory_Is_Missing(t *testing.T) {
	t.Parallel()

	_, err := listDir(filepath.Join(t.TempDir(), "missing"), listOptions{}, io.Discard)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func Test_QuoteName_Quotes_When_Name_Has_Control_Separators(t *testing.T) {
	t.Parallel()

	if got := quoteName("plain"); got != "plain" {
		t.Fatalf("plain: got=%q", got)
	}

	if got := quoteName("a\tb"); got != `"a\tb"` {
		t.Fatalf("tab: got=%q", got)
	}
}

func Test_StatDir_Reports_Directory_When_Called(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := statDir(t.TempDir(), &buf)
	if err != nil {
		t.Fatalf("statDir: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"inode:", "mode:", "statfs", "statvfs"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func Test_RunBench_Counts_Entries_When_Directories_Are_Enumerated_Repeatedly(t *testing.T) {
	t.Parallel()

	a := makeTree(t, "1", "2", "3")
	b := makeTree(t, "x")

	res, err := runBench(context.Background(), benchParams{
		dirs:    []string{a, b},
		workers: 2,
		repeat:  4,
	}, discardLogger())
	if err != nil {
		t.Fatalf("runBench: %v", err)
	}

	// Each enumeration also yields "." and "..".
	want := uint64(4 * ((3 + 2) + (1 + 2)))
	if res.Entries != want {
		t.Fatalf("entries: got=%d want=%d", res.Entries, want)
	}

	if res.Errors != 0 {
		t.Fatalf("errors: got=%d", res.Errors)
	}

	var buf bytes.Buffer

	err = writeBenchResult(&buf, &res, true)
	if err != nil {
		t.Fatalf("writeBenchResult: %v", err)
	}

	var decoded benchResult

	err = json.Unmarshal(buf.Bytes(), &decoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if decoded.Entries != want || decoded.Repeat != 4 {
		t.Fatalf("decoded result mismatch: %+v", decoded)
	}
}

func Test_RunBench_Reports_Error_When_Directory_Is_Missing(t *testing.T) {
	t.Parallel()

	res, err := runBench(context.Background(), benchParams{
		dirs:   []string{filepath.Join(t.TempDir(), "missing")},
		repeat: 1,
	}, discardLogger())
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}

	if res.Errors != 1 {
		t.Fatalf("errors: got=%d want=1", res.Errors)
	}
}

func containsAll(got []string, want ...string) bool {
	set := make(map[string]bool, len(got))
	for _, g := range got {
		set[g] = true
	}

	for _, w := range want {
		if !set[w] {
			return false
		}
	}

	return true
}

var errWriteFailed = errors.New("write failed")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errWriteFailed
}

func Test_StatDir_Fails_When_Output_Cannot_Be_Written(t *testing.T) {
	t.Parallel()

	err := statDir(t.TempDir(), failingWriter{})
	if !errors.Is(err, errWriteFailed) {
		t.Fatalf("expected write error, got %v", err)
	}
}

func Test_ListDir_Fails_When_Output_Cannot_Be_Written(t *testing.T) {
	t.Parallel()

	root := makeTree(t, "a")

	_, err := listDir(root, listOptions{}, failingWriter{})
	if !errors.Is(err, errWriteFailed) {
		t.Fatalf("expected write error, got %v", err)
	}
}
