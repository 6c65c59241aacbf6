package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/google/btree"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/calvinalkan/dirstream"
)

// btreeDegree is the node degree for the sort tree.
const btreeDegree = 32

type listCmd struct {
	all     bool
	sort    bool
	jsonOut bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list directory entries" }
func (*listCmd) Usage() string {
	return `list [-a] [-sort] [-json] DIR:
  Print one line per entry: inode, type, name.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "a", false, "include . and ..")
	f.BoolVar(&c.sort, "sort", false, "sort entries by name")
	f.BoolVar(&c.jsonOut, "json", false, "print one JSON object per entry")
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	a := appFrom(args)

	if f.NArg() != 1 {
		f.Usage()

		return subcommands.ExitUsageError
	}

	dir := f.Arg(0)
	opts := listOptions{all: c.all, sort: c.sort, jsonOut: c.jsonOut}

	n, err := listDir(dir, opts, a.stdout, a.streamOptions()...)
	if err != nil {
		a.log.WithError(err).WithField("dir", dir).Error("list failed")

		return subcommands.ExitFailure
	}

	a.log.WithFields(logrus.Fields{"dir": dir, "entries": n}).Debug("listed")

	return subcommands.ExitSuccess
}

type listOptions struct {
	all     bool
	sort    bool
	jsonOut bool
}

// listEntry is the JSON shape of one entry.
type listEntry struct {
	Name string `json:"name"`
	Ino  uint64 `json:"ino"`
	Type string `json:"type"`
}

func newListEntry(e dirstream.Entry) listEntry {
	return listEntry{Name: e.NameString(), Ino: e.Ino(), Type: e.Type().String()}
}

// listDir writes the entries of dir to w and returns how many were written.
func listDir(dir string, opts listOptions, w io.Writer, streamOpts ...dirstream.Option) (int, error) {
	d, err := dirstream.OpenPath(dir, streamOpts...)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", dir, err)
	}

	defer func() { _ = d.Close() }()

	bw := bufio.NewWriter(w)
	out := newEntryWriter(bw, opts.jsonOut)

	var tree *btree.BTreeG[listEntry]
	if opts.sort {
		tree = btree.NewG(btreeDegree, func(a, b listEntry) bool {
			return a.Name < b.Name
		})
	}

	n := 0

	for e, err := range d.Entries() {
		if err != nil {
			return n, fmt.Errorf("read %s: %w", dir, err)
		}

		if e.IsDot() && !opts.all {
			continue
		}

		le := newListEntry(e)

		if tree != nil {
			tree.ReplaceOrInsert(le)

			continue
		}

		err = out(le)
		if err != nil {
			return n, err
		}

		n++
	}

	if tree != nil {
		var writeErr error

		tree.Ascend(func(le listEntry) bool {
			writeErr = out(le)
			if writeErr != nil {
				return false
			}

			n++

			return true
		})

		if writeErr != nil {
			return n, writeErr
		}
	}

	err = bw.Flush()
	if err != nil {
		return n, fmt.Errorf("flush output: %w", err)
	}

	return n, nil
}

func newEntryWriter(w io.Writer, jsonOut bool) func(listEntry) error {
	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)

		return func(le listEntry) error {
			err := enc.Encode(le)
			if err != nil {
				return fmt.Errorf("encode json: %w", err)
			}

			return nil
		}
	}

	return func(le listEntry) error {
		_, err := fmt.Fprintf(w, "%d\t%s\t%s\n", le.Ino, le.Type, quoteName(le.Name))
		if err != nil {
			return fmt.Errorf("write output: %w", err)
		}

		return nil
	}
}

// quoteName quotes names that would break the line-oriented output.
func quoteName(name string) string {
	if strings.ContainsAny(name, "\t\n\r") {
		return fmt.Sprintf("%q", name)
	}

	return name
}
