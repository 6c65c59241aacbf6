package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"
	"time"

	"github.com/google/subcommands"

	"github.com/calvinalkan/dirstream"
)

type statCmd struct{}

func (*statCmd) Name() string     { return "stat" }
func (*statCmd) Synopsis() string { return "print directory and filesystem status" }
func (*statCmd) Usage() string {
	return `stat DIR:
  Print fstat, fstatfs, and fstatvfs information for DIR.
`
}

func (*statCmd) SetFlags(*flag.FlagSet) {}

func (*statCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	a := appFrom(args)

	if f.NArg() != 1 {
		f.Usage()

		return subcommands.ExitUsageError
	}

	dir := f.Arg(0)

	err := statDir(dir, a.stdout, a.streamOptions()...)
	if err != nil {
		a.log.WithError(err).WithField("dir", dir).Error("stat failed")

		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

// statDir writes the status report for dir to out. Output is buffered and
// write errors surface from the final flush.
func statDir(dir string, out io.Writer, streamOpts ...dirstream.Option) error {
	d, err := dirstream.OpenPath(dir, streamOpts...)
	if err != nil {
		return fmt.Errorf("open %s: %w", dir, err)
	}

	defer func() { _ = d.Close() }()

	st, err := d.Status()
	if err != nil {
		return fmt.Errorf("status %s: %w", dir, err)
	}

	w := bufio.NewWriter(out)

	fmt.Fprintf(w, "dir:     %s\n", dir)
	fmt.Fprintf(w, "dev:     %d\n", st.Dev)
	fmt.Fprintf(w, "inode:   %d\n", st.Inode)
	fmt.Fprintf(w, "mode:    %#o\n", st.Mode)
	fmt.Fprintf(w, "nlink:   %d\n", st.Nlink)
	fmt.Fprintf(w, "uid/gid: %d/%d\n", st.Uid, st.Gid)
	fmt.Fprintf(w, "size:    %d\n", st.Size)
	fmt.Fprintf(w, "mtime:   %s\n", time.Unix(0, st.ModTime).UTC().Format(time.RFC3339Nano))

	for _, v := range []struct {
		name string
		fn   func() (dirstream.FsStatus, error)
	}{
		{"statfs", d.FilesystemStatus},
		{"statvfs", d.FilesystemStatusVFS},
	} {
		fs, err := v.fn()
		if errors.Is(err, syscall.ENOSYS) || errors.Is(err, errors.ErrUnsupported) {
			fmt.Fprintf(w, "%s: unsupported\n", v.name)

			continue
		}

		if err != nil {
			return fmt.Errorf("%s %s: %w", v.name, dir, err)
		}

		fmt.Fprintf(w, "%s: bsize=%d blocks=%d bfree=%d bavail=%d files=%d ffree=%d namemax=%d\n",
			v.name, fs.BlockSize, fs.Blocks, fs.BlocksFree, fs.BlocksAvail, fs.Files, fs.FilesFree, fs.NameMax)
	}

	err = w.Flush()
	if err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	return nil
}
