// Package dirstream reads directory entries through a file descriptor.
//
// A [Dir] owns an independent open-file description of a directory and
// yields one owned [Entry] per call to [Dir.Next], reading raw records with
// the platform's native enumeration primitive (getdents64 on Linux,
// getdirentries on the BSDs, the libc-backed emulation on Darwin, getdents on
// Solaris and illumos).
//
// # Ownership
//
// Records returned by the kernel live in a buffer owned by the stream and are
// overwritten on the next refill. Every entry is copied out before Next
// returns; an Entry never aliases stream memory. Names are copied only up to
// and including the first NUL: on several platforms the bytes after it are not
// part of the record.
//
// # Handles
//
// [Open] never reads through the caller's descriptor. It re-opens "." relative
// to it, which yields a fresh open-file description with its own cursor, so
// code that seeks or reads the caller's descriptor cannot disturb the stream.
// If the directory has already been removed, the stream is created but reads
// as empty.
//
// # End and errors
//
// Next returns io.EOF at the end of the directory, and keeps returning io.EOF
// on further calls. The first read error is returned once as an [*Error];
// every later Next returns io.EOF without touching the descriptor. Call
// [Dir.Reset] to rewind and clear the error state.
//
// # Concurrency
//
// A Dir must not be used from multiple goroutines at the same time. Use one
// Dir per goroutine (they share nothing) or guard a shared Dir with a mutex.
package dirstream

import (
	"fmt"
	"io"
	"iter"
	"os"
	"runtime"
)

// Handle is anything that designates an open directory. *os.File satisfies it.
type Handle interface {
	Fd() uintptr
}

// Dir is a directory stream.
//
// The zero value is not usable; create one with [Open], [OpenFd], or
// [OpenPath] and release it with [Dir.Close].
type Dir struct {
	// nd is the native stream. nil after Close.
	nd *nativeDir

	// terminal is the sticky error flag. Once set, Next reports io.EOF
	// without reading until Reset clears it.
	terminal bool

	// cleanup closes nd if the Dir becomes unreachable without Close.
	cleanup runtime.Cleanup
}

func newDir(nd *nativeDir, terminal bool) *Dir {
	d := &Dir{nd: nd, terminal: terminal}
	d.cleanup = runtime.AddCleanup(d, func(nd *nativeDir) { _ = nd.closedir() }, nd)

	return d
}

// Open creates a stream over the directory designated by h.
//
// h is only borrowed: the stream re-opens the directory through it and never
// reads from, seeks, or closes h itself.
func Open(h Handle, opts ...Option) (*Dir, error) {
	fd := h.Fd()

	d, err := OpenFd(int(fd), opts...)

	// Keep an *os.File (and its finalizer) alive until the syscalls using its
	// descriptor have returned.
	runtime.KeepAlive(h)

	return d, err
}

// OpenFd is like [Open] for a raw descriptor.
func OpenFd(fd int, opts ...Option) (*Dir, error) {
	cfg := applyOptions(opts)

	return openFromFd(fd, cfg)
}

// OpenPath opens the directory at path and creates a stream over it.
//
// The stream adopts the descriptor it opened; no re-open is needed because
// nothing else holds that open-file description.
func OpenPath(path string, opts ...Option) (*Dir, error) {
	cfg := applyOptions(opts)

	return openFromPath(path, cfg)
}

// Next returns the next entry, or io.EOF when the directory is exhausted.
//
// After an error is returned, Next returns io.EOF until [Dir.Reset] is called.
func (d *Dir) Next() (Entry, error) {
	if d.nd == nil {
		return Entry{}, opError("readdir", os.ErrClosed)
	}

	if d.terminal {
		return Entry{}, io.EOF
	}

	// A nil record means either end or error; only a cleared slot tells the
	// two apart.
	d.nd.errno = 0

	rec := readRecord(d.nd)
	if rec == nil {
		errno := d.nd.errno
		if errno == 0 {
			return Entry{}, io.EOF
		}

		d.terminal = true

		return Entry{}, opError("readdir", errno)
	}

	e := translateRecord(rec)

	// The cleanup must not close the descriptor while the read is in flight.
	runtime.KeepAlive(d)

	return e, nil
}

// Entries returns an iterator over the remaining entries.
//
// Iteration stops silently at the end of the directory. A read error is
// yielded once, after which iteration stops.
func (d *Dir) Entries() iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		for {
			e, err := d.Next()
			if err == io.EOF {
				return
			}

			if err != nil {
				yield(Entry{}, err)

				return
			}

			if !yield(e, nil) {
				return
			}
		}
	}
}

// Reset rewinds the stream to the first entry and clears the error state.
//
// Reset on a closed Dir does nothing.
func (d *Dir) Reset() {
	if d.nd == nil {
		return
	}

	d.terminal = false
	d.nd.rewinddir()
	runtime.KeepAlive(d)
}

// Close releases the stream's descriptor. Further calls return nil.
func (d *Dir) Close() error {
	if d.nd == nil {
		return nil
	}

	nd := d.nd
	d.nd = nil
	d.cleanup.Stop()

	return nd.closedir()
}

// Fd returns the stream's own descriptor, or ^uintptr(0) after Close.
//
// The descriptor remains owned by the Dir. Reading from or seeking it changes
// the stream's position.
func (d *Dir) Fd() uintptr {
	if d.nd == nil {
		return ^uintptr(0)
	}

	return uintptr(d.nd.dirfd())
}

// Status returns fstat(2) information for the directory.
func (d *Dir) Status() (Stat, error) {
	if d.nd == nil {
		return Stat{}, opError("fstat", os.ErrClosed)
	}

	st, err := fstat(d.nd.dirfd())
	runtime.KeepAlive(d)

	return st, err
}

// FilesystemStatus returns fstatfs(2)-style statistics for the filesystem
// containing the directory.
//
// Platforms without fstatfs (NetBSD, Solaris, illumos) return ENOSYS; use
// [Dir.FilesystemStatusVFS] there.
func (d *Dir) FilesystemStatus() (FsStatus, error) {
	if d.nd == nil {
		return FsStatus{}, opError("fstatfs", os.ErrClosed)
	}

	st, err := fstatfs(d.nd.dirfd())
	runtime.KeepAlive(d)

	return st, err
}

// FilesystemStatusVFS returns fstatvfs(2)-style statistics for the filesystem
// containing the directory. BlockSize is the fragment size (f_frsize).
func (d *Dir) FilesystemStatusVFS() (FsStatus, error) {
	if d.nd == nil {
		return FsStatus{}, opError("fstatvfs", os.ErrClosed)
	}

	st, err := fstatvfs(d.nd.dirfd())
	runtime.KeepAlive(d)

	return st, err
}

// Chdir changes the process working directory to the directory.
func (d *Dir) Chdir() error {
	if d.nd == nil {
		return opError("fchdir", os.ErrClosed)
	}

	err := fchdir(d.nd.dirfd())
	runtime.KeepAlive(d)

	return err
}

func (d *Dir) String() string {
	if d.nd == nil {
		return "dirstream.Dir{closed}"
	}

	return fmt.Sprintf("dirstream.Dir{fd: %d}", d.nd.dirfd())
}
