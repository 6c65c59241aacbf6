//go:build linux || darwin || freebsd || openbsd || netbsd || dragonfly || solaris

package dirstream

// native_unix.go implements the native stream (the role libc's DIR* plays)
// on top of unix.ReadDirent:
//   - Linux:            getdents64
//   - FreeBSD/OpenBSD/NetBSD/DragonFly: getdirentries / getdents
//   - Darwin:           x/sys emulation over fdopendir/readdir_r
//   - Solaris/illumos:  getdents
//
// Records are parsed in place from the read buffer; readdir hands out a view
// of one record that is only valid until the next readdir/rewinddir/closedir.

import (
	"errors"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/sys/unix"
)

// nativeDir is an open directory stream over one owned descriptor.
type nativeDir struct {
	fd int

	// buf holds raw records from the last refill; buf[off:end] is unread.
	buf []byte
	off int
	end int

	// errno is the stream's error slot. readdir sets it when it fails and
	// leaves it untouched otherwise; callers clear it before reading.
	errno syscall.Errno
}

// fdopendir creates a stream that takes ownership of fd. It also reports
// whether the directory has been unlinked (st_nlink == 0).
//
// Like fdopendir(3), it fails with ENOTDIR when fd is not a directory. On
// failure fd is NOT closed; the caller still owns it.
func fdopendir(fd int, bufSize int) (*nativeDir, bool, error) {
	var st unix.Stat_t

	err := fstatRetry(fd, &st)
	if err != nil {
		return nil, false, err
	}

	if st.Mode&unix.S_IFMT != unix.S_IFDIR {
		return nil, false, syscall.ENOTDIR
	}

	nd := &nativeDir{
		fd:  fd,
		buf: make([]byte, bufSize),
	}

	return nd, st.Nlink == 0, nil
}

func (d *nativeDir) dirfd() int {
	return d.fd
}

// closedir closes the descriptor. It must be called at most once.
func (d *nativeDir) closedir() error {
	// We intentionally do not retry close(2) on EINTR.
	err := unix.Close(d.fd)
	d.fd = -1
	d.buf = nil
	d.off, d.end = 0, 0

	if err != nil {
		return fmt.Errorf("close: %w", err)
	}

	return nil
}

// rewinddir repositions the stream at the first entry. Like rewinddir(3) it
// reports nothing; a failed seek surfaces on the next read.
func (d *nativeDir) rewinddir() {
	_, _ = unix.Seek(d.fd, 0, io.SeekStart)
	d.off, d.end = 0, 0
}

// readdir returns the next raw record, or nil at end of directory or on
// error. On error the errno slot is set; at end it is left alone.
//
// Records with inode 0 (deleted entries on some filesystems) are skipped, as
// readdir(3) does.
func (d *nativeDir) readdir() []byte {
	for {
		if d.off >= d.end {
			n, err := readDirentRetry(d.fd, d.buf)
			if err != nil {
				d.errno = errnoOf(err)

				return nil
			}

			if n <= 0 {
				d.off, d.end = 0, 0

				return nil
			}

			d.off, d.end = 0, n
		}

		data := d.buf[d.off:d.end]

		reclen, ok := recordLen(data)
		if !ok || reclen < minRecordLen || reclen > len(data) {
			// Unparseable buffer: drop it so a retry after Reset starts clean.
			d.off = d.end
			d.errno = syscall.EIO

			return nil
		}

		rec := data[:reclen]
		d.off += reclen

		if layout.ino.read(rec) == 0 {
			continue
		}

		return rec
	}
}

// readDirentRetry retries ReadDirent on EINTR without an upper bound,
// matching Go's standard library.
func readDirentRetry(fd int, buf []byte) (int, error) {
	for {
		n, err := unix.ReadDirent(fd, buf)
		if errors.Is(err, syscall.EINTR) {
			continue
		}

		return n, err
	}
}

func fstatRetry(fd int, st *unix.Stat_t) error {
	for {
		err := unix.Fstat(fd, st)
		if errors.Is(err, syscall.EINTR) {
			continue
		}

		return err
	}
}

// errnoOf extracts the errno from err, mapping anything else to EIO.
func errnoOf(err error) syscall.Errno {
	var errno syscall.Errno
	if errors.As(err, &errno) && errno != 0 {
		return errno
	}

	return syscall.EIO
}

// ignoringEINTR calls fn until it returns something other than EINTR.
func ignoringEINTR(fn func() error) error {
	for {
		err := fn()
		if !errors.Is(err, syscall.EINTR) {
			return err
		}
	}
}
