//go:build !(linux || darwin || freebsd || openbsd || netbsd || dragonfly || solaris)

package dirstream

// native_other.go is the backend for platforms without a native directory
// stream we can drive through a descriptor (windows, plan9, js, wasip1, aix,
// ...). The package builds there, but every constructor fails with
// errors.ErrUnsupported.

import (
	"errors"
	"syscall"
)

const minBufferSize = 4096

type nativeDir struct {
	fd    int
	errno syscall.Errno
}

func (d *nativeDir) dirfd() int {
	return d.fd
}

func (d *nativeDir) closedir() error {
	return nil
}

func (d *nativeDir) rewinddir() {}

func (d *nativeDir) readdir() []byte {
	return nil
}

func translateRecord([]byte) Entry {
	return Entry{}
}

func fstat(int) (Stat, error) {
	return Stat{}, opError("fstat", errors.ErrUnsupported)
}

func fstatfs(int) (FsStatus, error) {
	return FsStatus{}, opError("fstatfs", errors.ErrUnsupported)
}

func fstatvfs(int) (FsStatus, error) {
	return FsStatus{}, opError("fstatvfs", errors.ErrUnsupported)
}

func fchdir(int) error {
	return opError("fchdir", errors.ErrUnsupported)
}

type direntFields struct{}

func (direntFields) inode() uint64 {
	return 0
}

func (direntFields) entryType() EntryType {
	return TypeUnknown
}

func openFromFd(int, options) (*Dir, error) {
	return nil, opError("fdopendir", errors.ErrUnsupported)
}

func openFromPath(string, options) (*Dir, error) {
	return nil, opError("open", errors.ErrUnsupported)
}
