//go:build linux || darwin || freebsd || openbsd || netbsd || dragonfly || solaris

package dirstream

import (
	"errors"
	"syscall"

	"golang.org/x/sys/unix"
)

// openFromFd builds a stream from a borrowed descriptor.
//
// The caller's open-file description may be shared with other descriptors
// (dup, fork, SCM_RIGHTS) that keep seeking it, which would move our cursor
// between reads. So we never read through it: "." is re-opened relative to it,
// which gives the stream a description of its own.
func openFromFd(fd int, cfg options) (*Dir, error) {
	flags, err := fcntlRetry(fd, unix.F_GETFL, 0)
	if err != nil {
		return nil, opError("fcntl", err)
	}

	terminal := false

	newfd, err := openatRetry(fd, ".", flags|unix.O_CLOEXEC)
	if errors.Is(err, syscall.ENOENT) {
		// "." no longer exists: the directory was removed. Its entry list is
		// unknowable, so hand out a stream that reads as empty.
		terminal = true

		newfd, err = fcntlRetry(fd, unix.F_DUPFD_CLOEXEC, 0)
		if err != nil {
			return nil, opError("dup", err)
		}
	} else if err != nil {
		return nil, opError("openat", err)
	}

	nd, removed, err := fdopendir(newfd, cfg.BufferSize)
	if err != nil {
		_ = unix.Close(newfd)

		return nil, opError("fdopendir", err)
	}

	// Linux resolves "." inside a removed directory, so the reopen succeeds
	// and getdents64 then fails with ENOENT. An unlinked directory reads as
	// empty either way.
	if removed {
		terminal = true
	}

	return newDir(nd, terminal), nil
}

// openFromPath opens path as a directory and adopts the new descriptor.
func openFromPath(path string, cfg options) (*Dir, error) {
	var (
		fd  int
		err error
	)
	for {
		fd, err = unix.Open(path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
		if errors.Is(err, syscall.EINTR) {
			continue
		}

		break
	}

	if err != nil {
		return nil, opError("open", err)
	}

	nd, removed, err := fdopendir(fd, cfg.BufferSize)
	if err != nil {
		_ = unix.Close(fd)

		return nil, opError("fdopendir", err)
	}

	return newDir(nd, removed), nil
}

func fcntlRetry(fd int, cmd int, arg int) (int, error) {
	for {
		r, err := unix.FcntlInt(uintptr(fd), cmd, arg)
		if errors.Is(err, syscall.EINTR) {
			continue
		}

		return r, err
	}
}

func openatRetry(dirfd int, name string, flags int) (int, error) {
	for {
		fd, err := unix.Openat(dirfd, name, flags, 0)
		if errors.Is(err, syscall.EINTR) {
			continue
		}

		return fd, err
	}
}

// fstat implements [Dir.Status].
func fstat(fd int) (Stat, error) {
	var st unix.Stat_t

	err := fstatRetry(fd, &st)
	if err != nil {
		return Stat{}, opError("fstat", err)
	}

	return Stat{
		Dev:     uint64(st.Dev),
		Inode:   uint64(st.Ino),
		Mode:    uint32(st.Mode),
		Nlink:   uint64(st.Nlink),
		Uid:     st.Uid,
		Gid:     st.Gid,
		Size:    st.Size,
		ModTime: st.Mtim.Nano(),
	}, nil
}

// fchdir implements [Dir.Chdir].
func fchdir(fd int) error {
	return opError("fchdir", unix.Fchdir(fd))
}
