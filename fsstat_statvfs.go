//go:build netbsd || solaris

package dirstream

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// NetBSD, Solaris, and illumos only provide the statvfs family.
func fstatfs(int) (FsStatus, error) {
	return FsStatus{}, opError("fstatfs", syscall.ENOSYS)
}

func fstatvfs(fd int) (FsStatus, error) {
	var st unix.Statvfs_t

	err := ignoringEINTR(func() error { return unix.Fstatvfs(fd, &st) })
	if err != nil {
		return FsStatus{}, opError("fstatvfs", err)
	}

	return FsStatus{
		BlockSize:   uint64(st.Frsize),
		Blocks:      uint64(st.Blocks),
		BlocksFree:  uint64(st.Bfree),
		BlocksAvail: uint64(st.Bavail),
		Files:       uint64(st.Files),
		FilesFree:   uint64(st.Ffree),
		NameMax:     uint64(st.Namemax),
	}, nil
}
