package dirstream

import "golang.org/x/sys/unix"

// Darwin's statfs has no name-length field; NAME_MAX is 255 on every
// filesystem it supports.
const darwinNameMax = 255

func fstatfs(fd int) (FsStatus, error) {
	var st unix.Statfs_t

	err := ignoringEINTR(func() error { return unix.Fstatfs(fd, &st) })
	if err != nil {
		return FsStatus{}, opError("fstatfs", err)
	}

	return fsStatusFromStatfs(&st), nil
}

// fstatvfs is derived from fstatfs, like libSystem's fstatvfs.
func fstatvfs(fd int) (FsStatus, error) {
	var st unix.Statfs_t

	err := ignoringEINTR(func() error { return unix.Fstatfs(fd, &st) })
	if err != nil {
		return FsStatus{}, opError("fstatvfs", err)
	}

	return fsStatusFromStatfs(&st), nil
}

func fsStatusFromStatfs(st *unix.Statfs_t) FsStatus {
	return FsStatus{
		BlockSize:   uint64(st.Bsize),
		Blocks:      uint64(st.Blocks),
		BlocksFree:  uint64(st.Bfree),
		BlocksAvail: uint64(st.Bavail),
		Files:       uint64(st.Files),
		FilesFree:   uint64(st.Ffree),
		NameMax:     darwinNameMax,
	}
}
