package dirstream

import "golang.org/x/sys/unix"

func fstatfs(fd int) (FsStatus, error) {
	var st unix.Statfs_t

	err := ignoringEINTR(func() error { return unix.Fstatfs(fd, &st) })
	if err != nil {
		return FsStatus{}, opError("fstatfs", err)
	}

	return fsStatusFromStatfs(&st), nil
}

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
		BlockSize:   uint64(st.F_bsize),
		Blocks:      uint64(st.F_blocks),
		BlocksFree:  uint64(st.F_bfree),
		BlocksAvail: uint64(max(st.F_bavail, 0)),
		Files:       uint64(st.F_files),
		FilesFree:   uint64(st.F_ffree),
		NameMax:     uint64(st.F_namemax),
	}
}
