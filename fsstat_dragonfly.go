package dirstream

import "golang.org/x/sys/unix"

// DragonFly's statfs has no name-length field.
const dragonflyNameMax = 255

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
		BlockSize:   uint64(st.Bsize),
		Blocks:      uint64(st.Blocks),
		BlocksFree:  uint64(st.Bfree),
		BlocksAvail: uint64(max(st.Bavail, 0)),
		Files:       uint64(st.Files),
		FilesFree:   uint64(st.Ffree),
		NameMax:     dragonflyNameMax,
	}
}
