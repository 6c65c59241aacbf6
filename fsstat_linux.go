package dirstream

import "golang.org/x/sys/unix"

func fstatfs(fd int) (FsStatus, error) {
	var st unix.Statfs_t

	err := ignoringEINTR(func() error { return unix.Fstatfs(fd, &st) })
	if err != nil {
		return FsStatus{}, opError("fstatfs", err)
	}

	return FsStatus{
		BlockSize:   uint64(st.Bsize),
		Blocks:      uint64(st.Blocks),
		BlocksFree:  uint64(st.Bfree),
		BlocksAvail: uint64(st.Bavail),
		Files:       uint64(st.Files),
		FilesFree:   uint64(st.Ffree),
		NameMax:     uint64(st.Namelen),
	}, nil
}

// fstatvfs derives the statvfs view from fstatfs, as glibc does: block
// counts are in units of the fragment size.
func fstatvfs(fd int) (FsStatus, error) {
	var st unix.Statfs_t

	err := ignoringEINTR(func() error { return unix.Fstatfs(fd, &st) })
	if err != nil {
		return FsStatus{}, opError("fstatvfs", err)
	}

	frsize := uint64(st.Frsize)
	if frsize == 0 {
		frsize = uint64(st.Bsize)
	}

	return FsStatus{
		BlockSize:   frsize,
		Blocks:      uint64(st.Blocks),
		BlocksFree:  uint64(st.Bfree),
		BlocksAvail: uint64(st.Bavail),
		Files:       uint64(st.Files),
		FilesFree:   uint64(st.Ffree),
		NameMax:     uint64(st.Namelen),
	}, nil
}
