package dirstream

// Stat holds the metadata returned by [Dir.Status].
//
// ModTime is expressed as Unix nanoseconds to avoid time.Time allocations.
// Use time.Unix(0, st.ModTime) to convert when needed.
type Stat struct {
	// Dev is the device containing the directory.
	Dev uint64
	// Inode is the directory's inode number.
	Inode uint64
	// Mode is the raw st_mode (file type and permission bits).
	Mode uint32
	// Nlink is the hard link count.
	Nlink uint64
	// Uid and Gid are the owning user and group.
	Uid uint32
	Gid uint32
	// Size is st_size as reported by the filesystem.
	Size int64
	// ModTime is the modification time in Unix nanoseconds.
	ModTime int64
}

// FsStatus holds the filesystem statistics returned by
// [Dir.FilesystemStatus] and [Dir.FilesystemStatusVFS].
//
// Fields the platform does not report are zero.
type FsStatus struct {
	// BlockSize is the unit Blocks, BlocksFree, and BlocksAvail are counted in.
	BlockSize uint64
	// Blocks is the total number of blocks.
	Blocks uint64
	// BlocksFree is the number of free blocks.
	BlocksFree uint64
	// BlocksAvail is the number of blocks available to unprivileged users.
	BlocksAvail uint64
	// Files is the total number of inodes.
	Files uint64
	// FilesFree is the number of free inodes.
	FilesFree uint64
	// NameMax is the maximum filename length.
	NameMax uint64
}
