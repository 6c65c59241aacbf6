package dirstream

// ============================================================================
// Internal native stream contract
// ============================================================================
//
// Dir (dirstream.go) is written against a small set of unexported,
// platform-dependent functions and types. Each backend provides them via
// build-tagged files:
//   - Unix backends:  native_unix.go, open_unix.go, record.go,
//                     record_<os>.go, fsstat_<os>.go
//   - Everything else: native_other.go
//
// This file contains no runtime dispatch. It uses compile-time assignments to
// document the required surface and to make every build prove it provides it.
//
// Semantics expected by Dir:
//
//   - nativeDir.readdir returns a view of one raw record, or nil. The view
//     aliases the stream's buffer and is only valid until the next
//     readdir/rewinddir/closedir; translateRecord must copy everything it keeps.
//
//   - readdir reports errors only through nativeDir.errno, and never clears
//     it. nil with errno still 0 means end of directory.
//
//   - rewinddir reports nothing. Errors from the reposition surface on the
//     next readdir.
//
//   - closedir is called exactly once per nativeDir.
//
//   - openFromFd never adopts the caller's descriptor and closes any
//     descriptor it created when it fails.

// Function signatures required by Dir.
var (
	_ func(int, options) (*Dir, error)    = openFromFd
	_ func(string, options) (*Dir, error) = openFromPath
	_ func([]byte) Entry                  = translateRecord
	_ func(int) (Stat, error)             = fstat
	_ func(int) (FsStatus, error)         = fstatfs
	_ func(int) (FsStatus, error)         = fstatvfs
	_ func(int) error                     = fchdir
)

// Method sets required by Dir and Entry.
// These interfaces are only used for compile-time checking.
type (
	nativeStream interface {
		dirfd() int
		closedir() error
		rewinddir()
		readdir() []byte
	}

	nativeFields interface {
		inode() uint64
		entryType() EntryType
	}
)

var (
	_ nativeStream = (*nativeDir)(nil)
	_ nativeFields = direntFields{}
)
