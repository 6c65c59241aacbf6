//go:build dirstream_testhooks

package dirstream

import "sync/atomic"

// This file provides test-only hooks for the native read.
//
// Build tag:
//   - Enabled only when tests are run with: go test -tags dirstream_testhooks ./...
//   - Normal builds use readhooks_stub.go, which calls the native stream
//     directly with zero hook overhead.
//
// How it is called:
//   - Dir.Next -> readRecord(nd)
//   - The wrapper below optionally routes the read to a test hook. This lets
//     tests inject errors, stale error slots, and crafted records without
//     relying on filesystem quirks.
//
// Scope and safety:
//   - The hook is global to the test binary. Tests that install it MUST NOT be
//     run in parallel with other hook users.
//   - An atomic pointer is used to avoid data races with non-hooked tests.

// readRecordHookFn replaces nativeDir.readdir. Like readdir, it returns nil at
// end or on error and reports errors through nd.errno.
type readRecordHookFn func(nd *nativeDir) []byte

var readRecordHook atomic.Pointer[readRecordHookFn]

// setReadRecordHook installs a hook and returns a restore function.
//
// Usage:
//
//	restore := setReadRecordHook(func(nd *nativeDir) []byte { ... })
//	defer restore()
//
// Passing nil removes any previously-installed hook.
func setReadRecordHook(hook readRecordHookFn) func() {
	if hook == nil {
		readRecordHook.Store(nil)

		return func() {}
	}

	ptr := new(readRecordHookFn)
	*ptr = hook
	readRecordHook.Store(ptr)

	return func() {
		readRecordHook.Store(nil)
	}
}

// readRecord wraps the native read and optionally diverts to the test hook.
func readRecord(nd *nativeDir) []byte {
	if hook := readRecordHook.Load(); hook != nil {
		return (*hook)(nd)
	}

	return nd.readdir()
}

// Compile-time guard: wrapper signature must match the backend contract.
var _ func(*nativeDir) []byte = readRecord
