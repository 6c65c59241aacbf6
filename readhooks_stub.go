//go:build !dirstream_testhooks

package dirstream

func readRecord(nd *nativeDir) []byte {
	return nd.readdir()
}

// Compile-time guard: wrapper signature must match the backend contract.
var _ func(*nativeDir) []byte = readRecord
