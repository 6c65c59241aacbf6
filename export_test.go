package dirstream

// Export internal symbols for black-box tests in the dirstream_test package.
var (
	DefaultBufferSize = defaultBufferSize
	MinBufferSize     = minBufferSize
)
