package dirstream

// Option configures [Open], [OpenFd], and [OpenPath].
// Options are applied in order.
type Option func(*options)

// WithBufferSize sets the size of the buffer the stream reads raw directory
// records into.
//
// # Default
//
// 32 KiB, the same size the kernel-facing readers in Go's standard library
// settle on for getdents. Each refill returns as many records as fit, so a
// larger buffer trades memory for fewer syscalls on very large directories.
//
// Values below the platform minimum (large enough to hold one record with a
// maximum-length name) are raised to it. Values <= 0 use the default.
func WithBufferSize(n int) Option {
	return func(o *options) {
		o.BufferSize = n
	}
}

type options struct {
	// BufferSize is the native record buffer size in bytes.
	BufferSize int
}

const defaultBufferSize = 32 * 1024

// applyOptions merges option values and applies defaults.
func applyOptions(opts []Option) options {
	cfg := options{}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaultBufferSize
	}

	if cfg.BufferSize < minBufferSize {
		cfg.BufferSize = minBufferSize
	}

	return cfg
}
