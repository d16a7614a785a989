package editor

// Default repository limits.
const (
	// DefaultCacheCapacity is the number of shared bitmaps kept.
	DefaultCacheCapacity = 1024
	// DefaultPoolSize is the number of live instances per kind, not
	// counting the shared paint instance.
	DefaultPoolSize = 2
)

// Option configures a Repository.
type Option func(*options)

type options struct {
	cacheCapacity   int
	poolSize        int
	maxKeyText      int
	urgentThreshold int
}

func defaultOptions() options {
	return options{
		cacheCapacity: DefaultCacheCapacity,
		poolSize:      DefaultPoolSize,
		maxKeyText:    DefaultMaxKeyText,
	}
}

// WithCacheCapacity sets the number of shared bitmaps kept.
func WithCacheCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.cacheCapacity = n
		}
	}
}

// WithPoolSize sets the default number of live instances per kind.
func WithPoolSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.poolSize = n
		}
	}
}

// WithMaxKeyText sets the longest text, in runes, allowed in a shared key.
func WithMaxKeyText(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxKeyText = n
		}
	}
}

// WithUrgentThreshold makes rendering urgent for a kind once n of its
// instances are live: hover-only promotions are then skipped. Zero
// disables the pressure check.
func WithUrgentThreshold(n int) Option {
	return func(o *options) {
		o.urgentThreshold = max(n, 0)
	}
}
