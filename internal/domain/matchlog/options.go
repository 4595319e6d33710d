package matchlog

// Option applies a configuration option to the Log.
type Option func(*Log)

// WithCapacity sets how many records the log keeps.
// Values < 1 are ignored.
func WithCapacity(capacity int) Option {
	return func(l *Log) {
		if capacity > 0 {
			l.capacity = capacity
		}
	}
}
