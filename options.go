package querymap

// DuplicatePolicy controls what happens when a source yields the same key
// more than once.
type DuplicatePolicy uint8

const (
	// SourceDefault keeps the convention of the source: structured decoders
	// overwrite, query strings append.
	SourceDefault DuplicatePolicy = iota
	// OverwriteDuplicates keeps the values of the last occurrence.
	OverwriteDuplicates
	// AppendDuplicates appends the values of every occurrence in order.
	AppendDuplicates
)

func (p DuplicatePolicy) String() string {
	switch p {
	case SourceDefault:
		return "source-default"
	case OverwriteDuplicates:
		return "overwrite"
	case AppendDuplicates:
		return "append"
	default:
		return "unknown"
	}
}

type options struct {
	duplicates       DuplicatePolicy
	splitter         any // func(V) []V
	logger           *Logger
	metricsCollector MetricsCollector
}

// Option configures Decode and ParseWith.
type Option func(*options)

func newOptions(fallback DuplicatePolicy, optFns []Option) *options {
	o := &options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(o)
	}
	if o.duplicates == SourceDefault {
		o.duplicates = fallback
	}
	return o
}

// WithDuplicates overrides the duplicate-key policy of the source.
func WithDuplicates(p DuplicatePolicy) Option {
	return func(o *options) {
		o.duplicates = p
	}
}

// WithScalarSplitter registers a function that expands a scalar value into
// several values. It is applied only to values the source presented as a
// scalar; lists are kept as-is.
//
// The API Gateway convention uses it to split comma-joined strings:
//
//	querymap.Decode[string](src, querymap.WithScalarSplitter(func(s string) []string {
//	    return strings.Split(s, ",")
//	}))
//
// Decoding fails with ErrInvalidOption if V does not match the decode call.
func WithScalarSplitter[V any](fn func(V) []V) Option {
	return func(o *options) {
		if fn == nil {
			o.splitter = nil
			return
		}
		o.splitter = fn
	}
}

// WithLogger configures a logger for decode and parse outcomes.
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// splitterFor returns the registered splitter for V, or nil.
func splitterFor[V any](o *options) (func(V) []V, error) {
	if o.splitter == nil {
		return nil, nil
	}
	fn, ok := o.splitter.(func(V) []V)
	if !ok {
		var zero V
		return nil, fmtInvalidOption("scalar splitter %T does not match value type %T", o.splitter, zero)
	}
	return fn, nil
}
