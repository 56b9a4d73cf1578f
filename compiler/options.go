package compiler

// DefaultRuntime is the identifier of the runtime namespace emitted code calls into.
const DefaultRuntime = "py"

// Options control a Translator.
type Options struct {
	// Runtime is the namespace object holding print, repr, floordiv, in,
	// dict, iter, getattr, make_args, globals and tmp.
	Runtime string
	// AllowOmission makes unsupported constructs produce no output instead of
	// an ErrUnsupported error.
	AllowOmission bool
	// OnOmit, if set, is called for every construct dropped under AllowOmission.
	OnOmit func(err *Error)
}

// Option configures Options.
type Option func(*Options)

// WithRuntime sets the runtime namespace identifier.
func WithRuntime(name string) Option {
	return func(o *Options) {
		if name != "" {
			o.Runtime = name
		}
	}
}

// WithOmission toggles silent omission of unsupported constructs.
func WithOmission(allow bool) Option {
	return func(o *Options) { o.AllowOmission = allow }
}

// WithOmitHook registers a callback for omitted constructs.
func WithOmitHook(fn func(err *Error)) Option {
	return func(o *Options) { o.OnOmit = fn }
}

func buildOptions(opts []Option) Options {
	o := Options{Runtime: DefaultRuntime}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
