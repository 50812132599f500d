package report

// Formatter defines the interface for formatting a Report.
type Formatter interface {
	Format(r *Report) string
}

// FormatFunc is a function adapter for the Formatter interface.
type FormatFunc func(r *Report) string

// Format implements the Formatter interface.
func (f FormatFunc) Format(r *Report) string {
	return f(r)
}

// Translator maps a heading or label to the display language.
type Translator func(key string) string

// Option configures the built-in formatters.
type Option func(*options)

type options struct {
	translate Translator
	version   string
}

// WithTranslator sets the function used to translate headings.
func WithTranslator(t Translator) Option {
	return func(o *options) {
		o.translate = t
	}
}

// WithVersion adds the generator version to the output footer.
func WithVersion(v string) Option {
	return func(o *options) {
		o.version = v
	}
}

func newOptions(opts []Option) options {
	o := options{translate: func(key string) string { return key }}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
