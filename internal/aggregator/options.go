package aggregator

import (
	"github.com/KonishchevDmitry/feedmerge/pkg/extract"
	"github.com/KonishchevDmitry/feedmerge/pkg/fetch"
)

const (
	DefaultOutput      = "combined_feeds.json"
	DefaultConcurrency = 4
)

// Mode defines how a failure of a single source affects the whole run.
type Mode int

const (
	// ModeStrict aborts the run on the first failure without writing the combined output.
	ModeStrict Mode = iota
	// ModeContain skips failed sources, writes the combined output from the rest and reports all failures.
	ModeContain
)

func (m Mode) String() string {
	if m == ModeContain {
		return "contain"
	}
	return "strict"
}

type Option func(o *options)

type options struct {
	dir            string
	output         string
	mode           Mode
	concurrency    int
	fetchOptions   []fetch.Option
	extractOptions []extract.Option
}

func getOptions(opts []Option) options {
	options := options{
		dir:         ".",
		output:      DefaultOutput,
		mode:        ModeStrict,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(&options)
	}
	options.concurrency = max(options.concurrency, 1)
	return options
}

// WithDir sets the directory for raw documents and the combined output.
func WithDir(path string) Option {
	return func(o *options) {
		o.dir = path
	}
}

func WithOutput(name string) Option {
	return func(o *options) {
		o.output = name
	}
}

func WithMode(mode Mode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithConcurrency limits the number of sources which are fetched or parsed simultaneously. Concurrency of one
// processes the sources strictly one by one.
func WithConcurrency(concurrency int) Option {
	return func(o *options) {
		o.concurrency = concurrency
	}
}

func WithFetchOptions(opts ...fetch.Option) Option {
	return func(o *options) {
		o.fetchOptions = append(o.fetchOptions, opts...)
	}
}

func WithExtractOptions(opts ...extract.Option) Option {
	return func(o *options) {
		o.extractOptions = append(o.extractOptions, opts...)
	}
}
