package fetch

import (
	"time"

	"github.com/samber/mo"
)

const (
	defaultTimeout   = time.Minute
	defaultUserAgent = "github.com/KonishchevDmitry/feedmerge"
)

type Option func(o *options)

type options struct {
	timeout   mo.Option[time.Duration]
	userAgent mo.Option[string]
}

func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = mo.Some(timeout)
	}
}

func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		o.userAgent = mo.Some(userAgent)
	}
}

func getOptions(opts []Option) options {
	var options options
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
