package extract

type Option func(o *options)

type options struct {
	elementStack bool
}

// WithElementStack makes text following a closed child element belong to its parent again. By default only the
// most recently opened element is remembered and any closing tag forgets it.
func WithElementStack() Option {
	return func(o *options) {
		o.elementStack = true
	}
}
