package extract

import "github.com/samber/mo"

type elementTracker interface {
	open(name string)
	close()
	current() (string, bool)
}

// lastElement remembers only the most recently opened element and forgets it on any close.
type lastElement struct {
	name mo.Option[string]
}

var _ elementTracker = &lastElement{}

func (t *lastElement) open(name string) {
	t.name = mo.Some(name)
}

func (t *lastElement) close() {
	t.name = mo.None[string]()
}

func (t *lastElement) current() (string, bool) {
	return t.name.Get()
}

// elementStack tracks all open elements, so closing a child makes its parent current again.
type elementStack struct {
	names []string
}

var _ elementTracker = &elementStack{}

func (t *elementStack) open(name string) {
	t.names = append(t.names, name)
}

func (t *elementStack) close() {
	if count := len(t.names); count != 0 {
		t.names = t.names[:count-1]
	}
}

func (t *elementStack) current() (string, bool) {
	if count := len(t.names); count != 0 {
		return t.names[count-1], true
	}
	return "", false
}
