// Package extract turns a stream of markup events into feed items.
package extract

import (
	"errors"
	"iter"

	"github.com/samber/mo"

	"github.com/KonishchevDmitry/feedmerge/pkg/markup"
)

var ErrNestedItem = errors.New("the document has a nested <item> element")

// Extractor is a state machine which is either outside of an item or accumulates the currently open one.
type Extractor struct {
	item     mo.Option[*Item]
	elements elementTracker
	items    []Item
}

func New(opts ...Option) *Extractor {
	var options options
	for _, opt := range opts {
		opt(&options)
	}

	var elements elementTracker = &lastElement{}
	if options.elementStack {
		elements = &elementStack{}
	}

	return &Extractor{elements: elements}
}

func (e *Extractor) Handle(event markup.Event) error {
	switch event.Kind {
	case markup.StartElement:
		if event.Name == ItemElement {
			if e.item.IsPresent() {
				return ErrNestedItem
			}
			e.item = mo.Some(&Item{})
		}
		e.elements.open(event.Name)

	case markup.EndElement:
		if event.Name == ItemElement {
			if item, ok := e.item.Get(); ok {
				e.items = append(e.items, *item)
				e.item = mo.None[*Item]()
			}
		}
		e.elements.close()

	case markup.Text:
		e.appendText(event.Text, false)

	case markup.EscapedText:
		e.appendText(event.Text, true)
	}

	return nil
}

func (e *Extractor) appendText(text string, escaped bool) {
	item, ok := e.item.Get()
	if !ok {
		return
	}

	name, ok := e.elements.current()
	if !ok {
		return
	}

	field, ok := fields[name]
	if !ok || escaped && !field.acceptsEscaped {
		return
	}

	field.append(item, text)
}

// Items returns the completed items in the order they were closed.
func (e *Extractor) Items() []Item {
	return e.items
}

// Extract consumes the whole event sequence. No items are returned if the sequence fails.
func Extract(events iter.Seq2[markup.Event, error], opts ...Option) ([]Item, error) {
	extractor := New(opts...)

	for event, err := range events {
		if err != nil {
			return nil, err
		}
		if err := extractor.Handle(event); err != nil {
			return nil, err
		}
	}

	return extractor.Items(), nil
}

func Document(data []byte, opts ...Option) ([]Item, error) {
	return Extract(markup.Parse(data), opts...)
}
