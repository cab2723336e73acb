// Package markup decomposes a markup document into a lazy stream of structural events.
package markup

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"iter"
	"strings"
)

var cdataPrefix = []byte("<![CDATA[")

// Parser is a pull parser over a whole in-memory document. It accepts any well-formed document and reports
// well-formedness errors only.
type Parser struct {
	data    []byte
	decoder *xml.Decoder

	depth   int
	sawRoot bool
	err     error
}

func NewParser(data []byte) (*Parser, error) {
	data, err := toUTF8(data)
	if err != nil {
		return nil, err
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Strict = true
	decoder.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		// Already transcoded to UTF-8
		return input, nil
	}

	return &Parser{
		data:    data,
		decoder: decoder,
	}, nil
}

// Next returns the next event or io.EOF when the document is over. Once an error is returned, it's returned by all
// subsequent calls.
func (p *Parser) Next() (Event, error) {
	if p.err != nil {
		return Event{}, p.err
	}

	event, err := p.next()
	if err != nil {
		p.err = err
	}
	return event, err
}

func (p *Parser) next() (Event, error) {
	offset := p.decoder.InputOffset()

	token, err := p.decoder.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			if !p.sawRoot {
				return Event{}, p.syntaxError("the document has no root element")
			}
			return Event{}, io.EOF
		}

		var syntaxErr *xml.SyntaxError
		if errors.As(err, &syntaxErr) {
			return Event{}, &SyntaxError{Line: syntaxErr.Line, Err: err}
		}

		line, _ := p.decoder.InputPos()
		return Event{}, &SyntaxError{Line: line, Err: err}
	}

	switch token := token.(type) {
	case xml.StartElement:
		if p.depth == 0 {
			if p.sawRoot {
				return Event{}, p.syntaxError("the document has more than one root element")
			}
			p.sawRoot = true
		}
		p.depth++
		return Event{Kind: StartElement, Name: token.Name.Local}, nil

	case xml.EndElement:
		p.depth--
		return Event{Kind: EndElement, Name: token.Name.Local}, nil

	case xml.CharData:
		event := Event{Kind: Text, Text: string(token)}
		if bytes.HasPrefix(p.data[offset:p.decoder.InputOffset()], cdataPrefix) {
			event.Kind = EscapedText
		} else if isWhitespace(event.Text) {
			event.Kind = Whitespace
		}

		if p.depth == 0 && event.Kind != Whitespace {
			return Event{}, p.syntaxError("character data outside of the root element")
		}
		return event, nil

	default:
		return Event{Kind: Other}, nil
	}
}

func (p *Parser) syntaxError(message string) *SyntaxError {
	line, _ := p.decoder.InputPos()
	return newSyntaxError(line, message)
}

// Events returns the remaining events as a lazy sequence. A parse error is yielded once and ends the sequence.
func (p *Parser) Events() iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		for {
			event, err := p.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(event, err) || err != nil {
				return
			}
		}
	}
}

// Parse returns a lazy sequence of the document events.
func Parse(data []byte) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		parser, err := NewParser(data)
		if err != nil {
			yield(Event{}, err)
			return
		}
		parser.Events()(yield)
	}
}

func isWhitespace(text string) bool {
	return strings.Trim(text, " \t\r\n") == ""
}
