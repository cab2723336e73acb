package markup

import "fmt"

type Kind int

const (
	// StartElement opens an element. Name holds its local name.
	StartElement Kind = iota
	// EndElement closes the most recently opened element.
	EndElement
	// Text is character data with entities resolved.
	Text
	// EscapedText is the verbatim content of a CDATA section.
	EscapedText
	// Whitespace is whitespace-only character data outside of CDATA sections.
	Whitespace
	// Other covers comments, processing instructions and directives.
	Other
)

func (k Kind) String() string {
	switch k {
	case StartElement:
		return "start-element"
	case EndElement:
		return "end-element"
	case Text:
		return "text"
	case EscapedText:
		return "escaped-text"
	case Whitespace:
		return "whitespace"
	case Other:
		return "other"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

type Event struct {
	Kind Kind
	Name string
	Text string
}

func (e Event) String() string {
	switch e.Kind {
	case StartElement:
		return fmt.Sprintf("<%s>", e.Name)
	case EndElement:
		return fmt.Sprintf("</%s>", e.Name)
	case Text, EscapedText, Whitespace:
		return fmt.Sprintf("%s(%q)", e.Kind, e.Text)
	default:
		return e.Kind.String()
	}
}
