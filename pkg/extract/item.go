package extract

import "github.com/KonishchevDmitry/feedmerge/pkg/digest"

// ItemElement bounds a single feed entry.
const ItemElement = "item"

type Item struct {
	Title          string `json:"title"`
	Link           string `json:"link"`
	PubDate        string `json:"pub_date"`
	EncodedContent string `json:"encoded_content"`
	GUID           string `json:"guid"`
}

type field struct {
	acceptsEscaped bool
	append         func(item *Item, text string)
}

// Maps the current element name to the item field which accumulates its text.
var fields = map[string]field{
	"title": {append: func(item *Item, text string) {
		item.Title += text
	}},
	"link": {append: func(item *Item, text string) {
		item.Link += text
	}},
	"pubDate": {append: func(item *Item, text string) {
		item.PubDate += text
	}},
	"encoded": {acceptsEscaped: true, append: func(item *Item, text string) {
		item.EncodedContent += text
	}},
	// Every fragment is hashed on its own: the identifier is a concatenation of fragment digests
	"guid": {append: func(item *Item, text string) {
		item.GUID += digest.Hash(text)
	}},
}
