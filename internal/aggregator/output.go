package aggregator

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/KonishchevDmitry/feedmerge/pkg/extract"
)

// Item bodies are markup, so HTML escaping is off to keep them readable.
var outputJSON = jsoniter.Config{
	IndentionStep: 2,
	EscapeHTML:    false,
}.Froze()

// Marshal renders the combined output. The result depends on the items only, so identical inputs always produce
// identical output.
func Marshal(items []extract.Item) ([]byte, error) {
	if items == nil {
		items = []extract.Item{}
	}
	return outputJSON.Marshal(items)
}
