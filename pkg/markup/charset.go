package markup

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// toUTF8 transcodes the document according to the encoding declared in its XML declaration, so the
// decoder offsets always point into the returned UTF-8 data.
func toUTF8(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var encoding string
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		encoding = label
		return input, nil
	}

	// Only the XML declaration matters here: it can be nothing but the first token
	if _, err := decoder.Token(); err != nil || encoding == "" {
		return data, nil
	}

	reader, err := charset.NewReaderLabel(encoding, bytes.NewReader(data))
	if err != nil {
		return nil, &SyntaxError{Line: 1, Err: fmt.Errorf("the document has an unsupported %q charset encoding", encoding)}
	}

	decoded, err := io.ReadAll(reader)
	if err != nil {
		return nil, &SyntaxError{Line: 1, Err: fmt.Errorf("failed to decode the document using %s charset: %w", encoding, err)}
	}

	return decoded, nil
}
