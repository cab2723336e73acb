package fetch

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"mime"
	"net/url"
	"strings"

	logging "github.com/KonishchevDmitry/go-easy-logging"
	"golang.org/x/net/html/charset"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// decodeText transcodes the body to UTF-8 using the charset from the Content-Type header. The document's own
// encoding declaration takes precedence, so such documents are returned as is.
func decodeText(ctx context.Context, url *url.URL, contentType string, data []byte) ([]byte, error) {
	if contentType == "" {
		return data, nil
	}

	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		logging.L(ctx).Warnf("Got an invalid content type from %s: %q.", url, contentType)
		return data, nil
	}

	encoding := strings.ToLower(params["charset"])
	if encoding == "" || encoding == "utf-8" || encoding == "utf8" || bytes.HasPrefix(data, utf8BOM) || declaresEncoding(data) {
		return data, nil
	}

	charsetReader, err := charset.NewReaderLabel(encoding, bytes.NewReader(data))
	if err != nil {
		logging.L(ctx).Warnf("%s has an unknown charset encoding: %q. Keeping the document as is.", url, encoding)
		return data, nil
	}

	decoded, err := io.ReadAll(charsetReader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode the document using %s charset: %w", encoding, err)
	}

	logging.L(ctx).Debugf("%s has been decoded from %s charset.", url, encoding)
	return decoded, nil
}

func declaresEncoding(data []byte) bool {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	// The XML declaration can be nothing but the first token
	token, err := decoder.Token()
	if err != nil {
		return false
	}

	inst, ok := token.(xml.ProcInst)
	return ok && inst.Target == "xml" && bytes.Contains(inst.Inst, []byte("encoding"))
}
