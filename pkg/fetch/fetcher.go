// Package fetch retrieves raw documents over HTTP(S).
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	logging "github.com/KonishchevDmitry/go-easy-logging"
)

// Document returns the response body as UTF-8 text. Any response which has been received completely is accepted
// regardless of its status code.
func Document(ctx context.Context, url *url.URL, opts ...Option) (_ []byte, retErr error) {
	defer func() {
		if retErr != nil {
			retErr = fmt.Errorf("failed to fetch %s: %w", url, retErr)
		}
	}()

	options := getOptions(opts)

	ctx, cancel := context.WithTimeout(ctx, options.timeout.OrElse(defaultTimeout))
	defer cancel()

	fetchCtx, err := getContext(ctx)
	if err != nil {
		return nil, err
	}

	logging.L(ctx).Debugf("Fetching %s...", url)

	startTime := time.Now()
	defer func() {
		fetchCtx.duration.Observe(time.Since(startTime).Seconds())
	}()

	response, err := httpClientFetch(ctx, url, options.userAgent.OrElse(defaultUserAgent))
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := response.Body.Close(); err != nil {
			logging.L(ctx).Errorf("Failed to close HTTP client body: %s.", err)
		}
	}()

	if statusCode := response.StatusCode; statusCode < 200 || statusCode >= 300 {
		logging.L(ctx).Warnf("%s has returned %s. Keeping the response as is.", url, response.Status)
	}

	data, err := io.ReadAll(bodyReader{body: response.Body})
	if err != nil {
		return nil, err
	}
	logging.L(ctx).Debugf("Got %d bytes from %s.", len(data), url)

	return decodeText(ctx, url, response.Header.Get("Content-Type"), data)
}

func httpClientFetch(ctx context.Context, url *url.URL, userAgent string) (*http.Response, error) {
	client := http.Client{}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url.String(), nil)
	if err != nil {
		return nil, err
	}
	request.Header.Add("User-Agent", userAgent)

	response, err := client.Do(request)
	if err != nil {
		return nil, makeTemporaryError(err)
	}

	return response, nil
}

type bodyReader struct {
	body io.Reader
}

var _ io.Reader = bodyReader{}

func (r bodyReader) Read(buf []byte) (int, error) {
	n, err := r.body.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		err = makeTemporaryError(err)
	}
	return n, err
}
