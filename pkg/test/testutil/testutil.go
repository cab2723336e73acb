package testutil

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	logging "github.com/KonishchevDmitry/go-easy-logging"
	"go.uber.org/zap/zaptest"
)

func Context(t *testing.T) context.Context {
	return logging.WithLogger(context.Background(), zaptest.NewLogger(t).Sugar())
}

type Response struct {
	Status      int
	ContentType string
	Body        string
	// Delay holds the response back, so concurrent requests overlap.
	Delay time.Duration
}

// Server serves fixed responses by request path and counts the requests. Unknown paths get 404.
type Server struct {
	server *httptest.Server

	lock      sync.Mutex
	responses map[string]Response
	requests  map[string]int
}

func NewServer(t *testing.T, responses map[string]Response) *Server {
	s := &Server{
		responses: responses,
		requests:  make(map[string]int),
	}

	s.server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.server.Close)

	return s
}

func (s *Server) URL(path string) *url.URL {
	url, err := url.Parse(s.server.URL + path)
	if err != nil {
		panic(fmt.Sprintf("Invalid URL: %s", path))
	}
	return url
}

func (s *Server) Requests(path string) int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.requests[path]
}

func (s *Server) handle(writer http.ResponseWriter, request *http.Request) {
	s.lock.Lock()
	s.requests[request.URL.Path]++
	response, ok := s.responses[request.URL.Path]
	s.lock.Unlock()

	if !ok {
		http.NotFound(writer, request)
		return
	}

	if response.Delay != 0 {
		select {
		case <-request.Context().Done():
			return
		case <-time.After(response.Delay):
		}
	}

	status := response.Status
	if status == 0 {
		status = http.StatusOK
	}

	contentType := response.ContentType
	if contentType == "" {
		contentType = "application/rss+xml; charset=UTF-8"
	}

	writer.Header().Set("Content-Type", contentType)
	writer.WriteHeader(status)
	_, _ = writer.Write([]byte(response.Body))
}
