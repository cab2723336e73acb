// Package feed describes the feeds which are aggregated: where to fetch them from and which local artifact keeps
// the raw document.
package feed

import (
	"fmt"
	"net/url"
)

type Source struct {
	URL  *url.URL
	Name string
}

func NewSource(link string, name string) Source {
	return Source{
		URL:  MustURL(link),
		Name: name,
	}
}

func (s Source) String() string {
	return fmt.Sprintf("%s (%s)", s.Name, s.URL)
}

func MustURL(value string) *url.URL {
	url, err := url.Parse(value)
	if err != nil {
		panic(fmt.Sprintf("Invalid URL: %s", value))
	}
	return url
}
