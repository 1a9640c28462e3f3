package fetch

import (
	"bufio"
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Location is the outcome of payload inspection. Exactly one field is set:
// Tabular when the payload itself is the table, FollowURL when the payload is
// a wrapper document pointing at the real CSV.
type Location struct {
	Tabular   []byte
	FollowURL string
}

// NoTabularError reports that a payload contained no locatable table. The
// wrapper document travels with the error so callers can preserve it for
// offline inspection before surfacing the failure.
type NoTabularError struct {
	URL     string
	Wrapper []byte
}

func (e *NoTabularError) Error() string {
	return fmt.Sprintf("no tabular content located at %s", e.URL)
}

// Locate decides whether a payload is already tabular text or a wrapper
// document from which a CSV reference must be followed:
//
//  1. a CSV media type or a .csv source URL means the payload is the table;
//  2. text with more than five non-empty lines and a comma somewhere in the
//     first ten is CSV in disguise, a shape some endpoints serve under a
//     text/html header;
//  3. otherwise the first href ending in .csv inside the document is resolved
//     against the source URL and handed back for a follow-up fetch.
func Locate(p *Payload) (*Location, error) {
	if isCSVDeclared(p) {
		return &Location{Tabular: p.Body}, nil
	}
	if looksLikeCSV(p.Body) {
		return &Location{Tabular: p.Body}, nil
	}
	if ref := findCSVRef(p.Body); ref != "" {
		if abs, err := resolveRef(p.URL, ref); err == nil {
			return &Location{FollowURL: abs}, nil
		}
	}
	return nil, &NoTabularError{URL: p.URL, Wrapper: p.Body}
}

func isCSVDeclared(p *Payload) bool {
	if strings.Contains(strings.ToLower(p.ContentType), "text/csv") {
		return true
	}
	return strings.HasSuffix(strings.ToLower(p.URL), ".csv")
}

// looksLikeCSV applies the CSV-in-disguise heuristic over non-empty lines.
func looksLikeCSV(body []byte) bool {
	var total int
	commaInHead := false
	sc := bufio.NewScanner(bytes.NewReader(body))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		total++
		if total <= 10 && strings.Contains(line, ",") {
			commaInHead = true
		}
	}
	return total > 5 && commaInHead
}

// findCSVRef walks the document in order and returns the first href value
// ending in .csv, case-insensitive. The tolerant parser accepts arbitrary
// junk, so a non-HTML payload simply yields no reference.
func findCSVRef(body []byte) string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	var walk func(*html.Node) string
	walk = func(n *html.Node) string {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if a.Key == "href" && strings.HasSuffix(strings.ToLower(a.Val), ".csv") {
					return a.Val
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if ref := walk(c); ref != "" {
				return ref
			}
		}
		return ""
	}
	return walk(doc)
}

// resolveRef makes a discovered reference absolute. References rooted at "/"
// resolve against the origin of the page they were found on.
func resolveRef(pageURL, ref string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(u).String(), nil
}
