package fetch

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLocateDeclaredCSV(t *testing.T) {
	p := &Payload{
		URL:         "https://example.com/en/web_table.html?id=HEA001&format=csv",
		ContentType: "text/csv; charset=utf-8",
		Body:        []byte("Age Group,Sex\n18-24,Male\n"),
	}
	loc, err := Locate(p)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if !bytes.Equal(loc.Tabular, p.Body) {
		t.Errorf("declared CSV should pass through unchanged")
	}
}

func TestLocateCSVExtension(t *testing.T) {
	p := &Payload{
		URL:         "https://example.com/files/HEA001.CSV",
		ContentType: "application/octet-stream",
		Body:        []byte("Age Group,Sex\n18-24,Male\n"),
	}
	loc, err := Locate(p)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if loc.Tabular == nil {
		t.Errorf(".csv source should be treated as tabular")
	}
}

func TestLocateCSVInDisguise(t *testing.T) {
	// Served as text/html but plainly comma-delimited.
	body := strings.Join([]string{
		"Age Group,Sex,Height (cm),Weight (kg)",
		"18-24,Male,171,68",
		"18-24,Female,160,54",
		"25-34,Male,172,70",
		"25-34,Female,161,55",
		"35-44,Male,171,71",
	}, "\n")
	p := &Payload{URL: "https://example.com/table", ContentType: "text/html", Body: []byte(body)}
	loc, err := Locate(p)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if loc.Tabular == nil {
		t.Errorf("comma-heavy text should be treated as CSV in disguise")
	}
}

func TestLocateTooFewLinesIsNotCSV(t *testing.T) {
	p := &Payload{
		URL:         "https://example.com/table",
		ContentType: "text/html",
		Body:        []byte("<html><body>one, two</body></html>"),
	}
	_, err := Locate(p)
	var nt *NoTabularError
	if !errors.As(err, &nt) {
		t.Fatalf("want NoTabularError, got %v", err)
	}
}

func TestLocateFollowsWrapperLink(t *testing.T) {
	body := []byte(`<html><body><a href="/files/hea001_full.csv">Download CSV</a></body></html>`)
	p := &Payload{URL: "https://example.com/en/web_table.html?id=HEA001", ContentType: "text/html", Body: body}
	loc, err := Locate(p)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if loc.FollowURL != "https://example.com/files/hea001_full.csv" {
		t.Errorf("FollowURL = %q, want origin-rooted resolution", loc.FollowURL)
	}
}

func TestLocateLinkCaseInsensitive(t *testing.T) {
	body := []byte(`<html><body><a href="Data/Table.CSV">csv</a></body></html>`)
	p := &Payload{URL: "https://example.com/en/page.html", ContentType: "text/html", Body: body}
	loc, err := Locate(p)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if loc.FollowURL != "https://example.com/en/Data/Table.CSV" {
		t.Errorf("FollowURL = %q", loc.FollowURL)
	}
}

func TestLocateFirstLinkWins(t *testing.T) {
	body := []byte(`<html><body>
<a href="/a.csv">first</a>
<a href="/b.csv">second</a>
</body></html>`)
	p := &Payload{URL: "https://example.com/page", ContentType: "text/html", Body: body}
	loc, err := Locate(p)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if loc.FollowURL != "https://example.com/a.csv" {
		t.Errorf("FollowURL = %q, want the first reference in document order", loc.FollowURL)
	}
}

func TestLocateNoPayloadPreservesWrapper(t *testing.T) {
	body := []byte(`<html><body><p>No downloads here</p></body></html>`)
	p := &Payload{URL: "https://example.com/page", ContentType: "text/html", Body: body}
	_, err := Locate(p)
	var nt *NoTabularError
	if !errors.As(err, &nt) {
		t.Fatalf("want NoTabularError, got %v", err)
	}
	if !bytes.Equal(nt.Wrapper, body) {
		t.Errorf("wrapper document should travel with the error")
	}
}
