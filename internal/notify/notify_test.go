package notify

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/matheuskafuri/eowatch/internal/cache"
)

func sampleItem() cache.Item {
	return cache.Item{
		DocumentNumber:       "2025-01953",
		Title:                "Protecting the Meaning and Value of American Citizenship",
		ExecutiveOrderNumber: "14160",
		SigningDate:          "2025-01-20",
		PublicationDate:      "2025-01-29",
		Citation:             "90 FR 8449",
		HTMLURL:              "https://www.federalregister.gov/d/2025-01953",
		PDFURL:               "https://www.govinfo.gov/2025-01953.pdf",
		TextURL:              "https://www.federalregister.gov/2025-01953.txt",
		FullTextHTMLURL:      "https://www.federalregister.gov/2025-01953.html",
	}
}

func TestNotifyPrintsAllFields(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf).Notify(sampleItem())
	out := buf.String()

	for _, want := range []string{
		"New Executive Order Found!",
		"Title: Protecting the Meaning and Value of American Citizenship",
		"EO Number: 14160",
		"Document Number: 2025-01953",
		"Signing Date: 2025-01-20",
		"Publication Date: 2025-01-29",
		"Citation: 90 FR 8449",
		"Web:",
		"https://www.federalregister.gov/d/2025-01953",
		"PDF:",
		"https://www.govinfo.gov/2025-01953.pdf",
		"Text:",
		"Full HTML:",
		strings.Repeat("-", 80),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestNotifySkipsMissingURLs(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf).Notify(cache.Item{DocumentNumber: "2025-00001", HTMLURL: "https://example.com/eo"})
	out := buf.String()

	if strings.Contains(out, "PDF:") || strings.Contains(out, "Full HTML:") {
		t.Errorf("expected missing URLs to be skipped:\n%s", out)
	}
	if !strings.Contains(out, "Title: -") {
		t.Errorf("expected placeholder for missing title:\n%s", out)
	}
	if strings.Contains(out, "Citation:") {
		t.Errorf("expected citation line to be omitted:\n%s", out)
	}
}

func TestNotifyTruncatesAbstract(t *testing.T) {
	item := sampleItem()
	item.Abstract = strings.Repeat("a", 400)

	var buf bytes.Buffer
	NewConsole(&buf).Notify(item)

	if strings.Contains(buf.String(), strings.Repeat("a", 400)) {
		t.Error("expected abstract to be truncated")
	}
	if !strings.Contains(buf.String(), strings.Repeat("a", 297)+"...") {
		t.Error("expected truncated abstract with ellipsis")
	}
}

func TestNotifyOpensBrowser(t *testing.T) {
	var opened []string
	var buf bytes.Buffer
	c := NewConsole(&buf, WithBrowser(func(u string) error {
		opened = append(opened, u)
		return nil
	}))

	c.Notify(sampleItem())
	c.Notify(cache.Item{DocumentNumber: "no-url"})

	if len(opened) != 1 || opened[0] != "https://www.federalregister.gov/d/2025-01953" {
		t.Errorf("unexpected opened URLs: %v", opened)
	}
}

func TestNotifyBrowserFailureIsWarning(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, WithBrowser(func(string) error { return errors.New("no display") }))

	c.Notify(sampleItem())

	if !strings.Contains(buf.String(), "opening browser: no display") {
		t.Errorf("expected browser warning:\n%s", buf.String())
	}
}

func TestLine(t *testing.T) {
	c := NewConsole(&bytes.Buffer{})

	got := c.Line(sampleItem())
	for _, want := range []string{"2025-01-20", "EO 14160", "2025-01953", "Protecting the Meaning"} {
		if !strings.Contains(got, want) {
			t.Errorf("Line missing %q: %q", want, got)
		}
	}

	got = c.Line(cache.Item{DocumentNumber: "2025-00001"})
	if !strings.Contains(got, "EO -") {
		t.Errorf("expected placeholder EO number: %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"short", 10, "short"},
		{"this is a long string", 10, "this is..."},
		{"abcd", 3, "abc"},
		{"", 5, ""},
		{"こんにちは世界です", 5, "こん..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.input, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}
