// Package notify prints newly detected executive orders to the console.
package notify

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/eowatch/internal/cache"
)

const (
	ruleWidth   = 80
	abstractMax = 300
)

// Console writes one block per new item. Styling is dropped automatically
// when w is not a terminal.
type Console struct {
	w       io.Writer
	st      styles
	openURL func(string) error
}

type Option func(*Console)

// WithBrowser opens each new item's web page with open.
func WithBrowser(open func(string) error) Option {
	return func(c *Console) { c.openURL = open }
}

func NewConsole(w io.Writer, opts ...Option) *Console {
	c := &Console{w: w, st: newStyles(lipgloss.NewRenderer(w))}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Notify prints the block for item and, when configured, opens its web page.
func (c *Console) Notify(item cache.Item) {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(c.st.heading.Render("New Executive Order Found!"))
	b.WriteString("\n")

	c.field(&b, "Title", c.st.title.Render(orDash(item.Title)))
	c.field(&b, "EO Number", orDash(item.ExecutiveOrderNumber))
	c.field(&b, "Document Number", item.DocumentNumber)
	c.field(&b, "Signing Date", orDash(item.SigningDate))
	c.field(&b, "Publication Date", orDash(item.PublicationDate))
	if item.Citation != "" {
		c.field(&b, "Citation", item.Citation)
	}
	if item.Abstract != "" {
		c.field(&b, "Abstract", c.st.body.Render(truncate(item.Abstract, abstractMax)))
	}

	links := []struct{ name, url string }{
		{"Web", item.HTMLURL},
		{"PDF", item.PDFURL},
		{"Text", item.TextURL},
		{"Full HTML", item.FullTextHTMLURL},
	}
	b.WriteString(c.st.label.Render("URLs:"))
	b.WriteString("\n")
	for _, l := range links {
		if l.url == "" {
			continue
		}
		fmt.Fprintf(&b, "  %-10s %s\n", l.name+":", c.st.link.Render(l.url))
	}
	b.WriteString(c.st.rule.Render(strings.Repeat("-", ruleWidth)))
	b.WriteString("\n")

	io.WriteString(c.w, b.String())

	if c.openURL != nil && item.HTMLURL != "" {
		if err := c.openURL(item.HTMLURL); err != nil {
			fmt.Fprintf(c.w, "  %s opening browser: %v\n", c.st.warn.Render("[warn]"), err)
		}
	}
}

// Line renders item as a single row for listings.
func (c *Console) Line(item cache.Item) string {
	eo := "EO -"
	if item.ExecutiveOrderNumber != "" {
		eo = "EO " + item.ExecutiveOrderNumber
	}
	return fmt.Sprintf("%-10s  %-8s  %-10s  %s",
		orDash(item.SigningDate), eo, item.DocumentNumber, c.st.title.Render(truncate(orDash(item.Title), 80)))
}

func (c *Console) field(b *strings.Builder, label, value string) {
	b.WriteString(c.st.label.Render(label + ":"))
	b.WriteString(" ")
	b.WriteString(value)
	b.WriteString("\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
