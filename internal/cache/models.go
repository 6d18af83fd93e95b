package cache

import "time"

// Item is one executive order as recorded in the seen-set. Field names
// follow the Federal Register document API.
type Item struct {
	DocumentNumber       string    `json:"document_number"`
	Title                string    `json:"title,omitempty"`
	ExecutiveOrderNumber string    `json:"executive_order_number,omitempty"`
	SigningDate          string    `json:"signing_date,omitempty"`
	PublicationDate      string    `json:"publication_date,omitempty"`
	Citation             string    `json:"citation,omitempty"`
	Abstract             string    `json:"abstract,omitempty"`
	HTMLURL              string    `json:"html_url,omitempty"`
	PDFURL               string    `json:"pdf_url,omitempty"`
	TextURL              string    `json:"raw_text_url,omitempty"`
	FullTextHTMLURL      string    `json:"body_html_url,omitempty"`
	SeenAt               time.Time `json:"seen_at,omitzero"`
}

// SeenSet maps document numbers to the item reported for them. Entries are
// only ever added.
type SeenSet map[string]Item

func (s SeenSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add records item unless its document number is already present.
// It reports whether the item was added.
func (s SeenSet) Add(item Item) bool {
	if item.DocumentNumber == "" || s.Has(item.DocumentNumber) {
		return false
	}
	s[item.DocumentNumber] = item
	return true
}
