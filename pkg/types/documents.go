package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ContactEntry is one touchpoint recorded against a lead, newest first.
type ContactEntry struct {
	Date  time.Time `json:"date"`
	Type  string    `json:"type"`
	Notes string    `json:"notes,omitempty"`
}

// ContactHistory stores lead touchpoints inside a JSONB column.
type ContactHistory []ContactEntry

// Value serializes the history to JSON.
func (c ContactHistory) Value() (driver.Value, error) {
	if c == nil {
		return json.Marshal(ContactHistory{})
	}
	return json.Marshal(c)
}

// Scan decodes JSONB into the history slice.
func (c *ContactHistory) Scan(value interface{}) error {
	if value == nil {
		*c = ContactHistory{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, c)
}

// Appointment is a scheduled meeting with a lead.
type Appointment struct {
	Date   time.Time `json:"date"`
	Type   string    `json:"type"`
	Notes  string    `json:"notes,omitempty"`
	Status string    `json:"status"`
}

// Appointments stores lead appointments inside a JSONB column.
type Appointments []Appointment

// Value serializes the appointments to JSON.
func (a Appointments) Value() (driver.Value, error) {
	if a == nil {
		return json.Marshal(Appointments{})
	}
	return json.Marshal(a)
}

// Scan decodes JSONB into the appointments slice.
func (a *Appointments) Scan(value interface{}) error {
	if value == nil {
		*a = Appointments{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, a)
}

// DealDocument is a file attached to a deal.
type DealDocument struct {
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	URL        string    `json:"url,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// DealDocuments stores deal attachments inside a JSONB column.
type DealDocuments []DealDocument

// Value serializes the documents to JSON.
func (d DealDocuments) Value() (driver.Value, error) {
	if d == nil {
		return json.Marshal(DealDocuments{})
	}
	return json.Marshal(d)
}

// Scan decodes JSONB into the documents slice.
func (d *DealDocuments) Scan(value interface{}) error {
	if value == nil {
		*d = DealDocuments{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, d)
}

// InvoiceLineItem is a single billed line on an invoice.
type InvoiceLineItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// InvoiceLineItems stores invoice lines inside a JSONB column.
type InvoiceLineItems []InvoiceLineItem

// Value serializes the line items to JSON.
func (i InvoiceLineItems) Value() (driver.Value, error) {
	if i == nil {
		return json.Marshal(InvoiceLineItems{})
	}
	return json.Marshal(i)
}

// Scan decodes JSONB into the line items slice.
func (i *InvoiceLineItems) Scan(value interface{}) error {
	if value == nil {
		*i = InvoiceLineItems{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, i)
}

// ChecklistItem is one step of a reconditioning checklist.
type ChecklistItem struct {
	Item      string `json:"item"`
	Completed bool   `json:"completed"`
}

// Checklist stores reconditioning steps inside a JSONB column.
type Checklist []ChecklistItem

// Value serializes the checklist to JSON.
func (c Checklist) Value() (driver.Value, error) {
	if c == nil {
		return json.Marshal(Checklist{})
	}
	return json.Marshal(c)
}

// Scan decodes JSONB into the checklist slice.
func (c *Checklist) Scan(value interface{}) error {
	if value == nil {
		*c = Checklist{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, c)
}

// Publication records a vehicle's state on one external marketplace.
type Publication struct {
	Status      string     `json:"status"`
	ListingID   string     `json:"listing_id,omitempty"`
	ListingURL  string     `json:"listing_url,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
}

// PublicationMap stores per-platform publication state inside a JSONB column.
type PublicationMap map[string]Publication

// Value serializes the publication map to JSON.
func (p PublicationMap) Value() (driver.Value, error) {
	if p == nil {
		return json.Marshal(PublicationMap{})
	}
	return json.Marshal(p)
}

// Scan decodes JSONB into the publication map.
func (p *PublicationMap) Scan(value interface{}) error {
	if value == nil {
		*p = PublicationMap{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, p)
}

func asJSON(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported scan type %T", value)
	}
}
