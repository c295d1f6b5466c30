package models

import "github.com/google/uuid"

// PdfRequest is one guide-by-SMS lead. Rows are append-only; the row keeps
// the public link that was texted out, not the storage URL.
type PdfRequest struct {
	BaseModel
	BrokerID  uuid.UUID `gorm:"type:uuid;index" json:"broker_id"`
	Broker    *Broker   `json:"broker,omitempty"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	PDFURL    string    `json:"pdf_url"`
}
