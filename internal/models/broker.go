package models

// Broker is a mortgage professional with an individual public landing page.
// The slug is the public routing key; the ID is used by admin edit/delete.
type Broker struct {
	BaseModel
	Slug            string `gorm:"uniqueIndex" json:"slug"`
	Name            string `json:"name"`
	Company         string `json:"company"`
	Team            string `json:"team"`
	Title           string `json:"title"`
	PhotoURL        string `json:"photo_url"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Bio             string `gorm:"type:text" json:"bio"`
	LicenseNumber   string `json:"license_number"`
	YearsExperience int    `json:"years_experience"`

	// Page theming.
	PrimaryColor string `json:"primary_color"`
	AccentColor  string `json:"accent_color"`

	// Uploaded guide. The token is rotated on every re-upload, which
	// invalidates previously shared /pdf/{token} links.
	PDFURL   string `json:"pdf_url"`
	PDFToken string `gorm:"index" json:"pdf_token"`
}

// HasPDF reports whether the broker has a downloadable guide attached.
func (b *Broker) HasPDF() bool {
	return b.PDFURL != "" && b.PDFToken != ""
}
