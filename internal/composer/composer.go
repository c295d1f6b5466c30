// Package composer projects a broker record and the template configuration
// into the ordered list of sections the public landing page displays. It is
// a pure projection: no I/O, no side effects.
package composer

import (
	"strings"
	"unicode/utf8"

	"github.com/example/courtier/internal/models"
	"github.com/example/courtier/internal/template"
)

const (
	DefaultPrimaryColor = "#1e40af"
	DefaultAccentColor  = "#f59e0b"
)

// primaryLearningPoints is how many learning points fit the primary row;
// the remainder wraps into a secondary row.
const primaryLearningPoints = 3

// Page is the composed render tree for one broker.
type Page struct {
	Slug         string    `json:"slug"`
	BrokerName   string    `json:"broker_name"`
	Company      string    `json:"company"`
	PrimaryColor string    `json:"primary_color"`
	AccentColor  string    `json:"accent_color"`
	Sections     []Section `json:"sections"`
}

// Section is one rendered block. Exactly one of the payload pointers is set,
// matching the section ID.
type Section struct {
	ID          string       `json:"id"`
	Title       string       `json:"title,omitempty"`
	Hero        *Hero        `json:"hero,omitempty"`
	ContactInfo *ContactInfo `json:"contact_info,omitempty"`
	About       *About       `json:"about,omitempty"`
	Services    []string     `json:"services,omitempty"`
	Guide       *Guide       `json:"guide,omitempty"`
	Value       *Value       `json:"value,omitempty"`
	CTA         *CTA         `json:"cta,omitempty"`
	ContactForm *ContactForm `json:"contact_form,omitempty"`
}

// Hero is the page header. Initial is the fallback avatar letter used when
// the broker has no photo.
type Hero struct {
	Name          string `json:"name"`
	JobTitle      string `json:"job_title,omitempty"`
	Company       string `json:"company,omitempty"`
	Team          string `json:"team,omitempty"`
	LicenseNumber string `json:"license_number,omitempty"`
	PhotoURL      string `json:"photo_url,omitempty"`
	Initial       string `json:"initial,omitempty"`
	Badge         string `json:"badge,omitempty"`
	Headline      string `json:"headline,omitempty"`
	Subtitle      string `json:"subtitle,omitempty"`
	ButtonText    string `json:"button_text,omitempty"`
	Note          string `json:"note,omitempty"`
}

// ContactInfo lists the broker's direct coordinates.
type ContactInfo struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// About presents the broker bio.
type About struct {
	Bio             string `json:"bio,omitempty"`
	YearsExperience int    `json:"years_experience,omitempty"`
}

// Guide advertises the downloadable PDF.
type Guide struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Badge       string `json:"badge,omitempty"`
	HasPDF      bool   `json:"has_pdf"`
}

// Value lays out the learning points: the first three on the primary row,
// the remainder on a wrapped secondary row.
type Value struct {
	Title     string                   `json:"title,omitempty"`
	Subtitle  string                   `json:"subtitle,omitempty"`
	Primary   []template.LearningPoint `json:"primary"`
	Secondary []template.LearningPoint `json:"secondary,omitempty"`
}

// CTA is the closing call to action.
type CTA struct {
	Title      string `json:"title,omitempty"`
	Text       string `json:"text,omitempty"`
	ButtonText string `json:"button_text,omitempty"`
	Note       string `json:"note,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// ContactForm marks where the visitor contact form renders; submissions go
// to /api/contact keyed by the broker slug.
type ContactForm struct {
	BrokerSlug string `json:"broker_slug"`
}

// Render composes the page for one broker under the given configuration.
// Sections render in stored order; disabled sections and unrecognized
// section IDs render nothing.
func Render(broker models.Broker, cfg template.Config) Page {
	page := Page{
		Slug:         broker.Slug,
		BrokerName:   broker.Name,
		Company:      broker.Company,
		PrimaryColor: broker.PrimaryColor,
		AccentColor:  broker.AccentColor,
	}
	if page.PrimaryColor == "" {
		page.PrimaryColor = DefaultPrimaryColor
	}
	if page.AccentColor == "" {
		page.AccentColor = DefaultAccentColor
	}

	for _, section := range cfg.Sections {
		if !section.Enabled {
			continue
		}
		if rendered, ok := renderSection(section, broker, cfg); ok {
			page.Sections = append(page.Sections, rendered)
		}
	}

	return page
}

func renderSection(section template.Section, broker models.Broker, cfg template.Config) (Section, bool) {
	out := Section{ID: section.ID, Title: section.Title}

	switch section.ID {
	case "hero":
		hero := &Hero{
			Name:          broker.Name,
			JobTitle:      broker.Title,
			Company:       broker.Company,
			Team:          broker.Team,
			LicenseNumber: broker.LicenseNumber,
			PhotoURL:      broker.PhotoURL,
			Badge:         cfg.HeroBadge,
			Headline:      cfg.HeroTitle,
			Subtitle:      cfg.HeroSubtitle,
			ButtonText:    cfg.HeroButtonText,
			Note:          cfg.HeroNote,
		}
		if hero.PhotoURL == "" {
			hero.Initial = nameInitial(broker.Name)
		}
		out.Hero = hero

	case "contact_info":
		out.ContactInfo = &ContactInfo{Phone: broker.Phone, Email: broker.Email}

	case "about":
		out.About = &About{Bio: broker.Bio, YearsExperience: broker.YearsExperience}

	case "services":
		out.Services = cfg.Services

	case "guide":
		out.Guide = &Guide{
			Title:       cfg.GuideTitle,
			Description: cfg.GuideDescription,
			Badge:       cfg.GuideBadge,
			HasPDF:      broker.HasPDF(),
		}

	case "value":
		value := &Value{
			Title:    cfg.ValueTitle,
			Subtitle: cfg.ValueSubtitle,
			Primary:  cfg.LearningPoints,
		}
		if len(cfg.LearningPoints) > primaryLearningPoints {
			value.Primary = cfg.LearningPoints[:primaryLearningPoints]
			value.Secondary = cfg.LearningPoints[primaryLearningPoints:]
		}
		out.Value = value

	case "cta":
		out.CTA = &CTA{
			Title:      cfg.CTATitle,
			Text:       cfg.CTAText,
			ButtonText: cfg.CTAButton,
			Note:       cfg.CTANote,
			Phone:      broker.Phone,
		}

	case "contact_form":
		out.ContactForm = &ContactForm{BrokerSlug: broker.Slug}

	default:
		return Section{}, false
	}

	return out, true
}

func nameInitial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(name)
	return strings.ToUpper(string(r))
}
