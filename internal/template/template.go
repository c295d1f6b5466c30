package template

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Section is a named, toggleable, orderable block of the landing page.
// Stored order is render order.
type Section struct {
	ID      string `json:"id"`
	Enabled bool   `json:"enabled"`
	Title   string `json:"title"`
}

// LearningPoint is one card of the value section.
type LearningPoint struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Config is the single global template configuration. It carries both
// generations of the page schema: the hero/guide/value/cta content fields
// and the older services list, so pages authored under either shape keep
// rendering. Unknown stored fields survive a load/save round trip via the
// extra map.
type Config struct {
	Sections []Section `json:"sections"`

	// Hero section
	HeroBadge      string `json:"heroBadge"`
	HeroTitle      string `json:"heroTitle"`
	HeroSubtitle   string `json:"heroSubtitle"`
	HeroButtonText string `json:"heroButtonText"`
	HeroNote       string `json:"heroNote"`

	// Guide/About section
	GuideTitle       string `json:"guideTitle"`
	GuideDescription string `json:"guideDescription"`
	GuideBadge       string `json:"guideBadge"`

	// Value section (learning points)
	ValueTitle     string          `json:"valueTitle"`
	ValueSubtitle  string          `json:"valueSubtitle"`
	LearningPoints []LearningPoint `json:"learningPoints"`

	// Final CTA
	CTATitle  string `json:"ctaTitle"`
	CTAText   string `json:"ctaText"`
	CTAButton string `json:"ctaButton"`
	CTANote   string `json:"ctaNote"`

	// Services list from the first schema generation.
	Services []string `json:"services"`

	extra map[string]json.RawMessage
}

var knownKeys = func() map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		tag := strings.Split(t.Field(i).Tag.Get("json"), ",")[0]
		if tag != "" && tag != "-" {
			keys[tag] = true
		}
	}
	return keys
}()

// configAlias strips the custom JSON methods.
type configAlias Config

// UnmarshalJSON decodes the known fields and keeps every unrecognized
// top-level key so it can be written back verbatim.
func (c *Config) UnmarshalJSON(data []byte) error {
	var a configAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key := range raw {
		if knownKeys[key] {
			delete(raw, key)
		}
	}

	*c = Config(a)
	if len(raw) > 0 {
		c.extra = raw
	}
	return nil
}

// MarshalJSON emits the known fields plus any preserved unknown keys.
func (c Config) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(configAlias(c))
	if err != nil {
		return nil, err
	}
	if len(c.extra) == 0 {
		return base, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for key, value := range c.extra {
		if _, ok := merged[key]; !ok {
			merged[key] = value
		}
	}
	return json.Marshal(merged)
}

// Extra returns a preserved unknown field by key.
func (c *Config) Extra(key string) (json.RawMessage, bool) {
	value, ok := c.extra[key]
	return value, ok
}

// Default returns the compiled-in template configuration.
func Default() Config {
	return Config{
		Sections: []Section{
			{ID: "hero", Enabled: true, Title: "Hero"},
			{ID: "guide", Enabled: true, Title: "Guide & Contact"},
			{ID: "value", Enabled: true, Title: "Learning Points"},
			{ID: "cta", Enabled: true, Title: "Call to Action"},
		},
		HeroBadge:      "Guide gratuit disponible",
		HeroTitle:      "Guide Cash Damming Locatif",
		HeroSubtitle:   "Comprendre la stratégie, pourquoi elle fonctionne, et comment la mettre en place à haut niveau.",
		HeroButtonText: "Recevoir le guide gratuit",
		HeroNote:       "PDF gratuit - Aucun engagement",

		GuideTitle:       "Guide Cash Damming Locatif",
		GuideDescription: "Un guide éducatif complet pour comprendre cette stratégie fiscale et son application dans le contexte immobilier québécois.",
		GuideBadge:       "Format PDF - 15+ pages",

		ValueTitle:    "Ce que vous apprendrez",
		ValueSubtitle: "Un aperçu du contenu éducatif inclus dans ce guide gratuit.",
		LearningPoints: []LearningPoint{
			{
				Title:       "Comment fonctionne le Cash Damming",
				Description: "Une explication claire et accessible de la mécanique derrière cette stratégie fiscale.",
			},
			{
				Title:       "Améliorer votre flux de trésorerie",
				Description: "Comprendre pourquoi cette approche peut optimiser vos finances à long terme.",
			},
			{
				Title:       "Pour qui est cette stratégie",
				Description: "Identifier si le Cash Damming convient à votre situation et vos objectifs.",
			},
			{
				Title:       "Les erreurs courantes à éviter",
				Description: "Les pièges fréquents et comment les contourner pour une mise en place réussie.",
			},
			{
				Title:       "Structure hypothécaire optimale",
				Description: "L'importance d'une structure de financement adaptée à cette stratégie.",
			},
		},

		CTATitle:  "Recevez le guide gratuit",
		CTAText:   "Découvrez comment le Cash Damming locatif peut s'intégrer dans votre stratégie d'investissement immobilier.",
		CTAButton: "Recevoir le guide en PDF",
		CTANote:   "Guide éducatif gratuit - Sans engagement - Contenu québécois",

		Services: []string{
			"First-Time Home Buyers",
			"Refinancing",
			"Investment Properties",
			"Pre-Approval",
			"Mortgage Renewal",
			"Debt Consolidation",
		},
	}
}

// Merge overlays a stored config onto the defaults, top-level key by
// top-level key: any field present in the default but absent in storage is
// back-filled, any stored field unknown to the default is preserved. A
// missing or malformed record yields the defaults unchanged. There is no
// schema version tag; the merge is purely structural.
func Merge(stored []byte) Config {
	def := Default()
	if len(stored) == 0 {
		return def
	}

	var overlay map[string]json.RawMessage
	if err := json.Unmarshal(stored, &overlay); err != nil || overlay == nil {
		return def
	}

	base, err := json.Marshal(def)
	if err != nil {
		return def
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return def
	}
	for key, value := range overlay {
		merged[key] = value
	}

	out, err := json.Marshal(merged)
	if err != nil {
		return def
	}

	var cfg Config
	if err := json.Unmarshal(out, &cfg); err != nil {
		return def
	}
	return cfg
}

// NormalizeSections enforces the hero invariant: the hero section exists,
// is enabled, and sorts first. Relative order of the other sections is kept.
func (c *Config) NormalizeSections() {
	hero := Section{ID: "hero", Enabled: true, Title: "Hero"}
	rest := make([]Section, 0, len(c.Sections))
	for _, s := range c.Sections {
		if s.ID == "hero" {
			if s.Title != "" {
				hero.Title = s.Title
			}
			continue
		}
		rest = append(rest, s)
	}
	c.Sections = append([]Section{hero}, rest...)
}
