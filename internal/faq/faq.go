// Package faq answers common questions from stored regex patterns before the
// completion provider is ever involved.
package faq

import (
	"log"
	"regexp"
	"strings"

	"comanda/internal/models"

	"github.com/jinzhu/gorm"
)

// defaults are served per language when no patterns are stored.
var defaults = map[string][]models.FAQ{
	"es": {
		{Pattern: `horario|abren|cierran`, Answer: "Nuestro horario es de 11:00 a 22:00, todos los días."},
		{Pattern: `\bdelivery\b|domicilio`, Answer: "Hacemos delivery en un radio de 5 km. Costo según distancia."},
	},
	"en": {
		{Pattern: `hours|open|close`, Answer: "We open 11:00 to 22:00, every day."},
		{Pattern: `delivery`, Answer: "We deliver within 5 km radius. Cost varies by distance."},
	},
}

// Matcher looks up canned answers by regex. A malformed stored pattern is
// skipped so one bad entry never breaks the whole lookup.
type Matcher struct {
	db *gorm.DB
}

// NewMatcher creates a matcher backed by db. A nil db serves only defaults.
func NewMatcher(db *gorm.DB) *Matcher {
	return &Matcher{db: db}
}

// Match returns the first stored answer whose pattern matches the lowered
// text. The first matching pattern wins.
func (m *Matcher) Match(text, language string, tenantID *uint) (string, bool) {
	low := strings.ToLower(text)
	for _, f := range m.list(language, tenantID) {
		re, err := regexp.Compile(f.Pattern)
		if err != nil {
			log.Printf("Skipping malformed FAQ pattern %q: %v", f.Pattern, err)
			continue
		}
		if re.MatchString(low) {
			return f.Answer, true
		}
	}
	return "", false
}

func (m *Matcher) list(language string, tenantID *uint) []models.FAQ {
	var faqs []models.FAQ
	if m.db != nil {
		q := m.db.Where("language = ?", language).Order("id ASC")
		if tenantID != nil {
			q = q.Where("tenant_id = ?", *tenantID)
		} else {
			q = q.Where("tenant_id IS NULL")
		}
		if err := q.Find(&faqs).Error; err != nil {
			log.Printf("FAQ lookup failed: %v", err)
		}
	}
	if len(faqs) == 0 {
		return defaults[language]
	}
	return faqs
}
