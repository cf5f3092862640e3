package responders

import (
	"strings"

	"github.com/swasthyasetu/health-assistant/internal/language"
)

// Responder is a human health worker (ASHA-equivalent) who receives
// escalation alerts. Static reference data: loaded once, read-only.
type Responder struct {
	Name            string              `json:"name"`
	Phone           string              `json:"phone"`
	District        string              `json:"district"`
	Languages       []language.Language `json:"languages"`
	Specializations []string            `json:"specializations,omitempty"`
	AvailableHours  string              `json:"available_hours,omitempty"`
}

func (r Responder) speaks(lang language.Language) bool {
	for _, l := range r.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// Directory selects responders for escalation. Selection is read-only and
// safe for concurrent use.
type Directory struct {
	responders []Responder
}

// NewDirectory creates a directory. The first responder doubles as the final
// fallback; an empty list is rejected by returning a directory over the
// built-in data.
func NewDirectory(responders []Responder) *Directory {
	if len(responders) == 0 {
		responders = builtinResponders
	}
	return &Directory{responders: responders}
}

// Select picks the responder for an escalation: a district worker speaking
// the caller's language, then any district worker, then any worker speaking
// the language, then the fixed default.
func (d *Directory) Select(district string, lang language.Language) Responder {
	district = strings.ToLower(strings.TrimSpace(district))

	var districtAny *Responder
	for i := range d.responders {
		r := &d.responders[i]
		if district != "" && strings.ToLower(r.District) == district {
			if r.speaks(lang) {
				return *r
			}
			if districtAny == nil {
				districtAny = r
			}
		}
	}
	if districtAny != nil {
		return *districtAny
	}
	for _, r := range d.responders {
		if r.speaks(lang) {
			return r
		}
	}
	return d.responders[0]
}

// All returns every responder, for the contact-directory response.
func (d *Directory) All() []Responder {
	return d.responders
}
