package domain

import (
	"strings"

	"golang.org/x/text/language"
)

type FlavorText struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Version  string `json:"version,omitempty"`
}

// Species is the resolved pokemon-species record.
type Species struct {
	ID            int          `json:"id"`
	Name          string       `json:"name"`
	FlavorTexts   []FlavorText `json:"flavor_texts,omitempty"`
	Generation    string       `json:"generation,omitempty"`
	Color         string       `json:"color,omitempty"`
	Shape         string       `json:"shape,omitempty"`
	CaptureRate   int          `json:"capture_rate"`
	BaseHappiness *int         `json:"base_happiness,omitempty"`
	IsLegendary   bool         `json:"is_legendary"`
	IsMythical    bool         `json:"is_mythical"`
	IsBaby        bool         `json:"is_baby"`
}

var flavorTextCleaner = strings.NewReplacer("\f", " ", "\n", " ", "\r", " ")

// FlavorText returns the first entry written in the language that best matches
// preferred, with page breaks flattened to spaces. Entries whose language code
// cannot be parsed as a BCP 47 tag are ignored.
func (s *Species) FlavorText(preferred language.Tag) string {
	if s == nil || len(s.FlavorTexts) == 0 {
		return ""
	}

	tags := make([]language.Tag, 0, len(s.FlavorTexts))
	codes := make([]string, 0, len(s.FlavorTexts))
	seen := make(map[string]struct{}, len(s.FlavorTexts))
	for _, entry := range s.FlavorTexts {
		if _, ok := seen[entry.Language]; ok {
			continue
		}
		seen[entry.Language] = struct{}{}

		tag, err := language.Parse(entry.Language)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		codes = append(codes, entry.Language)
	}
	if len(tags) == 0 {
		return ""
	}

	_, idx, confidence := language.NewMatcher(tags).Match(preferred)
	if confidence == language.No {
		return ""
	}

	for _, entry := range s.FlavorTexts {
		if entry.Language == codes[idx] {
			return strings.Join(strings.Fields(flavorTextCleaner.Replace(entry.Text)), " ")
		}
	}
	return ""
}
