package domain

import "sort"

type TypeSlot struct {
	Slot int    `json:"slot"`
	Type string `json:"type"`
}

// Pokemon is the resolved detail record served by the /pokemon endpoint.
type Pokemon struct {
	ID                 int        `json:"id"`
	Name               string     `json:"name"`
	OfficialArtworkURL string     `json:"official_artwork_url,omitempty"`
	DefaultSpriteURL   string     `json:"default_sprite_url,omitempty"`
	Types              []TypeSlot `json:"types,omitempty"`
}

// SpriteURL prefers the official artwork and falls back to the default sprite.
func (p *Pokemon) SpriteURL() string {
	if p == nil {
		return ""
	}
	if p.OfficialArtworkURL != "" {
		return p.OfficialArtworkURL
	}
	return p.DefaultSpriteURL
}

// TypeNames returns the type names ordered by slot.
func (p *Pokemon) TypeNames() []string {
	if p == nil || len(p.Types) == 0 {
		return []string{}
	}

	slots := make([]TypeSlot, len(p.Types))
	copy(slots, p.Types)
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Slot < slots[j].Slot
	})

	names := make([]string, 0, len(slots))
	for _, s := range slots {
		names = append(names, s.Type)
	}
	return names
}
