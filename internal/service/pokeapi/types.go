package pokeapi

import "github.com/kapu/pokedex-randomiser-go/internal/domain"

// NamedResourceRaw is PokeAPI's {name, url} reference.
type NamedResourceRaw struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type FlavorTextEntryRaw struct {
	FlavorText string            `json:"flavor_text"`
	Language   *NamedResourceRaw `json:"language,omitempty"`
	Version    *NamedResourceRaw `json:"version,omitempty"`
}

// SpeciesRaw represents the raw /pokemon-species response
type SpeciesRaw struct {
	ID                int                  `json:"id"`
	Name              string               `json:"name"`
	FlavorTextEntries []FlavorTextEntryRaw `json:"flavor_text_entries"`
	Generation        *NamedResourceRaw    `json:"generation,omitempty"`
	Color             *NamedResourceRaw    `json:"color,omitempty"`
	Shape             *NamedResourceRaw    `json:"shape,omitempty"`
	CaptureRate       *int                 `json:"capture_rate,omitempty"`
	BaseHappiness     *int                 `json:"base_happiness,omitempty"`
	IsLegendary       bool                 `json:"is_legendary"`
	IsMythical        bool                 `json:"is_mythical"`
	IsBaby            bool                 `json:"is_baby"`
}

type SpriteSetRaw struct {
	FrontDefault *string `json:"front_default,omitempty"`
}

type OtherSpritesRaw struct {
	OfficialArtwork *SpriteSetRaw `json:"official-artwork,omitempty"`
}

type SpritesRaw struct {
	FrontDefault *string         `json:"front_default,omitempty"`
	Other        *OtherSpritesRaw `json:"other,omitempty"`
}

type TypeSlotRaw struct {
	Slot int               `json:"slot"`
	Type *NamedResourceRaw `json:"type,omitempty"`
}

// PokemonRaw represents the raw /pokemon response
type PokemonRaw struct {
	ID      int           `json:"id"`
	Name    string        `json:"name"`
	Sprites *SpritesRaw   `json:"sprites,omitempty"`
	Types   []TypeSlotRaw `json:"types"`
}

func resourceName(r *NamedResourceRaw) string {
	if r == nil {
		return ""
	}
	return r.Name
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func mapSpecies(raw *SpeciesRaw) *domain.Species {
	species := &domain.Species{
		ID:            raw.ID,
		Name:          raw.Name,
		Generation:    resourceName(raw.Generation),
		Color:         resourceName(raw.Color),
		Shape:         resourceName(raw.Shape),
		BaseHappiness: raw.BaseHappiness,
		IsLegendary:   raw.IsLegendary,
		IsMythical:    raw.IsMythical,
		IsBaby:        raw.IsBaby,
	}
	if raw.CaptureRate != nil {
		species.CaptureRate = *raw.CaptureRate
	}

	if len(raw.FlavorTextEntries) > 0 {
		species.FlavorTexts = make([]domain.FlavorText, 0, len(raw.FlavorTextEntries))
		for _, entry := range raw.FlavorTextEntries {
			species.FlavorTexts = append(species.FlavorTexts, domain.FlavorText{
				Text:     entry.FlavorText,
				Language: resourceName(entry.Language),
				Version:  resourceName(entry.Version),
			})
		}
	}

	return species
}

func mapPokemon(raw *PokemonRaw) *domain.Pokemon {
	pokemon := &domain.Pokemon{
		ID:   raw.ID,
		Name: raw.Name,
	}

	if raw.Sprites != nil {
		pokemon.DefaultSpriteURL = deref(raw.Sprites.FrontDefault)
		if raw.Sprites.Other != nil && raw.Sprites.Other.OfficialArtwork != nil {
			pokemon.OfficialArtworkURL = deref(raw.Sprites.Other.OfficialArtwork.FrontDefault)
		}
	}

	for _, t := range raw.Types {
		name := resourceName(t.Type)
		if name == "" {
			continue
		}
		pokemon.Types = append(pokemon.Types, domain.TypeSlot{Slot: t.Slot, Type: name})
	}

	return pokemon
}
