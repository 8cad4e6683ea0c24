package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"

	"github.com/kapu/pokedex-randomiser-go/internal/constants"
	"github.com/kapu/pokedex-randomiser-go/internal/domain"
	"github.com/kapu/pokedex-randomiser-go/internal/util"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.html
var templatesFS embed.FS

type slotView struct {
	Filled      bool
	ID          int
	Name        string
	DisplayName string
	SpriteURL   string
	Types       []string
}

type cardView struct {
	Status  string
	Query   string
	Loading bool
	Error   string

	HasRecord     bool
	ID            int
	Name          string
	DisplayName   string
	SpriteURL     string
	Types         []string
	Generation    string
	Color         string
	Shape         string
	CaptureRate   int
	BaseHappiness string
	Legendary     bool
	Mythical      bool
	Baby          bool
	FlavorText    string

	Slots        []slotView
	RosterFilled bool
}

// Renderer turns session snapshots into HTML.
type Renderer struct {
	tmpl           *template.Template
	flavorLanguage language.Tag
	rosterSlots    int
}

func NewRenderer(flavorLanguage language.Tag, rosterSlots int) (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	if rosterSlots <= 0 {
		rosterSlots = constants.RosterConfig.Capacity
	}
	return &Renderer{
		tmpl:           tmpl,
		flavorLanguage: flavorLanguage,
		rosterSlots:    rosterSlots,
	}, nil
}

// RenderPage renders the full document for state.
func (r *Renderer) RenderPage(state domain.SessionState) ([]byte, error) {
	return r.execute("index.html", state)
}

// RenderCard renders the fragment that replaces the page body on every update.
func (r *Renderer) RenderCard(state domain.SessionState) (string, error) {
	out, err := r.execute("card", state)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (r *Renderer) execute(name string, state domain.SessionState) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, r.view(state)); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) view(state domain.SessionState) cardView {
	// Casers hold state and must not be shared across goroutines.
	caser := cases.Title(language.English)

	v := cardView{
		Status:  state.Status.String(),
		Query:   state.Key,
		Loading: state.IsLoading(),
		Error:   state.Error,
	}

	if state.HasRecord() {
		species, details := state.Species, state.Details
		v.HasRecord = true
		v.ID = species.ID
		v.Name = species.Name
		v.DisplayName = displayName(caser, species.Name)
		v.SpriteURL = details.SpriteURL()
		v.Types = details.TypeNames()
		v.Generation = species.Generation
		v.Color = species.Color
		v.Shape = species.Shape
		v.CaptureRate = species.CaptureRate
		v.BaseHappiness = "unknown"
		if species.BaseHappiness != nil {
			v.BaseHappiness = strconv.Itoa(*species.BaseHappiness)
		}
		v.Legendary = species.IsLegendary
		v.Mythical = species.IsMythical
		v.Baby = species.IsBaby
		v.FlavorText = species.FlavorText(r.flavorLanguage)
	}

	slots := util.Max(r.rosterSlots, len(state.Roster))
	v.Slots = make([]slotView, slots)
	for i, entry := range state.Roster {
		v.Slots[i] = slotView{
			Filled:      true,
			ID:          entry.ID,
			Name:        entry.Name,
			DisplayName: displayName(caser, entry.Name),
			SpriteURL:   entry.SpriteURL,
			Types:       entry.Types,
		}
	}
	v.RosterFilled = len(state.Roster) > 0

	return v
}

func displayName(caser cases.Caser, name string) string {
	return util.TruncateString(caser.String(name), constants.StringLimits.DisplayName)
}
