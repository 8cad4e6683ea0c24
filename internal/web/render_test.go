package web

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/kapu/pokedex-randomiser-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func pikachuState() domain.SessionState {
	happiness := 50
	return domain.SessionState{
		Status: domain.LoadStatusSuccess,
		Key:    "pikachu",
		Species: &domain.Species{
			ID:            25,
			Name:          "pikachu",
			Generation:    "generation-i",
			Color:         "yellow",
			Shape:         "quadruped",
			CaptureRate:   190,
			BaseHappiness: &happiness,
			FlavorTexts: []domain.FlavorText{
				{Text: "Quand plusieurs\fde ces POKéMON", Language: "fr"},
				{Text: "When several of\fthese POKéMON gather,", Language: "en"},
			},
		},
		Details: &domain.Pokemon{
			ID:                 25,
			Name:               "pikachu",
			OfficialArtworkURL: "https://img.example/25.png",
			Types:              []domain.TypeSlot{{Slot: 1, Type: "electric"}},
		},
		Version: 3,
	}
}

func renderCardDoc(t *testing.T, r *Renderer, state domain.SessionState) *goquery.Document {
	t.Helper()
	html, err := r.RenderCard(state)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestRenderer_RenderCard_Success(t *testing.T) {
	r, err := NewRenderer(language.English, 6)
	require.NoError(t, err)

	doc := renderCardDoc(t, r, pikachuState())

	assert.Equal(t, "#25 — Pikachu", strings.TrimSpace(doc.Find("h2.title").Text()))
	assert.Equal(t, "25", doc.Find(".pokemonCard").AttrOr("data-id", ""))
	assert.Equal(t, "https://img.example/25.png", doc.Find("img.sprite").AttrOr("src", ""))
	assert.Equal(t, 1, doc.Find("#display .typeBadge.type-electric").Length())
	assert.Contains(t, doc.Find("p.generation").Text(), "generation-i")
	assert.Contains(t, doc.Find("p.capture-rate").Text(), "190")
	assert.Contains(t, doc.Find("p.base-happiness").Text(), "50")
	assert.Contains(t, doc.Find("p.flavor").Text(), "When several of these POKéMON gather,")

	_, disabled := doc.Find("#search-btn").Attr("disabled")
	assert.False(t, disabled)
	assert.Equal(t, 0, doc.Find(".loading").Length())
	assert.Equal(t, 0, doc.Find(".error").Length())
}

func TestRenderer_RenderCard_FlavorLanguage(t *testing.T) {
	r, err := NewRenderer(language.French, 6)
	require.NoError(t, err)

	doc := renderCardDoc(t, r, pikachuState())
	assert.Contains(t, doc.Find("p.flavor").Text(), "Quand plusieurs de ces POKéMON")
}

func TestRenderer_RenderCard_UnknownHappiness(t *testing.T) {
	r, err := NewRenderer(language.English, 6)
	require.NoError(t, err)

	state := pikachuState()
	state.Species.BaseHappiness = nil

	doc := renderCardDoc(t, r, state)
	assert.Contains(t, doc.Find("p.base-happiness").Text(), "unknown")
}

func TestRenderer_RenderCard_Loading(t *testing.T) {
	r, err := NewRenderer(language.English, 6)
	require.NoError(t, err)

	doc := renderCardDoc(t, r, domain.SessionState{
		Status: domain.LoadStatusLoading,
		Key:    "bulbasaur",
	})

	_, searchDisabled := doc.Find("#search-btn").Attr("disabled")
	_, randomDisabled := doc.Find("#random-btn").Attr("disabled")
	assert.True(t, searchDisabled)
	assert.True(t, randomDisabled)
	assert.Equal(t, "bulbasaur", doc.Find("#query").AttrOr("value", ""))
	assert.Equal(t, 1, doc.Find(".loading").Length())
	assert.Equal(t, 0, doc.Find(".pokemonCard").Length())
	assert.Equal(t, 0, doc.Find("p.empty").Length())
}

func TestRenderer_RenderCard_Error(t *testing.T) {
	r, err := NewRenderer(language.English, 6)
	require.NoError(t, err)

	doc := renderCardDoc(t, r, domain.SessionState{
		Status: domain.LoadStatusError,
		Key:    "missingno",
		Error:  "Pokémon not found. Try a name (pikachu) or numeric ID (25).",
	})

	assert.Equal(t, "Error: Pokémon not found. Try a name (pikachu) or numeric ID (25).",
		strings.TrimSpace(doc.Find("p.error").Text()))
	assert.Equal(t, 0, doc.Find(".pokemonCard").Length())
	assert.Equal(t, 1, doc.Find("p.empty").Length())
}

func TestRenderer_RenderCard_Roster(t *testing.T) {
	r, err := NewRenderer(language.English, 6)
	require.NoError(t, err)

	state := domain.SessionState{
		Status: domain.LoadStatusIdle,
		Roster: []domain.RosterEntry{
			{ID: 1, Name: "bulbasaur", SpriteURL: "https://img.example/1.png", Types: []string{"grass", "poison"}},
			{ID: 150, Name: "mewtwo", Types: []string{"psychic"}},
		},
	}

	doc := renderCardDoc(t, r, state)

	assert.Equal(t, 6, doc.Find("li.slot").Length())
	filled := doc.Find("li.slot.filled")
	require.Equal(t, 2, filled.Length())
	assert.Equal(t, 4, doc.Find("li.slot.empty").Length())

	assert.Equal(t, "1", filled.Eq(0).AttrOr("data-id", ""))
	assert.Equal(t, "select", filled.Eq(0).AttrOr("data-action", ""))
	assert.Equal(t, "Bulbasaur", filled.Eq(0).Find(".slotName").Text())
	assert.Equal(t, 2, filled.Eq(0).Find(".typeBadge").Length())
	assert.Equal(t, "Mewtwo", filled.Eq(1).Find(".slotName").Text())
	assert.Equal(t, 0, filled.Eq(1).Find("img").Length())

	_, clearDisabled := doc.Find("#clear-btn").Attr("disabled")
	assert.False(t, clearDisabled)
}

func TestRenderer_RenderCard_EmptyRoster(t *testing.T) {
	r, err := NewRenderer(language.English, 0)
	require.NoError(t, err)

	doc := renderCardDoc(t, r, domain.SessionState{Status: domain.LoadStatusIdle})

	assert.Equal(t, 6, doc.Find("li.slot.empty").Length())
	_, clearDisabled := doc.Find("#clear-btn").Attr("disabled")
	assert.True(t, clearDisabled)
	assert.Equal(t, "No Pokémon loaded yet.", strings.TrimSpace(doc.Find("p.empty").Text()))
}

func TestRenderer_RenderPage(t *testing.T) {
	r, err := NewRenderer(language.English, 6)
	require.NoError(t, err)

	page, err := r.RenderPage(domain.SessionState{Status: domain.LoadStatusIdle})
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(page)))
	require.NoError(t, err)

	assert.Equal(t, "Pokémon Randomiser", doc.Find("title").Text())
	assert.Equal(t, 1, doc.Find("#app #controls").Length())
	assert.Equal(t, 1, doc.Find("#app #roster").Length())

	notice := doc.Find("#notice")
	require.Equal(t, 1, notice.Length())
	_, hidden := notice.Attr("hidden")
	assert.True(t, hidden)
	assert.Equal(t, 0, doc.Find("#app #notice").Length())
	assert.Contains(t, doc.Find("script").Text(), `msg.type === "error"`)
}
