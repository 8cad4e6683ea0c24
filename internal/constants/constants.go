package constants

import "time"

var APIConfig = struct {
	PokeAPIBaseURL string
	PokeAPITimeout time.Duration
	SpeciesPath    string
	DetailsPath    string
	UserAgent      string
}{
	PokeAPIBaseURL: "https://pokeapi.co/api/v2",
	PokeAPITimeout: 10 * time.Second,
	SpeciesPath:    "/pokemon-species/",
	DetailsPath:    "/pokemon/",
	UserAgent:      "pokedex-randomiser-go/1.0",
}

var RosterConfig = struct {
	Capacity     int
	MaxSpeciesID int
}{
	Capacity:     6,    // visible roster slots
	MaxSpeciesID: 1025, // highest national dex number served by PokeAPI
}

var ServerConfig = struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}{
	Addr:            ":8080",
	ReadTimeout:     10 * time.Second,
	WriteTimeout:    10 * time.Second,
	ShutdownTimeout: 10 * time.Second,
}

var WebSocketConfig = struct {
	WriteTimeout   time.Duration
	PongTimeout    time.Duration
	PingInterval   time.Duration
	MaxMessageSize int64
}{
	WriteTimeout:   5 * time.Second,
	PongTimeout:    60 * time.Second,
	PingInterval:   50 * time.Second, // must stay below PongTimeout
	MaxMessageSize: 4096,
}

var StringLimits = struct {
	LookupKey   int
	LoggedBody  int
	DisplayName int
}{
	LookupKey:   64,
	LoggedBody:  200,
	DisplayName: 40,
}

const DefaultFlavorLanguage = "en"
