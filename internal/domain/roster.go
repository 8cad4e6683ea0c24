package domain

type RosterEntry struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	SpriteURL string   `json:"sprite_url,omitempty"`
	Types     []string `json:"types"`
}

// NewRosterEntry projects a successful lookup pair into a roster entry.
func NewRosterEntry(species *Species, details *Pokemon) RosterEntry {
	entry := RosterEntry{
		SpriteURL: details.SpriteURL(),
		Types:     details.TypeNames(),
	}
	if species != nil {
		entry.ID = species.ID
		entry.Name = species.Name
	}
	if entry.ID == 0 && details != nil {
		entry.ID = details.ID
	}
	if entry.Name == "" && details != nil {
		entry.Name = details.Name
	}
	return entry
}

// Roster keeps the most recent entries, at most one per ID, oldest first.
// It is not safe for concurrent use.
type Roster struct {
	capacity int
	entries  []RosterEntry
}

func NewRoster(capacity int) *Roster {
	if capacity <= 0 {
		capacity = 1
	}
	return &Roster{
		capacity: capacity,
		entries:  make([]RosterEntry, 0, capacity+1),
	}
}

// Add appends entry, removing any earlier entry with the same ID and evicting
// from the front once capacity is exceeded.
func (r *Roster) Add(entry RosterEntry) {
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.ID != entry.ID {
			kept = append(kept, e)
		}
	}
	kept = append(kept, entry)

	if overflow := len(kept) - r.capacity; overflow > 0 {
		kept = append(kept[:0], kept[overflow:]...)
	}
	r.entries = kept
}

func (r *Roster) Clear() {
	r.entries = r.entries[:0]
}

// Entries returns a copy of the roster, oldest first.
func (r *Roster) Entries() []RosterEntry {
	out := make([]RosterEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Roster) Len() int {
	return len(r.entries)
}

func (r *Roster) Capacity() int {
	return r.capacity
}

func (r *Roster) Contains(id int) bool {
	for _, e := range r.entries {
		if e.ID == id {
			return true
		}
	}
	return false
}
