package bracket

import "github.com/google/uuid"

// Participant is a seeded competitor. Lower seeds are placed first.
type Participant struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Seed int       `json:"seed"`
}

func (p *Participant) Is(id uuid.UUID) bool {
	return p != nil && p.ID == id
}
