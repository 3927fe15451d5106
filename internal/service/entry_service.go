package service

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/AdamBeresnev/bracket-generator/internal/bracket"
	"github.com/AdamBeresnev/bracket-generator/internal/utils"
)

const maxEntryNameLength = 50

type EntryInput struct {
	Name string `json:"name"`
}

// ParseEntries reads one entry name per line. Blank lines are skipped.
func ParseEntries(text string) []EntryInput {
	var entries []EntryInput
	for _, line := range strings.Split(text, "\n") {
		if name := utils.StringOrNil(line); name != nil {
			entries = append(entries, EntryInput{Name: *name})
		}
	}
	return entries
}

// NewParticipants turns the inputs into participants seeded 1..n in input order.
func (s *BracketGeneration) NewParticipants(inputs []EntryInput) ([]bracket.Participant, error) {
	participants := make([]bracket.Participant, 0, len(inputs))
	for _, input := range inputs {
		name := utils.StringOrNil(input.Name)
		if name == nil {
			continue
		}
		if len([]rune(*name)) > maxEntryNameLength {
			return nil, fmt.Errorf("entry name '%s' exceeds %d characters: %w", *name, maxEntryNameLength, ErrEntryNameTooLong)
		}

		participants = append(participants, bracket.Participant{
			ID:   s.newID(),
			Name: *name,
			Seed: len(participants) + 1,
		})
	}
	return participants, nil
}

// RenumberSeeds returns a copy with seeds 1..n following the slice order,
// which is what callers need after removing or reordering entries.
func RenumberSeeds(participants []bracket.Participant) []bracket.Participant {
	renumbered := make([]bracket.Participant, len(participants))
	for i, p := range participants {
		p.Seed = i + 1
		renumbered[i] = p
	}
	return renumbered
}

// ShuffleSeeds returns the participants in random order with fresh seeds.
func ShuffleSeeds(participants []bracket.Participant, rng *rand.Rand) []bracket.Participant {
	shuffled := append([]bracket.Participant(nil), participants...)
	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}
	shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return RenumberSeeds(shuffled)
}
