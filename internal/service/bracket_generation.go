package service

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/AdamBeresnev/bracket-generator/internal/bracket"
	"github.com/AdamBeresnev/bracket-generator/internal/utils"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// IDGenerator hands out identifiers for tournaments, matches and participants.
type IDGenerator func() uuid.UUID

type BracketGeneration struct {
	newID IDGenerator
	now   func() time.Time
}

// NewBracketService returns a builder using newID for every identifier it
// creates. A nil generator falls back to random UUIDs.
func NewBracketService(newID IDGenerator) *BracketGeneration {
	if newID == nil {
		newID = uuid.New
	}
	return &BracketGeneration{newID: newID, now: time.Now}
}

// Gets the nearest power of 2 while rounding up, so with input 5 it returns 8 and so on
func calcBracketSize(count int) int {
	if count <= 0 {
		return 0
	}

	// Log2 -> Ceil -> 2^^log2 to round up
	log2 := math.Ceil(math.Log2(float64(count)))
	return int(math.Pow(2, log2))
}

// seedOrder lists, for every bracket slot, the seed rank placed there.
// Each pass mirrors the previous order so that the top seed always faces the
// bottom one: 8 slots give 0,7,3,4,1,6,2,5.
func seedOrder(bracketSize int) []int {
	if bracketSize <= 1 {
		return []int{0}
	}

	half := seedOrder(bracketSize / 2)
	order := make([]int, 0, bracketSize)
	for _, seed := range half {
		order = append(order, seed, (bracketSize-1)-seed)
	}
	return order
}

func generateRound1Pairs(bracketSize int) [][2]int {
	if bracketSize == 0 {
		return [][2]int{}
	}

	order := seedOrder(bracketSize)
	pairs := make([][2]int, 0, bracketSize/2)
	for i := 0; i+1 < len(order); i += 2 {
		pairs = append(pairs, [2]int{order[i], order[i+1]})
	}

	return pairs
}

func validateParticipants(participants []bracket.Participant) error {
	if len(participants) < 2 {
		return fmt.Errorf("got %d: %w", len(participants), ErrNotEnoughParticipants)
	}

	ids := make(map[uuid.UUID]struct{}, len(participants))
	seeds := make(map[int]struct{}, len(participants))
	for _, p := range participants {
		if p.Seed <= 0 {
			return fmt.Errorf("participant %q has seed %d: %w", p.Name, p.Seed, ErrInvalidSeed)
		}
		if _, ok := ids[p.ID]; ok {
			return fmt.Errorf("participant %q (%s): %w", p.Name, p.ID, ErrDuplicateParticipant)
		}
		if _, ok := seeds[p.Seed]; ok {
			return fmt.Errorf("seed %d: %w", p.Seed, ErrDuplicateSeed)
		}
		ids[p.ID] = struct{}{}
		seeds[p.Seed] = struct{}{}
	}
	return nil
}

// Build creates the full single elimination bracket for the participants.
// Byes are resolved before the tournament is returned.
func (s *BracketGeneration) Build(participants []bracket.Participant, name string) (*bracket.Tournament, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if err := validateParticipants(participants); err != nil {
		return nil, err
	}

	seeded := append([]bracket.Participant(nil), participants...)
	sort.SliceStable(seeded, func(i, j int) bool {
		return seeded[i].Seed < seeded[j].Seed
	})

	bracketSize := calcBracketSize(len(seeded))
	totalRounds := int(math.Log2(float64(bracketSize)))

	tournament := &bracket.Tournament{
		ID:           s.newID(),
		Name:         name,
		Slug:         slug.Make(name),
		Participants: seeded,
		Rounds:       totalRounds,
		CreatedAt:    s.now().UTC(),
	}
	tournament.Matches = s.generateMatches(totalRounds)

	// Ranks past the roster are empty slots
	byRank := func(rank int) *bracket.Participant {
		if rank < len(tournament.Participants) {
			return &tournament.Participants[rank]
		}
		return nil
	}

	slots := make([]*bracket.Participant, 0, bracketSize)
	for _, pair := range generateRound1Pairs(bracketSize) {
		slots = append(slots, byRank(pair[0]), byRank(pair[1]))
	}
	placeParticipants(tournament, slots)
	tournament.SyncChampion()

	return tournament, nil
}

// Generate bracket structure for single elimination
func (s *BracketGeneration) generateMatches(totalRounds int) []bracket.Match {
	var matches []bracket.Match

	nextRoundMatchIDs := make(map[int]uuid.UUID)

	// Significantly easier to start from the last round and work backwards
	for r := totalRounds; r >= 1; r-- {
		matchesInCurrentRound := int(math.Pow(2, float64(totalRounds-r)))
		currentRoundMatchIDs := make(map[int]uuid.UUID)

		for i := 0; i < matchesInCurrentRound; i++ {
			m := bracket.Match{
				ID:       s.newID(),
				Round:    r,
				Position: i,
			}

			if r < totalRounds {
				parentID := nextRoundMatchIDs[i/2]
				m.WinnerNextMatchID = &parentID

				if i%2 == 0 {
					m.WinnerNextSlot = utils.Ptr(bracket.SlotOne)
				} else {
					m.WinnerNextSlot = utils.Ptr(bracket.SlotTwo)
				}
			}

			matches = append(matches, m)
			currentRoundMatchIDs[i] = m.ID
		}
		nextRoundMatchIDs = currentRoundMatchIDs
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Round != matches[j].Round {
			return matches[i].Round < matches[j].Round
		}
		return matches[i].Position < matches[j].Position
	})

	return matches
}

// placeParticipants fills round 1 from the bracket slots, two per match, and
// auto-advances every bye.
func placeParticipants(tournament *bracket.Tournament, slots []*bracket.Participant) {
	index := newMatchIndex(tournament)

	for i := range tournament.Matches {
		match := &tournament.Matches[i]
		if match.Round != 1 {
			continue
		}
		if 2*match.Position+1 < len(slots) {
			match.Participant1 = slots[2*match.Position]
			match.Participant2 = slots[2*match.Position+1]
		}
	}

	for i := range tournament.Matches {
		match := &tournament.Matches[i]
		if match.Round == 1 && match.IsBye() {
			match.Winner = match.LoneOccupant()
			index.advanceBye(match)
		}
	}
}

// advanceBye moves a bye winner forward. The receiving match only becomes a
// bye itself when nothing can ever arrive in its other slot.
func (ix *matchIndex) advanceBye(match *bracket.Match) {
	next := ix.next(match)
	if next == nil || match.Winner == nil {
		return
	}

	slot := *match.WinnerNextSlot
	next.SetOccupant(slot, match.Winner)

	if next.IsBye() && next.Winner == nil && ix.isDeadSlot(next, otherSlot(slot)) {
		next.Winner = next.LoneOccupant()
		ix.advanceBye(next)
	}
}
