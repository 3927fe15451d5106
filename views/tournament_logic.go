package views

import (
	"sort"

	"github.com/AdamBeresnev/bracket-generator/internal/bracket"
	"github.com/google/uuid"
)

type RoundData struct {
	Number  int             `json:"number"`
	Label   string          `json:"label"`
	Matches []bracket.Match `json:"matches"`
}

type BracketData struct {
	ID           uuid.UUID                `json:"id"`
	Name         string                   `json:"name"`
	Slug         string                   `json:"slug"`
	Status       bracket.TournamentStatus `json:"status"`
	Champion     *bracket.Participant     `json:"champion"`
	Participants []bracket.Participant    `json:"participants"`
	Rounds       []RoundData              `json:"rounds"`
	Progress     bracket.Progress         `json:"progress"`
	NextMatchID  *uuid.UUID               `json:"next_match_id,omitempty"`
	CanUndo      bool                     `json:"can_undo"`
	CanRedo      bool                     `json:"can_redo"`
}

type TournamentSummary struct {
	ID           uuid.UUID                `json:"id"`
	Name         string                   `json:"name"`
	Slug         string                   `json:"slug"`
	Status       bracket.TournamentStatus `json:"status"`
	Participants int                      `json:"participants"`
	Rounds       int                      `json:"rounds"`
	Champion     *bracket.Participant     `json:"champion"`
}

// PrepareBracketData groups the matches by round, earliest round first and
// matches ordered by position within each round.
func PrepareBracketData(t *bracket.Tournament) BracketData {
	rounds := make(map[int][]bracket.Match)
	var roundNums []int

	for _, m := range t.Matches {
		if _, exists := rounds[m.Round]; !exists {
			roundNums = append(roundNums, m.Round)
		}
		rounds[m.Round] = append(rounds[m.Round], m)
	}

	sort.Ints(roundNums)
	sortRounds(rounds, roundNums)

	data := BracketData{
		ID:           t.ID,
		Name:         t.Name,
		Slug:         t.Slug,
		Status:       t.Status,
		Champion:     t.Champion,
		Participants: t.Participants,
		Rounds:       make([]RoundData, 0, len(roundNums)),
		Progress:     t.Progress(),
	}
	for _, r := range roundNums {
		data.Rounds = append(data.Rounds, RoundData{
			Number:  r,
			Label:   bracket.RoundLabel(r, t.Rounds),
			Matches: rounds[r],
		})
	}
	return data
}

func Summarize(tournaments []*bracket.Tournament) []TournamentSummary {
	summaries := make([]TournamentSummary, 0, len(tournaments))
	for _, t := range tournaments {
		summaries = append(summaries, TournamentSummary{
			ID:           t.ID,
			Name:         t.Name,
			Slug:         t.Slug,
			Status:       t.Status,
			Participants: len(t.Participants),
			Rounds:       t.Rounds,
			Champion:     t.Champion,
		})
	}
	return summaries
}

func sortRounds(rounds map[int][]bracket.Match, roundNums []int) {
	for _, r := range roundNums {
		sort.Slice(rounds[r], func(i, j int) bool {
			return rounds[r][i].Position < rounds[r][j].Position
		})
	}
}
