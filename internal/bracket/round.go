package bracket

import "strconv"

// RoundLabel names a round relative to the final.
func RoundLabel(round, totalRounds int) string {
	switch totalRounds - round {
	case 0:
		return "Final"
	case 1:
		return "Semifinals"
	case 2:
		return "Quarterfinals"
	}
	return "Round " + strconv.Itoa(round)
}
