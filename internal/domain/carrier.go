package domain

// NeutralAffinity is the score of a carrier absent from the partnership table.
const NeutralAffinity = 50

// CarrierScores maps a carrier code to its partnership score (0..100).
// A score <= 0 disables the carrier for routing.
type CarrierScores map[string]int

func (s CarrierScores) Score(carrier string) int {
	if score, ok := s[NormalizeCode(carrier)]; ok {
		return score
	}
	return NeutralAffinity
}

func (s CarrierScores) Excluded(carrier string) bool {
	return s.Score(carrier) <= 0
}
