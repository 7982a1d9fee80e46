package deck

// LCG constants matching the shuffle used by every client. Changing these
// breaks replay of any previously recorded match.
const (
	lcgMultiplier = 1103515245
	lcgIncrement  = 12345
	lcgMask       = 0x7fffffff
)

var suitOrder = []Suit{Spades, Hearts, Diamonds, Clubs}

// New returns the canonical, unshuffled 52-card deck: one card per
// (rank, suit) pair with unique ids.
func New() []Card {
	cards := make([]Card, 0, 52)
	for _, suit := range suitOrder {
		for _, rank := range RankOrder {
			cards = append(cards, NewCard(rank, suit))
		}
	}

	return cards
}

// lcg is a linear congruential generator. It is not cryptographically
// secure; only reproducibility is guaranteed.
type lcg struct {
	state int64
}

// next advances the generator and returns a draw in [0, 1).
// The multiply is done in 64-bit then masked to 31 bits so the result is
// bit-exact on every platform.
func (l *lcg) next() float64 {
	l.state = (l.state*lcgMultiplier + lcgIncrement) & lcgMask
	return float64(l.state) / float64(lcgMask)
}

// DeterministicShuffle returns a permutation of the input cards driven
// entirely by seed. The input is not modified. The same (cards, seed) pair
// always yields the same permutation; different seeds usually, but not
// necessarily, yield different ones.
func DeterministicShuffle(cards []Card, seed int32) []Card {
	shuffled := make([]Card, len(cards))
	copy(shuffled, cards)

	rng := &lcg{state: int64(seed)}
	for i := len(shuffled) - 1; i > 0; i-- {
		j := int(rng.next() * float64(i+1))
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled
}
