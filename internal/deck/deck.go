package deck

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

// Deck is a mutable sequence of cards drawn from the top.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewSecureRand returns a math/rand source seeded from crypto/rand, for
// production dealing. Tests should build their own rand.New(rand.NewSource(seed))
// with a fixed seed instead, for determinism (P7).
func NewSecureRand() *rand.Rand {
	var seed [8]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return rand.New(rand.NewSource(1))
	}
	return rand.New(rand.NewSource(int64(binary.LittleEndian.Uint64(seed[:]))))
}

// NewDeck builds a full 52-card deck shuffled with rng.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	d.reset()
	d.Shuffle()
	return d
}

func (d *Deck) reset() {
	d.cards = d.cards[:0]
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
}

// Shuffle randomizes the remaining cards in place.
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Deal removes and returns the top card.
func (d *Deck) Deal() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// DealN deals up to n cards, fewer if the deck runs out.
func (d *Deck) DealN(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	cards := make([]Card, n)
	for i := 0; i < n; i++ {
		cards[i], _ = d.Deal()
	}
	return cards
}

// CardsRemaining returns the number of undealt cards.
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}

// Reset restores a full 52-card deck and reshuffles.
func (d *Deck) Reset() {
	d.reset()
	d.Shuffle()
}
