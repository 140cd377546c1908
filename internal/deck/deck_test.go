package deck

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeckHas52UniqueCards(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(1)))
	require.Equal(t, 52, d.CardsRemaining())

	seen := make(map[Card]bool)
	for d.CardsRemaining() > 0 {
		c, ok := d.Deal()
		require.True(t, ok)
		assert.False(t, seen[c], "duplicate card dealt: %s", c)
		seen[c] = true
	}
	assert.Len(t, seen, 52)

	_, ok := d.Deal()
	assert.False(t, ok)
}

func TestDealNClampsToRemaining(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(2)))
	d.DealN(50)
	require.Equal(t, 2, d.CardsRemaining())

	cards := d.DealN(5)
	assert.Len(t, cards, 2)
	assert.Equal(t, 0, d.CardsRemaining())
}

func TestSameSeedProducesSameOrder(t *testing.T) {
	a := NewDeck(rand.New(rand.NewSource(42)))
	b := NewDeck(rand.New(rand.NewSource(42)))
	assert.Equal(t, a.DealN(52), b.DealN(52))
}

func TestResetRestoresFullDeck(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(3)))
	d.DealN(40)
	d.Reset()
	assert.Equal(t, 52, d.CardsRemaining())
}

func TestCardCodeMatchesWireFormat(t *testing.T) {
	assert.Equal(t, "Ah", NewCard(Hearts, Ace).Code())
	assert.Equal(t, "Td", NewCard(Diamonds, Ten).Code())
	assert.Equal(t, "2c", NewCard(Clubs, Two).Code())
}
