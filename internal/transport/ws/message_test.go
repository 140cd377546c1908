package ws

import (
	"testing"

	"github.com/dealtable/holdem/internal/game"
	"github.com/dealtable/holdem/internal/orchestrator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActionAcceptsAllKnownNames(t *testing.T) {
	cases := map[string]game.Action{
		"fold":   game.Fold,
		"check":  game.Check,
		"call":   game.Call,
		"raise":  game.Raise,
		"all-in": game.AllIn,
		"all_in": game.AllIn,
		"allin":  game.AllIn,
	}
	for name, want := range cases {
		got, err := parseAction(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestParseActionRejectsUnknown(t *testing.T) {
	_, err := parseAction("surrender")
	assert.Error(t, err)
}

func TestNewMessageMarshalsPayload(t *testing.T) {
	msg, err := newMessage(MessageTypeError, ErrorData{Code: "BadAmount", Message: "too small"})
	require.NoError(t, err)
	assert.Equal(t, MessageTypeError, msg.Type)
	assert.Contains(t, string(msg.Data), "BadAmount")
}

func TestCodeStringExtractsOrchestratorErrorCode(t *testing.T) {
	err := &orchestrator.Error{Code: orchestrator.NotYourTurn, Message: "not your turn"}
	assert.Equal(t, "NotYourTurn", codeString(err))
}

func TestCodeStringDefaultsToInternalConsistency(t *testing.T) {
	assert.Equal(t, "InternalConsistency", codeString(assert.AnError))
}

func TestAIActionDataFromNilDecisionReturnsNil(t *testing.T) {
	assert.Nil(t, aiActionDataFrom(nil))
}

func TestAIActionDataFromMasksReasoningWhenHidden(t *testing.T) {
	d := &orchestrator.AIDecisionView{SeatID: 1, Action: "raise", Amount: 40}
	data := aiActionDataFrom(d)
	require.NotNil(t, data)
	assert.Nil(t, data.Reasoning)
}
