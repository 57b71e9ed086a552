package govte

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateConstants(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		expected string
	}{
		{"Anywhere state", StateAnywhere, "Anywhere"},
		{"Ground state", StateGround, "Ground"},
		{"Escape state", StateEscape, "Escape"},
		{"Escape Intermediate state", StateEscapeIntermediate, "EscapeIntermediate"},
		{"Csi Entry state", StateCsiEntry, "CsiEntry"},
		{"Csi Param state", StateCsiParam, "CsiParam"},
		{"Csi Intermediate state", StateCsiIntermediate, "CsiIntermediate"},
		{"Csi Ignore state", StateCsiIgnore, "CsiIgnore"},
		{"Dcs Entry state", StateDcsEntry, "DcsEntry"},
		{"Dcs Param state", StateDcsParam, "DcsParam"},
		{"Dcs Intermediate state", StateDcsIntermediate, "DcsIntermediate"},
		{"Dcs Passthrough state", StateDcsPassthrough, "DcsPassthrough"},
		{"Dcs Ignore state", StateDcsIgnore, "DcsIgnore"},
		{"Osc String state", StateOscString, "OscString"},
		{"Sos Pm Apc String state", StateSosPmApcString, "SosPmApcString"},
		{"Utf8 state", StateUtf8, "Utf8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestStateDefaultValueIsAnywhere(t *testing.T) {
	var s State
	assert.Equal(t, StateAnywhere, s, "zero value must stay the Anywhere sentinel")
}

func TestStateUnknownStringsFallBack(t *testing.T) {
	s := State(200)
	assert.Equal(t, "State(200)", s.String())
}

func TestPackUnpackRoundTrip(t *testing.T) {
	packed := pack(StateCsiEntry, ActionCollect)
	state, action := unpack(packed)
	assert.Equal(t, StateCsiEntry, state)
	assert.Equal(t, ActionCollect, action)
}

func TestPackPanicsOnUnpackableAction(t *testing.T) {
	assert.Panics(t, func() {
		pack(StateGround, ActionClear)
	})
}
