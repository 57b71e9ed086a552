package govte

import "fmt"

// State is a node of the Williams VT state machine. Values double as the
// low nibble of a packed transition byte, so StateAnywhere must stay zero:
// an unfilled table cell decodes to (StateAnywhere, ActionNone), and the
// Anywhere overlay lookup treats a zero entry as "no override, consult the
// current state's row instead".
type State uint8

const (
	StateAnywhere State = iota
	StateGround
	StateEscape
	StateEscapeIntermediate
	StateCsiEntry
	StateCsiParam
	StateCsiIntermediate
	StateCsiIgnore
	StateDcsEntry
	StateDcsParam
	StateDcsIntermediate
	StateDcsPassthrough
	StateDcsIgnore
	StateOscString
	StateSosPmApcString
	StateUtf8
)

var stateNames = [...]string{
	StateAnywhere:           "Anywhere",
	StateGround:             "Ground",
	StateEscape:             "Escape",
	StateEscapeIntermediate: "EscapeIntermediate",
	StateCsiEntry:           "CsiEntry",
	StateCsiParam:           "CsiParam",
	StateCsiIntermediate:    "CsiIntermediate",
	StateCsiIgnore:          "CsiIgnore",
	StateDcsEntry:           "DcsEntry",
	StateDcsParam:           "DcsParam",
	StateDcsIntermediate:    "DcsIntermediate",
	StateDcsPassthrough:     "DcsPassthrough",
	StateDcsIgnore:          "DcsIgnore",
	StateOscString:          "OscString",
	StateSosPmApcString:     "SosPmApcString",
	StateUtf8:               "Utf8",
}

// String implements fmt.Stringer.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}
