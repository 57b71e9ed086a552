package govte

import "fmt"

// Action is the operation half of a packed VT transition byte. Values below
// actionPackedLimit must fit the high nibble of a packed byte (action<<4 |
// state); values at or above it are only ever used in entryActions/
// exitActions, which store a bare Action with no packing involved.
type Action uint8

const (
	ActionNone Action = iota
	ActionPrint
	ActionExecute
	ActionCollect
	ActionParam
	ActionEscDispatch
	ActionCsiDispatch
	ActionHook
	ActionPut
	ActionOscPut
	ActionBeginUtf8
	ActionCheckDcsSosPmApc
	ActionIgnore

	actionPackedLimit // first value that would not fit packed; keep <= 16

	ActionClear
	ActionUnhook
	ActionOscStart
	ActionOscEnd
)

var actionNames = [...]string{
	ActionNone:             "None",
	ActionPrint:            "Print",
	ActionExecute:          "Execute",
	ActionCollect:          "Collect",
	ActionParam:            "Param",
	ActionEscDispatch:      "EscDispatch",
	ActionCsiDispatch:      "CsiDispatch",
	ActionHook:             "Hook",
	ActionPut:              "Put",
	ActionOscPut:           "OscPut",
	ActionBeginUtf8:        "BeginUtf8",
	ActionCheckDcsSosPmApc: "CheckDcsSosPmApc",
	ActionIgnore:           "Ignore",
	ActionClear:            "Clear",
	ActionUnhook:           "Unhook",
	ActionOscStart:         "OscStart",
	ActionOscEnd:           "OscEnd",
}

// String implements fmt.Stringer.
func (a Action) String() string {
	if int(a) < len(actionNames) && actionNames[a] != "" {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// pack combines a destination state and a table-packable action into the
// single byte stored in vtTransitions/anywhereTransitions. Per the data
// model invariant: state = packed & 0x0F, action = packed >> 4.
func pack(state State, action Action) byte {
	if action >= actionPackedLimit {
		panic(fmt.Sprintf("govte: action %v cannot be packed into a transition byte", action))
	}
	return byte(action)<<4 | byte(state)
}

// unpack splits a packed transition byte back into its destination state
// and action.
func unpack(packed byte) (State, Action) {
	return State(packed & 0x0F), Action(packed >> 4)
}
