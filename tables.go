package govte

// vtTransitions is VT_TRANSITIONS[state][byte] -> packed(action,state), per
// spec.md §4.1/§4.3. Only the table-driven states are represented here
// (Ground, Escape, EscapeIntermediate, the four Csi* states, and the four
// Dcs{Entry,Param,Intermediate,Ignore} states); OscString, DcsPassthrough
// and SosPmApcString need one bit of ESC-lookahead state the table cannot
// express and are driven by dedicated handlers in parser.go instead (see
// DESIGN.md).
var vtTransitions [16][256]byte

// anywhereTransitions is the Anywhere overlay: consulted before the current
// state's row on every byte. A zero entry means "no override" (spec.md §3's
// "a zero transition from the Anywhere overlay means no override").
var anywhereTransitions [256]byte

// entryActions/exitActions hold the zero-argument actions that fire once per
// state-crossing transition rather than once per byte (spec.md §4.1's
// "Exit/entry actions per state" table). Only Clear, Unhook, OscStart and
// OscEnd appear here; Hook is a table-packed transition action because it
// needs the triggering (final) byte.
var entryActions [16]Action
var exitActions [16]Action

func fillRange(row *[256]byte, lo, hi byte, state State, action Action) {
	p := pack(state, action)
	for b := int(lo); b <= int(hi); b++ {
		row[b] = p
	}
}

func fillDefault(row *[256]byte, self State) {
	p := pack(self, ActionNone)
	for b := 0; b < 256; b++ {
		row[b] = p
	}
}

func init() {
	entryActions[StateCsiEntry] = ActionClear
	entryActions[StateDcsEntry] = ActionClear
	entryActions[StateEscape] = ActionClear
	entryActions[StateOscString] = ActionOscStart
	exitActions[StateDcsPassthrough] = ActionUnhook
	exitActions[StateOscString] = ActionOscEnd

	anywhereTransitions[0x18] = pack(StateGround, ActionExecute)
	anywhereTransitions[0x1A] = pack(StateGround, ActionExecute)

	buildGround()
	buildEscape()
	buildEscapeIntermediate()
	buildCsiEntry()
	buildCsiParam()
	buildCsiIntermediate()
	buildCsiIgnore()
	buildDcsEntry()
	buildDcsParam()
	buildDcsIntermediate()
	buildDcsIgnore()
}

func buildGround() {
	row := &vtTransitions[StateGround]
	fillDefault(row, StateGround)
	fillRange(row, 0x00, 0x1A, StateGround, ActionExecute)
	fillRange(row, 0x1B, 0x1B, StateEscape, ActionNone)
	fillRange(row, 0x1C, 0x1F, StateGround, ActionExecute)
	fillRange(row, 0x20, 0x7E, StateGround, ActionPrint)
	fillRange(row, 0x7F, 0x7F, StateGround, ActionIgnore)
	// 0x80-0xFF: every non-ASCII byte diverts into the UTF-8 decoder; an
	// invalid lead byte (0x80-0xC1, 0xF5-0xFF) is reported back out as a
	// single U+FFFD by the decoder itself (see utf8tables.go), not by a
	// distinct VT-level action - spec.md §6's UTF-8 extension supersedes
	// classical 8-bit C1 control interpretation in this range.
	fillRange(row, 0x80, 0xFF, StateUtf8, ActionBeginUtf8)
}

func buildEscape() {
	row := &vtTransitions[StateEscape]
	fillDefault(row, StateEscape)
	fillRange(row, 0x00, 0x1A, StateEscape, ActionExecute)
	fillRange(row, 0x1B, 0x1B, StateEscape, ActionNone)
	fillRange(row, 0x1C, 0x1F, StateEscape, ActionExecute)
	fillRange(row, 0x20, 0x2F, StateEscapeIntermediate, ActionCollect)
	fillRange(row, 0x30, 0x4F, StateGround, ActionEscDispatch)
	fillRange(row, 0x50, 0x50, StateDcsEntry, ActionCheckDcsSosPmApc) // DCS
	fillRange(row, 0x51, 0x57, StateGround, ActionEscDispatch)
	fillRange(row, 0x58, 0x58, StateSosPmApcString, ActionCheckDcsSosPmApc) // SOS
	fillRange(row, 0x59, 0x5A, StateGround, ActionEscDispatch)
	fillRange(row, 0x5B, 0x5B, StateCsiEntry, ActionNone) // CSI
	fillRange(row, 0x5C, 0x5C, StateGround, ActionEscDispatch)
	fillRange(row, 0x5D, 0x5D, StateOscString, ActionNone)                 // OSC
	fillRange(row, 0x5E, 0x5E, StateSosPmApcString, ActionCheckDcsSosPmApc) // PM
	fillRange(row, 0x5F, 0x5F, StateSosPmApcString, ActionCheckDcsSosPmApc) // APC
	fillRange(row, 0x60, 0x7E, StateGround, ActionEscDispatch)
	fillRange(row, 0x7F, 0x7F, StateEscape, ActionIgnore)
}

func buildEscapeIntermediate() {
	row := &vtTransitions[StateEscapeIntermediate]
	fillDefault(row, StateEscapeIntermediate)
	fillRange(row, 0x00, 0x1A, StateEscapeIntermediate, ActionExecute)
	fillRange(row, 0x1B, 0x1B, StateEscape, ActionNone)
	fillRange(row, 0x1C, 0x1F, StateEscapeIntermediate, ActionExecute)
	fillRange(row, 0x20, 0x2F, StateEscapeIntermediate, ActionCollect)
	fillRange(row, 0x30, 0x7E, StateGround, ActionEscDispatch)
	fillRange(row, 0x7F, 0x7F, StateEscapeIntermediate, ActionIgnore)
}

func buildCsiEntry() {
	row := &vtTransitions[StateCsiEntry]
	fillDefault(row, StateCsiEntry)
	fillRange(row, 0x00, 0x1A, StateCsiEntry, ActionExecute)
	fillRange(row, 0x1B, 0x1B, StateEscape, ActionNone)
	fillRange(row, 0x1C, 0x1F, StateCsiEntry, ActionExecute)
	fillRange(row, 0x20, 0x2F, StateCsiIntermediate, ActionCollect)
	fillRange(row, 0x30, 0x39, StateCsiParam, ActionParam)
	fillRange(row, 0x3A, 0x3A, StateCsiIgnore, ActionNone) // ':' unsupported, classical diagram
	fillRange(row, 0x3B, 0x3B, StateCsiParam, ActionParam)
	fillRange(row, 0x3C, 0x3F, StateCsiParam, ActionCollect) // private markers
	fillRange(row, 0x40, 0x7E, StateGround, ActionCsiDispatch)
	fillRange(row, 0x7F, 0x7F, StateCsiEntry, ActionIgnore)
}

func buildCsiParam() {
	row := &vtTransitions[StateCsiParam]
	fillDefault(row, StateCsiParam)
	fillRange(row, 0x00, 0x1A, StateCsiParam, ActionExecute)
	fillRange(row, 0x1B, 0x1B, StateEscape, ActionNone)
	fillRange(row, 0x1C, 0x1F, StateCsiParam, ActionExecute)
	fillRange(row, 0x20, 0x2F, StateCsiIntermediate, ActionCollect)
	fillRange(row, 0x30, 0x39, StateCsiParam, ActionParam)
	fillRange(row, 0x3A, 0x3A, StateCsiIgnore, ActionNone)
	fillRange(row, 0x3B, 0x3B, StateCsiParam, ActionParam)
	fillRange(row, 0x3C, 0x3F, StateCsiIgnore, ActionNone) // private marker after digits: invalid
	fillRange(row, 0x40, 0x7E, StateGround, ActionCsiDispatch)
	fillRange(row, 0x7F, 0x7F, StateCsiParam, ActionIgnore)
}

func buildCsiIntermediate() {
	row := &vtTransitions[StateCsiIntermediate]
	fillDefault(row, StateCsiIntermediate)
	fillRange(row, 0x00, 0x1A, StateCsiIntermediate, ActionExecute)
	fillRange(row, 0x1B, 0x1B, StateEscape, ActionNone)
	fillRange(row, 0x1C, 0x1F, StateCsiIntermediate, ActionExecute)
	fillRange(row, 0x20, 0x2F, StateCsiIntermediate, ActionCollect)
	fillRange(row, 0x30, 0x3F, StateCsiIgnore, ActionNone)
	fillRange(row, 0x40, 0x7E, StateGround, ActionCsiDispatch)
	fillRange(row, 0x7F, 0x7F, StateCsiIntermediate, ActionIgnore)
}

func buildCsiIgnore() {
	row := &vtTransitions[StateCsiIgnore]
	fillDefault(row, StateCsiIgnore)
	fillRange(row, 0x00, 0x1A, StateCsiIgnore, ActionExecute)
	fillRange(row, 0x1B, 0x1B, StateEscape, ActionNone)
	fillRange(row, 0x1C, 0x1F, StateCsiIgnore, ActionExecute)
	fillRange(row, 0x20, 0x3F, StateCsiIgnore, ActionIgnore)
	fillRange(row, 0x40, 0x7E, StateGround, ActionNone)
	fillRange(row, 0x7F, 0x7F, StateCsiIgnore, ActionIgnore)
}

func buildDcsEntry() {
	row := &vtTransitions[StateDcsEntry]
	fillDefault(row, StateDcsEntry)
	fillRange(row, 0x00, 0x1A, StateDcsEntry, ActionIgnore)
	fillRange(row, 0x1B, 0x1B, StateEscape, ActionNone)
	fillRange(row, 0x1C, 0x1F, StateDcsEntry, ActionIgnore)
	fillRange(row, 0x20, 0x2F, StateDcsIntermediate, ActionCollect)
	fillRange(row, 0x30, 0x39, StateDcsParam, ActionParam)
	fillRange(row, 0x3A, 0x3A, StateDcsIgnore, ActionNone)
	fillRange(row, 0x3B, 0x3B, StateDcsParam, ActionParam)
	fillRange(row, 0x3C, 0x3F, StateDcsParam, ActionCollect)
	fillRange(row, 0x40, 0x7E, StateDcsPassthrough, ActionHook)
	fillRange(row, 0x7F, 0x7F, StateDcsEntry, ActionIgnore)
}

func buildDcsParam() {
	row := &vtTransitions[StateDcsParam]
	fillDefault(row, StateDcsParam)
	fillRange(row, 0x00, 0x1A, StateDcsParam, ActionIgnore)
	fillRange(row, 0x1B, 0x1B, StateEscape, ActionNone)
	fillRange(row, 0x1C, 0x1F, StateDcsParam, ActionIgnore)
	fillRange(row, 0x20, 0x2F, StateDcsIntermediate, ActionCollect)
	fillRange(row, 0x30, 0x39, StateDcsParam, ActionParam)
	fillRange(row, 0x3A, 0x3A, StateDcsIgnore, ActionNone)
	fillRange(row, 0x3B, 0x3B, StateDcsParam, ActionParam)
	fillRange(row, 0x3C, 0x3F, StateDcsIgnore, ActionNone)
	fillRange(row, 0x40, 0x7E, StateDcsPassthrough, ActionHook)
	fillRange(row, 0x7F, 0x7F, StateDcsParam, ActionIgnore)
}

func buildDcsIntermediate() {
	row := &vtTransitions[StateDcsIntermediate]
	fillDefault(row, StateDcsIntermediate)
	fillRange(row, 0x00, 0x1A, StateDcsIntermediate, ActionIgnore)
	fillRange(row, 0x1B, 0x1B, StateEscape, ActionNone)
	fillRange(row, 0x1C, 0x1F, StateDcsIntermediate, ActionIgnore)
	fillRange(row, 0x20, 0x2F, StateDcsIntermediate, ActionCollect)
	fillRange(row, 0x30, 0x3F, StateDcsIgnore, ActionNone)
	fillRange(row, 0x40, 0x7E, StateDcsPassthrough, ActionHook)
	fillRange(row, 0x7F, 0x7F, StateDcsIntermediate, ActionIgnore)
}

func buildDcsIgnore() {
	row := &vtTransitions[StateDcsIgnore]
	fillDefault(row, StateDcsIgnore)
	fillRange(row, 0x00, 0x1A, StateDcsIgnore, ActionIgnore)
	fillRange(row, 0x1B, 0x1B, StateEscape, ActionNone)
	fillRange(row, 0x1C, 0x1F, StateDcsIgnore, ActionIgnore)
	fillRange(row, 0x20, 0x7E, StateDcsIgnore, ActionIgnore)
	fillRange(row, 0x7F, 0x7F, StateDcsIgnore, ActionIgnore)
}
