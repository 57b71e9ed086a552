package govte

// MaxIntermediates is the maximum number of intermediate bytes collected for
// an escape/CSI/DCS sequence before further intermediates are ignored.
const MaxIntermediates = 2

// MaxOSCRaw is the maximum number of raw bytes buffered for an OSC string's
// payload. Bytes beyond this cap are silently dropped, not aborted: OSC
// payloads (window titles, hyperlinks, ...) are unbounded in principle but
// this keeps one runaway OSC from growing memory without limit.
const MaxOSCRaw = 1024

// MaxOSCParams is the maximum number of ';'-delimited OSC parameters
// tracked; params beyond this cap are folded into the final parameter.
const MaxOSCParams = 16

// maxPassthroughBytes bounds a single DCS string's Put stream; beyond this
// the sequence is abandoned (as if CAN/SUB had arrived) rather than letting
// an opaque, never-terminated DCS retain the parser in passthrough forever.
// This is the opaque-sequence guard for DCS; OSC has its own cap above, and
// SOS/PM/APC strings never accumulate anything so need no counter.
const maxPassthroughBytes = 1 << 20

// Parser is V: the table-driven DEC ANSI state machine. It holds only the
// state needed to resume across Advance calls. Its buffers are allocated
// once in NewParser; the one per-dispatch allocation is the slice of
// parameter views that an OSC dispatch hands to the performer.
type Parser struct {
	state         State
	intermediates []byte
	ignoring      bool
	params        *Params

	oscRaw       []byte
	oscParamIdx  []int
	oscNumParams int
	oscPendingESC bool

	dcsPendingESC  bool
	dcsPutCount    int

	sosPendingESC bool

	utf8 utf8Decoder

	// allowOpaque gates ActionCheckDcsSosPmApc: when false, a DCS
	// introducer is redirected straight to StateDcsIgnore instead of
	// StateDcsEntry, so Hook/Put/Unhook never fire for it. SOS/PM/APC are
	// unaffected since they never invoke the performer regardless.
	allowOpaque bool
}

// NewParser creates a ready-to-use Parser in StateGround.
func NewParser() *Parser {
	return &Parser{
		state:         StateGround,
		params:        NewParams(),
		intermediates: make([]byte, 0, MaxIntermediates),
		oscRaw:        make([]byte, 0, MaxOSCRaw),
		oscParamIdx:   make([]int, 0, MaxOSCParams),
		allowOpaque:   true,
	}
}

// State returns the parser's current state.
func (p *Parser) State() State {
	return p.state
}

// SetDcsSosPmApc toggles whether DCS/SOS/PM/APC introducers are interpreted.
// Disabling it (enabled=false) is the opaque-sequence guard: a caller that
// has no Performer support for device control strings can avoid ever
// receiving Hook/Put/Unhook by routing DCS straight to the ignore state.
func (p *Parser) SetDcsSosPmApc(enabled bool) {
	p.allowOpaque = enabled
}

// Advance feeds bytes through the state machine, dispatching to performer.
func (p *Parser) Advance(performer Performer, bytes []byte) {
	for _, b := range bytes {
		p.advanceByte(performer, b)
	}
}

// AdvanceUntilTerminated feeds bytes one at a time, consulting an optional
// Terminator-implementing performer between dispatches (spec.md §4.5/§5's
// "terminated() -> bool ... consulted between dispatches"): after each byte
// is advanced, if performer implements Terminator and Terminated() reports
// true, it stops immediately and returns the number of bytes consumed so
// far, letting the caller re-enter later with the remainder. A performer
// that does not implement Terminator is simply fed the whole chunk, just
// like Advance, and the full length is returned.
func (p *Parser) AdvanceUntilTerminated(performer Performer, bytes []byte) int {
	t, ok := performer.(Terminator)
	if !ok {
		p.Advance(performer, bytes)
		return len(bytes)
	}
	for i, b := range bytes {
		p.advanceByte(performer, b)
		if t.Terminated() {
			return i + 1
		}
	}
	return len(bytes)
}

// End flushes end-of-stream state: an in-progress UTF-8 sequence emits its
// trailing replacement character, per spec.md's "end of stream" rule.
func (p *Parser) End(performer Performer) {
	if p.state == StateUtf8 && p.utf8.end() {
		performer.Print(replacementChar)
		p.state = StateGround
	}
}

const replacementChar = '�'

func (p *Parser) advanceByte(performer Performer, b byte) {
	switch p.state {
	case StateOscString:
		p.advanceOSCString(performer, b)
		return
	case StateDcsPassthrough:
		p.advanceDCSPassthrough(performer, b)
		return
	case StateSosPmApcString:
		p.advanceSOSPMApcString(performer, b)
		return
	case StateUtf8:
		p.advanceUTF8(performer, b)
		return
	}

	var next State
	var action Action
	if ov := anywhereTransitions[b]; ov != 0 {
		next, action = unpack(ov)
	} else {
		next, action = unpack(vtTransitions[p.state][b])
	}
	p.performTransition(performer, p.state, next, action, b)
}

// performTransition runs the classical exit(old) -> action -> entry(new)
// sequence for one table-driven byte. ActionBeginUtf8 and
// ActionCheckDcsSosPmApc are handled before the generic pipeline since both
// need to override what "next" means rather than simply act within it.
func (p *Parser) performTransition(performer Performer, from, to State, action Action, b byte) {
	switch action {
	case ActionBeginUtf8:
		p.state = StateUtf8
		p.utf8.reset()
		p.advanceUTF8(performer, b)
		return
	case ActionCheckDcsSosPmApc:
		if !p.allowOpaque && to == StateDcsEntry {
			to = StateDcsIgnore
		}
		action = ActionNone
	}

	changing := from != to
	if changing {
		p.runZeroArgAction(performer, exitActions[from])
	}
	p.doAction(performer, action, b)
	if changing {
		p.runZeroArgAction(performer, entryActions[to])
	}
	p.state = to
}

func (p *Parser) doAction(performer Performer, action Action, b byte) {
	switch action {
	case ActionNone, ActionIgnore:
	case ActionPrint:
		performer.Print(rune(b))
	case ActionExecute:
		performer.Execute(b)
	case ActionCollect:
		p.collect(b)
	case ActionParam:
		var ok bool
		if b == ';' {
			ok = p.params.separator()
		} else if p.ignoring && p.params.IsFull() {
			// Digits of a parameter past the cap are dropped rather
			// than folded into the last kept slot.
			ok = false
		} else {
			ok = p.params.digit(int64(b - '0'))
		}
		if !ok {
			p.ignoring = true
		}
	case ActionEscDispatch:
		performer.EscDispatch(p.intermediates, p.ignoring, b)
	case ActionCsiDispatch:
		performer.CsiDispatch(p.params, p.intermediates, p.ignoring, rune(b))
	case ActionHook:
		performer.Hook(p.params, p.intermediates, p.ignoring, rune(b))
	}
}

func (p *Parser) runZeroArgAction(performer Performer, action Action) {
	switch action {
	case ActionClear:
		p.clearParams()
	case ActionUnhook:
		performer.Unhook()
	case ActionOscStart:
		p.oscRaw = p.oscRaw[:0]
		p.oscParamIdx = p.oscParamIdx[:0]
		p.oscNumParams = 0
		p.oscPendingESC = false
	case ActionOscEnd:
		// Unreachable in practice: OscString's exit is driven from
		// advanceOSCString directly, which calls oscDispatch itself.
	}
}

func (p *Parser) collect(b byte) {
	if len(p.intermediates) < MaxIntermediates {
		p.intermediates = append(p.intermediates, b)
	} else {
		p.ignoring = true
	}
}

func (p *Parser) clearParams() {
	p.params.Clear()
	p.intermediates = p.intermediates[:0]
	p.ignoring = false
}

func (p *Parser) advanceOSCString(performer Performer, b byte) {
	switch {
	case b == 0x07:
		if p.oscPendingESC {
			p.oscPut(0x1B)
			p.oscPendingESC = false
		}
		p.oscDispatch(performer, true)
		p.state = StateGround
	case b == 0x1B:
		if p.oscPendingESC {
			p.oscPut(0x1B)
		}
		p.oscPendingESC = true
	case b == '\\' && p.oscPendingESC:
		p.oscPendingESC = false
		p.oscDispatch(performer, false)
		p.state = StateGround
	case b == 0x18 || b == 0x1A:
		performer.Execute(b)
		p.oscPendingESC = false
		p.state = StateGround
	default:
		if p.oscPendingESC {
			p.oscPut(0x1B)
			p.oscPendingESC = false
		}
		p.oscPut(b)
	}
}

func (p *Parser) oscPut(b byte) {
	if len(p.oscRaw) >= MaxOSCRaw {
		return
	}
	if b == ';' && p.oscNumParams < MaxOSCParams {
		p.oscParamIdx = append(p.oscParamIdx, len(p.oscRaw))
		p.oscNumParams++
		return
	}
	p.oscRaw = append(p.oscRaw, b)
}

func (p *Parser) oscDispatch(performer Performer, bellTerminated bool) {
	params := make([][]byte, 0, len(p.oscParamIdx)+1)
	start := 0
	for _, end := range p.oscParamIdx {
		if end > len(p.oscRaw) {
			end = len(p.oscRaw)
		}
		params = append(params, p.oscRaw[start:end])
		start = end
	}
	params = append(params, p.oscRaw[start:])

	performer.OscDispatch(params, bellTerminated)
	p.clearParams()
	p.oscRaw = p.oscRaw[:0]
	p.oscParamIdx = p.oscParamIdx[:0]
	p.oscNumParams = 0
}

func (p *Parser) advanceDCSPassthrough(performer Performer, b byte) {
	switch {
	case b == 0x1B:
		p.dcsPendingESC = true
	case b == '\\' && p.dcsPendingESC:
		p.dcsPendingESC = false
		performer.Unhook()
		p.dcsPutCount = 0
		p.state = StateGround
	case b == 0x18 || b == 0x1A:
		performer.Unhook()
		performer.Execute(b)
		p.dcsPendingESC = false
		p.dcsPutCount = 0
		p.state = StateGround
	default:
		if p.dcsPendingESC {
			p.dcsPut(performer, 0x1B)
			p.dcsPendingESC = false
		}
		p.dcsPut(performer, b)
		if p.dcsPutCount >= maxPassthroughBytes {
			performer.Unhook()
			p.dcsPutCount = 0
			p.state = StateGround
		}
	}
}

func (p *Parser) dcsPut(performer Performer, b byte) {
	performer.Put(b)
	p.dcsPutCount++
}

func (p *Parser) advanceSOSPMApcString(performer Performer, b byte) {
	switch {
	case b == 0x1B:
		p.sosPendingESC = true
	case b == '\\' && p.sosPendingESC:
		p.sosPendingESC = false
		p.state = StateGround
	case b == 0x18 || b == 0x1A:
		performer.Execute(b)
		p.sosPendingESC = false
		p.state = StateGround
	default:
		p.sosPendingESC = false
	}
}

// advanceUTF8 drives the standalone UTF-8 decoder while the parser is in
// StateUtf8, re-feeding a rejected continuation byte from StateGround as
// spec.md's maximal-subpart rule requires.
func (p *Parser) advanceUTF8(performer Performer, b byte) {
	result, r := p.utf8.advance(b)
	switch result {
	case utf8Pending:
	case utf8Codepoint:
		performer.Print(r)
		p.state = StateGround
	case utf8Invalid:
		performer.Print(replacementChar)
		p.state = StateGround
	case utf8InvalidRefeed:
		performer.Print(replacementChar)
		p.state = StateGround
		p.advanceByte(performer, b)
	}
}
