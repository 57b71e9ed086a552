package govte

// utf8Transitions is UTF8_TRANSITIONS[state][byte] -> packed(action,state),
// per spec.md §4.2. Built at init time instead of listed as a 2048-byte
// literal; the resulting flat array is what the decoder indexes at runtime.
var utf8Transitions [8][256]byte

func fillUTF8Range(row *[256]byte, lo, hi byte, state utf8State, action utf8Action) {
	p := utf8Pack(state, action)
	for b := int(lo); b <= int(hi); b++ {
		row[b] = p
	}
}

func init() {
	// Ground: ASCII fast path, lead-byte classification, invalid lead bytes.
	g := &utf8Transitions[utf8Ground]
	fillUTF8Range(g, 0x00, 0x7F, utf8Ground, utf8ActionEmitByte)
	fillUTF8Range(g, 0x80, 0xC1, utf8Ground, utf8ActionInvalidByte)
	fillUTF8Range(g, 0xC2, 0xDF, utf8Tail1, utf8ActionSetByte2Top)
	fillUTF8Range(g, 0xE0, 0xE0, utf8U3_2E0, utf8ActionSetByte3Top)
	fillUTF8Range(g, 0xE1, 0xEC, utf8Tail2, utf8ActionSetByte3Top)
	fillUTF8Range(g, 0xED, 0xED, utf8U3_2Ed, utf8ActionSetByte3Top)
	fillUTF8Range(g, 0xEE, 0xEF, utf8Tail2, utf8ActionSetByte3Top)
	fillUTF8Range(g, 0xF0, 0xF0, utf8_4_3F0, utf8ActionSetByte4)
	fillUTF8Range(g, 0xF1, 0xF3, utf8Tail3, utf8ActionSetByte4)
	fillUTF8Range(g, 0xF4, 0xF4, utf8_4_3F4, utf8ActionSetByte4)
	fillUTF8Range(g, 0xF5, 0xFF, utf8Ground, utf8ActionInvalidByte)

	// Tail1: last continuation byte of a 2-byte sequence (or the final byte
	// of any longer sequence once only one continuation remains).
	tail1 := &utf8Transitions[utf8Tail1]
	fillUTF8Range(tail1, 0x00, 0x7F, utf8Ground, utf8ActionInvalidContinuation)
	fillUTF8Range(tail1, 0x80, 0xBF, utf8Ground, utf8ActionSetByte1)
	fillUTF8Range(tail1, 0xC0, 0xFF, utf8Ground, utf8ActionInvalidContinuation)

	// Tail2: two continuations remain (generic 3-byte lead).
	tail2 := &utf8Transitions[utf8Tail2]
	fillUTF8Range(tail2, 0x00, 0x7F, utf8Ground, utf8ActionInvalidContinuation)
	fillUTF8Range(tail2, 0x80, 0xBF, utf8Tail1, utf8ActionSetByte2)
	fillUTF8Range(tail2, 0xC0, 0xFF, utf8Ground, utf8ActionInvalidContinuation)

	// Tail3: three continuations remain (generic 4-byte lead, F1-F3).
	tail3 := &utf8Transitions[utf8Tail3]
	fillUTF8Range(tail3, 0x00, 0x7F, utf8Ground, utf8ActionInvalidContinuation)
	fillUTF8Range(tail3, 0x80, 0xBF, utf8Tail2, utf8ActionSetByte3)
	fillUTF8Range(tail3, 0xC0, 0xFF, utf8Ground, utf8ActionInvalidContinuation)

	// U3_2_e0: first continuation after E0, restricted to 0xA0..=0xBF to
	// exclude overlong encodings.
	e0 := &utf8Transitions[utf8U3_2E0]
	fillUTF8Range(e0, 0x00, 0x9F, utf8Ground, utf8ActionInvalidContinuation)
	fillUTF8Range(e0, 0xA0, 0xBF, utf8Tail1, utf8ActionSetByte2)
	fillUTF8Range(e0, 0xC0, 0xFF, utf8Ground, utf8ActionInvalidContinuation)

	// U3_2_ed: first continuation after ED, restricted to 0x80..=0x9F to
	// exclude the UTF-16 surrogate range.
	ed := &utf8Transitions[utf8U3_2Ed]
	fillUTF8Range(ed, 0x00, 0x7F, utf8Ground, utf8ActionInvalidContinuation)
	fillUTF8Range(ed, 0x80, 0x9F, utf8Tail1, utf8ActionSetByte2)
	fillUTF8Range(ed, 0xA0, 0xFF, utf8Ground, utf8ActionInvalidContinuation)

	// Utf8_4_3_f0: first continuation after F0, restricted to 0x90..=0xBF.
	f0 := &utf8Transitions[utf8_4_3F0]
	fillUTF8Range(f0, 0x00, 0x8F, utf8Ground, utf8ActionInvalidContinuation)
	fillUTF8Range(f0, 0x90, 0xBF, utf8Tail2, utf8ActionSetByte3)
	fillUTF8Range(f0, 0xC0, 0xFF, utf8Ground, utf8ActionInvalidContinuation)

	// Utf8_4_3_f4: first continuation after F4, restricted to 0x80..=0x8F
	// to keep the decoded point at or below U+10FFFF.
	f4 := &utf8Transitions[utf8_4_3F4]
	fillUTF8Range(f4, 0x00, 0x7F, utf8Ground, utf8ActionInvalidContinuation)
	fillUTF8Range(f4, 0x80, 0x8F, utf8Tail2, utf8ActionSetByte3)
	fillUTF8Range(f4, 0x90, 0xFF, utf8Ground, utf8ActionInvalidContinuation)
}
