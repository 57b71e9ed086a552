package govte

import "time"

// syncBSU/syncESU are the literal byte sequences for DEC private mode 2026
// (Synchronized Output), matching BeginSynchronizedUpdate/
// EndSynchronizedUpdate in ansi.go exactly: ESC [ ? 2 0 2 6 h / l.
var (
	syncBSU = []byte("\x1b[?2026h")
	syncESU = []byte("\x1b[?2026l")
)

// maxSyncBuffer bounds how much a synchronized update will buffer before
// forcing a flush, so a stream that opens BSU and never sends ESU cannot
// grow the buffer without limit.
const maxSyncBuffer = 2 << 20 // 2 MiB

// defaultSyncTimeout is how long a synchronized update may stay open after
// its BSU (each nested BSU adds one more period) before a caller polling
// SyncTimeout should flush it. Plain data does not extend the deadline.
const defaultSyncTimeout = 150 * time.Millisecond

// SyncProcessor is S: a byte-level shim in front of a Parser that
// recognizes DEC private mode 2026 (BSU/ESU) and buffers everything
// between them, flushing the whole blob through the wrapped Parser only
// once ESU arrives, the buffer cap is hit, or the caller calls StopSync.
// There is no internal timer: the 150ms deadline in spec.md is advisory
// and meant to be polled by the caller via SyncTimeout, not enforced by a
// goroutine inside the core.
type SyncProcessor struct {
	parser *Parser

	pending   bool
	buf       []byte
	holdback  []byte // non-pending only: possible prefix of an upcoming BSU
	bsuSeen   int     // count of BSU occurrences already accounted for in buf
	deadline  time.Time
	timeout   time.Duration
}

// NewSyncProcessor wraps parser with synchronized-update buffering.
func NewSyncProcessor(parser *Parser) *SyncProcessor {
	return &SyncProcessor{
		parser:  parser,
		timeout: defaultSyncTimeout,
	}
}

// SyncTimeout returns the absolute time by which the caller should treat a
// pending synchronized update as expired and flush it, or the zero Time if
// no update is pending.
func (s *SyncProcessor) SyncTimeout() time.Time {
	if !s.pending {
		return time.Time{}
	}
	return s.deadline
}

// SyncBytesCount returns how many bytes are currently buffered awaiting a
// synchronized-update flush.
func (s *SyncProcessor) SyncBytesCount() int {
	return len(s.buf)
}

// StopSync forces whatever is buffered to flush through the wrapped parser
// immediately, as if ESU had arrived, and clears pending state. Safe to
// call when nothing is pending.
func (s *SyncProcessor) StopSync(performer Performer) {
	if !s.pending {
		return
	}
	s.flush(performer)
}

// Advance feeds bytes through the synchronized-update shim.
func (s *SyncProcessor) Advance(performer Performer, bytes []byte) {
	for len(bytes) > 0 {
		if !s.pending {
			bytes = s.advanceNonPending(performer, bytes)
			continue
		}
		bytes = s.advancePending(performer, bytes)
	}
}

// advanceNonPending streams bytes directly to the wrapped parser until a
// BSU marker is found, holding back up to len(syncBSU)-1 trailing bytes
// across calls so a marker split across two Advance calls is still caught.
func (s *SyncProcessor) advanceNonPending(performer Performer, data []byte) []byte {
	window := append(s.holdback, data...)
	s.holdback = nil

	if idx := indexOf(window, syncBSU); idx >= 0 {
		s.parser.Advance(performer, window[:idx])
		end := idx + len(syncBSU)
		s.pending = true
		s.buf = append([]byte(nil), window[idx:end]...)
		s.bsuSeen = 1
		s.deadline = time.Now().Add(s.timeout)
		// The rest goes through advancePending, so an ESU in the same
		// chunk flushes right away.
		return window[end:]
	}

	safe := len(window) - (len(syncBSU) - 1)
	if safe < 0 {
		safe = 0
	}
	s.parser.Advance(performer, window[:safe])
	s.holdback = append([]byte(nil), window[safe:]...)
	return nil
}

// advancePending buffers bytes and checks the accumulated blob for ESU (a
// full flush), a newly-arrived nested BSU (extends the deadline without
// flushing), or the size guard (a forced flush). Any bytes left over after
// an ESU-triggered flush are re-driven from the top, now non-pending.
func (s *SyncProcessor) advancePending(performer Performer, data []byte) []byte {
	s.buf = append(s.buf, data...)

	if idx := indexOf(s.buf, syncESU); idx >= 0 {
		end := idx + len(syncESU)
		tail := append([]byte(nil), s.buf[end:]...)
		s.buf = s.buf[:end]
		s.flush(performer)
		return tail
	}

	if n := countNonOverlapping(s.buf, syncBSU); n > s.bsuSeen {
		s.deadline = s.deadline.Add(time.Duration(n-s.bsuSeen) * s.timeout)
		s.bsuSeen = n
	}

	if len(s.buf) >= maxSyncBuffer {
		s.flush(performer)
	}
	return nil
}

func (s *SyncProcessor) flush(performer Performer) {
	data := s.buf
	s.buf = nil
	s.pending = false
	s.bsuSeen = 0
	s.deadline = time.Time{}
	s.parser.Advance(performer, data)
}

func indexOf(haystack, needle []byte) int {
	if len(needle) == 0 || len(haystack) < len(needle) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if string(haystack[i:i+len(needle)]) == string(needle) {
			return i
		}
	}
	return -1
}

func countNonOverlapping(haystack, needle []byte) int {
	count := 0
	i := 0
	for {
		idx := indexOf(haystack[i:], needle)
		if idx < 0 {
			return count
		}
		count++
		i += idx + len(needle)
	}
}
