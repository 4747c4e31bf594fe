package console

// EventKind identifies a logical editing action decoded from raw keys
type EventKind int

const (
	EventNone EventKind = iota
	EventInsert
	EventSubmit
	EventDeleteBefore
	EventDeleteAt
	EventHome
	EventEnd
	EventLeft
	EventRight
	EventUp
	EventDown
	EventToggleReplace
)

var eventNames = map[EventKind]string{
	EventNone:          "none",
	EventInsert:        "insert",
	EventSubmit:        "submit",
	EventDeleteBefore:  "delete before",
	EventDeleteAt:      "delete at",
	EventHome:          "home",
	EventEnd:           "end",
	EventLeft:          "left",
	EventRight:         "right",
	EventUp:            "up",
	EventDown:          "down",
	EventToggleReplace: "toggle replace",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// KeyEvent is one logical keystroke. Char carries the raw code for
// single-code events (insert, submit, delete before) and is zero for
// decoded sequences.
type KeyEvent struct {
	Kind EventKind
	Char rune
}

// Raw key codes
const (
	keyBackspace = '\b'
	keyDelete    = 127
	keyEscape    = 27

	// Console scan-code prefixes (conio-style getch)
	scanPrefixExtended = 0xE0
	scanPrefixFunction = 0x00
)

var scanCodeEvents = map[rune]EventKind{
	71: EventHome,
	72: EventUp,
	75: EventLeft,
	77: EventRight,
	79: EventEnd,
	80: EventDown,
	82: EventToggleReplace,
	83: EventDeleteAt,
}

// CSI / SS3 final bytes without parameters
var finalByteEvents = map[rune]EventKind{
	'A': EventUp,
	'B': EventDown,
	'C': EventRight,
	'D': EventLeft,
	'H': EventHome,
	'F': EventEnd,
}

// CSI n ~ sequences
var tildeEvents = map[int]EventKind{
	1: EventHome,
	2: EventToggleReplace,
	3: EventDeleteAt,
	4: EventEnd,
	7: EventHome,
	8: EventEnd,
}

type decoderState int

const (
	stateIdle decoderState = iota
	stateScanCode
	stateEscape
	stateCSI
	stateSS3
)

// maxCSIParams bounds the parameter bytes collected for one CSI sequence
const maxCSIParams = 16

// KeyDecoder turns a stream of raw key codes into KeyEvents. Navigation keys
// arrive as multi-code sequences, so the decoder keeps state between Feed
// calls. It is not safe for concurrent use.
type KeyDecoder struct {
	// ScanCodes enables the 0xE0/0x00 prefix used by console APIs that
	// report navigation keys as scan codes. Leave it off for UTF-8 terminals,
	// where 0xE0 is a printable rune.
	ScanCodes bool

	state  decoderState
	params []rune
}

// NewKeyDecoder creates a decoder for ANSI terminals
func NewKeyDecoder() *KeyDecoder {
	return &KeyDecoder{params: make([]rune, 0, maxCSIParams)}
}

// Pending reports whether the decoder is in the middle of a sequence
func (d *KeyDecoder) Pending() bool {
	return d.state != stateIdle
}

// Reset drops any partially decoded sequence
func (d *KeyDecoder) Reset() {
	d.state = stateIdle
	d.params = d.params[:0]
}

// Feed consumes one raw code. It returns false while a sequence is still
// being collected and for sequences that do not map to any event.
func (d *KeyDecoder) Feed(code rune) (KeyEvent, bool) {
	switch d.state {
	case stateScanCode:
		d.state = stateIdle
		if kind, ok := scanCodeEvents[code]; ok {
			return KeyEvent{Kind: kind}, true
		}
		return KeyEvent{}, false

	case stateEscape:
		switch code {
		case '[':
			d.state = stateCSI
			d.params = d.params[:0]
		case 'O':
			d.state = stateSS3
		default:
			d.state = stateIdle
		}
		return KeyEvent{}, false

	case stateSS3:
		d.state = stateIdle
		if kind, ok := finalByteEvents[code]; ok {
			return KeyEvent{Kind: kind}, true
		}
		return KeyEvent{}, false

	case stateCSI:
		return d.feedCSI(code)
	}

	switch {
	case code == '\r' || code == '\n':
		return KeyEvent{Kind: EventSubmit, Char: code}, true
	case code == keyBackspace || code == keyDelete:
		return KeyEvent{Kind: EventDeleteBefore, Char: code}, true
	case code == keyEscape:
		d.state = stateEscape
		return KeyEvent{}, false
	case d.ScanCodes && (code == scanPrefixExtended || code == scanPrefixFunction):
		d.state = stateScanCode
		return KeyEvent{}, false
	}
	return KeyEvent{Kind: EventInsert, Char: code}, true
}

func (d *KeyDecoder) feedCSI(code rune) (KeyEvent, bool) {
	switch {
	case (code >= '0' && code <= '9') || code == ';':
		if len(d.params) >= maxCSIParams {
			d.Reset()
			return KeyEvent{}, false
		}
		d.params = append(d.params, code)
		return KeyEvent{}, false

	case code >= 0x40 && code <= 0x7E:
		params := d.params
		d.Reset()
		if code == '~' {
			if kind, ok := tildeEvents[leadingParam(params)]; ok {
				return KeyEvent{Kind: kind}, true
			}
			return KeyEvent{}, false
		}
		// Modifier parameters (ESC [ 1 ; 5 C) do not change the motion
		if kind, ok := finalByteEvents[code]; ok {
			return KeyEvent{Kind: kind}, true
		}
		return KeyEvent{}, false

	case code >= 0x20 && code <= 0x2F:
		// intermediate bytes, keep collecting
		return KeyEvent{}, false
	}

	d.Reset()
	return KeyEvent{}, false
}

// leadingParam returns the first numeric CSI parameter, or -1 if absent
func leadingParam(params []rune) int {
	n, seen := 0, false
	for _, r := range params {
		if r == ';' {
			break
		}
		n = n*10 + int(r-'0')
		seen = true
	}
	if !seen {
		return -1
	}
	return n
}
