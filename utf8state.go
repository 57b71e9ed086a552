package govte

import "fmt"

// utf8State is a node of the table-driven UTF-8 decoder (U), independent of
// and packed the same way as the outer VT machine's State.
type utf8State uint8

const (
	utf8Ground utf8State = iota
	utf8Tail1
	utf8Tail2
	utf8Tail3
	utf8U3_2E0
	utf8U3_2Ed
	utf8_4_3F0
	utf8_4_3F4
)

var utf8StateNames = [...]string{
	utf8Ground: "Ground",
	utf8Tail1:  "Tail1",
	utf8Tail2:  "Tail2",
	utf8Tail3:  "Tail3",
	utf8U3_2E0: "U3_2_e0",
	utf8U3_2Ed: "U3_2_ed",
	utf8_4_3F0: "Utf8_4_3_f0",
	utf8_4_3F4: "Utf8_4_3_f4",
}

func (s utf8State) String() string {
	if int(s) < len(utf8StateNames) {
		return utf8StateNames[s]
	}
	return fmt.Sprintf("utf8State(%d)", uint8(s))
}
