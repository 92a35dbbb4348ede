package status

import "strings"

// NormalizeSerial trims and upper-cases a serial number so rows from
// different sources compare equal.
func NormalizeSerial(serial string) string {
	return strings.ToUpper(strings.TrimSpace(serial))
}

// SerialSet is a membership set of normalized serial numbers.
type SerialSet map[string]struct{}

func NewSerialSet(serials ...string) SerialSet {
	set := make(SerialSet, len(serials))
	for _, s := range serials {
		set.Add(s)
	}
	return set
}

func (s SerialSet) Add(serial string) {
	if n := NormalizeSerial(serial); n != "" {
		s[n] = struct{}{}
	}
}

func (s SerialSet) Contains(serial string) bool {
	_, ok := s[NormalizeSerial(serial)]
	return ok
}

func (s SerialSet) Len() int {
	return len(s)
}
