package component

import (
	"strconv"
	"strings"
)

// Pickup keeps the raw map properties of a coin, heart or power-up.
type Pickup struct {
	Properties map[string]string
}

// Int reads an integer property. Floats are truncated.
func (p Pickup) Int(name string) (int, bool) {
	raw, ok := p.Properties[name]
	if !ok {
		return 0, false
	}
	raw = strings.TrimSpace(raw)
	if v, err := strconv.Atoi(raw); err == nil {
		return v, true
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f), true
	}
	return 0, false
}

func (p Pickup) Has(name string) bool {
	_, ok := p.Properties[name]
	return ok
}

var PickupComponent = NewComponent[Pickup]()

// Speech is a line an ally says.
type Speech struct {
	Text string
}

var SpeechComponent = NewComponent[Speech]()
