package core

import (
	"fmt"
	"strings"
)

// Placement selects the parent edge an element is anchored to on one axis.
type Placement int

const (
	// PlacementStart anchors to the near edge; the offset is measured from it.
	PlacementStart Placement = iota
	// PlacementEnd anchors to the far edge; the offset is measured backward.
	PlacementEnd
	// PlacementCenter centers the element. The offset is ignored but margin
	// and padding imbalance still bias the result.
	PlacementCenter
)

// String returns a human-readable representation of the placement.
func (p Placement) String() string {
	switch p {
	case PlacementStart:
		return "start"
	case PlacementEnd:
		return "end"
	case PlacementCenter:
		return "center"
	default:
		return fmt.Sprintf("Placement(%d)", int(p))
	}
}

// ParsePlacement parses "start", "end" or "center" (case-insensitive).
// The empty string parses as PlacementStart.
func ParsePlacement(s string) (Placement, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "start":
		return PlacementStart, nil
	case "end":
		return PlacementEnd, nil
	case "center":
		return PlacementCenter, nil
	}
	return PlacementStart, fmt.Errorf("unknown placement %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Placement) MarshalText() ([]byte, error) {
	if p < PlacementStart || p > PlacementCenter {
		return nil, fmt.Errorf("invalid placement %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Placement) UnmarshalText(text []byte) error {
	v, err := ParsePlacement(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
