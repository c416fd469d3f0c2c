package xyaml

// State is the stage a load has reached.
type State int

const (
	Parsed State = iota
	Merged
	Resolving
	Realized
)

func (s State) String() string {
	switch s {
	case Parsed:
		return "parsed"
	case Merged:
		return "merged"
	case Resolving:
		return "resolving"
	case Realized:
		return "realized"
	}
	return "<unknown state>"
}
