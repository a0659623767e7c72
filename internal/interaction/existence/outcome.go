// Package existence asks a remote record service whether an id resolves.
package existence

// Outcome classifies a single existence check. The zero value is Unreachable
// so an unset outcome never reads as found.
type Outcome int

const (
	Unreachable Outcome = iota
	Found
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	default:
		return "unreachable"
	}
}

// Exists collapses an outcome to a plain yes/no: only Found is true.
func Exists(o Outcome) bool {
	return o == Found
}
