// Package permissions decides whether an actor may perform an
// operation, given the capability codes granted to them. It is pure
// set logic with no I/O so it can gate every mutating request and be
// tested exhaustively; loading the actor's grants is the caller's job.
package permissions

// Requirement describes the capability codes an operation demands
type Requirement struct {
	mode  string // "single", "any", "all"
	codes []string
}

// Single requires exactly one capability code
func Single(code string) Requirement {
	return Requirement{mode: "single", codes: []string{code}}
}

// Any requires at least one of the given codes
func Any(codes ...string) Requirement {
	return Requirement{mode: "any", codes: codes}
}

// All requires every one of the given codes
func All(codes ...string) Requirement {
	return Requirement{mode: "all", codes: codes}
}

// Set is the collection of capability codes granted to an actor
type Set map[string]struct{}

// NewSet builds a capability set from code strings
func NewSet(codes ...string) Set {
	s := make(Set, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

// Has reports whether the set contains the code
func (s Set) Has(code string) bool {
	_, ok := s[code]
	return ok
}

// Authorize reports whether an actor holding caps may perform the
// operation guarded by req. A system role bypasses every check.
func Authorize(caps Set, isSystemRole bool, req Requirement) bool {
	if isSystemRole {
		return true
	}

	switch req.mode {
	case "single":
		return len(req.codes) == 1 && caps.Has(req.codes[0])
	case "any":
		for _, c := range req.codes {
			if caps.Has(c) {
				return true
			}
		}
		return false
	case "all":
		if len(req.codes) == 0 {
			return false
		}
		for _, c := range req.codes {
			if !caps.Has(c) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
