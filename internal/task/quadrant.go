package task

import "strings"

// Quadrant is one of the four Eisenhower priority categories.
type Quadrant string

const (
	QuadrantDo       Quadrant = "DO"       // important & urgent
	QuadrantSchedule Quadrant = "SCHEDULE" // important, not urgent
	QuadrantDelegate Quadrant = "DELEGATE" // urgent, not important
	QuadrantDelete   Quadrant = "DELETE"   // neither (eliminate)
)

// Quadrants lists all quadrants in priority order.
func Quadrants() []Quadrant {
	return []Quadrant{QuadrantDo, QuadrantSchedule, QuadrantDelegate, QuadrantDelete}
}

// Valid returns true if q is one of the four quadrants.
func (q Quadrant) Valid() bool {
	return q.Priority() > 0
}

// Priority returns the sort rank: DO=1, SCHEDULE=2, DELEGATE=3, DELETE=4.
// Unknown values rank 0.
func (q Quadrant) Priority() int {
	switch q {
	case QuadrantDo:
		return 1
	case QuadrantSchedule:
		return 2
	case QuadrantDelegate:
		return 3
	case QuadrantDelete:
		return 4
	default:
		return 0
	}
}

// Label returns the display label.
func (q Quadrant) Label() string {
	switch q {
	case QuadrantDo:
		return "DO FIRST"
	case QuadrantSchedule:
		return "SCHEDULE"
	case QuadrantDelegate:
		return "DELEGATE"
	case QuadrantDelete:
		return "ELIMINATE"
	default:
		return string(q)
	}
}

// Description returns the importance/urgency summary of the quadrant.
func (q Quadrant) Description() string {
	switch q {
	case QuadrantDo:
		return "Important & Urgent"
	case QuadrantSchedule:
		return "Important, Not Urgent"
	case QuadrantDelegate:
		return "Not Important, Urgent"
	case QuadrantDelete:
		return "Neither"
	default:
		return ""
	}
}

// Next cycles to the following quadrant, wrapping DELETE back to DO.
func (q Quadrant) Next() Quadrant {
	all := Quadrants()
	p := q.Priority()
	if p == 0 {
		return QuadrantDo
	}
	return all[p%len(all)]
}

// ParseQuadrant parses a quadrant name case-insensitively.
// "eliminate" and the numeric ranks "1".."4" are accepted as aliases.
func ParseQuadrant(s string) (Quadrant, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DO", "1":
		return QuadrantDo, nil
	case "SCHEDULE", "2":
		return QuadrantSchedule, nil
	case "DELEGATE", "3":
		return QuadrantDelegate, nil
	case "DELETE", "ELIMINATE", "4":
		return QuadrantDelete, nil
	default:
		return "", ErrInvalidQuadrant
	}
}
