package placement

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/frahmantamala/employee-directory/internal"
)

// Candidate is the employee being assigned. ID is zero for an employee that
// has not been saved yet.
type Candidate struct {
	ID       int64
	Name     string
	Position string
}

// Desk is the proposed workstation.
type Desk struct {
	WorkstationID int64
	Number        string
}

// Occupant is another employee currently assigned to a desk.
type Occupant struct {
	EmployeeID int64  `db:"employee_id"`
	FirstName  string `db:"first_name"`
	LastName   string `db:"last_name"`
	Position   string `db:"position"`
	DeskNumber string `db:"desk_number"`
}

func (o Occupant) Name() string {
	return strings.TrimSpace(o.LastName + " " + o.FirstName)
}

type Conflict struct {
	DeskA            string `json:"desk_a"`
	DeskB            string `json:"desk_b"`
	EmployeeID       int64  `json:"employee_id"`
	EmployeeName     string `json:"employee_name"`
	EmployeePosition string `json:"employee_position"`
}

func (c Conflict) Message() string {
	return fmt.Sprintf("desk %s is next to desk %s occupied by %s (%s): testers and developers cannot sit at neighbouring desks",
		c.DeskA, c.DeskB, c.EmployeeName, c.EmployeePosition)
}

// Result is Ok when it holds no conflicts.
type Result struct {
	Conflicts []Conflict `json:"conflicts,omitempty"`
}

func (r Result) OK() bool {
	return len(r.Conflicts) == 0
}

// Err returns nil for an Ok result and a CONFLICT AppError otherwise.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return internal.NewConflictError(r.Conflicts[0].Message(), internal.ErrCodePlacementConflict).
		WithDetails(r)
}

// ParseDeskNumber reports the integer value of a desk number. Non-numeric
// desk numbers are exempt from adjacency rules.
func ParseDeskNumber(number string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(number))
	if err != nil {
		return 0, false
	}
	return n, true
}

// NeighbourDeskNumbers returns the desk numbers adjacent to number, or nil
// when number is not numeric.
func NeighbourDeskNumbers(number string) []string {
	n, ok := ParseDeskNumber(number)
	if !ok {
		return nil
	}
	neighbours := make([]string, 0, 2)
	if n > math.MinInt {
		neighbours = append(neighbours, strconv.Itoa(n-1))
	}
	if n < math.MaxInt {
		neighbours = append(neighbours, strconv.Itoa(n+1))
	}
	return neighbours
}

// adjacent reports whether two desks are one apart. Desks at the integer
// limits have a single neighbour.
func adjacent(a, b int) bool {
	return (a > math.MinInt && b == a-1) || (a < math.MaxInt && b == a+1)
}

// Validate checks a proposed desk against the current occupants. occupants
// may contain anyone, including the candidate; only numeric neighbours of
// the proposed desk are considered.
func Validate(candidate Candidate, proposed *Desk, occupants []Occupant) Result {
	if proposed == nil {
		return Result{}
	}
	desk, ok := ParseDeskNumber(proposed.Number)
	if !ok {
		return Result{}
	}

	candidateRole := ClassifyPosition(candidate.Position)
	if candidateRole == RoleNone {
		return Result{}
	}

	var conflicts []Conflict
	for _, o := range occupants {
		if candidate.ID != 0 && o.EmployeeID == candidate.ID {
			continue
		}
		n, ok := ParseDeskNumber(o.DeskNumber)
		if !ok || !adjacent(desk, n) {
			continue
		}
		if !Incompatible(candidateRole, ClassifyPosition(o.Position)) {
			continue
		}
		conflicts = append(conflicts, Conflict{
			DeskA:            strconv.Itoa(desk),
			DeskB:            strconv.Itoa(n),
			EmployeeID:       o.EmployeeID,
			EmployeeName:     o.Name(),
			EmployeePosition: o.Position,
		})
	}

	sort.SliceStable(conflicts, func(i, j int) bool {
		if conflicts[i].DeskB != conflicts[j].DeskB {
			a, _ := strconv.Atoi(conflicts[i].DeskB)
			b, _ := strconv.Atoi(conflicts[j].DeskB)
			return a < b
		}
		return conflicts[i].EmployeeID < conflicts[j].EmployeeID
	})

	return Result{Conflicts: conflicts}
}
