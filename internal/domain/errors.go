package domain

import "fmt"

// EmptyAssignmentError is returned when a vehicle has no cells to visit.
type EmptyAssignmentError struct {
	VehicleID *VehicleID
}

func (e *EmptyAssignmentError) Error() string {
	if e.VehicleID != nil {
		return fmt.Sprintf("empty assignment: vehicle %d has no cells", *e.VehicleID)
	}
	return "empty assignment: no cells to route"
}

// InvalidInputError is returned for cells with non-finite values or an ambiguous identity.
type InvalidInputError struct {
	CellID CellID
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: cell %d: %s", e.CellID, e.Reason)
}

// IncompleteDistanceDataError is returned when a distance required by route
// construction is missing. It signals an integration bug, not bad data.
type IncompleteDistanceDataError struct {
	From CellID
	To   CellID
}

func (e *IncompleteDistanceDataError) Error() string {
	return fmt.Sprintf("incomplete distance data: missing distance from %d to %d", e.From, e.To)
}
