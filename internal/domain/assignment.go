package domain

import "slices"

// Identifier of a vehicle (UAV).
type VehicleID int

// Maps each vehicle to the cells it must visit during one planning run.
// Assignments are produced upstream; a cell is expected to appear under at most one vehicle.
type Assignment map[VehicleID][]Cell

// Return the vehicle ids in ascending order.
func (a Assignment) Vehicles() []VehicleID {
	ids := make([]VehicleID, 0, len(a))
	for id := range a {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Return the total number of assigned cells across all vehicles.
func (a Assignment) CellCount() int {
	n := 0
	for _, cells := range a {
		n += len(cells)
	}
	return n
}
