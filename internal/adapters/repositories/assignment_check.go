package repositories

import (
	"errors"
	"fmt"

	"hex-coverage-planner/internal/domain"
)

// checkAssignment rejects vehicles outside the fleet and cells assigned twice.
func checkAssignment(vehicleCount int, assignment domain.Assignment) error {
	if vehicleCount < 1 {
		return errors.New("replace assignments: vehicle count must be at least 1")
	}

	owner := make(map[domain.CellID]domain.VehicleID, assignment.CellCount())
	for _, vid := range assignment.Vehicles() {
		if vid < 0 || int(vid) >= vehicleCount {
			return fmt.Errorf("replace assignments: vehicle %d outside fleet of %d", vid, vehicleCount)
		}
		for _, c := range assignment[vid] {
			if prev, ok := owner[c.ID]; ok {
				return fmt.Errorf("replace assignments: hex %d assigned to vehicles %d and %d", c.ID, prev, vid)
			}
			owner[c.ID] = vid
		}
	}
	return nil
}
