package domain

// Ordered visitation sequence of cell ids for one vehicle.
// A Route is a permutation of the vehicle's assigned cells.
type Route []CellID

// Represents a single stop in a vehicle route.
// LegDistance is the distance travelled from the previous stop (zero for the first one).
type RouteStop struct {
	Seq         int
	CellID      CellID
	Position    Position
	Priority    float64
	LegDistance float64
}

// Represents the planned coverage route for a single vehicle.
// A RoutePlan is the output of route planning and describes the ordered
// sequence of cells along with the total travelled distance.
// It is immutable planning data and contains no side effects.
type RoutePlan struct {
	RunID         string
	VehicleID     VehicleID
	Route         Route
	Stops         []RouteStop
	TotalDistance float64
}
