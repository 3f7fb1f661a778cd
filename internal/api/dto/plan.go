package dto

type PlanRequest struct {
	VehicleCount int    `json:"vehicle_count"`
	Format       string `json:"format"`
	SkipFailed   bool   `json:"skip_failed"`
	Stops        bool   `json:"stops"`
}

type PlanStopResponse struct {
	Seq         int     `json:"seq"`
	CellID      int     `json:"cell_id"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Priority    float64 `json:"priority"`
	LegDistance float64 `json:"leg_distance"`
}

type PlanResponse struct {
	VehicleID     int                `json:"vehicle_id"`
	Route         []int              `json:"route"`
	TotalDistance float64            `json:"total_distance"`
	Stops         []PlanStopResponse `json:"stops,omitempty"`
}

type PlanFailureResponse struct {
	VehicleID int    `json:"vehicle_id"`
	Error     string `json:"error"`
}

type ListPlanResponse struct {
	RunID    string                `json:"run_id"`
	Plans    []PlanResponse        `json:"plans"`
	Failures []PlanFailureResponse `json:"failures,omitempty"`
}
