package dto

type CellResponse struct {
	CellID   int     `json:"cell_id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Priority float64 `json:"priority"`
}

type ListCellsResponse struct {
	Cells []CellResponse `json:"cells"`
}

type LocateResponse struct {
	Cell CellResponse `json:"cell"`
}
