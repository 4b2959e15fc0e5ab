package models

import "time"

// RebuildReport - итог полного пересчета кешей
type RebuildReport struct {
	Cells                int           `json:"cells"`
	CellFailures         int           `json:"cell_failures"`
	Assigned             int           `json:"assigned"`
	Neighborhoods        int           `json:"neighborhoods"`
	NeighborhoodFailures int           `json:"neighborhood_failures"`
	Duration             time.Duration `json:"duration"`
}
