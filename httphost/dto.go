package httphost

import (
	"time"

	"github.com/google/uuid"
)

// CellRequest addresses one grid cell.
type CellRequest struct {
	X *int `json:"x" binding:"required"`
	Y *int `json:"y" binding:"required"`
}

// RunRequest starts a run; an empty Strategy uses the controller default.
type RunRequest struct {
	Strategy string `json:"strategy"`
}

// MazeRequest generates a maze; a zero Seed uses the orchestrator's source.
type MazeRequest struct {
	Strategy           string   `json:"strategy" binding:"required"`
	Seed               int64    `json:"seed"`
	JoinChance         *float64 `json:"join_chance"`
	ExtraPassageChance *float64 `json:"extra_passage_chance"`
}

// ClearRequest clears search flags and, when Walls is set, every wall.
type ClearRequest struct {
	Walls bool `json:"walls"`
}

// HitQuery is a world-coordinate point.
type HitQuery struct {
	X *float64 `form:"x" binding:"required"`
	Y *float64 `form:"y" binding:"required"`
}

// Position is a cell coordinate.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CellResponse describes one cell.
type CellResponse struct {
	Position
	Kind     string `json:"kind"`
	Color    string `json:"color"`
	Walkable bool   `json:"walkable"`
}

// GridResponse is a full snapshot.
type GridResponse struct {
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Source  Position `json:"source"`
	Dest    Position `json:"dest"`
	Running bool     `json:"running"`
	Rows    []string `json:"rows"`
	Summary string   `json:"summary"`
}

// ResultResponse is a finished run.
type ResultResponse struct {
	RunID    uuid.UUID     `json:"run_id"`
	Strategy string        `json:"strategy"`
	Outcome  string        `json:"outcome"`
	Steps    int           `json:"steps"`
	Path     []Position    `json:"path"`
	Elapsed  time.Duration `json:"elapsed_ns"`
}

// StatusResponse reports whether a run is active and the latest result.
type StatusResponse struct {
	Running bool            `json:"running"`
	Last    *ResultResponse `json:"last,omitempty"`
}

// MazeResponse reports generator statistics.
type MazeResponse struct {
	Strategy string   `json:"strategy"`
	Rooms    int      `json:"rooms"`
	Passages int      `json:"passages"`
	Source   Position `json:"source"`
	Dest     Position `json:"dest"`
}
