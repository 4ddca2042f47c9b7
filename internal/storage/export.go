package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

type ExportData struct {
	RunMetadata
	Steps int `json:"steps"`
	Trajectory
}

// ExportJSON writes a run's metadata and trajectory as one JSON document.
func (s *Store) ExportJSON(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	tr, err := s.LoadStates(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{RunMetadata: *meta, Steps: len(tr.Times), Trajectory: *tr})
}

// ExportCSV copies a run's states.csv to w.
func (s *Store) ExportCSV(runID string, w io.Writer) error {
	src, err := os.Open(s.CSVPath(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return err
	}
	defer src.Close()

	_, err = io.Copy(w, src)
	return err
}
