package model

import (
	"fmt"
	"strings"
)

// SchemaError reports required input columns missing from a source. It is
// fatal for the run: no cleaning or merging proceeds without the columns.
type SchemaError struct {
	Source  string   // "catalog", "awards", "biographical"
	Missing []string // column names absent from the input
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required columns: %s", e.Source, strings.Join(e.Missing, ", "))
}

// EmptyResultError reports a cleaning or join stage that reduced a table to
// zero rows. The orchestrator fails the run rather than persist an empty
// artifact.
type EmptyResultError struct {
	Stage string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("%s: stage produced zero rows", e.Stage)
}
