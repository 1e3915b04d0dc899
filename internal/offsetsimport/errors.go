package offsetsimport

import "fmt"

// Row-level failures carry the survey row's unique identifier so the run
// log can point straight at the offending record. All of them are caught at
// the row boundary: the pipeline logs and moves to the next row.

// JoinMissError marks an identifier absent from a required cross-source
// table. Non-fatal: the row is skipped.
type JoinMissError struct {
	UniqueID string
	Source   string
}

func (e *JoinMissError) Error() string {
	return fmt.Sprintf("row %s: no match in %s", e.UniqueID, e.Source)
}

// ReferenceDataMissingError marks a reference name (permit or
// implementation time) a row depends on that was not loaded from the store.
type ReferenceDataMissingError struct {
	UniqueID string
	Name     string
}

func (e *ReferenceDataMissingError) Error() string {
	return fmt.Sprintf("row %s: reference data missing for %q", e.UniqueID, e.Name)
}

// UnmappedCategoryError marks a free-text category or duration value with
// no canonical code. Fatal for the row, never silently substituted.
type UnmappedCategoryError struct {
	UniqueID string
	Field    string
	Value    string
}

func (e *UnmappedCategoryError) Error() string {
	return fmt.Sprintf("row %s: unmapped %s value %q", e.UniqueID, e.Field, e.Value)
}

// PersistenceError marks a failed write for one row. The remainder of that
// row's sub-writes is skipped; the run continues.
type PersistenceError struct {
	UniqueID string
	Op       string
	Err      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("row %s: %s: %v", e.UniqueID, e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
