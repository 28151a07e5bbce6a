package graph

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/specialistvlad/sodggo/internal/path"
)

// Sentinel errors for graph operations. Returned errors wrap one of these;
// test with errors.Is.
var (
	// ErrNotFound is returned when an operation references a vertex or edge
	// that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAttributeNotFound is returned when resolution exhausts the parent
	// chain without finding a label.
	ErrAttributeNotFound = errors.New("attribute not found")

	// ErrCycle is returned when the parent chain loops or exceeds the
	// configured hop bound while looking for a label.
	ErrCycle = errors.New("parent chain cycle")

	// ErrMergeConflict is returned when two graphs disagree about the same
	// address during a merge.
	ErrMergeConflict = errors.New("merge conflict")

	// ErrRootInUse is returned when removing the root while other vertices
	// still exist.
	ErrRootInUse = errors.New("root vertex cannot be removed while the graph has other vertices")

	// ErrInvalidLabel is returned when an edge label cannot be used in a path.
	ErrInvalidLabel = errors.New("invalid label")
)

// MergeConflictError describes a disagreement found while merging. For
// payload conflicts Primary and Secondary hold both payloads; for structural
// conflicts Label names the edge whose targets disagree.
type MergeConflictError struct {
	Address   path.Path
	Label     string
	Primary   []byte
	Secondary []byte
}

// Error implements the error interface.
func (e *MergeConflictError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("merge conflict at %q: edge %q already points elsewhere", e.Address.String(), e.Label)
	}
	return fmt.Sprintf("merge conflict at %q: payload %s differs from %s",
		e.Address.String(), hex.EncodeToString(e.Primary), hex.EncodeToString(e.Secondary))
}

// Is makes errors.Is(err, ErrMergeConflict) match.
func (e *MergeConflictError) Is(target error) bool {
	return target == ErrMergeConflict
}
