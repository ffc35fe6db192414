package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigError_MessageAndConstructor(t *testing.T) {
	err := NewConfigError("MeshSize", "must be positive")
	assert.Equal(t, "config: MeshSize: must be positive", err.Error())
}

func TestAllocError_UnwrapsUnderlyingError(t *testing.T) {
	base := errors.New("out of memory")
	err := &AllocError{Component: "mesh", Err: base}
	assert.ErrorIs(t, err, base)
}

func TestInsufficientData_ErrorsAsMatchesType(t *testing.T) {
	var err error = &InsufficientData{Component: "detect", Reason: "too few noise clumps"}
	var target *InsufficientData
	assert.ErrorAs(t, err, &target)
	assert.Equal(t, "detect", target.Component)
}

func TestInternalInvariant_Message(t *testing.T) {
	err := &InternalInvariant{Component: "segment", Detail: "clump count mismatch"}
	assert.Contains(t, err.Error(), "internal invariant violated")
}
