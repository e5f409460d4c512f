package tui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_Distinct(t *testing.T) {
	errs := []error{ErrMissingPresentationService, ErrMissingExportService, ErrMissingOwner}
	for i, a := range errs {
		for j, b := range errs {
			if i != j {
				assert.False(t, errors.Is(a, b))
			}
		}
	}
}

func TestErrors_Messages(t *testing.T) {
	assert.Contains(t, ErrMissingPresentationService.Error(), "presentation service")
	assert.Contains(t, ErrMissingExportService.Error(), "export service")
	assert.Contains(t, ErrMissingOwner.Error(), "owner")
}
