package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/presentai/presentai/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view     ViewType
		expected string
	}{
		{ViewMenu, "menu"},
		{ViewPresentations, "presentations"},
		{ViewOutline, "outline"},
		{ViewThemes, "themes"},
		{ViewSettings, "settings"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.view.String())
		})
	}
}

func TestViewType_Distinct(t *testing.T) {
	views := []ViewType{ViewMenu, ViewPresentations, ViewOutline, ViewThemes, ViewSettings, ViewHelp}
	seen := make(map[ViewType]bool)
	for _, v := range views {
		assert.False(t, seen[v], "duplicate view %s", v)
		seen[v] = true
	}
}

func TestPresentationExported_CarriesResult(t *testing.T) {
	msg := PresentationExported{
		ID:     "p1",
		Path:   "/tmp/deck.pptx",
		Result: &domain.ExportResult{FileName: "deck.pptx", SlideCount: 3},
	}

	assert.Equal(t, "p1", msg.ID)
	assert.Equal(t, 3, msg.Result.SlideCount)
	assert.NoError(t, msg.Err)
}

func TestErrorOccurred(t *testing.T) {
	err := errors.New("boom")
	msg := ErrorOccurred{Err: err}

	assert.Equal(t, err, msg.Err)
}

func TestSettingsLoaded(t *testing.T) {
	msg := SettingsLoaded{Entries: []SettingEntry{{Key: "user.id", Value: "local"}}}

	assert.Len(t, msg.Entries, 1)
	assert.Equal(t, "user.id", msg.Entries[0].Key)
}
