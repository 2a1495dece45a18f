package ui

import (
	"testing"

	"github.com/Doppler617492/MagacinTracker-sub002/internal/warehouse"
)

func TestOccupancyColorMapping(t *testing.T) {
	tests := []struct {
		level warehouse.OccupancyLevel
		want  string
	}{
		{warehouse.Free, string(Success)},
		{warehouse.Partial, string(Warning)},
		{warehouse.Full, string(Destructive)},
	}
	for _, tc := range tests {
		if got := string(OccupancyColor(tc.level)); got != tc.want {
			t.Errorf("OccupancyColor(%v) = %s, want %s", tc.level, got, tc.want)
		}
	}
}

func TestThemes(t *testing.T) {
	light := LightTheme()
	if light.IsDark {
		t.Error("light theme marked dark")
	}
	dark := DarkTheme()
	if !dark.IsDark {
		t.Error("dark theme marked light")
	}
	if light.Background == dark.Background {
		t.Error("themes share a background color")
	}
}

func TestDetectThemeEnvOverride(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("MAGACIN_DARK_MODE", "1")
	if !DetectTheme().IsDark {
		t.Error("MAGACIN_DARK_MODE=1 must select the dark theme")
	}
}
