package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/attrition/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetColorLabel(t *testing.T) {
	tests := []struct {
		name  string
		level schema.RiskLevel
		label string
	}{
		{"low", schema.LowRisk, LowValue},
		{"medium", schema.MediumRisk, MediumValue},
		{"high", schema.HighRisk, HighValue},
		{"unknown falls back to low", schema.RiskLevel("bogus"), LowValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetColorLabel(tt.level)
			// Should contain the plain label
			assert.Contains(t, result, tt.label)
		})
	}
}

func TestGetColorDelta(t *testing.T) {
	assert.Contains(t, GetColorDelta(8, "+8.0"), "+8.0")
	assert.Contains(t, GetColorDelta(-5, "-5.0"), "-5.0")
	assert.Equal(t, "0.0", GetColorDelta(0, "0.0"))
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		// Verify file was created
		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestGetRosterDBFilePath(t *testing.T) {
	path := GetRosterDBFilePath()

	assert.NotEmpty(t, path)
	assert.Contains(t, path, ".attrition_roster.db")

	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, homeDir), "path %s should start with home dir %s", path, homeDir)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		width  int
		prefix string
		suffix string
	}{
		{"short path unchanged", "EMP001", 10, "EMP001", "EMP001"},
		{"long path", "Engineering/Platform/Infra", 10, "...m/Infra", "Enginee..."},
		{"tiny width unchanged", "Engineering", 3, "Engineering", "Engineering"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.prefix, TruncatePath(tt.input, tt.width))
			assert.Equal(t, tt.suffix, TruncateText(tt.input, tt.width))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input   string
		want    bool
		wantErr bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
