package phoneme_test

import (
	"testing"

	"github.com/f3rmion/phonix/internal/phoneme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventorySizes(t *testing.T) {
	t.Parallel()

	assert.Len(t, phoneme.ByCategory(phoneme.Vowel), 15)
	assert.Len(t, phoneme.ByCategory(phoneme.Consonant), 24)
	assert.Len(t, phoneme.All(), 39)
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  phoneme.Phoneme
	}{
		{"bare symbol", "EH", phoneme.EH},
		{"lowercase", "sh", phoneme.SH},
		{"stress digit", "IH1", phoneme.IH},
		{"label", "EH - (e.g., red, bed)", phoneme.EH},
		{"padded", "  ZH ", phoneme.ZH},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := phoneme.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Unknown(t *testing.T) {
	t.Parallel()

	_, err := phoneme.Parse("QQ")
	require.ErrorIs(t, err, phoneme.ErrUnknown)

	_, err = phoneme.Parse("")
	require.ErrorIs(t, err, phoneme.ErrUnknown)
}

func TestStripStress(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "IH", phoneme.StripStress("IH1"))
	assert.Equal(t, "AH", phoneme.StripStress("AH0"))
	assert.Equal(t, "SH", phoneme.StripStress("SH"))
	assert.Equal(t, "", phoneme.StripStress(""))
}

func TestLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "EH - (e.g., red, bed)", phoneme.EH.Label())
	assert.Equal(t, "ZH - (e.g., measure, vision)", phoneme.ZH.Label())
	assert.Equal(t, phoneme.Consonant, phoneme.NG.Category())
	assert.Equal(t, phoneme.Vowel, phoneme.OY.Category())
	assert.False(t, phoneme.Phoneme("XX").Valid())
}
