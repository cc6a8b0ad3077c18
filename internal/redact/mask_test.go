package redact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ---- Table test ----

func TestMask_TableTest(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		maskChar rune
		showLast int
		want     string
	}{
		{
			name:     "show last four",
			value:    "4111111111111111",
			maskChar: '*',
			showLast: 4,
			want:     "************1111",
		},
		{
			name:     "custom mask character",
			value:    "secret",
			maskChar: '#',
			showLast: 2,
			want:     "####et",
		},
		{
			name:     "showLast zero - constant width token",
			value:    "a very long secret value indeed",
			maskChar: '*',
			showLast: 0,
			want:     "********",
		},
		{
			name:     "negative showLast treated as zero",
			value:    "secret",
			maskChar: '*',
			showLast: -3,
			want:     "********",
		},
		{
			name:     "showLast equals length - fully masked",
			value:    "abcd",
			maskChar: '*',
			showLast: 4,
			want:     "****",
		},
		{
			name:     "showLast exceeds length - no negative slicing",
			value:    "ab",
			maskChar: '*',
			showLast: 10,
			want:     "**",
		},
		{
			name:     "empty value with positive showLast",
			value:    "",
			maskChar: '*',
			showLast: 4,
			want:     "",
		},
		{
			name:     "empty value with zero showLast still yields the token",
			value:    "",
			maskChar: '*',
			showLast: 0,
			want:     "********",
		},
		{
			name:     "multi-byte runes keep visible tail",
			value:    "пароль123",
			maskChar: '*',
			showLast: 3,
			want:     "******123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Mask(tt.value, tt.maskChar, tt.showLast))
		})
	}
}

// ---- Determinism ----

func TestMask_Deterministic(t *testing.T) {
	first := Mask("confidential", '#', 3)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Mask("confidential", '#', 3))
	}
}

// ---- Constant token is independent of input length ----

func TestMask_TokenWidthIndependentOfInput(t *testing.T) {
	short := Mask("x", '*', 0)
	long := Mask("xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx", '*', 0)

	assert.Equal(t, short, long)
	assert.Len(t, short, maskedTokenWidth)
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "########", MaskToken('#'))
}
