package checkbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupported(t *testing.T) {
	tests := []struct {
		version   string
		supported bool
	}{
		{"2.9.0", true},
		{"2.9.1", true},
		{"2.10.0", true},
		{"3.0.0", true},
		{"2.9", true},
		{"2.8.9", false},
		{"1.0.0", false},
	}
	for _, test := range tests {
		t.Run(test.version, func(t *testing.T) {
			ok, err := Supported(test.version)
			require.NoError(t, err)
			assert.Equal(t, test.supported, ok)
		})
	}
}

func TestSupportedGarbage(t *testing.T) {
	_, err := Supported("not-a-version")
	assert.Error(t, err)
}
