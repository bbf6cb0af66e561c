package court

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"5", 5, false},
		{" 5 ", 5, false},
		{"05", 5, false},
		{"017", 17, false},
		{"1", 1, false},
		{"0", 0, true},
		{"18", 0, true},
		{"-3", 0, true},
		{"", 0, true},
		{"court 5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseID(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidID)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsStadium(t *testing.T) {
	assert.True(t, (&Court{ID: 17}).IsStadium())
	assert.False(t, (&Court{ID: 16}).IsStadium())
}
