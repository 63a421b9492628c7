package charset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEUCJP_DecodeStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      []byte
		want    string
		wantErr bool
	}{
		{"JIS X 0212 丂", []byte{0x8f, 0xb0, 0xa1}, "丂", false},
		{"JIS X 0208 pair", []byte{0xb0, 0xa1}, "亜", false},
		{"unassigned JIS X 0212 row", []byte{0x8f, 0xa1, 0xa1}, "", true},
		{"invalid lead bytes", []byte{0xff, 0xff, 0xff}, "", true},
		{"truncated 3-byte sequence", []byte{0x8f, 0xb0}, "", true},
		{"empty", nil, "", true},
	}

	var dec EUCJP
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dec.DecodeStrict(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidSequence), "error should wrap ErrInvalidSequence: %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
