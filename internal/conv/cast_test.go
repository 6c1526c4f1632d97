package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntToUint32(t *testing.T) {
	v, err := IntToUint32(42)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), v)

	_, err = IntToUint32(-1)
	assert.ErrorIs(t, err, ErrOverflow)

	if math.MaxInt > math.MaxUint32 {
		_, err = IntToUint32(math.MaxUint32 + 1)
		assert.ErrorIs(t, err, ErrOverflow)
	}
}

func TestInt64ToInt(t *testing.T) {
	v, err := Int64ToInt(1 << 20)
	require.NoError(t, err)
	assert.Equal(t, 1<<20, v)

	_, err = Int64ToInt(-5)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestMulInt(t *testing.T) {
	tests := []struct {
		a, b    int
		want    int
		wantErr bool
	}{
		{0, 5, 0, false},
		{8, 2048, 16384, false},
		{math.MaxInt, 2, 0, true},
		{-1, 3, 0, true},
	}

	for _, tt := range tests {
		got, err := MulInt(tt.a, tt.b)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrOverflow)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
