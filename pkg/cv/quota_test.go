package cv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/cvdesk/pkg/cv"
)

func TestRemainingSlots(t *testing.T) {
	tests := []struct {
		name         string
		current, max int
		want         int
	}{
		{"empty library", 0, 30, 30},
		{"some used", 3, 30, 27},
		{"exactly full", 30, 30, 0},
		{"over limit after lowering max", 12, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cv.RemainingSlots(tt.current, tt.max))
		})
	}
}

func TestValidateBatch(t *testing.T) {
	tests := []struct {
		name                 string
		size, remaining, cap int
		wantErr              error
	}{
		{"fits", 3, 10, 5, nil},
		{"exactly the cap", 5, 5, 5, nil},
		{"over the cap", 6, 30, 5, cv.ErrBatchTooLarge},
		{"cap is checked before quota", 6, 0, 5, cv.ErrBatchTooLarge},
		{"over remaining", 3, 2, 5, cv.ErrQuotaExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cv.ValidateBatch(tt.size, tt.remaining, tt.cap)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
