package idx_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"simpleblog/pkg/idx"
)

func TestNew(t *testing.T) {
	id := idx.New()
	require.False(t, id.IsZero())
	require.Len(t, id.String(), 26, "canonical ULID length")

	parsed, err := idx.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestNewIsMonotonic(t *testing.T) {
	prev := idx.New()
	for range 1000 {
		next := idx.New()
		require.Less(t, prev.String(), next.String(),
			"IDs generated in sequence must sort in sequence")
		prev = next
	}
}

func TestNewAt(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	id := idx.NewAt(at)
	require.Equal(t, at.Truncate(time.Millisecond), id.Time())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"valid", idx.New().String(), false},
		{"valid with whitespace", "  " + idx.New().String() + "  ", false},
		{"empty", "", true},
		{"too short", "01ARZ3NDEKTSV", true},
		{"bad characters", "01ARZ3NDEKTSV4RRFFQ69G5F!V", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := idx.Parse(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, idx.ErrInvalid)
				require.True(t, id.IsZero())
				return
			}
			require.NoError(t, err)
			require.False(t, id.IsZero())
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	require.Panics(t, func() { idx.MustParse("not-a-ulid") })
}
