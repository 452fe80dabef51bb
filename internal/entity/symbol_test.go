package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
)

func TestValidateJoin(t *testing.T) {
	t.Run("Accepts a letter and trims surrounding spaces", func(t *testing.T) {
		name, symbol, err := ValidateJoin("  Alice ", " X ")

		require.NoError(t, err)
		assert.Equal(t, "Alice", name)
		assert.Equal(t, "X", symbol)
	})

	t.Run("Accepts single emoji glyphs", func(t *testing.T) {
		for _, symbol := range []string{"🐱", "👍🏽", "👩‍💻", "🇯🇵", "❤️", "é"} {
			_, got, err := ValidateJoin("Bob", symbol)

			require.NoError(t, err, symbol)
			assert.Equal(t, symbol, got)
		}
	})

	t.Run("Rejects a blank name or symbol", func(t *testing.T) {
		for _, tc := range [][2]string{{"", "X"}, {"Alice", ""}, {"   ", "X"}, {"Alice", "\t"}} {
			_, _, err := ValidateJoin(tc[0], tc[1])

			assert.ErrorIs(t, err, apperror.ErrJoinFieldsMissing, tc)
		}
	})

	t.Run("Rejects symbols longer than one glyph", func(t *testing.T) {
		for _, symbol := range []string{"XO", "🐱🐶", "ab", "X 🐱"} {
			_, _, err := ValidateJoin("Alice", symbol)

			assert.ErrorIs(t, err, apperror.ErrInvalidSymbol, symbol)
		}
	})

	t.Run("Rejects invisible characters", func(t *testing.T) {
		_, _, err := ValidateJoin("Alice", "\u200b")

		assert.ErrorIs(t, err, apperror.ErrInvalidSymbol)
	})
}
