package entity

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
)

// ValidateJoin trims the name and symbol and checks that both are present and that the
// symbol renders as exactly one character. Emoji sequences joined with ZWJ or carrying
// skin-tone modifiers count as one character.
func ValidateJoin(name, symbol string) (string, string, error) {
	name = strings.TrimSpace(name)
	symbol = strings.TrimSpace(symbol)

	if name == "" || symbol == "" {
		return "", "", apperror.ErrJoinFieldsMissing
	}

	if !IsSingleGlyph(symbol) {
		return "", "", apperror.ErrInvalidSymbol
	}

	return name, symbol, nil
}

func IsSingleGlyph(symbol string) bool {
	if uniseg.GraphemeClusterCount(symbol) != 1 {
		return false
	}

	first, _ := utf8.DecodeRuneInString(symbol)

	return first != utf8.RuneError && unicode.IsGraphic(first)
}
