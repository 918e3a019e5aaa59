package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestFormat_GroupsThousands(t *testing.T) {
	f := NewFormatter(language.Spanish)
	assert.Equal(t, "$1.234.567", f.Format(decimal.NewFromInt(1234567)))
	assert.Equal(t, "$0", f.Format(decimal.Zero))
}

func TestFormat_EnglishLocale(t *testing.T) {
	f := NewFormatter(language.English)
	assert.Equal(t, "$9,500", f.Format(decimal.NewFromInt(9500)))
	assert.Equal(t, "$1,234.50", f.Format(decimal.RequireFromString("1234.5")))
}
