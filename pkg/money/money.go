// Package money formatea montos en pesos para tiquetes y exportaciones.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale es la configuración regional de la cafetería.
var DefaultLocale = language.MustParse("es-CO")

// Formatter formatea montos con separadores de la configuración regional.
type Formatter struct {
	p *message.Printer
}

// NewFormatter crea un formateador para el idioma dado.
func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{p: message.NewPrinter(tag)}
}

// Format devuelve el monto con signo $; sin decimales si el monto es entero.
func (f *Formatter) Format(d decimal.Decimal) string {
	if d.IsInteger() {
		return f.p.Sprintf("$%d", d.IntPart())
	}
	return f.p.Sprintf("$%.2f", d.Round(2).InexactFloat64())
}

var std = NewFormatter(DefaultLocale)

// Format usa la configuración regional por defecto.
func Format(d decimal.Decimal) string {
	return std.Format(d)
}
