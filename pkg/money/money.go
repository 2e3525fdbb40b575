// Package money formatea montos y cantidades para presentación: redondeo a dos
// decimales con shopspring/decimal y separadores de miles según el locale.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DisplayPlaces decimales usados al mostrar resultados.
const DisplayPlaces = 2

// Round redondea un float64 a DisplayPlaces decimales.
func Round(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(DisplayPlaces)
}

// Formatter aplica el locale y el símbolo de moneda configurados.
type Formatter struct {
	printer  *message.Printer
	currency string
}

// NewFormatter construye el formateador. Un locale inválido cae a inglés.
func NewFormatter(locale, currency string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{printer: message.NewPrinter(tag), currency: strings.TrimSpace(currency)}
}

// Number formatea con separadores de miles y DisplayPlaces decimales.
func (f *Formatter) Number(d decimal.Decimal) string {
	return f.printer.Sprintf("%.2f", d.Round(DisplayPlaces).InexactFloat64())
}

// Currency antepone el símbolo de moneda: "Rp 1.000.000,00".
func (f *Formatter) Currency(d decimal.Decimal) string {
	if f.currency == "" {
		return f.Number(d)
	}
	if d.IsNegative() {
		return "-" + f.currency + " " + f.Number(d.Neg())
	}
	return f.currency + " " + f.Number(d)
}

// Float atajos para valores del dominio (float64).
func (f *Formatter) Float(v float64) string         { return f.Number(Round(v)) }
func (f *Formatter) FloatCurrency(v float64) string { return f.Currency(Round(v)) }
