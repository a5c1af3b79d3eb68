// Package money formats amounts for display.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter formats amounts in one currency for one locale.
type Formatter struct {
	unit      currency.Unit
	printer   *message.Printer
	scale     int
	symbol    string
	separator string
}

// NewFormatter returns a Formatter for the ISO 4217 currency code and
// the BCP 47 locale, e.g. "CLP" and "es-CL".
func NewFormatter(code, locale string) (*Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("invalid currency '%s': %w", code, err)
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale '%s': %w", locale, err)
	}

	printer := message.NewPrinter(tag)
	scale, _ := currency.Standard.Rounding(unit)

	// The decimal separator of the locale, e.g. "," for es-CL
	sample := printer.Sprint(number.Decimal(1.5, number.Scale(1)))
	separator := strings.TrimSuffix(strings.TrimPrefix(sample, "1"), "5")

	return &Formatter{
		unit:      unit,
		printer:   printer,
		scale:     scale,
		symbol:    printer.Sprint(currency.NarrowSymbol(unit)),
		separator: separator,
	}, nil
}

// Currency returns the ISO 4217 code of the currency.
func (f *Formatter) Currency() string {
	return f.unit.String()
}

// Format returns the amount with the currency symbol, rounded to the
// number of decimals of the currency and grouped for the locale.
// Negative amounts have the sign in front of the symbol, e.g. "-$1.080".
func (f *Formatter) Format(amount decimal.Decimal) string {
	rounded := amount.Round(int32(f.scale))

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}

	// Only the integer part goes through the printer for grouping, the
	// digits are taken from the decimal so that no precision is lost
	integer := rounded.Truncate(0)
	formatted := f.printer.Sprint(number.Decimal(integer.IntPart()))

	if f.scale > 0 {
		fraction := rounded.Sub(integer).Shift(int32(f.scale)).IntPart()
		formatted += fmt.Sprintf("%s%0*d", f.separator, f.scale, fraction)
	}

	return sign + f.symbol + formatted
}
