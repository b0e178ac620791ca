package models

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money is an amount in minor currency units (paise, cents).
type Money int64

var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

var amountPrinter = message.NewPrinter(language.English)

// Major returns the amount in major units.
func (m Money) Major() float64 {
	return float64(m) / 100
}

// FromMajor converts whole major units (rupees, dollars) to Money.
func FromMajor(units int64) Money {
	return Money(units * 100)
}

// Format renders the amount for display, e.g. "₹19,800" or "$12.50".
// Minor units are shown only when non-zero.
func (m Money) Format(currency string) string {
	symbol, ok := currencySymbols[strings.ToUpper(currency)]
	if !ok {
		symbol = strings.ToUpper(currency) + " "
	}
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	major, minor := v/100, v%100
	if minor == 0 {
		return sign + symbol + amountPrinter.Sprintf("%d", major)
	}
	return sign + symbol + amountPrinter.Sprintf("%d", major) + fmt.Sprintf(".%02d", minor)
}
