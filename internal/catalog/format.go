package catalog

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter turns an integer amount in the smallest currency unit into the
// label shown to visitors. It is the only place prices become text.
type Formatter struct {
	Symbol string
	Lang   language.Tag
}

// DefaultFormatter prints Indonesian rupiah, e.g. "Rp\u00a0135.000".
func DefaultFormatter() Formatter {
	return Formatter{Symbol: "Rp", Lang: language.Indonesian}
}

// NewFormatter parses a BCP 47 locale, falling back to Indonesian.
func NewFormatter(symbol, locale string) Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Indonesian
	}
	if symbol == "" {
		symbol = "Rp"
	}
	return Formatter{Symbol: symbol, Lang: tag}
}

// Format groups digits per the locale and prefixes the symbol with a
// non-breaking space.
func (f Formatter) Format(amount int64) string {
	p := message.NewPrinter(f.Lang)
	if amount < 0 {
		return "-" + f.Symbol + "\u00a0" + p.Sprintf("%d", -amount)
	}
	return f.Symbol + "\u00a0" + p.Sprintf("%d", amount)
}
