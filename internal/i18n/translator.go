// Package i18n looks up UI strings and formats money for the active locale.
package i18n

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	cat     = newCatalog()
	matcher = language.NewMatcher(Supported)
)

// Translator is bound to one locale and is safe for concurrent use.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Translator for the best supported match of locale. An empty
// or unknown locale yields English.
func New(locale string) *Translator {
	tag := language.English
	if parsed, err := language.Parse(locale); err == nil {
		_, idx, conf := matcher.Match(parsed)
		if conf != language.No {
			tag = Supported[idx]
		}
	}
	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(cat)),
	}
}

func (t *Translator) Locale() language.Tag {
	return t.tag
}

// T returns the message for key, or key itself when the catalog has none.
func (t *Translator) T(key string) string {
	return t.printer.Sprintf(message.Key(key, key))
}

// Items renders an item count such as "1 item" or "3 items".
func (t *Translator) Items(n int) string {
	return t.printer.Sprintf(message.Key(ItemCount, "%d items"), n)
}

// Money formats amount in the given ISO currency with two decimals.
func (t *Translator) Money(amount decimal.Decimal, code string) string {
	value := t.printer.Sprint(number.Decimal(amount.InexactFloat64(), number.Scale(2)))

	unit, err := currency.ParseISO(code)
	if err != nil {
		return value + " " + code
	}
	symbol := t.printer.Sprint(currency.NarrowSymbol(unit))

	base, _ := t.tag.Base()
	if frenchBase, _ := language.French.Base(); base == frenchBase {
		return value + " " + symbol
	}
	return symbol + value
}
