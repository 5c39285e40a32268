package submission

import (
	"net/url"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Region selects the currency used to label revenue and spend brackets.
// It is driven only by the explicit isUK=true query parameter.
type Region int

const (
	RegionUS Region = iota
	RegionUK
)

// RegionParam is the query/form parameter carrying the region flag.
const RegionParam = "isUK"

// RegionFromValues reads the region flag. Anything other than "true" is US.
func RegionFromValues(values url.Values) Region {
	if values.Get(RegionParam) == "true" {
		return RegionUK
	}
	return RegionUS
}

// IsUK reports whether the UK variant is active.
func (r Region) IsUK() bool { return r == RegionUK }

func (r Region) String() string {
	if r == RegionUK {
		return "uk"
	}
	return "us"
}

// CurrencySymbol returns the symbol prefixed to bracket amounts.
func (r Region) CurrencySymbol() string {
	if r == RegionUK {
		return "£"
	}
	return "$"
}

// PhonePlaceholder is the example phone number shown in the form.
func (r Region) PhonePlaceholder() string {
	if r == RegionUK {
		return "+44 123-456-7890"
	}
	return "+1 123-456-7890"
}

// Tag is the language tag used for number formatting.
func (r Region) Tag() language.Tag {
	if r == RegionUK {
		return language.BritishEnglish
	}
	return language.AmericanEnglish
}

// Amount formats n with the region's currency symbol and digit grouping.
func (r Region) Amount(n int) string {
	p := message.NewPrinter(r.Tag())
	return r.CurrencySymbol() + p.Sprintf("%d", n)
}
