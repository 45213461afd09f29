package builtins

import "github.com/barscript/barscript/internal/value"

// currencyNamespace is a fixed symbol table of ISO currency codes.
func currencyNamespace() value.Object {
	ns := value.NewObject("currency")
	for code, symbol := range map[string]string{
		"usd": "$",
		"eur": "€",
		"gbp": "£",
		"jpy": "¥",
		"chf": "CHF",
		"cad": "C$",
		"aud": "A$",
	} {
		ns.Set(code, value.String(symbol))
	}
	return ns
}
