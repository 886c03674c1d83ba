package catalog

import (
	"strings"

	"github.com/roach88/gatesimp/internal/ir"
)

// ParseSymbols splits a sequence written as "H T Td", "H,T,Td" or a mix.
func ParseSymbols(text string) []ir.Symbol {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	return ir.Symbols(fields...)
}
