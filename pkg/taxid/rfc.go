// Package taxid valida el RFC (Registro Federal de Contribuyentes) de una empresa.
package taxid

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Normalize quita espacios y guiones y pasa a mayúsculas: "rno-010101-aaa" → "RNO010101AAA".
func Normalize(rfc string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(rfc) {
		if r == '-' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ValidateRFC valida la estructura del RFC ya normalizado:
//   - persona moral: 3 letras + fecha AAMMDD + homoclave de 3 (12 caracteres);
//   - persona física: 4 letras + fecha AAMMDD + homoclave de 3 (13 caracteres).
//
// No valida el dígito verificador: los RFC genéricos del SAT no lo cumplen.
func ValidateRFC(rfc string) error {
	chars := []rune(rfc)
	var letters int
	switch len(chars) {
	case 12:
		letters = 3
	case 13:
		letters = 4
	default:
		return fmt.Errorf("taxid: el RFC debe tener 12 o 13 caracteres, se recibieron %d", len(chars))
	}
	for _, r := range chars[:letters] {
		if !(r >= 'A' && r <= 'Z') && r != 'Ñ' && r != '&' {
			return fmt.Errorf("taxid: el RFC debe iniciar con %d letras", letters)
		}
	}
	date := string(chars[letters : letters+6])
	if _, err := time.Parse("060102", date); err != nil {
		return fmt.Errorf("taxid: fecha %q del RFC inválida", date)
	}
	for _, r := range chars[letters+6:] {
		if !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9') {
			return fmt.Errorf("taxid: homoclave del RFC inválida")
		}
	}
	return nil
}
