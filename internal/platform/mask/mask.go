// Package mask formatea campos de formulario (CPF, telefone, CEP) tal como se tipean:
// descarta lo que no es dígito y reinserta separadores en posiciones fijas.
package mask

import "strings"

const (
	cpfDigits   = 11
	phoneDigits = 11
	cepDigits   = 8
)

// Digits devuelve solo los dígitos ASCII de s.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CPF aplica ###.###.###-## de forma progresiva; lo que pasa de 11 dígitos se descarta.
func CPF(value string) string {
	d := truncate(Digits(value), cpfDigits)

	switch n := len(d); {
	case n <= 3:
		return d
	case n <= 6:
		return d[:3] + "." + d[3:]
	case n <= 9:
		return d[:3] + "." + d[3:6] + "." + d[6:]
	default:
		return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
	}
}

// Phone aplica (##) ####-#### o (##) #####-####.
// El guion solo aparece cuando hay al menos 8 dígitos después del DDD.
func Phone(value string) string {
	d := truncate(Digits(value), phoneDigits)
	if len(d) <= 2 {
		return d
	}

	ddd, rest := d[:2], d[2:]
	if len(rest) < 8 {
		return "(" + ddd + ") " + rest
	}
	cut := len(rest) - 4
	return "(" + ddd + ") " + rest[:cut] + "-" + rest[cut:]
}

// CEP devuelve #####-### cuando hay 8 dígitos; si no, solo los dígitos.
func CEP(value string) string {
	d := truncate(Digits(value), cepDigits)
	if len(d) != cepDigits {
		return d
	}
	return d[:5] + "-" + d[5:]
}

// CEPComplete indica si value tiene exactamente 8 dígitos (habilita la consulta de endereço).
func CEPComplete(value string) bool {
	return len(Digits(value)) == cepDigits
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
