package card

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	DefaultIIN   = "400000"
	numberLength = 16
)

type NumberGenerator interface {
	Next() (string, error)
}

// RandomNumbers draws the account digits from crypto/rand and appends a
// Luhn check digit.
type RandomNumbers struct {
	Prefix string
}

func (g RandomNumbers) Next() (string, error) {
	body := []byte(g.Prefix)
	ten := big.NewInt(10)
	for len(body) < numberLength-1 {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("draw card digit: %w", err)
		}
		body = append(body, byte('0'+d.Int64()))
	}
	return string(body) + string(luhnDigit(string(body))), nil
}

func luhnDigit(body string) byte {
	sum := 0
	double := true
	for i := len(body) - 1; i >= 0; i-- {
		d := int(body[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return byte('0' + (10-sum%10)%10)
}

// ValidLuhn reports whether number carries a correct check digit.
func ValidLuhn(number string) bool {
	if len(number) < 2 {
		return false
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return false
		}
	}
	return luhnDigit(number[:len(number)-1]) == number[len(number)-1]
}
