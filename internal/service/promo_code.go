package service

import (
	"crypto/rand"
	"encoding/base64"
	"strings"

	"github.com/reviewloop/reviewloop/internal/constants"
)

const promoCodeLength = 8

// GeneratePromoCode builds a single-use code of the form PREFIX-XXXXXXXX.
// The random part is drawn from crypto/rand and restricted to uppercase
// letters and digits so codes stay readable when merchants paste them into
// Shopify discounts.
func GeneratePromoCode(prefix string) (string, error) {
	if prefix == "" {
		prefix = constants.DefaultCodePrefix
	}
	random, err := randomCodePart(promoCodeLength)
	if err != nil {
		return "", ErrPromoCodeGeneration
	}
	return prefix + "-" + random, nil
}

func randomCodePart(length int) (string, error) {
	var b strings.Builder
	for b.Len() < length {
		buf := make([]byte, 3*length)
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		encoded := strings.ToUpper(base64.StdEncoding.EncodeToString(buf))
		for _, r := range encoded {
			if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
				b.WriteRune(r)
				if b.Len() == length {
					break
				}
			}
		}
	}
	return b.String(), nil
}
