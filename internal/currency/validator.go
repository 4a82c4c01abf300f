package currency

import "errors"

var (
	ErrCodeRequired = errors.New("currency code is required")
	ErrInvalidCode  = errors.New("currency code must be a 3-letter ISO 4217 code")
)

// ValidateCode checks the shape of a currency code before it reaches the
// provider. Whether the code is actually quoted is up to the provider.
func ValidateCode(code string) error {
	if code == "" {
		return ErrCodeRequired
	}
	if len(code) != 3 {
		return ErrInvalidCode
	}
	for _, r := range code {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return ErrInvalidCode
		}
	}
	return nil
}
