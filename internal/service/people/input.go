package people

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/extrato-backend/internal/domain"
)

const (
	maxPhoneLength = 32
	maxPhoneBatch  = 5000
)

// PhoneUpdate carries the phones to store for the person with Contact.
type PhoneUpdate struct {
	Contact string
	Phone1  *string
	Phone2  *string
	Phone3  *string
}

// phones returns the update's numbers with blank values cleared.
func (u PhoneUpdate) phones() domain.Phones {
	return domain.Phones{
		Phone1: normalizePhone(u.Phone1),
		Phone2: normalizePhone(u.Phone2),
		Phone3: normalizePhone(u.Phone3),
	}
}

func normalizePhone(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

// validatePhoneUpdates checks batch size and phone lengths. Blank contacts are
// not an error; they are skipped by UpdatePhones.
func validatePhoneUpdates(updates []PhoneUpdate) error {
	var errs []domain.FieldError

	if len(updates) > maxPhoneBatch {
		errs = append(errs, domain.FieldError{Field: "updates", Message: fmt.Sprintf("too many items (max %d)", maxPhoneBatch)})
	}

	for i, u := range updates {
		for n, p := range []*string{u.Phone1, u.Phone2, u.Phone3} {
			if p != nil && len(*p) > maxPhoneLength {
				errs = append(errs, domain.FieldError{
					Field:   fmt.Sprintf("updates[%d].phone%d", i, n+1),
					Message: "too long",
				})
			}
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
