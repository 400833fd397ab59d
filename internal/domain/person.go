package domain

import "time"

// SlugSeparator joins the first-name slug and the magic token in a public slug.
const SlugSeparator = "_"

// Person is someone whose ledger entries can be viewed through a public slug.
// Contact is the natural key used to match CSV rows to people.
type Person struct {
	ID            int64
	Contact       string
	FirstNameSlug string
	MagicToken    string
	Phone1        *string
	Phone2        *string
	Phone3        *string
	Active        bool
	CreatedAt     time.Time
}

// Slug returns the shareable identifier "<firstNameSlug>_<magicToken>".
func (p *Person) Slug() string {
	return p.FirstNameSlug + SlugSeparator + p.MagicToken
}

// Phones groups the three optional contact numbers of a person.
type Phones struct {
	Phone1 *string
	Phone2 *string
	Phone3 *string
}

// Phones returns the person's current phone numbers.
func (p *Person) Phones() Phones {
	return Phones{Phone1: p.Phone1, Phone2: p.Phone2, Phone3: p.Phone3}
}

// Equal reports whether both sets hold the same numbers, treating nil and
// an absent value as equal only to each other.
func (a Phones) Equal(b Phones) bool {
	return ptrStringEqual(a.Phone1, b.Phone1) &&
		ptrStringEqual(a.Phone2, b.Phone2) &&
		ptrStringEqual(a.Phone3, b.Phone3)
}

func ptrStringEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
