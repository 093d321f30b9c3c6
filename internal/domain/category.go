package domain

import "fmt"

// Category is one of the five personality results. The zero value is Cat.
type Category int

const (
	Cat Category = iota
	Dog
	Fox
	Hamster
	Horse

	categoryCount = 5
)

var (
	categoryTokens = [categoryCount]string{"cat", "dog", "fox", "hamster", "horse"}
	categoryNames  = [categoryCount]string{"Cat", "Dog", "Fox", "Hamster", "Horse"}
)

// Categories returns every category in canonical order. Ties are broken in this order.
func Categories() []Category {
	return []Category{Cat, Dog, Fox, Hamster, Horse}
}

// Valid reports whether c belongs to the closed set.
func (c Category) Valid() bool {
	return c >= 0 && c < categoryCount
}

// String returns the identifier token ("cat", "dog", ...).
func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryTokens[c]
}

// Name is the human readable name shown on the result screen.
func (c Category) Name() string {
	if !c.Valid() {
		return ""
	}
	return categoryNames[c]
}

// ImagePath is the static asset address for the category's picture.
func (c Category) ImagePath() string {
	return "/" + c.String() + ".png"
}

// ParseCategory maps an identifier token back to its Category.
func ParseCategory(token string) (Category, error) {
	for i, t := range categoryTokens {
		if t == token {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCategory, token)
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCategory, int(c))
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
