package history

import "fmt"

// Category identifies an independent list of recently used values
type Category string

const (
	Usernames Category = "usernames"
	DBNames   Category = "dbnames"
	Queries   Category = "queries"
)

// DefaultLimit is the number of entries kept per category
const DefaultLimit = 20

// Categories returns every known category in display order
func Categories() []Category {
	return []Category{Usernames, DBNames, Queries}
}

// ParseCategory maps a stored key back to its Category
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown history category: %s", s)
}
