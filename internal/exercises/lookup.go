// Package exercises resolves free-form exercise names to FIT exercise
// categories. The catalog is built once at startup and is read-only
// afterwards, so a single instance is safe to share across requests.
package exercises

import "strings"

// Resolution is the answer for one exercise name. Every lookup yields one;
// unknown names fall back to the generic category.
type Resolution struct {
	CategoryID   int    `json:"category_id"`
	CategoryName string `json:"category_name"`
	DisplayName  string `json:"display_name"`
}

// Lookup maps an exercise name to its FIT category. Implementations must be
// total: any name resolves to something.
type Lookup interface {
	Resolve(name string) Resolution
}

// Catalog is the keyword-driven production Lookup.
type Catalog struct {
	entries map[string]entry
	keys    []string // longest-first, so "shoulder press" wins over "press"
}

type entry struct {
	categoryID   int
	categoryName string
}

// Resolve finds the longest catalog keyword contained in the name. Names
// with no keyword hit resolve to the generic total-body category, never an
// error: the parser upstream accepts arbitrary text.
func (c *Catalog) Resolve(name string) Resolution {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, k := range c.keys {
		if strings.Contains(lower, k) {
			e := c.entries[k]
			return Resolution{
				CategoryID:   e.categoryID,
				CategoryName: e.categoryName,
				DisplayName:  displayName(name),
			}
		}
	}
	return Resolution{
		CategoryID:   categoryTotalBody,
		CategoryName: "total_body",
		DisplayName:  displayName(name),
	}
}

// displayName trims and title-cases the raw name for the device screen.
func displayName(name string) string {
	fields := strings.Fields(name)
	for i, f := range fields {
		if len(f) > 1 && f == strings.ToLower(f) {
			fields[i] = strings.ToUpper(f[:1]) + f[1:]
		}
	}
	return strings.Join(fields, " ")
}

// Static is a fixed map Lookup for tests.
type Static map[string]Resolution

func (s Static) Resolve(name string) Resolution {
	if r, ok := s[strings.ToLower(name)]; ok {
		return r
	}
	return Resolution{CategoryID: categoryTotalBody, CategoryName: "total_body", DisplayName: name}
}
