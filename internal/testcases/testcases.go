// Package testcases loads the externalized test-data registry the browser
// suite runs against. Cases live in a JSON document keyed by test-case ID,
// so scenario data can change without touching test code.
package testcases

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Credentials is a username/password pair for the login form.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ProductInput holds the fields of the product creation form.
type ProductInput struct {
	Name        string `json:"name" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Subcategory string `json:"subcategory" validate:"required"`
}

// DimensionEntry holds the add-stock form fields. Values are kept as
// strings because they are typed into form inputs verbatim.
type DimensionEntry struct {
	Length   string `json:"length" validate:"required"`
	Width    string `json:"width" validate:"required"`
	Height   string `json:"height" validate:"required"`
	Weight   string `json:"weight" validate:"required"`
	Quantity string `json:"quantity" validate:"required"`
}

// BrandInput holds the fields of the brand registration form.
type BrandInput struct {
	Name      string `json:"name" validate:"required"`
	ShortCode string `json:"short_code" validate:"required,min=2,max=5"`
}

// Expectations carries the outcomes a scenario verifies. Patterns are
// regular expressions matched against the page URL or the generated SKU.
type Expectations struct {
	Message    string `json:"message,omitempty"`
	URLPattern string `json:"url_pattern,omitempty"`
	SKUPattern string `json:"sku_pattern,omitempty"`
}

// Case is one scenario's data. Only the sections a scenario uses are
// populated; absent sections stay nil.
type Case struct {
	Description string          `json:"description" validate:"required"`
	Login       *Credentials    `json:"login,omitempty"`
	Product     *ProductInput   `json:"product,omitempty"`
	Dimensions  *DimensionEntry `json:"dimensions,omitempty"`
	Brand       *BrandInput     `json:"brand,omitempty"`
	Expect      Expectations    `json:"expect"`
}

// Data is the registry of cases parsed from one JSON document.
type Data struct {
	path  string
	cases map[string]Case
}

// Load reads and validates the test-data document at path. Every case is
// schema-checked up front so a bad document fails the run before any
// browser starts.
func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read test data: %w", err)
	}

	cases := make(map[string]Case)
	if err := json.Unmarshal(raw, &cases); err != nil {
		return nil, fmt.Errorf("failed to parse test data %s: %w", path, err)
	}

	for id, c := range cases {
		if err := validate.Struct(c); err != nil {
			return nil, fmt.Errorf("test case %q in %s is invalid: %w", id, path, err)
		}
	}

	return &Data{path: path, cases: cases}, nil
}

// Get returns the case registered under id. A missing id is an error
// naming both the key and the file, so a typo in a spec is diagnosable
// from the failure message alone.
func (d *Data) Get(id string) (Case, error) {
	c, ok := d.cases[id]
	if !ok {
		return Case{}, fmt.Errorf("test case %q not found in %s", id, d.path)
	}
	return c, nil
}

// TestingT is the subset of *testing.T needed by MustGet.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
}

// MustGet returns the case registered under id, failing the test when it
// is absent.
func (d *Data) MustGet(t TestingT, id string) Case {
	t.Helper()
	c, err := d.Get(id)
	if err != nil {
		t.Fatalf("%v", err)
	}
	return c
}

// IDs returns the registered case IDs in sorted order.
func (d *Data) IDs() []string {
	ids := make([]string, 0, len(d.cases))
	for id := range d.cases {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Path returns the file the registry was loaded from.
func (d *Data) Path() string {
	return d.path
}
