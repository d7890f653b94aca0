package billing

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// Plan describes one entry of the pricing catalog.
type Plan struct {
	Name     string   `yaml:"name" json:"name"`
	Price    float64  `yaml:"price" json:"price"`
	Currency string   `yaml:"currency" json:"currency"`
	Interval string   `yaml:"interval" json:"interval"`
	Features []string `yaml:"features" json:"features"`
}

// Catalog is the pricing table loaded from plans.yaml. Hosted payment links
// stay in the environment so the catalog file can live in version control.
type Catalog struct {
	Plans map[string]Plan `yaml:"plans"`
}

// LoadCatalog reads and parses the pricing catalog.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if len(c.Plans) == 0 {
		return nil, fmt.Errorf("catalog has no plans")
	}
	return &c, nil
}

// HasPlan reports whether the plan key exists in the catalog.
func (c *Catalog) HasPlan(plan string) bool {
	_, ok := c.Plans[plan]
	return ok
}

// PlanForAmount resolves a plan key from a charged amount, used when a
// webhook arrives without plan metadata.
func (c *Catalog) PlanForAmount(amount float64) (string, bool) {
	for key, p := range c.Plans {
		if p.Price == amount && p.Price > 0 {
			return key, true
		}
	}
	return "", false
}

// PaymentLink returns the hosted checkout link for a plan, read from
// PAYMENT_LINK_<PLAN>.
func PaymentLink(plan string) string {
	return os.Getenv("PAYMENT_LINK_" + strings.ToUpper(plan))
}
