package catalog

import (
	"strings"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

// CategoryNode is a primary category with its children.
type CategoryNode struct {
	Name        string          `json:"name"`
	Secondaries []SecondaryNode `json:"secondaries"`
}

// SecondaryNode is a secondary category with its children.
type SecondaryNode struct {
	Name       string         `json:"name"`
	Tertiaries []TertiaryNode `json:"tertiaries"`
}

// TertiaryNode is a leaf category.
type TertiaryNode struct {
	Name string `json:"name"`
}

// Filter narrows the product listing. Lists are OR'd internally and AND'd
// with each other; empty lists do not filter.
type Filter struct {
	Primary   []string
	Secondary []string
	Tertiary  []string
}

// ProductDTO is the public catalog payload.
type ProductDTO struct {
	ID                int64    `json:"id"`
	Barcode           string   `json:"barcode"`
	Name              string   `json:"name"`
	Description       *string  `json:"description,omitempty"`
	Ingredients       []string `json:"ingredients"`
	Price             float64  `json:"price"`
	ImageURL          *string  `json:"imageUrl,omitempty"`
	ProductLine       *string  `json:"productLine,omitempty"`
	PrimaryCategory   *string  `json:"primaryCategory,omitempty"`
	SecondaryCategory *string  `json:"secondaryCategory,omitempty"`
	TertiaryCategory  *string  `json:"tertiaryCategory,omitempty"`
}

// NewProductDTO maps a persisted product into its payload.
func NewProductDTO(p models.Product) ProductDTO {
	return ProductDTO{
		ID:                p.ID,
		Barcode:           p.Barcode,
		Name:              p.Name,
		Description:       p.Description,
		Ingredients:       splitIngredients(p.Ingredients),
		Price:             p.Price.InexactFloat64(),
		ImageURL:          p.ImageURL,
		ProductLine:       p.ProductLine,
		PrimaryCategory:   p.PrimaryCategory,
		SecondaryCategory: p.SecondaryCategory,
		TertiaryCategory:  p.TertiaryCategory,
	}
}

// splitIngredients accepts comma-separated text or a Postgres array literal.
func splitIngredients(raw *string) []string {
	out := []string{}
	if raw == nil {
		return out
	}
	text := strings.TrimSpace(*raw)
	text = strings.TrimPrefix(text, "{")
	text = strings.TrimSuffix(text, "}")
	for _, part := range strings.Split(text, ",") {
		part = strings.Trim(strings.TrimSpace(part), `"`)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
