package shopify

import (
	"strconv"
	"time"

	"github.com/enthusiast-garage/dealersearch/internal/domain"
)

type moneyNode struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type imageNode struct {
	URL string `json:"url"`
}

type productNode struct {
	ID               string   `json:"id"`
	Handle           string   `json:"handle"`
	AvailableForSale bool     `json:"availableForSale"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Vendor           string   `json:"vendor"`
	ProductType      string   `json:"productType"`
	Tags             []string `json:"tags"`
	PriceRange       struct {
		MinVariantPrice moneyNode `json:"minVariantPrice"`
		MaxVariantPrice moneyNode `json:"maxVariantPrice"`
	} `json:"priceRange"`
	FeaturedImage *imageNode `json:"featuredImage"`
	UpdatedAt     string     `json:"updatedAt"`
}

type productConnection struct {
	Edges []struct {
		Node productNode `json:"node"`
	} `json:"edges"`
}

func (n *productNode) toDomain() domain.Product {
	p := domain.Product{
		ID:               n.ID,
		Handle:           n.Handle,
		Title:            n.Title,
		Description:      n.Description,
		Vendor:           n.Vendor,
		ProductType:      n.ProductType,
		Tags:             n.Tags,
		Currency:         n.PriceRange.MinVariantPrice.CurrencyCode,
		AvailableForSale: n.AvailableForSale,
	}
	// Amounts come over the wire as decimal strings.
	if v, err := strconv.ParseFloat(n.PriceRange.MinVariantPrice.Amount, 64); err == nil {
		p.MinPrice = v
	}
	if v, err := strconv.ParseFloat(n.PriceRange.MaxVariantPrice.Amount, 64); err == nil {
		p.MaxPrice = v
	}
	if n.FeaturedImage != nil {
		p.ImageURL = n.FeaturedImage.URL
	}
	if t, err := time.Parse(time.RFC3339, n.UpdatedAt); err == nil {
		p.UpdatedAt = t
	}
	return p
}

func (c productConnection) toDomain() []domain.Product {
	products := make([]domain.Product, 0, len(c.Edges))
	for i := range c.Edges {
		products = append(products, c.Edges[i].Node.toDomain())
	}
	return products
}
