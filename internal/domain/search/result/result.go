package result

import (
	"encoding/json"
	"fmt"

	"github.com/enthusiast-garage/dealersearch/internal/domain"
)

// MatchScore is a fuzzy-match score in [0, 1] where 0 is a perfect match
// and 1 is the worst possible match. Result lists sort ascending.
//
// This is the opposite polarity of fitment relevance scoring — keep the
// two types apart.
type MatchScore float64

// Kind discriminates the entity a result wraps. It is set once, by the
// component that produced the result, never inferred from field shape.
type Kind string

// Result kinds.
const (
	KindVehicle Kind = "vehicle"
	KindProduct Kind = "product"
)

// Result is a single search hit: exactly one searchable entity plus its
// match score.
type Result struct {
	kind    Kind
	vehicle domain.SearchableVehicle
	product domain.SearchableProduct
	score   MatchScore
}

// Vehicle creates a vehicle-kind result.
func Vehicle(v domain.SearchableVehicle, score MatchScore) Result {
	return Result{kind: KindVehicle, vehicle: v, score: score}
}

// Product creates a product-kind result.
func Product(p domain.SearchableProduct, score MatchScore) Result {
	return Result{kind: KindProduct, product: p, score: score}
}

// Kind returns the discriminant.
func (r *Result) Kind() Kind { return r.kind }

// Score returns the match score (lower is better).
func (r *Result) Score() MatchScore { return r.score }

// Vehicle returns the wrapped vehicle; ok is false for non-vehicle results.
func (r *Result) Vehicle() (domain.SearchableVehicle, bool) {
	return r.vehicle, r.kind == KindVehicle
}

// Product returns the wrapped product; ok is false for non-product results.
func (r *Result) Product() (domain.SearchableProduct, bool) {
	return r.product, r.kind == KindProduct
}

type resultJSON struct {
	Kind  Kind            `json:"type"`
	Item  json.RawMessage `json:"item"`
	Score MatchScore      `json:"score"`
}

// MarshalJSON encodes the result in its wire form
// {"type": ..., "item": ..., "score": ...}. The same encoding is used for
// cache entries, which keeps cache interactions copy-in/copy-out by value.
func (r Result) MarshalJSON() ([]byte, error) {
	var (
		item []byte
		err  error
	)
	switch r.kind {
	case KindVehicle:
		item, err = json.Marshal(r.vehicle)
	case KindProduct:
		item, err = json.Marshal(r.product)
	default:
		return nil, fmt.Errorf("marshal result: unknown kind %q", r.kind)
	}
	if err != nil {
		return nil, fmt.Errorf("marshal result item: %w", err)
	}
	return json.Marshal(resultJSON{Kind: r.kind, Item: item, Score: r.score})
}

// UnmarshalJSON decodes the wire form produced by MarshalJSON.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw resultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal result: %w", err)
	}
	switch raw.Kind {
	case KindVehicle:
		var v domain.SearchableVehicle
		if err := json.Unmarshal(raw.Item, &v); err != nil {
			return fmt.Errorf("unmarshal result vehicle: %w", err)
		}
		*r = Vehicle(v, raw.Score)
	case KindProduct:
		var p domain.SearchableProduct
		if err := json.Unmarshal(raw.Item, &p); err != nil {
			return fmt.Errorf("unmarshal result product: %w", err)
		}
		*r = Product(p, raw.Score)
	default:
		return fmt.Errorf("unmarshal result: unknown kind %q", raw.Kind)
	}
	return nil
}
