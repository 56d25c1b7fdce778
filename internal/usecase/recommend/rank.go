package recommend

import (
	"github.com/enthusiast-garage/dealersearch/internal/domain"
	"github.com/enthusiast-garage/dealersearch/internal/domain/fitment"
)

// RelevanceScore is a fitment relevance where HIGHER is better, the
// opposite polarity of the fuzzy result.MatchScore. Zero means no
// fitment relationship at all and excludes the candidate.
type RelevanceScore int

// Relevance tiers. An exact model-and-year fit beats a model-only fit,
// which beats a universal part.
const (
	scoreNone      RelevanceScore = 0
	scoreUniversal RelevanceScore = 1
	scoreModel     RelevanceScore = 5
	scoreExactFit  RelevanceScore = 10
)

// rankProductForVehicle scores a candidate part against a vehicle: the
// maximum tier reached by any of the product's fitment tags. chassis is
// the vehicle's uppercased chassis code; year is the model year parsed
// from the listing title, 0 when unknown.
func rankProductForVehicle(product domain.Product, chassis string, year int) RelevanceScore {
	best := scoreNone
	for _, tag := range product.Tags {
		if s := rankTag(fitment.Parse(tag), chassis, year); s > best {
			best = s
		}
	}
	return best
}

func rankTag(d fitment.Descriptor, chassis string, year int) RelevanceScore {
	if d.Universal {
		return scoreUniversal
	}
	if d.Model == "" || d.Model != chassis {
		return scoreNone
	}
	if year != 0 && d.YearMin != 0 && year >= d.YearMin && year <= d.YearMax {
		return scoreExactFit
	}
	return scoreModel
}
