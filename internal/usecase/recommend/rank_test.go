package recommend

import (
	"testing"

	"github.com/enthusiast-garage/dealersearch/internal/domain"
)

func TestRankProductForVehicle(t *testing.T) {
	tests := []struct {
		name    string
		tags    []string
		chassis string
		year    int
		want    RelevanceScore
	}{
		{
			name:    "exact model and year in range",
			tags:    []string{"BMW E46 2001-2006"},
			chassis: "E46",
			year:    2003,
			want:    scoreExactFit,
		},
		{
			name:    "exact model and single year match",
			tags:    []string{"BMW E46 2003"},
			chassis: "E46",
			year:    2003,
			want:    scoreExactFit,
		},
		{
			name:    "model match without year tag",
			tags:    []string{"E46 M3 carbon spoiler"},
			chassis: "E46",
			year:    2006,
			want:    scoreModel,
		},
		{
			name:    "model match with year out of range",
			tags:    []string{"BMW E46 2001-2006"},
			chassis: "E46",
			year:    2011,
			want:    scoreModel,
		},
		{
			name:    "model match with unknown vehicle year",
			tags:    []string{"BMW E46 2001-2006"},
			chassis: "E46",
			year:    0,
			want:    scoreModel,
		},
		{
			name:    "universal tag",
			tags:    []string{"BMW Universal"},
			chassis: "E46",
			year:    2003,
			want:    scoreUniversal,
		},
		{
			name:    "wrong model scores nothing",
			tags:    []string{"BMW E90 2006-2011"},
			chassis: "E46",
			year:    2003,
			want:    scoreNone,
		},
		{
			name:    "best tag wins",
			tags:    []string{"BMW Universal", "BMW E90", "BMW E46 2001-2006"},
			chassis: "E46",
			year:    2003,
			want:    scoreExactFit,
		},
		{
			name:    "no tags",
			tags:    nil,
			chassis: "E46",
			year:    2003,
			want:    scoreNone,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.Product{Tags: tt.tags}
			if got := rankProductForVehicle(p, tt.chassis, tt.year); got != tt.want {
				t.Errorf("rankProductForVehicle() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRelevanceTiersOrdered(t *testing.T) {
	if !(scoreExactFit > scoreModel && scoreModel > scoreUniversal && scoreUniversal > scoreNone) {
		t.Error("relevance tiers must be strictly ordered")
	}
}
