package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/rushteam/hotelrec/catalog"
	"github.com/rushteam/hotelrec/core"
	"github.com/rushteam/hotelrec/filter"
)

// scenarioCatalog: H1 well rated, H2 rated slightly lower, H3 never rated.
func scenarioCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	hotels := []core.Hotel{
		{ID: "H1", Name: "Grand Medina", Category: "Luxury", Location: "Medina"},
		{ID: "H2", Name: "Palm Riad", Category: "Riad", Location: "Medina"},
		{ID: "H3", Name: "Quiet Corner", Category: "Budget", Location: "Gueliz"},
	}
	ratings := []core.Rating{
		{UserID: "U1", HotelID: "H1", Score: 5},
		{UserID: "U2", HotelID: "H1", Score: 4.6},
		{UserID: "U3", HotelID: "H1", Score: 4.8},
		{UserID: "U1", HotelID: "H2", Score: 4.5},
		{UserID: "U2", HotelID: "H2", Score: 4.5},
	}
	c, err := catalog.New(hotels, ratings)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	return c
}

func ids(recs []Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Hotel.ID
	}
	return out
}

func TestRecommendMeanPath(t *testing.T) {
	// rated H2 outranks unrated H3, known H1 excluded
	e := New(scenarioCatalog(t))
	res, err := e.Recommend(context.Background(), []KnownHotel{{Ref: "H1"}}, 2)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	got := ids(res.Recommendations)
	if len(got) != 2 || got[0] != "H2" || got[1] != "H3" {
		t.Fatalf("Recommend() = %v, want [H2 H3]", got)
	}
	if res.Recommendations[0].Score != 4.5 {
		t.Errorf("H2 score = %v, want 4.5", res.Recommendations[0].Score)
	}
	if !strings.Contains(res.Recommendations[0].Reason, "average rating") {
		t.Errorf("H2 reason = %q", res.Recommendations[0].Reason)
	}
	// unrated candidates surface with zero score, never -Inf
	if res.Recommendations[1].Score != 0 {
		t.Errorf("H3 score = %v, want 0", res.Recommendations[1].Score)
	}
	if res.Recommendations[1].Reason != "no reviews yet" {
		t.Errorf("H3 reason = %q", res.Recommendations[1].Reason)
	}
}

func TestRecommendNoKnownHotels(t *testing.T) {
	e := New(scenarioCatalog(t))

	if _, err := e.Recommend(context.Background(), nil, 5); !core.IsNoKnownHotels(err) {
		t.Errorf("empty known error = %v, want NO_KNOWN_HOTELS", err)
	}

	// nothing resolves, even though the catalog is non-empty
	_, err := e.Recommend(context.Background(), []KnownHotel{{Ref: "Nonexistent Name"}}, 5)
	if !core.IsNoKnownHotels(err) {
		t.Errorf("unresolvable known error = %v, want NO_KNOWN_HOTELS", err)
	}
}

func TestRecommendClampsTopK(t *testing.T) {
	e := New(scenarioCatalog(t))

	res, err := e.Recommend(context.Background(), []KnownHotel{{Ref: "H1"}}, 1000)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	// clamped to 50, then bounded by the candidate pool (2)
	if len(res.Recommendations) != 2 {
		t.Errorf("result len = %d, want 2", len(res.Recommendations))
	}

	// negative values clamp to the lower bound, they are not "unspecified"
	res, err = e.Recommend(context.Background(), []KnownHotel{{Ref: "H1"}}, -3)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(res.Recommendations) != 1 {
		t.Errorf("negative top_k result len = %d, want 1", len(res.Recommendations))
	}

	res, err = e.Recommend(context.Background(), []KnownHotel{{Ref: "H1"}}, 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	// unspecified top_k uses the default (10), bounded by the candidate pool (2)
	if len(res.Recommendations) != 2 {
		t.Errorf("default top_k result len = %d, want 2", len(res.Recommendations))
	}
}

func TestRecommendRejectsOutOfRangeRating(t *testing.T) {
	e := New(scenarioCatalog(t))

	for _, score := range []float64{99, 0.5, -1} {
		_, err := e.Recommend(context.Background(), []KnownHotel{
			{Ref: "H1", Score: score, Rated: true},
		}, 5)
		if err == nil {
			t.Fatalf("Recommend(score=%v) error = nil, want INVALID_INPUT", score)
		}
		domainErr := core.GetDomainError(err)
		if domainErr == nil || domainErr.Code != core.ErrorCodeInvalidInput {
			t.Errorf("Recommend(score=%v) error = %v, want INVALID_INPUT", score, err)
		}
	}

	// boundary scores are valid
	if _, err := e.Recommend(context.Background(), []KnownHotel{
		{Ref: "H1", Score: 1, Rated: true},
		{Ref: "H2", Score: 5, Rated: true},
	}, 5); err != nil {
		t.Errorf("Recommend(boundary scores) error = %v", err)
	}
}

func TestRecommendPartialResolution(t *testing.T) {
	e := New(scenarioCatalog(t))

	res, err := e.Recommend(context.Background(), []KnownHotel{
		{Ref: "grand medina"}, // case-insensitive name
		{Ref: "No Such Hotel"},
	}, 5)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "No Such Hotel") {
		t.Errorf("Warnings = %v", res.Warnings)
	}
	for _, id := range ids(res.Recommendations) {
		if id == "H1" {
			t.Error("resolved known hotel H1 leaked into results")
		}
	}
}

func TestRecommendEmptyPoolIsNotAnError(t *testing.T) {
	e := New(scenarioCatalog(t))

	res, err := e.Recommend(context.Background(), []KnownHotel{
		{Ref: "H1"}, {Ref: "H2"}, {Ref: "H3"},
	}, 5)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(res.Recommendations) != 0 {
		t.Errorf("fully consumed catalog should yield empty result, got %v", ids(res.Recommendations))
	}
}

func TestRecommendSimilarityPath(t *testing.T) {
	hotels := []core.Hotel{
		{ID: "H1", Name: "Alpha", Category: "Luxury", Location: "Medina"},
		{ID: "H2", Name: "Beta", Category: "Riad", Location: "Medina"},
		{ID: "H3", Name: "Gamma", Category: "Luxury", Location: "Hivernage"},
		{ID: "H4", Name: "Delta", Category: "Budget", Location: "Gueliz"},
	}
	ratings := []core.Rating{
		{UserID: "U1", HotelID: "H1", Score: 5},
		{UserID: "U1", HotelID: "H2", Score: 2},
		{UserID: "U1", HotelID: "H3", Score: 5},
		{UserID: "U2", HotelID: "H1", Score: 4.5},
		{UserID: "U2", HotelID: "H2", Score: 2},
		{UserID: "U2", HotelID: "H4", Score: 2.5},
	}
	c, err := catalog.New(hotels, ratings)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	e := New(c)

	res, err := e.Recommend(context.Background(), []KnownHotel{
		{Ref: "H1", Score: 5, Rated: true},
		{Ref: "H2", Score: 2, Rated: true},
	}, 5)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	got := ids(res.Recommendations)
	// H3 predicted 5 by like-minded U1, H4 predicted 2.5 by U2
	if len(got) != 2 || got[0] != "H3" || got[1] != "H4" {
		t.Fatalf("Recommend() = %v, want [H3 H4]", got)
	}
	if res.Recommendations[0].Score != 5 {
		t.Errorf("H3 score = %v, want 5", res.Recommendations[0].Score)
	}
	// H3 shares the Luxury category with the high-rated known H1
	if !strings.Contains(res.Recommendations[0].Reason, "luxury") {
		t.Errorf("H3 reason = %q, want category overlap", res.Recommendations[0].Reason)
	}
}

func TestRecommendDeterminism(t *testing.T) {
	// two candidates with identical mean and count resolve by id
	hotels := []core.Hotel{
		{ID: "HA", Name: "Known"},
		{ID: "HZ", Name: "Zed"},
		{ID: "HB", Name: "Bee"},
	}
	ratings := []core.Rating{
		{UserID: "U1", HotelID: "HA", Score: 5},
		{UserID: "U1", HotelID: "HZ", Score: 4},
		{UserID: "U2", HotelID: "HB", Score: 4},
	}
	c, err := catalog.New(hotels, ratings)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	e := New(c)

	var first []string
	for i := 0; i < 10; i++ {
		res, err := e.Recommend(context.Background(), []KnownHotel{{Ref: "HA"}}, 5)
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		got := ids(res.Recommendations)
		if first == nil {
			first = got
			// tie on score and count: lexicographically smaller id wins
			if got[0] != "HB" || got[1] != "HZ" {
				t.Fatalf("Recommend() = %v, want [HB HZ]", got)
			}
			continue
		}
		for j := range got {
			if got[j] != first[j] {
				t.Fatalf("run %d order %v differs from %v", i, got, first)
			}
		}
	}
}

func TestRecommendExtraNodes(t *testing.T) {
	e := New(scenarioCatalog(t), WithExtraNodes(&filter.FilterNode{
		Filters: []filter.Filter{&filter.RuleFilter{Expr: `hotel.category == "Budget"`}},
	}))

	res, err := e.Recommend(context.Background(), []KnownHotel{{Ref: "H1"}}, 5)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	got := ids(res.Recommendations)
	if len(got) != 1 || got[0] != "H2" {
		t.Errorf("Recommend() = %v, want [H2] after budget rule", got)
	}
}
