package recall

import (
	"context"
	"testing"

	"github.com/rushteam/hotelrec/catalog"
	"github.com/rushteam/hotelrec/core"
	"github.com/rushteam/hotelrec/stats"
	"github.com/rushteam/hotelrec/store"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(
		[]core.Hotel{
			{ID: "H1", Name: "Alpha", Category: "Luxury"},
			{ID: "H2", Name: "Beta", Category: "Riad"},
			{ID: "H3", Name: "Gamma", Category: "Budget"},
		},
		[]core.Rating{
			{UserID: "U1", HotelID: "H1", Score: 5},
			{UserID: "U2", HotelID: "H1", Score: 4},
			{UserID: "U1", HotelID: "H2", Score: 3},
		},
	)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	return c
}

func TestCatalogRecall(t *testing.T) {
	c := testCatalog(t)
	src := &CatalogRecall{Catalog: c, Stats: stats.NewAggregator(c)}

	items, err := src.Recall(context.Background(), core.NewRecommendContext("U1"))
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("Recall() len = %d, want 3", len(items))
	}
	// insertion order of the catalog is preserved
	for i, want := range []string{"H1", "H2", "H3"} {
		if items[i].ID != want {
			t.Errorf("items[%d].ID = %q, want %q", i, items[i].ID, want)
		}
	}
	if items[0].Hotel == nil || items[0].Hotel.Name != "Alpha" {
		t.Error("items[0].Hotel not populated")
	}
	if items[0].RatingCount != 2 {
		t.Errorf("items[0].RatingCount = %d, want 2", items[0].RatingCount)
	}
	if lbl, ok := items[0].GetLabel("recall_source"); !ok || lbl.Value != "recall.catalog" {
		t.Errorf("recall_source label = %v, %v", lbl, ok)
	}
}

func TestPopularRecallFromStore(t *testing.T) {
	ctx := context.Background()
	c := testCatalog(t)
	agg := stats.NewAggregator(c)
	kv := store.NewMemoryStore()
	defer kv.Close()

	src := &PopularRecall{Store: kv, Catalog: c, Stats: agg}
	if err := src.Warm(ctx); err != nil {
		t.Fatalf("Warm() error = %v", err)
	}

	items, err := src.Recall(ctx, core.NewRecommendContext(""))
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	// H1: 4.5*ln(3), H2: 3*ln(2), H3: 0
	want := []string{"H1", "H2", "H3"}
	if len(items) != len(want) {
		t.Fatalf("Recall() len = %d, want %d", len(items), len(want))
	}
	for i := range want {
		if items[i].ID != want[i] {
			t.Errorf("items[%d].ID = %q, want %q", i, items[i].ID, want[i])
		}
	}
}

func TestPopularRecallFallsBackToStats(t *testing.T) {
	c := testCatalog(t)
	src := &PopularRecall{Catalog: c, Stats: stats.NewAggregator(c)} // no store

	items, err := src.Recall(context.Background(), core.NewRecommendContext(""))
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(items) != 3 || items[0].ID != "H1" {
		t.Errorf("Recall() = %v", items)
	}
}

type staticSource struct {
	name string
	ids  []string
}

func (s *staticSource) Name() string { return s.name }
func (s *staticSource) Recall(_ context.Context, _ *core.RecommendContext) ([]*core.Item, error) {
	out := make([]*core.Item, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, core.NewItem(id))
	}
	return out, nil
}

func TestFanoutDedupKeepsSourceOrder(t *testing.T) {
	n := &Fanout{
		Sources: []Source{
			&staticSource{name: "a", ids: []string{"H1", "H2"}},
			&staticSource{name: "b", ids: []string{"H2", "H3"}},
		},
		Dedup: true,
	}

	items, err := n.Process(context.Background(), core.NewRecommendContext(""), nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	want := []string{"H1", "H2", "H3"}
	if len(items) != len(want) {
		t.Fatalf("Process() len = %d, want %d", len(items), len(want))
	}
	for i := range want {
		if items[i].ID != want[i] {
			t.Errorf("items[%d].ID = %q, want %q", i, items[i].ID, want[i])
		}
	}
	// duplicate H2 from source b merged its labels into the kept item
	if lbl, _ := items[1].GetLabel("recall_source"); lbl.Value != "a|b" {
		t.Errorf("merged recall_source = %q, want a|b", lbl.Value)
	}
}
