package filter

import (
	"context"
	"testing"

	"github.com/rushteam/hotelrec/core"
)

func itemWithHotel(h core.Hotel) *core.Item {
	it := core.NewItem(h.ID)
	hh := h
	it.Hotel = &hh
	return it
}

func TestKnownHotelsFilter(t *testing.T) {
	rctx := core.NewRecommendContext("U1")
	rctx.KnownIDs["H1"] = struct{}{}

	node := &FilterNode{Filters: []Filter{&KnownHotelsFilter{}}}
	items := []*core.Item{core.NewItem("H1"), core.NewItem("H2"), core.NewItem("H3")}

	out, err := node.Process(context.Background(), rctx, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 2 || out[0].ID != "H2" || out[1].ID != "H3" {
		t.Errorf("Process() = %v, want [H2 H3]", out)
	}
	if lbl, ok := items[0].GetLabel("filtered"); !ok || lbl.Source != "filter.known_hotels" {
		t.Errorf("filtered label = %v, %v", lbl, ok)
	}
}

func TestRuleFilter(t *testing.T) {
	rctx := core.NewRecommendContext("U1")
	items := []*core.Item{
		itemWithHotel(core.Hotel{ID: "H1", Category: "Hostel"}),
		itemWithHotel(core.Hotel{ID: "H2", Category: "Luxury"}),
	}

	node := &FilterNode{Filters: []Filter{&RuleFilter{Expr: `hotel.category == "Hostel"`}}}
	out, err := node.Process(context.Background(), rctx, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 1 || out[0].ID != "H2" {
		t.Errorf("Process() = %v, want [H2]", out)
	}
}

func TestRuleFilterBadExpressionKeepsItems(t *testing.T) {
	rctx := core.NewRecommendContext("U1")
	items := []*core.Item{itemWithHotel(core.Hotel{ID: "H1"})}

	node := &FilterNode{Filters: []Filter{&RuleFilter{Expr: `hotel.category ==`}}}
	out, err := node.Process(context.Background(), rctx, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 1 {
		t.Errorf("broken rule should not drop items, got %v", out)
	}
}
