package recall

import (
	"context"

	"github.com/rushteam/hotelrec/core"
	"github.com/rushteam/hotelrec/pipeline"
	"github.com/rushteam/hotelrec/pkg/utils"
	"github.com/rushteam/hotelrec/stats"
)

// CatalogRecall 是目录全量召回源：候选集就是整个酒店目录。
// 目录规模在千级以内时全量召回完全够用，候选裁剪交给下游 Filter/TopN。
// 输出顺序与目录载入顺序一致，保证同一目录下候选集可复现。
//
// CatalogRecall 同时实现 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type CatalogRecall struct {
	Catalog core.Catalog
	Stats   *stats.Aggregator
}

func (r *CatalogRecall) Name() string        { return "recall.catalog" }
func (r *CatalogRecall) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *CatalogRecall) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *CatalogRecall) Recall(
	_ context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	hotels := r.Catalog.AllHotels()
	out := make([]*core.Item, 0, len(hotels))
	for _, h := range hotels {
		it := core.NewItem(h.ID)
		it.Hotel = h
		if r.Stats != nil {
			it.RatingCount = r.Stats.RatingCount(h.ID)
		}
		it.PutLabel("recall_source", utils.Label{Value: r.Name(), Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
