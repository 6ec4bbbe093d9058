package recall

import (
	"context"
	"sort"

	"github.com/rushteam/hotelrec/core"
	"github.com/rushteam/hotelrec/pipeline"
	"github.com/rushteam/hotelrec/pkg/utils"
	"github.com/rushteam/hotelrec/stats"
	"github.com/rushteam/hotelrec/store"
)

// PopularRecall 是人气召回源：从 Store 的人气榜 zset 读取酒店 id。
//   - Store 可用时走 ZRange（score 为人气分 = 均分 × ln(评分数+1)）
//   - Store 为空或榜单缺失时退化为用 Aggregator 现算
//
// 榜单通过 Warm 预热写入，多实例共享同一个 Redis 榜单时各实例无需重复计算。
// PopularRecall 同时实现 Source 和 Node 接口。
type PopularRecall struct {
	Store   core.KeyValueStore
	Catalog core.Catalog
	Stats   *stats.Aggregator
	Key     string // 默认 store.KeyPopularHotels
	Limit   int64  // 召回条数上限，0 表示 100
}

func (r *PopularRecall) Name() string        { return "recall.popular" }
func (r *PopularRecall) Kind() pipeline.Kind { return pipeline.KindRecall }

func (r *PopularRecall) key() string {
	if r.Key != "" {
		return r.Key
	}
	return store.KeyPopularHotels
}

func (r *PopularRecall) limit() int64 {
	if r.Limit > 0 {
		return r.Limit
	}
	return 100
}

// Process 实现 Node 接口，直接调用 Recall。
func (r *PopularRecall) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *PopularRecall) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	ids := r.fromStore(ctx)
	if len(ids) == 0 {
		ids = r.fromStats()
	}

	out := make([]*core.Item, 0, len(ids))
	for _, id := range ids {
		it := core.NewItem(id)
		if h, ok := r.Catalog.Resolve(id); ok {
			it.Hotel = h
		}
		if r.Stats != nil {
			it.RatingCount = r.Stats.RatingCount(id)
		}
		it.PutLabel("recall_source", utils.Label{Value: r.Name(), Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}

func (r *PopularRecall) fromStore(ctx context.Context) []string {
	if r.Store == nil {
		return nil
	}
	members, err := r.Store.ZRange(ctx, r.key(), 0, r.limit()-1)
	if err != nil {
		return nil
	}
	return members
}

// fromStats 直接用 Aggregator 现算人气分，作为 Store 不可用时的兜底。
// 排序复用目录载入顺序之上的稳定排序，保证结果可复现。
func (r *PopularRecall) fromStats() []string {
	if r.Stats == nil || r.Catalog == nil {
		return nil
	}
	type scored struct {
		id    string
		score float64
	}
	hotels := r.Catalog.AllHotels()
	pairs := make([]scored, 0, len(hotels))
	for _, h := range hotels {
		pairs = append(pairs, scored{id: h.ID, score: r.Stats.PopularityScore(h.ID)})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].score != pairs[j].score {
			return pairs[i].score > pairs[j].score
		}
		return pairs[i].id < pairs[j].id
	})

	n := int(r.limit())
	if n > len(pairs) {
		n = len(pairs)
	}
	ids := make([]string, 0, n)
	for _, p := range pairs[:n] {
		ids = append(ids, p.id)
	}
	return ids
}

// Warm 计算全目录的人气分并写入 Store 榜单。
// 目录不可变，启动时预热一次即可。
func (r *PopularRecall) Warm(ctx context.Context) error {
	if r.Store == nil || r.Stats == nil || r.Catalog == nil {
		return nil
	}
	for _, h := range r.Catalog.AllHotels() {
		if err := r.Store.ZAdd(ctx, r.key(), r.Stats.PopularityScore(h.ID), h.ID); err != nil {
			return err
		}
	}
	return nil
}
