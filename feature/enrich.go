// Package feature 提供候选酒店的特征注入节点。
//
// 特征不参与核心打分（均值/相似度路径只看评分），但会透传给
// 规则过滤（CEL 表达式可引用 item.features）和对外的 debug 输出。
package feature

import (
	"context"

	"github.com/rushteam/hotelrec/core"
	"github.com/rushteam/hotelrec/pipeline"
)

// 价格档位的序数编码，档位未知时不注入该特征。
var priceTierRank = map[string]float64{
	"budget":  1,
	"mid":     2,
	"upscale": 3,
	"luxury":  4,
}

// EnrichNode 从目录元数据注入酒店特征：
//   - star_rating：星级
//   - price_tier_rank：价格档位序数（budget=1 .. luxury=4）
//   - amenity_count：设施数量
//   - rating_count：历史评分条数
type EnrichNode struct{}

func (n *EnrichNode) Name() string {
	return "feature.enrich"
}

func (n *EnrichNode) Kind() pipeline.Kind {
	return pipeline.KindPostProcess
}

func (n *EnrichNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	for _, it := range items {
		if it == nil || it.Hotel == nil {
			continue
		}
		if it.Features == nil {
			it.Features = make(map[string]float64)
		}
		h := it.Hotel
		if h.StarRating > 0 {
			it.Features["star_rating"] = h.StarRating
		}
		if rank, ok := priceTierRank[h.PriceTier]; ok {
			it.Features["price_tier_rank"] = rank
		}
		it.Features["amenity_count"] = float64(len(h.Amenities))
		it.Features["rating_count"] = float64(it.RatingCount)
	}
	return items, nil
}
