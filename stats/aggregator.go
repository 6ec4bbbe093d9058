// Package stats 提供从评分历史派生的酒店级统计。
package stats

import (
	"math"

	"github.com/rushteam/hotelrec/core"
)

// Aggregator 在只读 Catalog 之上计算派生统计。
//
// 数值语义：均值用双精度浮点计算，内部不做任何四舍五入——
// 展示用的舍入是表现层的事（对外 API 层决定保留几位）。
type Aggregator struct {
	catalog core.Catalog
}

func NewAggregator(c core.Catalog) *Aggregator {
	return &Aggregator{catalog: c}
}

// MeanRating 返回酒店全部历史评分的算术平均。
// 零评分时返回 (0, false)：调用方必须能区分“没人评过”和“评了低分”。
// 1-5 评分制下 0 不是合法分数，但哨兵仍然独立于数值返回，
// 避免排序时把它当成真实分数。
func (a *Aggregator) MeanRating(hotelID string) (float64, bool) {
	ratings := a.catalog.RatingsFor(hotelID)
	if len(ratings) == 0 {
		return 0, false
	}
	var sum float64
	for _, r := range ratings {
		sum += r.Score
	}
	return sum / float64(len(ratings)), true
}

// RatingCount 返回酒店的历史评分条数（≥ 0）。
func (a *Aggregator) RatingCount(hotelID string) int {
	return len(a.catalog.RatingsFor(hotelID))
}

// PopularityScore 返回人气分 = 均分 × ln(评分数 + 1)。
// 评分数的对数加权让“4.5 分 × 40 条”压过“5.0 分 × 1 条”，
// 用于热门榜/冷启动兜底。零评分酒店人气为 0。
func (a *Aggregator) PopularityScore(hotelID string) float64 {
	mean, ok := a.MeanRating(hotelID)
	if !ok {
		return 0
	}
	return mean * math.Log(float64(a.RatingCount(hotelID))+1)
}
