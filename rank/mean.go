package rank

import (
	"context"
	"strconv"

	"github.com/rushteam/hotelrec/core"
	"github.com/rushteam/hotelrec/pipeline"
	"github.com/rushteam/hotelrec/pkg/utils"
	"github.com/rushteam/hotelrec/stats"
)

// MeanRatingNode 按历史均分打分并确定性排序。
// 请求不带用户画像时走这条路径。
//   - 写入 labels：score_basis（mean_rating / unrated）、reviews（评分条数）
//   - 零评分候选打 Unrated 占位分，排序垫底但保留
type MeanRatingNode struct {
	Stats *stats.Aggregator
}

func (n *MeanRatingNode) Name() string        { return "rank.mean_rating" }
func (n *MeanRatingNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *MeanRatingNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Stats == nil || len(items) == 0 {
		return items, nil
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		count := n.Stats.RatingCount(it.ID)
		it.RatingCount = count
		it.PutLabel("reviews", utils.Label{Value: strconv.Itoa(count), Source: "rank"})

		mean, ok := n.Stats.MeanRating(it.ID)
		if !ok {
			it.Score = Unrated
			it.PutLabel("score_basis", utils.Label{Value: "unrated", Source: "rank"})
			continue
		}
		it.Score = mean
		it.PutLabel("score_basis", utils.Label{Value: "mean_rating", Source: "rank"})
	}

	SortDeterministic(items)
	return items, nil
}
