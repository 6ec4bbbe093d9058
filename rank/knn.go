package rank

import (
	"context"
	"sort"
	"strconv"

	"github.com/rushteam/hotelrec/core"
	"github.com/rushteam/hotelrec/pipeline"
	"github.com/rushteam/hotelrec/pkg/utils"
	"github.com/rushteam/hotelrec/similarity"
	"github.com/rushteam/hotelrec/stats"
)

// UserKNNNode 是用户协同过滤打分节点：请求带用户画像时走这条路径。
//
// 流程：
//  1. 在历史评分用户中找邻居：与画像至少共同评过 MinOverlap 家酒店的用户
//  2. 在共同评分酒店上（id 升序对齐）用 Metric 计算相似度，只保留正相似度
//  3. 取相似度最高的 Neighbors 个邻居（同分按 user id 升序，保证可复现）
//  4. 候选分 = Σ(相似度 × 邻居评分) / Σ(相似度)，仅累计评过该候选的邻居
//  5. 无邻居覆盖的候选回退为历史均分；零评分候选打 Unrated 占位
//
// 写入 labels：score_basis（similarity / mean_fallback / unrated）、
// neighbors（参与该候选打分的邻居数）、reviews。
type UserKNNNode struct {
	Catalog core.Catalog
	Stats   *stats.Aggregator
	Metric  similarity.Metric

	Neighbors  int // 邻居数上限，0 表示 5
	MinOverlap int // 最小共同评分数，0 表示 1
}

func (n *UserKNNNode) Name() string        { return "rank.user_knn" }
func (n *UserKNNNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *UserKNNNode) neighbors() int {
	if n.Neighbors > 0 {
		return n.Neighbors
	}
	return 5
}

func (n *UserKNNNode) minOverlap() int {
	if n.MinOverlap > 0 {
		return n.MinOverlap
	}
	return 1
}

func (n *UserKNNNode) metric() similarity.Metric {
	if n.Metric != nil {
		return n.Metric
	}
	return similarity.Cosine{}
}

type neighbor struct {
	userID  string
	sim     float64
	ratings map[string]float64
}

func (n *UserKNNNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Stats == nil || n.Catalog == nil || len(items) == 0 {
		return items, nil
	}

	var nbrs []neighbor
	if rctx != nil && rctx.Profile != nil && rctx.Profile.Len() > 0 {
		nbrs = n.findNeighbors(rctx.Profile)
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		count := n.Stats.RatingCount(it.ID)
		it.RatingCount = count
		it.PutLabel("reviews", utils.Label{Value: strconv.Itoa(count), Source: "rank"})

		var weighted, simSum float64
		covered := 0
		for _, nb := range nbrs {
			score, ok := nb.ratings[it.ID]
			if !ok {
				continue
			}
			weighted += nb.sim * score
			simSum += nb.sim
			covered++
		}

		if simSum > 0 {
			it.Score = weighted / simSum
			it.PutLabel("score_basis", utils.Label{Value: "similarity", Source: "rank"})
			it.PutLabel("neighbors", utils.Label{Value: strconv.Itoa(covered), Source: "rank"})
			continue
		}

		// 邻居没覆盖到的候选回退为历史均分
		if mean, ok := n.Stats.MeanRating(it.ID); ok {
			it.Score = mean
			it.PutLabel("score_basis", utils.Label{Value: "mean_fallback", Source: "rank"})
			continue
		}
		it.Score = Unrated
		it.PutLabel("score_basis", utils.Label{Value: "unrated", Source: "rank"})
	}

	SortDeterministic(items)
	return items, nil
}

// findNeighbors 在全体历史用户中挑选与画像相似的邻居。
func (n *UserKNNNode) findNeighbors(profile *core.UserProfile) []neighbor {
	metric := n.metric()
	minOverlap := n.minOverlap()

	var nbrs []neighbor
	for _, uid := range n.Catalog.AllUsers() {
		ratings := n.Catalog.UserRatings(uid)
		if len(ratings) == 0 {
			continue
		}

		// 共同评分酒店按 id 升序对齐成等长向量
		common := make([]string, 0, len(ratings))
		for hotelID := range ratings {
			if _, ok := profile.Ratings[hotelID]; ok {
				common = append(common, hotelID)
			}
		}
		if len(common) < minOverlap {
			continue
		}
		sort.Strings(common)

		a := make([]float64, len(common))
		b := make([]float64, len(common))
		for i, hotelID := range common {
			a[i] = profile.Ratings[hotelID]
			b[i] = ratings[hotelID]
		}

		sim, err := metric.Score(a, b)
		if err != nil || sim <= 0 {
			continue
		}
		nbrs = append(nbrs, neighbor{userID: uid, sim: sim, ratings: ratings})
	}

	sort.Slice(nbrs, func(i, j int) bool {
		if nbrs[i].sim != nbrs[j].sim {
			return nbrs[i].sim > nbrs[j].sim
		}
		return nbrs[i].userID < nbrs[j].userID
	})
	if len(nbrs) > n.neighbors() {
		nbrs = nbrs[:n.neighbors()]
	}
	return nbrs
}
