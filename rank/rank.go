// Package rank 提供候选打分与确定性排序。
//
// 两种打分方式：
//   - MeanRatingNode：无用户画像时按历史均分打分
//   - UserKNNNode：有用户画像时按用户协同过滤预测评分打分
//
// 零评分候选内部用 -Inf 占位，排序必然垫底但从不被剔除。
package rank

import (
	"math"
	"sort"

	"github.com/rushteam/hotelrec/core"
)

// Unrated 是零评分候选的内部分数占位，保证排序垫底。
// 对外输出前由 Engine 归一为 0。
var Unrated = math.Inf(-1)

// IsUnrated 判断分数是否是零评分占位。
func IsUnrated(score float64) bool {
	return math.IsInf(score, -1)
}

// SortDeterministic 对候选做全序确定性排序：
// 分数降序，评分数降序，最后按酒店 id 字典序升序兜底。
// 同一份输入任何时候都产出同一个顺序。
func SortDeterministic(items []*core.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i] == nil {
			return false
		}
		if items[j] == nil {
			return true
		}
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		if items[i].RatingCount != items[j].RatingCount {
			return items[i].RatingCount > items[j].RatingCount
		}
		return items[i].ID < items[j].ID
	})
}
