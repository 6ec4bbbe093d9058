package core

import "github.com/rushteam/hotelrec/pkg/utils"

// Item 是推荐链路中的统一承载结构：候选酒店、分数、特征、标签。
// Labels 用于解释与策略驱动；Score 用于排序决策。
//
// Score 语义：均值打分时是酒店的平均评分，相似度打分时是预测评分；
// 零评分候选内部用 -Inf 兜底排序（见 rank 包），对外输出时归一为 0。
type Item struct {
	ID          string
	Score       float64
	RatingCount int

	// Hotel 指向 Catalog 中的只读记录，链路中任何节点都不得修改它。
	Hotel *Hotel

	Features map[string]float64
	Labels   map[string]utils.Label
}

func NewItem(id string) *Item {
	return &Item{
		ID:       id,
		Score:    0,
		Features: make(map[string]float64),
		Labels:   make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// GetLabel 读取 Label。
func (it *Item) GetLabel(key string) (utils.Label, bool) {
	if it.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := it.Labels[key]
	return lbl, ok
}
