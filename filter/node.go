package filter

import (
	"context"

	"github.com/rushteam/hotelrec/core"
	"github.com/rushteam/hotelrec/pipeline"
	"github.com/rushteam/hotelrec/pkg/utils"
)

// FilterNode 把一组 Filter 组合成一个过滤环节。
// 任何一个 Filter 命中即移除该候选；单个 Filter 出错时跳过它继续判定，
// 过滤策略故障不应放大为整次请求失败。
type FilterNode struct {
	Filters []Filter
}

func (n *FilterNode) Name() string        { return "filter.node" }
func (n *FilterNode) Kind() pipeline.Kind { return pipeline.KindFilter }

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if name, hit := n.match(ctx, rctx, item); hit {
			// filtered label 记录命中的过滤器，debug 输出可见
			item.PutLabel("filtered", utils.Label{Value: "true", Source: name})
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

// match 返回第一个命中的过滤器名称。
func (n *FilterNode) match(ctx context.Context, rctx *core.RecommendContext, item *core.Item) (string, bool) {
	for _, f := range n.Filters {
		hit, err := f.ShouldFilter(ctx, rctx, item)
		if err != nil {
			continue
		}
		if hit {
			return f.Name(), true
		}
	}
	return "", false
}
