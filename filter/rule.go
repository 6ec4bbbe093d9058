package filter

import (
	"context"

	"github.com/rushteam/hotelrec/core"
	"github.com/rushteam/hotelrec/pkg/dsl"
)

// RuleFilter 是基于 CEL 规则表达式的过滤器：表达式为 true 时移除候选。
// 用于运营侧的声明式过滤，例如：
//   - `hotel.category == "Hostel"`：排除青旅
//   - `hotel.star_rating < 3.0`：排除低星酒店
//
// 表达式求值失败时保留候选，规则写错不应清空推荐结果。
type RuleFilter struct {
	Expr string
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if f.Expr == "" {
		return false, nil
	}
	matched, err := dsl.NewEval(item, rctx).Evaluate(f.Expr)
	if err != nil {
		return false, err
	}
	return matched, nil
}
