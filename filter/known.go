package filter

import (
	"context"

	"github.com/rushteam/hotelrec/core"
)

// KnownHotelsFilter 过滤请求中声明的已知酒店：推荐结果不应包含用户已经住过的。
// 排除只按酒店 id 精确比对，从不按名称，两家重名酒店互不影响。
type KnownHotelsFilter struct{}

func (f *KnownHotelsFilter) Name() string {
	return "filter.known_hotels"
}

func (f *KnownHotelsFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	return rctx.IsKnown(item.ID), nil
}
