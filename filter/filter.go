// Package filter 提供候选过滤：已知酒店排除、CEL 规则过滤。
//
// 注意区分两类"过滤"：已知酒店排除是推荐语义的一部分（不能把用户
// 已经住过的酒店再推给他）；规则过滤是可配置的业务策略，按需插拔。
package filter

import (
	"context"

	"github.com/rushteam/hotelrec/core"
)

// Filter 判断一家候选酒店是否应该从结果中移除。
// 返回 true 表示移除，false 表示保留。
type Filter interface {
	// Name 返回过滤器名称，移除时写入 filtered label 的 Source
	Name() string

	// ShouldFilter 判断候选是否应该被移除
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error)
}
