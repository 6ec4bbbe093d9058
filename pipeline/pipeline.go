package pipeline

import (
	"context"

	"github.com/rushteam/hotelrec/core"
)

// Pipeline 是推荐链路的核心抽象：把推荐逻辑拆成可组合的 Node 链。
// 推荐主流程固定为 recall -> filter -> rank -> rerank，
// 各阶段的具体实现由 Node 决定，Pipeline 只负责顺序执行和错误短路。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
