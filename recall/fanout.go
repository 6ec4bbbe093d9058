package recall

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/hotelrec/core"
	"github.com/rushteam/hotelrec/pipeline"
	"github.com/rushteam/hotelrec/pkg/utils"
)

// Fanout 并发执行多个召回源并合并结果。
// 单个源失败或超时只丢掉它自己的结果，不中断整次召回；
// 合并顺序固定按 Sources 声明顺序，与各源实际完成顺序无关。
type Fanout struct {
	Sources       []Source
	Dedup         bool
	Timeout       time.Duration // 单个召回源的超时
	MaxConcurrent int           // 最大并发数，0 表示不限
	MergeStrategy string        // union 保留重复；默认按 ID 去重，先声明的源优先
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	// 每个源写自己的槽位，无需互斥；槽位顺序即声明顺序
	grouped := make([][]*core.Item, len(n.Sources))
	eg, egCtx := errgroup.WithContext(ctx)
	if n.MaxConcurrent > 0 {
		eg.SetLimit(n.MaxConcurrent)
	}

	for i, src := range n.Sources {
		slot, s := i, src
		eg.Go(func() error {
			grouped[slot] = n.runSource(egCtx, rctx, s, slot)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var all []*core.Item
	for _, items := range grouped {
		all = append(all, items...)
	}

	if n.MergeStrategy == "union" {
		return all, nil
	}
	return n.mergeFirst(all), nil
}

// runSource 执行单个召回源，错误与超时降级为空结果。
func (n *Fanout) runSource(ctx context.Context, rctx *core.RecommendContext, s Source, priority int) []*core.Item {
	if n.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.Timeout)
		defer cancel()
	}

	items, err := s.Recall(ctx, rctx)
	if err != nil {
		return nil
	}

	for _, it := range items {
		it.PutLabel("recall_source", utils.Label{Value: s.Name(), Source: "recall"})
		it.PutLabel("recall_priority", utils.Label{Value: strconv.Itoa(priority), Source: "recall"})
	}
	return items
}

// mergeFirst 按 ID 去重，保留第一个出现的；重复项的 labels 合并进保留项。
// all 已按声明顺序排好，先出现者优先级必然更高。
func (n *Fanout) mergeFirst(all []*core.Item) []*core.Item {
	if !n.Dedup {
		return all
	}
	seen := make(map[string]*core.Item, len(all))
	out := make([]*core.Item, 0, len(all))
	for _, it := range all {
		if it == nil {
			continue
		}
		if kept, ok := seen[it.ID]; ok {
			for k, v := range it.Labels {
				kept.PutLabel(k, v)
			}
			continue
		}
		seen[it.ID] = it
		out = append(out, it)
	}
	return out
}
