package feature

import (
	"context"

	"github.com/rushteam/hotelrec/core"
	"github.com/rushteam/hotelrec/feast"
	"github.com/rushteam/hotelrec/pipeline"
	"github.com/rushteam/hotelrec/pkg/conv"
)

// FeastEnrichNode 从 Feast Feature Store 批量拉取酒店在线特征并合入 Item.Features。
// 典型用途是离线管道产出的行为特征（近 30 天点击率、转化率等）。
//
// Feast 不可用或拉取失败时静默跳过：行为特征是锦上添花，
// 特征服务故障不应拖垮推荐主链路。
type FeastEnrichNode struct {
	Client feast.Client

	// Features 要拉取的特征名列表，例如 ["hotel_stats:ctr_30d"]
	Features []string

	// EntityKey 实体键名，默认 "hotel_id"
	EntityKey string
}

func (n *FeastEnrichNode) Name() string {
	return "feature.feast"
}

func (n *FeastEnrichNode) Kind() pipeline.Kind {
	return pipeline.KindPostProcess
}

func (n *FeastEnrichNode) entityKey() string {
	if n.EntityKey != "" {
		return n.EntityKey
	}
	return "hotel_id"
}

func (n *FeastEnrichNode) Process(
	ctx context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Client == nil || len(n.Features) == 0 || len(items) == 0 {
		return items, nil
	}

	entityRows := make([]map[string]interface{}, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		entityRows = append(entityRows, map[string]interface{}{n.entityKey(): it.ID})
	}

	resp, err := n.Client.GetOnlineFeatures(ctx, &feast.GetOnlineFeaturesRequest{
		Features:   n.Features,
		EntityRows: entityRows,
	})
	if err != nil || resp == nil {
		return items, nil
	}

	// 按实体行回填，只合入能转成数值的特征
	byID := make(map[string]map[string]interface{}, len(resp.FeatureVectors))
	for _, fv := range resp.FeatureVectors {
		id, ok := fv.EntityRow[n.entityKey()].(string)
		if !ok {
			continue
		}
		byID[id] = fv.Values
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		values, ok := byID[it.ID]
		if !ok {
			continue
		}
		if it.Features == nil {
			it.Features = make(map[string]float64)
		}
		for name, raw := range values {
			if f, ok := conv.ToFloat64(raw); ok {
				it.Features[name] = f
			}
		}
	}
	return items, nil
}
