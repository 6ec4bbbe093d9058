package config

import (
	"fmt"

	"github.com/rushteam/hotelrec/feature"
	"github.com/rushteam/hotelrec/filter"
	"github.com/rushteam/hotelrec/pipeline"
	"github.com/rushteam/hotelrec/pkg/conv"
	"github.com/rushteam/hotelrec/rerank"
)

// 内置 Node 构建器。依赖目录/统计的节点（recall.catalog、rank.user_knn 等）
// 由 Engine 在构造期直接装配，不走配置注册表；这里只注册纯配置即可构建的节点，
// 用于 pipeline YAML 中声明的附加环节。
func init() {
	Register("filter.known_hotels", buildKnownHotelsFilterNode)
	Register("filter.rule", buildRuleFilterNode)
	Register("rerank.diversity", buildDiversityNode)
	Register("rerank.topn", buildTopNNode)
	Register("feature.enrich", buildFeatureEnrichNode)
}

func buildKnownHotelsFilterNode(_ map[string]interface{}) (pipeline.Node, error) {
	return &filter.FilterNode{Filters: []filter.Filter{&filter.KnownHotelsFilter{}}}, nil
}

func buildRuleFilterNode(config map[string]interface{}) (pipeline.Node, error) {
	expr := conv.ConfigGet[string](config, "expr", "")
	if expr == "" {
		return nil, fmt.Errorf("filter.rule: expr is required")
	}
	return &filter.FilterNode{Filters: []filter.Filter{&filter.RuleFilter{Expr: expr}}}, nil
}

func buildDiversityNode(config map[string]interface{}) (pipeline.Node, error) {
	labelKey := conv.ConfigGet[string](config, "label_key", "category")
	if labelKey == "" {
		labelKey = "category"
	}
	return &rerank.Diversity{LabelKey: labelKey}, nil
}

func buildTopNNode(config map[string]interface{}) (pipeline.Node, error) {
	n := int(conv.ConfigGetInt64(config, "n", 0))
	return &rerank.TopNNode{N: n}, nil
}

func buildFeatureEnrichNode(_ map[string]interface{}) (pipeline.Node, error) {
	return &feature.EnrichNode{}, nil
}
