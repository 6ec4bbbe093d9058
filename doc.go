// Package hotelrec 是一个酒店推荐工具包（Hotel Recommender Kit）。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → Rank → ReRank → PostProcess）
// - Labels-first: labels 全链路透传与标准化 merge，支撑对外 reason 解释
// - Engine 封装固定语义：已知酒店解析、近邻打分、确定性排序、TopK 截断
// - Node 可扩展: 规则过滤、多样性等附加策略按配置插拔
package hotelrec

import "github.com/rushteam/hotelrec/pipeline"

// 轻量 facade：便于用户直接 import "hotelrec" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
