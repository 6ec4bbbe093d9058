// Package engine 是推荐主流程的编排层：解析请求、组装 Pipeline、产出带解释的结果。
package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rushteam/hotelrec/core"
	"github.com/rushteam/hotelrec/feature"
	"github.com/rushteam/hotelrec/filter"
	"github.com/rushteam/hotelrec/pipeline"
	"github.com/rushteam/hotelrec/rank"
	"github.com/rushteam/hotelrec/recall"
	"github.com/rushteam/hotelrec/rerank"
	"github.com/rushteam/hotelrec/similarity"
	"github.com/rushteam/hotelrec/stats"
)

// highRatingThreshold 是“打过高分”的判定线，用于生成解释文案。
const highRatingThreshold = 4.0

// KnownHotel 是请求中的一条已知酒店：标识（id 或名称）加可选自评分。
type KnownHotel struct {
	Ref   string
	Score float64
	Rated bool // Score 是否有效（区分“评了 0 分”和“没评分”，虽然 0 分本不合法）
}

// Recommendation 是一条推荐结果。
// Score 是引擎内部的双精度值，不做展示舍入，舍入是表现层的事。
type Recommendation struct {
	Hotel  *core.Hotel
	Score  float64
	Reason string
}

// Result 是一次推荐请求的完整产出。
type Result struct {
	Recommendations []Recommendation

	// Warnings 记录请求内的软降级（如无法解析的标识）。
	Warnings []string
}

// Engine 把目录、统计、相似度和 Pipeline 节点组装成完整的推荐流程。
// 构造后只读，可被并发请求安全共享。
type Engine struct {
	catalog core.Catalog
	stats   *stats.Aggregator
	cfg     core.RecommendConfig

	metric     similarity.Metric
	neighbors  int
	minOverlap int

	// extraNodes 追加在排序之后、TopN 截断之前（规则过滤、多样性等）。
	extraNodes []pipeline.Node

	logger zerolog.Logger
}

// Option 是 Engine 的构造选项。
type Option func(*Engine)

// WithMetric 指定相似度度量（默认 cosine）。
func WithMetric(m similarity.Metric) Option {
	return func(e *Engine) {
		if m != nil {
			e.metric = m
		}
	}
}

// WithNeighbors 指定相似度打分考虑的邻居用户数。
func WithNeighbors(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.neighbors = n
		}
	}
}

// WithMinOverlap 指定计算相似度所需的最小共同评分数。
func WithMinOverlap(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.minOverlap = n
		}
	}
}

// WithConfig 替换默认的推荐配置（top_k 边界等）。
func WithConfig(cfg core.RecommendConfig) Option {
	return func(e *Engine) {
		if cfg != nil {
			e.cfg = cfg
		}
	}
}

// WithExtraNodes 追加 Pipeline 节点，插在排序之后、TopN 截断之前。
// 典型用途：配置驱动的规则过滤、多样性重排、Feast 特征注入。
func WithExtraNodes(nodes ...pipeline.Node) Option {
	return func(e *Engine) {
		e.extraNodes = append(e.extraNodes, nodes...)
	}
}

// WithLogger 指定结构化日志器。
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New 创建 Engine。
func New(catalog core.Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog: catalog,
		stats:   stats.NewAggregator(catalog),
		cfg:     &core.DefaultRecommendConfig{},
		metric:  similarity.Cosine{},
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.neighbors == 0 {
		e.neighbors = e.cfg.DefaultNeighbors()
	}
	if e.minOverlap == 0 {
		e.minOverlap = e.cfg.DefaultMinOverlap()
	}
	return e
}

// Recommend 执行一次推荐请求。
//
// 流程：夹取 top_k → 解析已知酒店 → 召回全目录 → 排除已知 →
// 打分排序（带画像走相似度，否则走均分）→ 附加节点 → TopN 截断 → 生成解释。
//
// 错误语义：评分越界返回 INVALID_INPUT；零解析成功返回 NO_KNOWN_HOTELS；
// 单个标识解析失败只记 warning。
func (e *Engine) Recommend(ctx context.Context, known []KnownHotel, topK int) (*Result, error) {
	start := time.Now()
	topK = e.clampTopK(topK)

	rctx, err := e.resolveKnown(known)
	if err != nil {
		return nil, err
	}

	p := e.buildPipeline(rctx, topK)
	items, err := p.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Recommendations: make([]Recommendation, 0, len(items)),
		Warnings:        rctx.Warnings,
	}
	for _, it := range items {
		if it == nil || it.Hotel == nil {
			continue
		}
		score := it.Score
		if rank.IsUnrated(score) {
			score = 0
		}
		result.Recommendations = append(result.Recommendations, Recommendation{
			Hotel:  it.Hotel,
			Score:  score,
			Reason: e.reason(rctx, it),
		})
	}

	e.logger.Debug().
		Str("user_id", rctx.UserID).
		Int("top_k", topK).
		Int("known", len(rctx.Known)).
		Int("results", len(result.Recommendations)).
		Dur("elapsed", time.Since(start)).
		Msg("recommend")

	return result, nil
}

// clampTopK 夹取 top_k：0 表示未指定、用默认值，其余越界值夹到最近边界。
func (e *Engine) clampTopK(topK int) int {
	if topK == 0 {
		return e.cfg.DefaultTopK()
	}
	if topK < e.cfg.MinTopK() {
		return e.cfg.MinTopK()
	}
	if topK > e.cfg.MaxTopK() {
		return e.cfg.MaxTopK()
	}
	return topK
}

// resolveKnown 解析请求中的已知酒店并构建请求上下文。
func (e *Engine) resolveKnown(known []KnownHotel) (*core.RecommendContext, error) {
	rctx := core.NewRecommendContext("")

	var profile *core.UserProfile
	for _, k := range known {
		// 评分越界是调用方输入错误，整个请求拒绝，不做静默截断
		if k.Rated && (k.Score < core.RatingMin || k.Score > core.RatingMax) {
			return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput,
				fmt.Sprintf("engine: rating %v for %q out of range [%v, %v]",
					k.Score, k.Ref, core.RatingMin, core.RatingMax))
		}
		ref := strings.TrimSpace(k.Ref)
		if ref == "" {
			rctx.AddWarning("empty hotel identifier skipped")
			continue
		}
		h, ok := e.catalog.Resolve(ref)
		if !ok {
			rctx.AddWarning(fmt.Sprintf("unknown hotel identifier %q skipped", ref))
			continue
		}
		if _, dup := rctx.KnownIDs[h.ID]; !dup {
			rctx.KnownIDs[h.ID] = struct{}{}
			rctx.Known = append(rctx.Known, h)
		}
		if k.Rated {
			if profile == nil {
				profile = core.NewUserProfile()
			}
			profile.Rate(h.ID, k.Score)
		}
	}

	if len(rctx.Known) == 0 {
		return nil, core.ErrNoKnownHotels
	}
	rctx.Profile = profile
	return rctx, nil
}

// buildPipeline 按请求组装 Pipeline。
func (e *Engine) buildPipeline(rctx *core.RecommendContext, topK int) *pipeline.Pipeline {
	nodes := []pipeline.Node{
		&recall.CatalogRecall{Catalog: e.catalog, Stats: e.stats},
		&filter.FilterNode{Filters: []filter.Filter{&filter.KnownHotelsFilter{}}},
		&feature.EnrichNode{},
	}

	if rctx.Profile.Len() > 0 {
		nodes = append(nodes, &rank.UserKNNNode{
			Catalog:    e.catalog,
			Stats:      e.stats,
			Metric:     e.metric,
			Neighbors:  e.neighbors,
			MinOverlap: e.minOverlap,
		})
	} else {
		nodes = append(nodes, &rank.MeanRatingNode{Stats: e.stats})
	}

	nodes = append(nodes, e.extraNodes...)
	nodes = append(nodes, &rerank.TopNNode{N: topK})
	return &pipeline.Pipeline{Nodes: nodes}
}

// reason 根据打分路径和已知酒店的品味信号生成解释文案。
func (e *Engine) reason(rctx *core.RecommendContext, it *core.Item) string {
	basis := ""
	if lbl, ok := it.GetLabel("score_basis"); ok {
		basis = lbl.Value
	}

	switch basis {
	case "mean_rating":
		return fmt.Sprintf("high average rating (%.1f/5) among %d reviews", it.Score, it.RatingCount)
	case "similarity":
		if overlap := e.tasteOverlap(rctx, it.Hotel); overlap != "" {
			return overlap
		}
		neighbors := 0
		if lbl, ok := it.GetLabel("neighbors"); ok {
			neighbors, _ = strconv.Atoi(lbl.Value)
		}
		return fmt.Sprintf("predicted %.1f/5 from %d reviewers with similar taste", it.Score, neighbors)
	case "mean_fallback":
		return fmt.Sprintf("no overlapping reviewers; falls back to its average rating (%.1f/5)", it.Score)
	case "unrated":
		return "no reviews yet"
	default:
		return "recommended for you"
	}
}

// tasteOverlap 对比候选与用户打过高分的已知酒店，优先用类别重合解释，其次位置。
func (e *Engine) tasteOverlap(rctx *core.RecommendContext, h *core.Hotel) string {
	if h == nil || rctx.Profile == nil {
		return ""
	}
	highRated := rctx.Profile.HighRated(highRatingThreshold)
	if len(highRated) == 0 {
		return ""
	}

	categories := make(map[string]struct{}, len(highRated))
	locations := make(map[string]struct{}, len(highRated))
	for _, id := range highRated {
		liked, ok := e.catalog.Resolve(id)
		if !ok {
			continue
		}
		if liked.Category != "" {
			categories[liked.Category] = struct{}{}
		}
		if liked.Location != "" {
			locations[liked.Location] = struct{}{}
		}
	}

	if h.Category != "" {
		if _, ok := categories[h.Category]; ok {
			return fmt.Sprintf("similar to the %s hotels you rated highly", strings.ToLower(h.Category))
		}
	}
	if h.Location != "" {
		if _, ok := locations[h.Location]; ok {
			return fmt.Sprintf("in %s, like the hotels you rated highly", h.Location)
		}
	}
	return ""
}
