package core

import "github.com/rushteam/hotelrec/pkg/utils"

// RecommendContext 承载单次推荐请求的上下文，贯穿整个 Pipeline 透传。
//
// 生命周期与请求相同：由 Engine 在解析已知酒店后构建，响应产出后丢弃，
// 从不持久化。Pipeline 各节点只读共享 Catalog，请求内可变状态都在这里。
type RecommendContext struct {
	UserID string // 可选：请求方标识，仅用于日志
	Scene  string

	// Known 是解析成功的已知酒店（排除与解释的依据）。
	Known []*Hotel

	// KnownIDs 是 Known 的 id 集合。排除只按 id，从不按名称，
	// 避免两家重名酒店被误伤。
	KnownIDs map[string]struct{}

	// Profile 是请求级用户画像：调用方对已知酒店的自评分。
	// 只有请求带了评分才非 nil；决定走相似度打分还是均值打分。
	Profile *UserProfile

	// Warnings 记录请求内的软降级（如无法解析的标识），不中断请求。
	Warnings []string

	// Labels 是请求级标签，可驱动 Pipeline 行为。
	Labels map[string]utils.Label

	// Params 请求级参数（debug 开关等），对核心打分逻辑透明。
	Params map[string]any
}

// NewRecommendContext 创建空的请求上下文。
func NewRecommendContext(userID string) *RecommendContext {
	return &RecommendContext{
		UserID:   userID,
		KnownIDs: make(map[string]struct{}),
	}
}

// IsKnown 判断酒店 id 是否在已知集合内。
func (rctx *RecommendContext) IsKnown(hotelID string) bool {
	if rctx == nil || rctx.KnownIDs == nil {
		return false
	}
	_, ok := rctx.KnownIDs[hotelID]
	return ok
}

// AddWarning 记录一次软降级。
func (rctx *RecommendContext) AddWarning(msg string) {
	rctx.Warnings = append(rctx.Warnings, msg)
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
