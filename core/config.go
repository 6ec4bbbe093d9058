package core

// RecommendConfig 是推荐相关的配置接口，用于提供默认值。
type RecommendConfig interface {
	// DefaultTopK 返回未指定 top_k 时的默认返回条数
	DefaultTopK() int

	// MinTopK 返回 top_k 的下界（越界时夹取而非报错）
	MinTopK() int

	// MaxTopK 返回 top_k 的上界（越界时夹取而非报错）
	MaxTopK() int

	// DefaultNeighbors 返回相似度打分时默认考虑的邻居用户数
	DefaultNeighbors() int

	// DefaultMinOverlap 返回两个用户至少需要多少个共同评分酒店才计算相似度
	DefaultMinOverlap() int
}

// DefaultRecommendConfig 是默认的推荐配置实现。
//
// top_k 的夹取策略是刻意的宽松：越界请求夹到最近的边界而不是报错，
// 有界且单调，对 demo 级调用方更友好；这不是静默数据破坏。
type DefaultRecommendConfig struct{}

func (c *DefaultRecommendConfig) DefaultTopK() int {
	return 10
}

func (c *DefaultRecommendConfig) MinTopK() int {
	return 1
}

func (c *DefaultRecommendConfig) MaxTopK() int {
	return 50
}

func (c *DefaultRecommendConfig) DefaultNeighbors() int {
	return 5
}

func (c *DefaultRecommendConfig) DefaultMinOverlap() int {
	return 1
}
