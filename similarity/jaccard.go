package similarity

// Jaccard 是基于“喜欢集合”的杰卡德相似度：
// 把评分不低于 Threshold 的维度视为喜欢，分数 = 交集/并集，值域 [0, 1]。
// 并集为空时返回 0。
type Jaccard struct {
	// Threshold 喜欢阈值，零值时取 DefaultLikeThreshold。
	Threshold float64
}

// DefaultLikeThreshold 是 1-5 评分制下“喜欢”的默认阈值。
const DefaultLikeThreshold = 3.5

func (Jaccard) Name() string { return MetricJaccard }

func (j Jaccard) Score(a, b []float64) (float64, error) {
	if err := checkDims(a, b); err != nil {
		return 0, err
	}

	threshold := j.Threshold
	if threshold == 0 {
		threshold = DefaultLikeThreshold
	}

	var intersection, union int
	for i := range a {
		likedA := a[i] >= threshold
		likedB := b[i] >= threshold
		if likedA && likedB {
			intersection++
		}
		if likedA || likedB {
			union++
		}
	}

	if union == 0 {
		return 0, nil
	}
	return float64(intersection) / float64(union), nil
}
