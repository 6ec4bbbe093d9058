package similarity

import "math"

// Cosine 是余弦相似度：点积除以范数之积，值域 [-1, 1]。
// 任一向量范数为 0 时按策略返回 0（避免除零，这是刻意的边界策略）。
type Cosine struct{}

func (Cosine) Name() string { return MetricCosine }

func (Cosine) Score(a, b []float64) (float64, error) {
	if err := checkDims(a, b); err != nil {
		return 0, err
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
