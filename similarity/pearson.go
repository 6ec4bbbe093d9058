package similarity

import "math"

// Pearson 是皮尔逊相关系数：中心化后的余弦，值域 [-1, 1]。
// 任一向量方差为 0（常量向量）时按策略返回 0（避免除零）。
type Pearson struct{}

func (Pearson) Name() string { return MetricPearson }

func (Pearson) Score(a, b []float64) (float64, error) {
	if err := checkDims(a, b); err != nil {
		return 0, err
	}
	if len(a) == 0 {
		return 0, nil
	}

	var meanA, meanB float64
	for i := range a {
		meanA += a[i]
		meanB += b[i]
	}
	meanA /= float64(len(a))
	meanB /= float64(len(b))

	var cov, varA, varB float64
	for i := range a {
		da := a[i] - meanA
		db := b[i] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}

	if varA == 0 || varB == 0 {
		return 0, nil
	}
	return cov / math.Sqrt(varA*varB), nil
}
