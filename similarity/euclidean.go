package similarity

import "math"

// Euclidean 是基于欧氏距离的相似度：1 / (1 + distance)。
// 对任意等长输入恒有定义，值域 (0, 1]；距离越小相似度越高。
type Euclidean struct{}

func (Euclidean) Name() string { return MetricEuclidean }

func (Euclidean) Score(a, b []float64) (float64, error) {
	if err := checkDims(a, b); err != nil {
		return 0, err
	}

	var sumSquares float64
	for i := range a {
		d := a[i] - b[i]
		sumSquares += d * d
	}
	return 1 / (1 + math.Sqrt(sumSquares)), nil
}
