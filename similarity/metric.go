// Package similarity 提供可互换的成对相似度度量。
//
// 所有度量都满足同一能力：输入两个等长数值向量，输出有界相似度分数。
// Engine 在构造期按配置选择其一（默认 cosine），打分代码中不做
// 字符串分发。不等长输入返回 DIMENSION_MISMATCH——这是调用方
// 编程错误，不是可恢复的运行期状态。
package similarity

import (
	"fmt"

	"github.com/rushteam/hotelrec/core"
)

// Metric 是成对相似度的策略接口。
//
// 实现约定：
//   - 等长向量，返回有界分数（各实现注明值域）
//   - 零范数/零方差等退化输入按策略返回 0，不 panic 不除零
//   - 不等长输入返回 core.ErrDimensionMismatch
type Metric interface {
	Name() string
	Score(a, b []float64) (float64, error)
}

// 内置度量名称。
const (
	MetricCosine    = "cosine"
	MetricPearson   = "pearson"
	MetricEuclidean = "euclidean"
	MetricJaccard   = "jaccard"
)

// ByName 按名称选择度量；空名返回默认的 Cosine。
// 未知名称返回 INVALID_INPUT 错误（配置错误应在构造期暴露）。
func ByName(name string) (Metric, error) {
	switch name {
	case "", MetricCosine:
		return Cosine{}, nil
	case MetricPearson:
		return Pearson{}, nil
	case MetricEuclidean:
		return Euclidean{}, nil
	case MetricJaccard:
		return Jaccard{}, nil
	default:
		return nil, core.NewDomainError(core.ModuleSimilarity, core.ErrorCodeInvalidInput,
			fmt.Sprintf("similarity: unknown metric %q", name))
	}
}

func checkDims(a, b []float64) error {
	if len(a) != len(b) {
		return core.ErrDimensionMismatch
	}
	return nil
}
