package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/hotelrec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("hotel", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("rctx", cel.DynType),
	)
	return env, err
}

func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Eval 是规则 DSL 解释器，使用 CEL (Common Expression Language) 实现。
//
// 表达式语法（CEL 标准语法）：
//   - 基础：hotel.category == "Hostel" / label.recall_source != null
//   - 数值：item.score > 4.0 / item.rating_count >= 3
//   - 逻辑：hotel.location == "Medina" && hotel.star_rating >= 4.0
//   - 包含：label.recall_source.contains("popular")
//
// 示例：
//   - `hotel.price_tier == "budget"` → 只看经济型酒店
//   - `item.rating_count == 0` → 零评分候选
//   - `rctx.scene == "business" && hotel.category != "Hostel"` → 商旅场景排除青旅
type Eval struct {
	item *core.Item
	rctx *core.RecommendContext
	env  *cel.Env
}

// NewEval 创建一个新的 DSL 解释器。
func NewEval(item *core.Item, rctx *core.RecommendContext) *Eval {
	env, _ := getCELEnv()
	return &Eval{
		item: item,
		rctx: rctx,
		env:  env,
	}
}

// Evaluate 解析并执行 DSL 表达式，返回布尔结果。
// 空表达式恒为 true。访问不存在的 key 会报错，
// 存在性检查应写成 label.key != null。
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("program error: %v", err)
	}

	out, _, err := prg.Eval(e.buildInput())
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}

	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func (e *Eval) buildInput() map[string]interface{} {
	labels := make(map[string]interface{})
	labelAccessor := make(map[string]interface{})
	for k, v := range e.item.Labels {
		labels[k] = map[string]interface{}{
			"value":  v.Value,
			"source": v.Source,
		}
		// label.recall_source 直接返回 value，简化常见写法
		labelAccessor[k] = v.Value
	}

	item := map[string]interface{}{
		"id":           e.item.ID,
		"score":        e.item.Score,
		"rating_count": e.item.RatingCount,
		"features":     e.item.Features,
		"labels":       labels,
	}

	hotel := map[string]interface{}{}
	if h := e.item.Hotel; h != nil {
		hotel = map[string]interface{}{
			"id":          h.ID,
			"name":        h.Name,
			"category":    h.Category,
			"location":    h.Location,
			"price_tier":  h.PriceTier,
			"star_rating": h.StarRating,
		}
	}

	rctx := map[string]interface{}{}
	if e.rctx != nil {
		rctx = map[string]interface{}{
			"user_id": e.rctx.UserID,
			"scene":   e.rctx.Scene,
			"params":  e.rctx.Params,
		}
	}

	return map[string]interface{}{
		"item":  item,
		"hotel": hotel,
		"label": labelAccessor,
		"rctx":  rctx,
	}
}
