package core

// Hotel 是目录（Catalog）中的一条酒店记录。
//
// 描述性字段（类别/位置/价位/星级/设施）对打分逻辑完全透明：
// Engine 只读取 ID 与评分历史做排序决策，其余字段原样透传给调用方。
//
// 不变式：同一个已加载的 Catalog 实例内，ID 唯一且不可变；
// Name 不保证唯一，仅作为二级查找键。
type Hotel struct {
	ID          string
	Name        string
	Category    string   // Luxury / Riad / Budget / Business / Boutique ...
	Location    string
	PriceTier   string   // budget / mid / upscale / luxury
	StarRating  float64
	Amenities   []string
	Description string
}

// Rating 是历史数据集中的一条 (用户, 酒店, 评分) 记录。
// 加载完成后不可变，数据集在进程生命周期内只读。
type Rating struct {
	UserID  string
	HotelID string
	Score   float64 // 1-5（含边界）
}

// RatingScale 定义评分的合法区间。0 不是合法评分，
// 因此“无评分”必须用独立的哨兵表达（见 stats.Aggregator.MeanRating）。
const (
	RatingMin = 1.0
	RatingMax = 5.0
)
