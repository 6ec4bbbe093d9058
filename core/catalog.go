package core

// Catalog 是目录的领域接口：全量酒店 + 完整评分历史的只读视图。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（catalog）实现
//   - 构建一次后不可变，可被并发请求无锁共享（见 catalog 包）
//   - Engine 通过显式注入的 Catalog 实例工作，不依赖进程级单例，
//     同一进程内可同时存在多个互不干扰的 Catalog（便于逐用例建目录测试）
type Catalog interface {
	// Resolve 按标识解析酒店：先精确匹配 id，再大小写不敏感精确匹配名称；
	// id 命中优先（id 是权威键）。不做模糊/前缀匹配，保证解析确定可测。
	Resolve(identifier string) (*Hotel, bool)

	// AllHotels 返回全部酒店，顺序稳定 = 数据源中的插入顺序。
	AllHotels() []*Hotel

	// RatingsFor 返回某家酒店的全部历史评分；
	// 酒店存在但零评分时返回空切片，不是错误。
	RatingsFor(hotelID string) []Rating

	// UserRatings 返回某个历史用户的评分表 map[hotelID]score；
	// 未知用户返回空 map。返回值是只读共享数据，调用方不得修改。
	UserRatings(userID string) map[string]float64

	// AllUsers 返回全部历史用户 id，顺序稳定 = 数据源中首次出现的顺序。
	AllUsers() []string

	// Counts 返回 (酒店数, 用户数, 评分数)，用于状态/统计面。
	Counts() (hotels, users, ratings int)
}
