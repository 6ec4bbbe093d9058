// Package store 提供派生数据的 KV 存储实现（人气榜、统计缓存等）。
//
// 注意：此包只包含实现，接口定义在 core 包。
// 酒店目录本身是进程内只读结构，不走 Store；Store 只承载可重建的派生数据。
//
// 示例：
//
//	var s core.Store = NewMemoryStore()
//	var kv core.KeyValueStore = NewMemoryStore()
package store

// KeyPopularHotels 是人气榜 zset 的键：member 为酒店 id，score 为人气分。
const KeyPopularHotels = "popular:hotels"
