package core

import "sort"

// UserProfile 是请求级用户画像：调用方对已知酒店的自评分表。
//
// 一句话定义：UserProfile = 本次请求的 map[hotelID]score，别无其他。
//
// 它不是长期画像，不做在线学习，也不跨请求缓存：
//   - 由 Engine 在解析调用方输入时构建
//   - 被相似度打分节点读取（寻找口味相近的历史用户）
//   - 响应产出后随请求一起丢弃
type UserProfile struct {
	// Ratings key 为酒店 id（解析后的权威 id，不是名称），value 为 1-5 评分。
	Ratings map[string]float64
}

func NewUserProfile() *UserProfile {
	return &UserProfile{Ratings: make(map[string]float64)}
}

// Rate 记录一条自评分。重复的酒店后写覆盖先写。
func (p *UserProfile) Rate(hotelID string, score float64) {
	if p.Ratings == nil {
		p.Ratings = make(map[string]float64)
	}
	p.Ratings[hotelID] = score
}

// Len 返回评分条数。
func (p *UserProfile) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Ratings)
}

// HotelIDs 返回评分过的酒店 id，升序排列（保证遍历顺序确定）。
func (p *UserProfile) HotelIDs() []string {
	if p == nil || len(p.Ratings) == 0 {
		return nil
	}
	ids := make([]string, 0, len(p.Ratings))
	for id := range p.Ratings {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// HighRated 返回评分不低于 threshold 的酒店 id，升序排列。
// 用于生成“与你打高分的 X 类酒店相似”一类的解释。
func (p *UserProfile) HighRated(threshold float64) []string {
	if p == nil || len(p.Ratings) == 0 {
		return nil
	}
	ids := make([]string, 0, len(p.Ratings))
	for id, score := range p.Ratings {
		if score >= threshold {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
