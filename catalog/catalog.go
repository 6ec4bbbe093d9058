// Package catalog 实现目录存储：全量酒店 + 完整评分历史的不可变内存快照。
//
// 构建一次后只读，可被并发请求无锁共享；数据刷新 = 整体替换为新实例。
// Engine 通过显式注入的实例工作，不存在进程级单例，同一进程内可同时
// 存在多个互不干扰的目录（测试中逐用例建目录）。
package catalog

import (
	"fmt"
	"strings"

	"github.com/rushteam/hotelrec/core"
)

// Catalog 实现 core.Catalog。
type Catalog struct {
	hotels []*core.Hotel          // 插入顺序
	byID   map[string]*core.Hotel
	byName map[string]*core.Hotel // 小写名称 -> 酒店；重名时首个出现者占据名额

	ratingsByHotel map[string][]core.Rating
	ratingsByUser  map[string]map[string]float64
	userIDs        []string // 首次出现顺序
	totalRatings   int
}

// New 从内存中的酒店表和评分表构建目录，执行与加载器相同的校验：
//   - 酒店 id 重复 → DATA_LOAD
//   - 评分越界（1-5 之外）→ DATA_LOAD
//   - 评分引用不存在的酒店 id（悬挂外键）→ DATA_LOAD，整次拒绝，不静默丢弃
func New(hotels []core.Hotel, ratings []core.Rating) (*Catalog, error) {
	c := &Catalog{
		hotels:         make([]*core.Hotel, 0, len(hotels)),
		byID:           make(map[string]*core.Hotel, len(hotels)),
		byName:         make(map[string]*core.Hotel, len(hotels)),
		ratingsByHotel: make(map[string][]core.Rating),
		ratingsByUser:  make(map[string]map[string]float64),
	}

	for i := range hotels {
		h := hotels[i]
		if h.ID == "" {
			return nil, core.NewDataLoadError(fmt.Sprintf("catalog: hotel #%d has empty id", i))
		}
		if _, dup := c.byID[h.ID]; dup {
			return nil, core.NewDataLoadError(fmt.Sprintf("catalog: duplicate hotel id %q", h.ID))
		}
		c.byID[h.ID] = &h
		c.hotels = append(c.hotels, &h)

		key := strings.ToLower(h.Name)
		if key != "" {
			if _, taken := c.byName[key]; !taken {
				c.byName[key] = &h
			}
		}
	}

	for _, r := range ratings {
		if _, ok := c.byID[r.HotelID]; !ok {
			return nil, core.NewDataLoadError(fmt.Sprintf("catalog: rating references unknown hotel id %q", r.HotelID))
		}
		if r.Score < core.RatingMin || r.Score > core.RatingMax {
			return nil, core.NewDataLoadError(fmt.Sprintf("catalog: rating for hotel %q has out-of-range score %v", r.HotelID, r.Score))
		}
		c.ratingsByHotel[r.HotelID] = append(c.ratingsByHotel[r.HotelID], r)
		if _, seen := c.ratingsByUser[r.UserID]; !seen {
			c.ratingsByUser[r.UserID] = make(map[string]float64)
			c.userIDs = append(c.userIDs, r.UserID)
		}
		c.ratingsByUser[r.UserID][r.HotelID] = r.Score
		c.totalRatings++
	}

	return c, nil
}

// Resolve 按标识解析：先精确匹配 id，再大小写不敏感精确匹配名称。
// id 与名称同时命中不同酒店时 id 胜出（id 是权威键）。不做模糊匹配。
func (c *Catalog) Resolve(identifier string) (*core.Hotel, bool) {
	if h, ok := c.byID[identifier]; ok {
		return h, true
	}
	if h, ok := c.byName[strings.ToLower(identifier)]; ok {
		return h, true
	}
	return nil, false
}

// AllHotels 返回全部酒店，顺序稳定 = 数据源中的插入顺序。
// 返回共享切片，调用方只读。
func (c *Catalog) AllHotels() []*core.Hotel {
	return c.hotels
}

// RatingsFor 返回某家酒店的全部历史评分；零评分返回空切片，不是错误。
func (c *Catalog) RatingsFor(hotelID string) []core.Rating {
	return c.ratingsByHotel[hotelID]
}

// UserRatings 返回历史用户的评分表；未知用户返回 nil map（只读使用安全）。
func (c *Catalog) UserRatings(userID string) map[string]float64 {
	return c.ratingsByUser[userID]
}

// AllUsers 返回全部历史用户 id，顺序稳定 = 数据源中首次出现的顺序。
func (c *Catalog) AllUsers() []string {
	return c.userIDs
}

// Counts 返回 (酒店数, 用户数, 评分数)。
func (c *Catalog) Counts() (hotels, users, ratings int) {
	return len(c.hotels), len(c.userIDs), c.totalRatings
}

var _ core.Catalog = (*Catalog)(nil)
