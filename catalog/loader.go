package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rushteam/hotelrec/core"
)

// 数据源契约：两张逻辑关联的 CSV 表。
//   - hotels.csv：hotel_id,name,category,location,price_tier,star_rating,amenities[,description]
//     amenities 以 '|' 分隔
//   - ratings.csv：user_id,hotel_id,score，其中 hotel_id 必须存在于酒店表
//
// 任何缺失、格式损坏或悬挂外键都使整次加载失败（DATA_LOAD），
// 对启动过程致命、不自动重试——对固定的坏文件重试不会改变结果。
const (
	HotelsFile  = "hotels.csv"
	RatingsFile = "ratings.csv"
)

// Load 从目录 dir 下的 hotels.csv 和 ratings.csv 构建目录。
func Load(dir string) (*Catalog, error) {
	return LoadFiles(filepath.Join(dir, HotelsFile), filepath.Join(dir, RatingsFile))
}

// LoadFiles 从指定的两个 CSV 文件构建目录。
func LoadFiles(hotelsPath, ratingsPath string) (*Catalog, error) {
	hotels, err := loadHotels(hotelsPath)
	if err != nil {
		return nil, err
	}
	ratings, err := loadRatings(ratingsPath)
	if err != nil {
		return nil, err
	}
	return New(hotels, ratings)
}

func loadHotels(path string) ([]core.Hotel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.NewDataLoadError(fmt.Sprintf("catalog: open hotels table: %v", err))
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // 行校验交给列映射

	header, err := r.Read()
	if err != nil {
		return nil, core.NewDataLoadError(fmt.Sprintf("catalog: read hotels header: %v", err))
	}
	cols := indexColumns(header)
	for _, required := range []string{"hotel_id", "name"} {
		if _, ok := cols[required]; !ok {
			return nil, core.NewDataLoadError(fmt.Sprintf("catalog: hotels table missing column %q", required))
		}
	}

	var hotels []core.Hotel
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, core.NewDataLoadError(fmt.Sprintf("catalog: hotels line %d: %v", line, err))
		}

		h := core.Hotel{
			ID:          field(record, cols, "hotel_id"),
			Name:        field(record, cols, "name"),
			Category:    field(record, cols, "category"),
			Location:    field(record, cols, "location"),
			PriceTier:   field(record, cols, "price_tier"),
			Description: field(record, cols, "description"),
		}
		if raw := field(record, cols, "star_rating"); raw != "" {
			stars, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, core.NewDataLoadError(fmt.Sprintf("catalog: hotels line %d: bad star_rating %q", line, raw))
			}
			h.StarRating = stars
		}
		if raw := field(record, cols, "amenities"); raw != "" {
			for _, a := range strings.Split(raw, "|") {
				if a = strings.TrimSpace(a); a != "" {
					h.Amenities = append(h.Amenities, a)
				}
			}
		}
		hotels = append(hotels, h)
	}

	if len(hotels) == 0 {
		return nil, core.NewDataLoadError("catalog: hotels table is empty")
	}
	return hotels, nil
}

func loadRatings(path string) ([]core.Rating, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.NewDataLoadError(fmt.Sprintf("catalog: open ratings table: %v", err))
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, core.NewDataLoadError(fmt.Sprintf("catalog: read ratings header: %v", err))
	}
	cols := indexColumns(header)
	for _, required := range []string{"user_id", "hotel_id", "score"} {
		if _, ok := cols[required]; !ok {
			return nil, core.NewDataLoadError(fmt.Sprintf("catalog: ratings table missing column %q", required))
		}
	}

	var ratings []core.Rating
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, core.NewDataLoadError(fmt.Sprintf("catalog: ratings line %d: %v", line, err))
		}

		raw := field(record, cols, "score")
		score, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, core.NewDataLoadError(fmt.Sprintf("catalog: ratings line %d: bad score %q", line, raw))
		}
		ratings = append(ratings, core.Rating{
			UserID:  field(record, cols, "user_id"),
			HotelID: field(record, cols, "hotel_id"),
			Score:   score,
		})
	}
	return ratings, nil
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

func field(record []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
