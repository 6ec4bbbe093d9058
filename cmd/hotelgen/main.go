// hotelgen 生成可复现的马拉喀什酒店示例数据集（hotels.csv + ratings.csv）。
//
// 同一 seed 产出逐字节相同的文件，便于演示和回归对比。
// 评分不是均匀噪声：每个用户有出行类型和预算档，对不同类别酒店
// 的偏好不同，这样近邻相似度才有可学的结构。
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// 酒店类别与城区。
var (
	categories = []string{"Luxury", "Riad", "Budget", "Business", "Boutique"}
	locations  = []string{"Medina", "Gueliz", "Hivernage", "Palmeraie", "Kasbah"}
)

// 真实存在的马拉喀什地标酒店，排在生成序列最前面。
var famousHotels = []struct {
	Name     string
	Category string
	Location string
}{
	{"La Mamounia", "Luxury", "Medina"},
	{"Royal Mansour", "Luxury", "Medina"},
	{"Four Seasons", "Luxury", "Hivernage"},
	{"Riad Kniza", "Riad", "Medina"},
	{"Hotel Ibis Centre", "Budget", "Gueliz"},
	{"Sofitel Marrakech", "Luxury", "Palmeraie"},
	{"Le Meridien N'Fis", "Business", "Hivernage"},
	{"Riad El Fenn", "Riad", "Medina"},
	{"Palais Namaskar", "Luxury", "Palmeraie"},
	{"Riad Dar Anika", "Riad", "Medina"},
	{"Hotel Atlas Asni", "Budget", "Gueliz"},
	{"Movenpick Mansour Eddahbi", "Business", "Hivernage"},
	{"Villa des Orangers", "Boutique", "Medina"},
	{"Es Saadi Gardens", "Luxury", "Hivernage"},
	{"Riad Farnatchi", "Riad", "Medina"},
}

var amenitiesByCategory = map[string][]string{
	"Luxury":   {"Pool", "Spa", "WiFi", "Parking", "Gourmet Restaurant", "Room Service", "Fitness", "Bar", "Concierge", "Hammam"},
	"Riad":     {"Rooftop Terrace", "Moroccan Breakfast", "WiFi", "Traditional Patio", "Local Cuisine", "Fountain", "Andalusian Garden"},
	"Budget":   {"Free WiFi", "Parking", "Continental Breakfast", "Air Conditioning", "Private Bathroom", "24h Reception"},
	"Business": {"High-Speed WiFi", "Free Parking", "Business Center", "Buffet Breakfast", "Meeting Room", "Laundry Service"},
	"Boutique": {"Designer Pool", "WiFi", "Unique Decor", "Restaurant", "Local Art", "Zen Garden", "Library"},
}

var namePrefixes = map[string][]string{
	"Luxury":   {"Palais", "Royal", "Grand Hotel", "Palace"},
	"Riad":     {"Riad", "Dar", "Maison"},
	"Budget":   {"Hotel", "Auberge", "Pension"},
	"Business": {"Hotel", "Business Hotel", "Executive"},
	"Boutique": {"Villa", "Maison", "Residence"},
}

var nameSuffixes = map[string][]string{
	"Medina":    {"de la Medina", "Traditionnel", "des Souks", "du Centre"},
	"Gueliz":    {"Moderne", "Central", "City", "Urbain"},
	"Hivernage": {"Garden", "Resort", "des Jardins", "Paradise"},
	"Palmeraie": {"des Palmiers", "Oasis", "Desert", "Sahara"},
	"Kasbah":    {"de la Kasbah", "Historique", "Heritage", "Ancien"},
}

var nameStems = []string{
	"Alaoui", "Amrani", "Bennani", "Berrada", "Chraibi", "El Fassi", "Idrissi",
	"Kettani", "Lahlou", "Mansouri", "Ouazzani", "Sqalli", "Tazi", "Ziani",
}

var priceTierByCategory = map[string]string{
	"Luxury":   "luxury",
	"Riad":     "upscale",
	"Budget":   "budget",
	"Business": "mid",
	"Boutique": "upscale",
}

var starsByCategory = map[string]float64{
	"Luxury":   5,
	"Riad":     4,
	"Budget":   3,
	"Business": 4,
	"Boutique": 4,
}

// 出行类型对酒店类别的基准偏好分。
var preferences = map[string]map[string]float64{
	"romantic": {"Luxury": 4.6, "Riad": 4.8, "Budget": 2.2, "Business": 2.8, "Boutique": 4.4},
	"business": {"Luxury": 4.3, "Riad": 3.2, "Budget": 3.6, "Business": 4.7, "Boutique": 3.8},
	"family":   {"Luxury": 4.4, "Riad": 4.0, "Budget": 4.2, "Business": 3.5, "Boutique": 4.1},
	"solo":     {"Luxury": 3.9, "Riad": 4.5, "Budget": 4.4, "Business": 3.3, "Boutique": 4.2},
	"group":    {"Luxury": 4.1, "Riad": 4.2, "Budget": 4.5, "Business": 3.1, "Boutique": 3.9},
}

// 预算档对类别分的修正。
var budgetAdjustment = map[string]map[string]float64{
	"economy": {"Luxury": -1.5, "Riad": -0.3, "Budget": 0.5, "Business": 0.0, "Boutique": -0.8},
	"mid":     {"Luxury": -0.3, "Riad": 0.2, "Budget": 0.2, "Business": 0.3, "Boutique": 0.2},
	"luxury":  {"Luxury": 0.4, "Riad": 0.3, "Budget": -1.0, "Business": 0.1, "Boutique": 0.3},
}

type hotel struct {
	ID        string
	Name      string
	Category  string
	Location  string
	PriceTier string
	Stars     float64
	Amenities []string
	Desc      string
}

type user struct {
	ID         string
	TravelType string
	Budget     string
}

func main() {
	seed := flag.Int64("seed", 42, "random seed")
	nHotels := flag.Int("hotels", 80, "number of hotels")
	nUsers := flag.Int("users", 200, "number of users")
	nRatings := flag.Int("ratings", 2000, "approximate number of ratings")
	outDir := flag.String("out", "data", "output directory")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	hotels := generateHotels(rng, *nHotels)
	users := generateUsers(rng, *nUsers)
	ratings := generateRatings(rng, hotels, users, *nRatings)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fatal("create output dir: %v", err)
	}
	if err := writeHotels(filepath.Join(*outDir, "hotels.csv"), hotels); err != nil {
		fatal("write hotels: %v", err)
	}
	if err := writeRatings(filepath.Join(*outDir, "ratings.csv"), ratings); err != nil {
		fatal("write ratings: %v", err)
	}

	fmt.Printf("wrote %d hotels and %d ratings from %d users to %s\n",
		len(hotels), len(ratings), len(users), *outDir)
}

func generateHotels(rng *rand.Rand, n int) []hotel {
	hotels := make([]hotel, 0, n)
	for _, f := range famousHotels {
		if len(hotels) >= n {
			break
		}
		hotels = append(hotels, buildHotel(rng, len(hotels)+1, f.Name, f.Category, f.Location))
	}
	for len(hotels) < n {
		category := categories[rng.Intn(len(categories))]
		location := locations[rng.Intn(len(locations))]
		name := generateName(rng, category, location)
		hotels = append(hotels, buildHotel(rng, len(hotels)+1, name, category, location))
	}
	return hotels
}

func buildHotel(rng *rand.Rand, seq int, name, category, location string) hotel {
	pool := amenitiesByCategory[category]
	count := 3 + rng.Intn(min(6, len(pool))-2)
	picked := rng.Perm(len(pool))[:count]
	sort.Ints(picked)
	amenities := make([]string, 0, count)
	for _, i := range picked {
		amenities = append(amenities, pool[i])
	}

	return hotel{
		ID:        fmt.Sprintf("H%03d", seq),
		Name:      name,
		Category:  category,
		Location:  location,
		PriceTier: priceTierByCategory[category],
		Stars:     starsByCategory[category],
		Amenities: amenities,
		Desc:      fmt.Sprintf("%s hotel in the %s district of Marrakech", category, location),
	}
}

func generateName(rng *rand.Rand, category, location string) string {
	prefix := namePrefixes[category][rng.Intn(len(namePrefixes[category]))]
	stem := nameStems[rng.Intn(len(nameStems))]
	suffix := nameSuffixes[location][rng.Intn(len(nameSuffixes[location]))]
	return fmt.Sprintf("%s %s %s", prefix, stem, suffix)
}

func generateUsers(rng *rand.Rand, n int) []user {
	travelTypes := []string{"romantic", "business", "family", "solo", "group"}
	budgets := []string{"economy", "mid", "luxury"}
	users := make([]user, 0, n)
	for i := 1; i <= n; i++ {
		users = append(users, user{
			ID:         fmt.Sprintf("U%03d", i),
			TravelType: travelTypes[rng.Intn(len(travelTypes))],
			Budget:     budgets[rng.Intn(len(budgets))],
		})
	}
	return users
}

type ratingRow struct {
	UserID  string
	HotelID string
	Score   float64
}

func generateRatings(rng *rand.Rand, hotels []hotel, users []user, target int) []ratingRow {
	perUser := target / len(users)
	if perUser < 3 {
		perUser = 3
	}

	var rows []ratingRow
	for _, u := range users {
		n := perUser - 2 + rng.Intn(5)
		if n < 1 {
			n = 1
		}
		if n > len(hotels) {
			n = len(hotels)
		}
		for _, idx := range rng.Perm(len(hotels))[:n] {
			h := hotels[idx]
			score := preferences[u.TravelType][h.Category]
			score += budgetAdjustment[u.Budget][h.Category]
			score += rng.NormFloat64() * 0.4
			score = math.Max(1, math.Min(5, score))
			// 评分落在 0.5 的刻度上，和真实评分界面一致
			score = math.Round(score*2) / 2
			rows = append(rows, ratingRow{UserID: u.ID, HotelID: h.ID, Score: score})
		}
	}
	return rows
}

func writeHotels(path string, hotels []hotel) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"hotel_id", "name", "category", "location", "price_tier", "star_rating", "amenities", "description"}); err != nil {
		return err
	}
	for _, h := range hotels {
		record := []string{
			h.ID, h.Name, h.Category, h.Location, h.PriceTier,
			strconv.FormatFloat(h.Stars, 'f', -1, 64),
			strings.Join(h.Amenities, "|"),
			h.Desc,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeRatings(path string, rows []ratingRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"user_id", "hotel_id", "score"}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{r.UserID, r.HotelID, strconv.FormatFloat(r.Score, 'f', -1, 64)}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
