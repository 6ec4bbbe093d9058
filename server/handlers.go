package server

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rushteam/hotelrec/core"
	"github.com/rushteam/hotelrec/engine"
)

// hotelView 是酒店的对外表示。均分保留 2 位小数，更多精度对调用方没有意义。
type hotelView struct {
	ID          string   `json:"hotel_id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	PriceTier   string   `json:"price_tier"`
	StarRating  float64  `json:"star_rating"`
	Amenities   []string `json:"amenities,omitempty"`
	Description string   `json:"description,omitempty"`
	MeanRating  *float64 `json:"mean_rating"` // null 表示零评分，和 0 分是两回事
	RatingCount int      `json:"rating_count"`
}

// knownHotelRef 支持两种形态：裸字符串标识，或 {"ref": ..., "score": ...} 对象。
type knownHotelRef struct {
	Ref   string
	Score float64
	Rated bool
}

func (k *knownHotelRef) UnmarshalJSON(data []byte) error {
	var ref string
	if err := json.Unmarshal(data, &ref); err == nil {
		k.Ref = ref
		return nil
	}
	var obj struct {
		Ref   string   `json:"ref"`
		Score *float64 `json:"score"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	k.Ref = obj.Ref
	if obj.Score != nil {
		k.Score = *obj.Score
		k.Rated = true
	}
	return nil
}

type recommendRequest struct {
	KnownHotels []knownHotelRef `json:"known_hotels"`
	TopK        int             `json:"top_k"`
}

type recommendationView struct {
	hotelView
	PredictedScore float64 `json:"predicted_score"`
	Reason         string  `json:"reason"`
}

type recommendResponse struct {
	Recommendations []recommendationView `json:"recommendations"`
	Count           int                  `json:"count"`
	Warnings        []string             `json:"warnings,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) hotelView(h *core.Hotel) hotelView {
	v := hotelView{
		ID:          h.ID,
		Name:        h.Name,
		Category:    h.Category,
		Location:    h.Location,
		PriceTier:   h.PriceTier,
		StarRating:  h.StarRating,
		Amenities:   h.Amenities,
		Description: h.Description,
		RatingCount: s.stats.RatingCount(h.ID),
	}
	if mean, ok := s.stats.MeanRating(h.ID); ok {
		rounded := round2(mean)
		v.MeanRating = &rounded
	}
	return v
}

func (s *Server) handleListHotels(w http.ResponseWriter, _ *http.Request) {
	hotels := s.catalog.AllHotels()
	views := make([]hotelView, 0, len(hotels))
	for _, h := range hotels {
		views = append(views, s.hotelView(h))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"hotels": views,
		"count":  len(views),
	})
}

func (s *Server) handleGetHotel(w http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "id")
	h, ok := s.catalog.Resolve(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error: fmt.Sprintf("hotel %q not found", id),
			Code:  core.ErrorCodeNotFound,
		})
		return
	}
	writeJSON(w, http.StatusOK, s.hotelView(h))
}

func (s *Server) handleRecommend(w http.ResponseWriter, req *http.Request) {
	var body recommendRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "invalid request body",
			Code:  core.ErrorCodeInvalidInput,
		})
		return
	}

	known := make([]engine.KnownHotel, 0, len(body.KnownHotels))
	ratedCount := 0
	for _, k := range body.KnownHotels {
		if k.Rated {
			ratedCount++
		}
		known = append(known, engine.KnownHotel{Ref: k.Ref, Score: k.Score, Rated: k.Rated})
	}

	result, err := s.engine.Recommend(req.Context(), known, body.TopK)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	if ratedCount > 0 {
		recommendRequestsTotal.WithLabelValues("similarity").Inc()
	} else {
		recommendRequestsTotal.WithLabelValues("mean_rating").Inc()
	}

	views := make([]recommendationView, 0, len(result.Recommendations))
	for _, rec := range result.Recommendations {
		views = append(views, recommendationView{
			hotelView:      s.hotelView(rec.Hotel),
			PredictedScore: round2(rec.Score),
			Reason:         rec.Reason,
		})
	}
	writeJSON(w, http.StatusOK, recommendResponse{
		Recommendations: views,
		Count:           len(views),
		Warnings:        result.Warnings,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	hotels, users, ratings := s.catalog.Counts()
	writeJSON(w, http.StatusOK, map[string]any{
		"hotels":  hotels,
		"users":   users,
		"ratings": ratings,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	hotels, _, _ := s.catalog.Counts()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"catalog_loaded": hotels > 0,
	})
}

// writeEngineError 把领域错误映射为 HTTP 状态码：
// 调用方输入问题映射 4xx，其余按服务端故障处理。
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	if domainErr := core.GetDomainError(err); domainErr != nil {
		switch domainErr.Code {
		case core.ErrorCodeNoKnownHotels, core.ErrorCodeInvalidInput:
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: domainErr.Message, Code: domainErr.Code})
			return
		case core.ErrorCodeNotFound:
			writeJSON(w, http.StatusNotFound, errorResponse{Error: domainErr.Message, Code: domainErr.Code})
			return
		}
	}
	s.logger.Error().Err(err).Msg("recommend failed")
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
