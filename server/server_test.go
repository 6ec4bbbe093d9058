package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rushteam/hotelrec/catalog"
	"github.com/rushteam/hotelrec/core"
	"github.com/rushteam/hotelrec/engine"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	c, err := catalog.New(
		[]core.Hotel{
			{ID: "H1", Name: "Grand Medina", Category: "Luxury", Location: "Medina", PriceTier: "luxury", StarRating: 5},
			{ID: "H2", Name: "Palm Riad", Category: "Riad", Location: "Medina", PriceTier: "upscale", StarRating: 4},
			{ID: "H3", Name: "Quiet Corner", Category: "Budget", Location: "Gueliz", PriceTier: "budget", StarRating: 3},
		},
		[]core.Rating{
			{UserID: "U1", HotelID: "H1", Score: 5},
			{UserID: "U2", HotelID: "H1", Score: 4.6},
			{UserID: "U1", HotelID: "H2", Score: 4.5},
			{UserID: "U2", HotelID: "H2", Score: 4.5},
		},
	)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	return New(c, engine.New(c), zerolog.Nop())
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestListHotels(t *testing.T) {
	w := doRequest(t, testServer(t), http.MethodGet, "/api/v1/hotels", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Hotels []map[string]any `json:"hotels"`
		Count  int              `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 3 || len(resp.Hotels) != 3 {
		t.Errorf("count = %d, hotels = %d, want 3", resp.Count, len(resp.Hotels))
	}
	if resp.Hotels[0]["hotel_id"] != "H1" {
		t.Errorf("hotels[0].hotel_id = %v, want H1", resp.Hotels[0]["hotel_id"])
	}
	// unrated hotel exposes null mean, not zero
	if resp.Hotels[2]["mean_rating"] != nil {
		t.Errorf("H3 mean_rating = %v, want null", resp.Hotels[2]["mean_rating"])
	}
}

func TestGetHotel(t *testing.T) {
	s := testServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/v1/hotels/H1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var view map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if view["name"] != "Grand Medina" || view["rating_count"] != float64(2) {
		t.Errorf("unexpected view: %v", view)
	}

	w = doRequest(t, s, http.MethodGet, "/api/v1/hotels/H999", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("missing hotel status = %d, want 404", w.Code)
	}
}

func TestRecommend(t *testing.T) {
	s := testServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/recommend",
		`{"known_hotels": ["H1"], "top_k": 5}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp recommendResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("count = %d, want 2", resp.Count)
	}
	if resp.Recommendations[0].ID != "H2" || resp.Recommendations[0].PredictedScore != 4.5 {
		t.Errorf("top recommendation = %+v", resp.Recommendations[0])
	}
	if resp.Recommendations[0].Reason == "" {
		t.Error("reason must not be empty")
	}
	// known hotel excluded
	for _, rec := range resp.Recommendations {
		if rec.ID == "H1" {
			t.Error("known hotel H1 leaked into recommendations")
		}
	}
}

func TestRecommendWithRatings(t *testing.T) {
	w := doRequest(t, testServer(t), http.MethodPost, "/api/v1/recommend",
		`{"known_hotels": [{"ref": "H1", "score": 5}, {"ref": "H2", "score": 4.5}], "top_k": 5}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp recommendResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 1 || resp.Recommendations[0].ID != "H3" {
		t.Errorf("recommendations = %+v", resp.Recommendations)
	}
}

func TestRecommendErrors(t *testing.T) {
	s := testServer(t)

	// zero resolvable knowns is a client error
	w := doRequest(t, s, http.MethodPost, "/api/v1/recommend",
		`{"known_hotels": ["nope"], "top_k": 5}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unresolvable status = %d, want 400", w.Code)
	}
	var errResp errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if errResp.Code != core.ErrorCodeNoKnownHotels {
		t.Errorf("code = %q, want NO_KNOWN_HOTELS", errResp.Code)
	}

	w = doRequest(t, s, http.MethodPost, "/api/v1/recommend", `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad body status = %d, want 400", w.Code)
	}

	// ratings outside the 1-5 scale are rejected, not silently accepted
	w = doRequest(t, s, http.MethodPost, "/api/v1/recommend",
		`{"known_hotels": [{"ref": "H1", "score": 99}], "top_k": 5}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("out-of-range rating status = %d, want 400", w.Code)
	}
	errResp = errorResponse{}
	if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if errResp.Code != core.ErrorCodeInvalidInput {
		t.Errorf("code = %q, want INVALID_INPUT", errResp.Code)
	}
}

func TestRecommendPartialResolutionWarns(t *testing.T) {
	w := doRequest(t, testServer(t), http.MethodPost, "/api/v1/recommend",
		`{"known_hotels": ["H1", "No Such"], "top_k": 5}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp recommendResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Warnings) != 1 {
		t.Errorf("warnings = %v, want one entry", resp.Warnings)
	}
}

func TestStatsAndHealth(t *testing.T) {
	s := testServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/v1/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("stats status = %d", w.Code)
	}
	var statsResp map[string]int
	if err := json.Unmarshal(w.Body.Bytes(), &statsResp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if statsResp["hotels"] != 3 || statsResp["users"] != 2 || statsResp["ratings"] != 4 {
		t.Errorf("stats = %v", statsResp)
	}

	w = doRequest(t, s, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("health status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"catalog_loaded":true`) {
		t.Errorf("health body = %s", w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	w := doRequest(t, testServer(t), http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Errorf("metrics status = %d", w.Code)
	}
}
