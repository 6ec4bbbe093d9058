package catalog

import (
	"path/filepath"
	"testing"

	"github.com/rushteam/hotelrec/core"
)

func testHotels() []core.Hotel {
	return []core.Hotel{
		{ID: "H1", Name: "Alpha Palace", Category: "Luxury", Location: "Medina"},
		{ID: "H2", Name: "Beta Riad", Category: "Riad", Location: "Medina"},
		{ID: "H3", Name: "Gamma Inn", Category: "Budget", Location: "Gueliz"},
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		hotels  []core.Hotel
		ratings []core.Rating
		wantErr bool
	}{
		{
			name:   "valid",
			hotels: testHotels(),
			ratings: []core.Rating{
				{UserID: "U1", HotelID: "H1", Score: 5},
				{UserID: "U1", HotelID: "H2", Score: 3},
			},
		},
		{
			name:    "duplicate hotel id",
			hotels:  append(testHotels(), core.Hotel{ID: "H1", Name: "Clone"}),
			wantErr: true,
		},
		{
			name:    "empty hotel id",
			hotels:  []core.Hotel{{ID: "", Name: "Nameless"}},
			wantErr: true,
		},
		{
			name:    "dangling foreign key rejected wholesale",
			hotels:  testHotels(),
			ratings: []core.Rating{{UserID: "U1", HotelID: "H999", Score: 4}},
			wantErr: true,
		},
		{
			name:    "score below scale",
			hotels:  testHotels(),
			ratings: []core.Rating{{UserID: "U1", HotelID: "H1", Score: 0.5}},
			wantErr: true,
		},
		{
			name:    "score above scale",
			hotels:  testHotels(),
			ratings: []core.Rating{{UserID: "U1", HotelID: "H1", Score: 5.5}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.hotels, tt.ratings)
			if tt.wantErr {
				if err == nil {
					t.Fatal("New() expected error")
				}
				if !core.IsDataLoad(err) {
					t.Errorf("New() error = %v, want DATA_LOAD", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	// name of H2 collides with the id of another hotel to prove id wins
	hotels := []core.Hotel{
		{ID: "H1", Name: "Alpha Palace"},
		{ID: "Alpha Palace", Name: "Impostor"},
	}
	c, err := New(hotels, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		identifier string
		wantID     string
		wantFound  bool
	}{
		{"H1", "H1", true},
		{"Alpha Palace", "Alpha Palace", true}, // exact id match beats the name match for H1
		{"alpha palace", "H1", true},           // case-insensitive name falls through to H1
		{"IMPOSTOR", "Alpha Palace", true},
		{"Alpha", "", false}, // no partial matching
		{"H999", "", false},
	}

	for _, tt := range tests {
		h, ok := c.Resolve(tt.identifier)
		if ok != tt.wantFound {
			t.Errorf("Resolve(%q) found = %v, want %v", tt.identifier, ok, tt.wantFound)
			continue
		}
		if ok && h.ID != tt.wantID {
			t.Errorf("Resolve(%q).ID = %q, want %q", tt.identifier, h.ID, tt.wantID)
		}
	}
}

func TestAllHotelsInsertionOrder(t *testing.T) {
	c, err := New(testHotels(), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	got := c.AllHotels()
	want := []string{"H1", "H2", "H3"}
	if len(got) != len(want) {
		t.Fatalf("AllHotels() len = %d, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("AllHotels()[%d].ID = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestRatingsFor(t *testing.T) {
	c, err := New(testHotels(), []core.Rating{
		{UserID: "U1", HotelID: "H1", Score: 5},
		{UserID: "U2", HotelID: "H1", Score: 4},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := len(c.RatingsFor("H1")); got != 2 {
		t.Errorf("RatingsFor(H1) len = %d, want 2", got)
	}
	// zero ratings is an empty sequence, not an error
	if got := len(c.RatingsFor("H3")); got != 0 {
		t.Errorf("RatingsFor(H3) len = %d, want 0", got)
	}
}

func TestUserIndexes(t *testing.T) {
	c, err := New(testHotels(), []core.Rating{
		{UserID: "U2", HotelID: "H1", Score: 4},
		{UserID: "U1", HotelID: "H1", Score: 5},
		{UserID: "U2", HotelID: "H2", Score: 3},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	users := c.AllUsers()
	want := []string{"U2", "U1"} // first-appearance order
	if len(users) != len(want) {
		t.Fatalf("AllUsers() = %v, want %v", users, want)
	}
	for i := range want {
		if users[i] != want[i] {
			t.Errorf("AllUsers()[%d] = %q, want %q", i, users[i], want[i])
		}
	}

	u2 := c.UserRatings("U2")
	if u2["H1"] != 4 || u2["H2"] != 3 {
		t.Errorf("UserRatings(U2) = %v", u2)
	}
	if c.UserRatings("U999") != nil {
		t.Error("UserRatings(U999) expected nil map")
	}

	hotels, userCount, ratings := c.Counts()
	if hotels != 3 || userCount != 2 || ratings != 3 {
		t.Errorf("Counts() = (%d, %d, %d), want (3, 2, 3)", hotels, userCount, ratings)
	}
}

func TestLoadFixture(t *testing.T) {
	c, err := Load("testdata")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	hotels, users, ratings := c.Counts()
	if hotels != 5 || users != 4 || ratings != 8 {
		t.Errorf("Counts() = (%d, %d, %d), want (5, 4, 8)", hotels, users, ratings)
	}

	h, ok := c.Resolve("la mamounia")
	if !ok || h.ID != "H001" {
		t.Fatalf("Resolve(la mamounia) = %v, %v", h, ok)
	}
	if h.Category != "Luxury" || h.PriceTier != "luxury" || h.StarRating != 5 {
		t.Errorf("unexpected metadata: %+v", h)
	}
	if len(h.Amenities) != 4 {
		t.Errorf("Amenities = %v, want 4 entries", h.Amenities)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFiles(filepath.Join("testdata", "nope.csv"), filepath.Join("testdata", "ratings.csv"))
	if err == nil {
		t.Fatal("LoadFiles() expected error")
	}
	if !core.IsDataLoad(err) {
		t.Errorf("LoadFiles() error = %v, want DATA_LOAD", err)
	}
}
