package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/brodyman30/YourFM/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Station{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testRouter(db *gorm.DB, user string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewStationHandler(db)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", user)
	})
	r.POST("/stations", h.CreateStation)
	r.GET("/stations", h.GetStations)
	r.GET("/stations/:id", h.GetStation)
	r.PUT("/stations/:id", h.UpdateStation)
	r.DELETE("/stations/:id", h.DeleteStation)
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAndGetStation(t *testing.T) {
	r := testRouter(testDB(t), "alice")

	w := doJSON(r, http.MethodPost, "/stations", map[string]interface{}{
		"name":          "Surf FM",
		"genres":        []string{"surf rock", "indie"},
		"bumper_topics": []string{"tide times"},
		"voice_id":      "v123",
		"voice_name":    "Moe",
		"artists": []map[string]string{
			{"id": "art1", "name": "The Surfaris"},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body.String())
	}

	var created struct {
		ID           string   `json:"id"`
		Genres       []string `json:"genres"`
		BumperTopics []string `json:"bumper_topics"`
		Genre        string   `json:"genre"`
		UserID       string   `json:"user_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" {
		t.Error("station created without an id")
	}
	if len(created.Genres) != 2 || created.Genres[0] != "surf rock" {
		t.Errorf("genres = %v", created.Genres)
	}
	if created.Genre != "surf rock" {
		t.Errorf("legacy genre field = %q; want first genre", created.Genre)
	}
	if created.UserID != "alice" {
		t.Errorf("user_id = %q; want alice", created.UserID)
	}

	w = doJSON(r, http.MethodGet, "/stations/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
}

func TestCreateStationRequiresName(t *testing.T) {
	r := testRouter(testDB(t), "alice")
	w := doJSON(r, http.MethodPost, "/stations", map[string]interface{}{
		"genres": []string{"jazz"},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want 400", w.Code)
	}
}

func TestStationsAreScopedToUser(t *testing.T) {
	db := testDB(t)
	alice := testRouter(db, "alice")
	bob := testRouter(db, "bob")

	doJSON(alice, http.MethodPost, "/stations", map[string]interface{}{"name": "Alice FM"})

	w := doJSON(bob, http.MethodGet, "/stations", nil)
	var listing struct {
		Data []json.RawMessage `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &listing)
	if len(listing.Data) != 0 {
		t.Errorf("bob sees %d of alice's stations", len(listing.Data))
	}
}

func TestUpdateStation(t *testing.T) {
	db := testDB(t)
	r := testRouter(db, "alice")

	w := doJSON(r, http.MethodPost, "/stations", map[string]interface{}{"name": "Before"})
	var created struct {
		ID string `json:"id"`
	}
	json.Unmarshal(w.Body.Bytes(), &created)

	w = doJSON(r, http.MethodPut, "/stations/"+created.ID, map[string]interface{}{
		"name":   "After",
		"genres": []string{"ambient"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", w.Code, w.Body.String())
	}

	var station models.Station
	if err := db.First(&station, "id = ?", created.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if station.Name != "After" || station.Genres != "ambient" {
		t.Errorf("station after update = %+v", station)
	}

	// Another user cannot update it.
	w = doJSON(testRouter(db, "bob"), http.MethodPut, "/stations/"+created.ID,
		map[string]interface{}{"name": "Hijacked"})
	if w.Code != http.StatusNotFound {
		t.Errorf("cross-user update status = %d; want 404", w.Code)
	}
}

func TestDeleteStation(t *testing.T) {
	db := testDB(t)
	r := testRouter(db, "alice")

	w := doJSON(r, http.MethodPost, "/stations", map[string]interface{}{"name": "Doomed"})
	var created struct {
		ID string `json:"id"`
	}
	json.Unmarshal(w.Body.Bytes(), &created)

	if w = doJSON(r, http.MethodDelete, "/stations/"+created.ID, nil); w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	if w = doJSON(r, http.MethodDelete, "/stations/"+created.ID, nil); w.Code != http.StatusNotFound {
		t.Errorf("double delete status = %d; want 404", w.Code)
	}
}
