package controllers

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"outfitapi/dbhelper"
	"outfitapi/models"
	"outfitapi/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOutfitRejectsUnknownOccasion(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := newTestServer(db)
	user := test.FakeUser(db)
	test.FakeClothingItem(db, user.ID, "Blue T-Shirt", "t-shirt", "blue")

	req := test.NewJSONAuthRequest("POST", "/api/outfits/generate", fmt.Sprint(user.ID), GenerateOutfitIn{
		Occasion:     "gala",
		Style:        "classic",
		Mood:         "confident",
		TemperatureF: 70,
	})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, 400, rec.Code)
}

func TestGenerateOutfitEmptyCloset(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := newTestServer(db)
	user := test.FakeUser(db)

	req := test.NewJSONAuthRequest("POST", "/api/outfits/generate", fmt.Sprint(user.ID), GenerateOutfitIn{
		Occasion:     "casual",
		Style:        "minimal",
		Mood:         "relaxed",
		TemperatureF: 70,
	})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, 400, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "closet is empty")
}

func TestGenerateOutfitFreeDailyLimit(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := newTestServer(db)
	user := test.FakeUser(db)
	test.FakeClothingItem(db, user.ID, "Blue T-Shirt", "t-shirt", "blue")

	for i := 0; i < freePlanDailyGenerationLimit; i++ {
		db.Create(&models.OutfitGeneration{
			UserAccountID: user.ID,
			Occasion:      "casual",
			Style:         "minimal",
			Mood:          "relaxed",
			TemperatureF:  70,
			Status:        "completed",
		})
	}

	req := test.NewJSONAuthRequest("POST", "/api/outfits/generate", fmt.Sprint(user.ID), GenerateOutfitIn{
		Occasion:     "casual",
		Style:        "minimal",
		Mood:         "relaxed",
		TemperatureF: 70,
	})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, 403, rec.Code)
}

func TestGenerateOutfitRejectsForeignBaseItem(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := newTestServer(db)
	user := test.FakeUser(db)
	test.FakeClothingItem(db, user.ID, "Blue T-Shirt", "t-shirt", "blue")
	otherUser := test.FakeUser(db)
	foreign := test.FakeClothingItem(db, otherUser.ID, "Not Mine", "t-shirt", "green")

	req := test.NewJSONAuthRequest("POST", "/api/outfits/generate", fmt.Sprint(user.ID), GenerateOutfitIn{
		Occasion:     "casual",
		Style:        "minimal",
		Mood:         "relaxed",
		TemperatureF: 70,
		BaseItemID:   &foreign.ID,
	})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, 400, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Base item")
}

func TestGetGeneration(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := newTestServer(db)
	user := test.FakeUser(db)

	generation := models.OutfitGeneration{
		UserAccountID: user.ID,
		Occasion:      "business",
		Style:         "classic",
		Mood:          "confident",
		TemperatureF:  70,
		Status:        "pending",
	}
	db.Create(&generation)

	req := test.NewJSONAuthRequest("GET", fmt.Sprintf("/api/outfits/%v", generation.ID), fmt.Sprint(user.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code, rec.Body.String())
	var out models.OutfitGeneration
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "business", out.Occasion)
	assert.Equal(t, "pending", out.Status)
}

func TestGetGenerationOfAnotherUser(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := newTestServer(db)
	user := test.FakeUser(db)
	otherUser := test.FakeUser(db)

	generation := models.OutfitGeneration{
		UserAccountID: otherUser.ID,
		Occasion:      "business",
		Style:         "classic",
		Mood:          "confident",
		TemperatureF:  70,
		Status:        "pending",
	}
	db.Create(&generation)

	req := test.NewJSONAuthRequest("GET", fmt.Sprintf("/api/outfits/%v", generation.ID), fmt.Sprint(user.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, 404, rec.Code)
}

func TestListGenerations(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := newTestServer(db)
	user := test.FakeUser(db)

	for i := 0; i < 3; i++ {
		db.Create(&models.OutfitGeneration{
			UserAccountID: user.ID,
			Occasion:      "casual",
			Style:         "minimal",
			Mood:          "relaxed",
			TemperatureF:  70,
			Status:        "completed",
		})
	}

	req := test.NewJSONAuthRequest("GET", "/api/outfits/list", fmt.Sprint(user.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code, rec.Body.String())
	var out struct {
		Generations []models.OutfitGeneration `json:"generations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Len(t, out.Generations, 3)
}
