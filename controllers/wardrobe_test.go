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

func TestCreateClothing(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := newTestServer(db)
	user := test.FakeUser(db)

	req := test.NewJSONAuthRequest("POST", "/api/wardrobe/create", fmt.Sprint(user.ID), CreateClothingIn{
		Name:         "White Dress Shirt",
		FileName:     test.StrPointer("shirt.jpg"),
		ClothingType: "shirt",
		Color:        "white",
		Material:     "cotton",
		AddToCloset:  BoolPointer(true),
	})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, 201, rec.Code, rec.Body.String())
	var out ClothingCreatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "White Dress Shirt", out.ClothingResponse.Name)
	assert.Equal(t, "top", out.ClothingResponse.Category)
	if assert.NotNil(t, out.ClothingResponse.Subtype) {
		assert.Equal(t, "dress_shirt", *out.ClothingResponse.Subtype)
	}
	assert.Equal(t, "in_closet", out.ClothingResponse.Status)
	assert.Contains(t, out.FileUploadUrl, "fakebucketurl.com")

	var saved models.ClothingItem
	require.NoError(t, db.First(&saved, out.ClothingResponse.ID).Error)
	assert.Equal(t, user.ID, saved.OwnerID)
	if assert.NotNil(t, saved.ImageURL) {
		assert.Equal(t, fmt.Sprintf("clothes/%v/shirt.jpg", user.ID), *saved.ImageURL)
	}
}

func TestCreateClothingRejectsBadImageName(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := newTestServer(db)
	user := test.FakeUser(db)

	req := test.NewJSONAuthRequest("POST", "/api/wardrobe/create", fmt.Sprint(user.ID), CreateClothingIn{
		Name:         "Weird File",
		FileName:     test.StrPointer("payload.exe"),
		ClothingType: "shirt",
		Color:        "white",
		AddToCloset:  BoolPointer(true),
	})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, 400, rec.Code)
}

func TestCreateClothingFreePlanLimit(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := newTestServer(db)
	user := test.FakeUser(db)

	for i := 0; i < freePlanClothingLimit; i++ {
		test.FakeClothingItem(db, user.ID, fmt.Sprintf("Tee %d", i), "t-shirt", "blue")
	}

	req := test.NewJSONAuthRequest("POST", "/api/wardrobe/create", fmt.Sprint(user.ID), CreateClothingIn{
		Name:         "One Too Many",
		ClothingType: "t-shirt",
		Color:        "red",
		AddToCloset:  BoolPointer(true),
	})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, 403, rec.Code)
}

func TestListWardrobeGroupsByCategory(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := newTestServer(db)
	user := test.FakeUser(db)

	test.FakeClothingItem(db, user.ID, "Blue T-Shirt", "t-shirt", "blue")
	test.FakeClothingItem(db, user.ID, "Dark Jeans", "jeans", "navy")
	test.FakeClothingItem(db, user.ID, "White Sneakers", "sneakers", "white")
	test.FakeClothingItem(db, user.ID, "Navy Blazer", "blazer", "navy")

	otherUser := test.FakeUser(db)
	test.FakeClothingItem(db, otherUser.ID, "Not Mine", "t-shirt", "green")

	req := test.NewJSONAuthRequest("GET", "/api/wardrobe/list", fmt.Sprint(user.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code, rec.Body.String())
	var out WardrobeListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Len(t, out.Tops, 1)
	assert.Len(t, out.Bottoms, 1)
	assert.Len(t, out.Footwear, 1)
	assert.Len(t, out.Jackets, 1)
	assert.Len(t, out.Accessories, 0)
}

func TestDeleteClothing(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := newTestServer(db)
	user := test.FakeUser(db)
	item := test.FakeClothingItem(db, user.ID, "Blue T-Shirt", "t-shirt", "blue")

	req := test.NewJSONAuthRequest("DELETE", fmt.Sprintf("/api/wardrobe/%v", item.ID), fmt.Sprint(user.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, 200, rec.Code, rec.Body.String())

	var count int64
	db.Model(&models.ClothingItem{}).Where("id = ?", item.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestDeleteClothingOfAnotherUser(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := newTestServer(db)
	user := test.FakeUser(db)
	otherUser := test.FakeUser(db)
	item := test.FakeClothingItem(db, otherUser.ID, "Not Mine", "t-shirt", "green")

	req := test.NewJSONAuthRequest("DELETE", fmt.Sprintf("/api/wardrobe/%v", item.ID), fmt.Sprint(user.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, 404, rec.Code)

	var count int64
	db.Model(&models.ClothingItem{}).Where("id = ?", item.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}
