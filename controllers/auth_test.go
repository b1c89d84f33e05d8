package controllers

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"testing"

	"outfitapi/dbhelper"
	"outfitapi/models"
	"outfitapi/test"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestServer(db *gorm.DB) *echo.Echo {
	os.Setenv("JWT_SECRET", "testsecret")
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: "localhost:6379"})
	return SetupServer(
		db,
		test.GoogleServiceMock{},
		test.AWSProviderMock{MockUrl: "https://fakebucketurl.com/read"},
		test.URLCacheMock{MockUrl: "https://fakebucketurl.com/cached"},
		nil,
		asynqClient,
	)
}

func TestGoogleSignInCreatesUser(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := newTestServer(db)

	req := test.NewJSONRequest("POST", "/auth/google", models.GoogleAuthSignIn{
		IdToken:  "faketoken",
		Platform: "ios",
	})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code, rec.Body.String())
	var out models.SignInOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.NotEmpty(t, out.Token)
	assert.NotEmpty(t, out.RefreshToken)
	assert.True(t, out.NewUser)
	assert.Equal(t, "fake@example.com", out.User.Email)

	var count int64
	db.Model(&models.UserAccount{}).Where("google_id = ?", "123googleid").Count(&count)
	assert.Equal(t, int64(1), count)

	// second sign in reuses the account
	req = test.NewJSONRequest("POST", "/auth/google", models.GoogleAuthSignIn{
		IdToken:  "faketoken",
		Platform: "android",
	})
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, 200, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.False(t, out.NewUser)
	db.Model(&models.UserAccount{}).Where("google_id = ?", "123googleid").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGoogleSignInRejectsBadPlatform(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := newTestServer(db)

	req := test.NewJSONRequest("POST", "/auth/google", models.GoogleAuthSignIn{
		IdToken:  "faketoken",
		Platform: "windows",
	})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, 403, rec.Code)
}

func TestRefreshToken(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := newTestServer(db)
	user := test.FakeUser(db)

	refreshToken, err := GenerateRefreshToken(fmt.Sprint(user.ID))
	require.NoError(t, err)

	req := test.NewJSONRequest("POST", "/auth/refresh-token", models.RefreshTokenIn{RefreshToken: refreshToken})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code, rec.Body.String())
	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.NotEmpty(t, out["access_token"])
	assert.NotEmpty(t, out["refresh_token"])
}

func TestRefreshTokenRejectsGarbage(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := newTestServer(db)

	req := test.NewJSONRequest("POST", "/auth/refresh-token", models.RefreshTokenIn{RefreshToken: "not-a-token"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, 400, rec.Code)
}

func TestMe(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := newTestServer(db)
	user := test.FakeUser(db)

	req := test.NewJSONAuthRequest("GET", "/auth/me", fmt.Sprint(user.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code, rec.Body.String())
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, user.Email, out["email"])
	assert.Equal(t, "free", out["subscription"])
}

func TestSettingsTogglesNotifications(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := newTestServer(db)
	user := test.FakeUser(db)
	require.True(t, user.ReceiveNotifications)

	req := test.NewJSONAuthRequest("POST", "/auth/settings", fmt.Sprint(user.ID), models.UserSettingsIn{ReceiveNotifications: false})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, 200, rec.Code, rec.Body.String())

	var updated models.UserAccount
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.False(t, updated.ReceiveNotifications)
}

func TestRegisterAndDeletePush(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := newTestServer(db)
	user := test.FakeUser(db)

	req := test.NewJSONAuthRequest("POST", "/auth/register-push", fmt.Sprint(user.ID), models.UserPushIn{
		Token:    "fresh-device-token",
		Platform: "ios",
	})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, 200, rec.Code, rec.Body.String())

	var count int64
	db.Model(&models.UserPushToken{}).Where("user_account_id = ? AND token = ?", user.ID, "fresh-device-token").Count(&count)
	assert.Equal(t, int64(1), count)

	req = test.NewJSONAuthRequest("POST", "/auth/delete-push", fmt.Sprint(user.ID), models.UserPushIn{
		Token:    "fresh-device-token",
		Platform: "ios",
	})
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, 200, rec.Code, rec.Body.String())

	db.Model(&models.UserPushToken{}).Where("user_account_id = ? AND token = ?", user.ID, "fresh-device-token").Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestBannedUserRejected(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := newTestServer(db)
	user := test.FakeUser(db)
	db.Model(&models.UserAccount{}).Where("id = ?", user.ID).Update("banned", true)

	req := test.NewJSONAuthRequest("GET", "/auth/me", fmt.Sprint(user.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, 403, rec.Code)
}
