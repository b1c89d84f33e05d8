package test

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"outfitapi/models"
	"outfitapi/services"

	"github.com/golang-jwt/jwt/v4"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"
)

func JsonString(model interface{}) string {
	bytes, _ := json.Marshal(model)
	return string(bytes)
}

func NewJSONRequest(method string, target string, param interface{}) *http.Request {

	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	return req
}

func GenerateUserToken(userPk string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userPk,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	t, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		log.Fatalf("Error when signing user token for %s. Error %s ", userPk, err)
	}
	return t
}

func NewJSONAuthRequest(method string, target string, userPk string, param interface{}) *http.Request {
	log.Println(JsonString(param))
	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	token := GenerateUserToken(userPk)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
	return req
}

func Int64Pointer(i int64) *int64 {
	return &i
}

func StrPointer(s string) *string {
	return &s
}

func UIntPointer(u uint) *uint {
	return &u
}

func FakeUser(db *gorm.DB) *models.UserAccount {
	user := &models.UserAccount{
		Name:         "OurName",
		Email:        fmt.Sprintf("email%d@example.com", time.Now().UnixNano()),
		GoogleID:     "12232",
		Platform:     models.PlatformIOS,
		LastIp:       "123.122.122.122",
		Status:       "FINISHED_AUTH",
		Subscription: models.Free,
		AvatarURL:    "pictureurl",
	}
	db.Create(&user)

	tokenDb := models.UserPushToken{
		UserAccountID: user.ID,
		Platform:      "android",
		Token:         "cX-UZ3zwQEiPt-2GJkG2gA:APA91bGqRflaGrJrnynhRwZ442HdgUjVcO7mWMFnx6IwAdJ9RRKopvSP4QU7hbvTmk1XAp8XGvtHZLvo5JmOPTVKBbGqqvhfbZWKlXA9csEjx1hgpNvrWepU",
		Active:        true,
	}
	db.Save(&tokenDb)
	db.First(&user, user.ID)

	return user
}

func FakeClothingItem(db *gorm.DB, ownerID uint, name string, clothingType string, color string) *models.ClothingItem {
	item := &models.ClothingItem{
		Name:         name,
		ClothingType: clothingType,
		Color:        color,
		Material:     "cotton",
		OwnerID:      ownerID,
		Status:       "in_closet",
		ImageStatus:  "uploaded",
	}
	db.Create(&item)
	return item
}

type GoogleServiceMock struct{}

func (gsm GoogleServiceMock) ValidateIdToken(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error) {

	return &idtoken.Payload{Issuer: "Issue", Audience: "AAA", Expires: 119919191919, IssuedAt: 12312321321, Subject: "fake@example.com", Claims: map[string]interface{}{
		"email":   "fake@example.com",
		"picture": "pictureurl",
		"name":    "Fake Name",
		"sub":     "123googleid",
	}}, nil

}

type AWSProviderMock struct {
	MockUrl string
}

func (awsService AWSProviderMock) InitPresignClient(ctx context.Context) error {
	return nil
}

func (awsService AWSProviderMock) PresignLink(ctx context.Context, bucketName string, fileName string) (string, error) {

	return fmt.Sprintf("https://fakebucketurl.com/%s", fileName), nil
}

func (awsService AWSProviderMock) GetPresignedR2FileReadURL(ctx context.Context, bucketName, fileKey string) (string, error) {
	return awsService.MockUrl, nil
}

type URLCacheMock struct {
	MockUrl string
}

func (m URLCacheMock) GetReadURL(ctx context.Context, objectKey string) (string, error) {
	if objectKey == "" {
		return "", nil
	}
	return m.MockUrl, nil
}

// MockLLMOutfitProvider returns a fixed composition without touching the
// network. ReviewOutfit always approves unless Problems is set.
type MockLLMOutfitProvider struct {
	ItemIDs  []uint
	Problems []string
	Err      error
}

func (m MockLLMOutfitProvider) ComposeOutfit(ctx context.Context, req services.OutfitComposeRequest, modelName services.LLMModelName) (*services.OutfitComposeResponse, *services.LLMUsage, error) {
	usage := &services.LLMUsage{InputTokenCount: 10, OutputTokenCount: 13, TotalTokenCount: 23}
	if m.Err != nil {
		return nil, usage, m.Err
	}
	return &services.OutfitComposeResponse{
		ItemIDs:   m.ItemIDs,
		Reasoning: "picked by mock",
	}, usage, nil
}

func (m MockLLMOutfitProvider) ReviewOutfit(ctx context.Context, req services.OutfitReviewRequest, modelName services.LLMModelName) (*services.OutfitReviewResponse, *services.LLMUsage, error) {
	usage := &services.LLMUsage{InputTokenCount: 5, OutputTokenCount: 3, TotalTokenCount: 8}
	if m.Err != nil {
		return nil, usage, m.Err
	}
	return &services.OutfitReviewResponse{
		Valid:    len(m.Problems) == 0,
		Problems: m.Problems,
	}, usage, nil
}
