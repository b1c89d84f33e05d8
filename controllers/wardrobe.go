package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"outfitapi/models"
	"outfitapi/outfit"
	"outfitapi/services"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const freePlanClothingLimit = 20

type CreateClothingIn struct {
	Name         string  `json:"name" validate:"required,max=100"`
	FileName     *string `json:"file_name" validate:"omitempty,max=200"`
	Description  *string `json:"description" validate:"omitempty,max=500"`
	ClothingType string  `json:"clothing_type" validate:"required,max=50"`
	Subtype      *string `json:"subtype" validate:"omitempty,max=50"`
	Color        string  `json:"color" validate:"required,max=50"`
	Material     string  `json:"material" validate:"omitempty,max=50"`
	AddToCloset  *bool   `json:"add_to_closet" validate:"required"`
}

type ClothingResponse struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	ClothingType string  `json:"clothing_type"`
	Subtype      *string `json:"subtype"`
	Color        string  `json:"color"`
	Material     string  `json:"material"`
	Category     string  `json:"category"`
	Status       string  `json:"status"`
	Uri          *string `json:"uri,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type ClothingCreatedResponse struct {
	ClothingResponse ClothingResponse `json:"clothes"`
	FileUploadUrl    string           `json:"file_upload_url,omitempty"`
}

type WardrobeListResponse struct {
	Tops        []ClothingResponse `json:"tops"`
	Bottoms     []ClothingResponse `json:"bottoms"`
	Footwear    []ClothingResponse `json:"footwear"`
	Jackets     []ClothingResponse `json:"jackets"`
	Accessories []ClothingResponse `json:"accessories"`
	Other       []ClothingResponse `json:"other"`
}

type WardrobeController struct {
	AWSService services.AWSServiceProvider
	URLCache   services.URLCacheServiceProvider
}

func (controller *WardrobeController) WardrobeRoutes(g *echo.Group) {
	g.POST("/create", controller.CreateClothing)
	g.GET("/list", controller.ListWardrobe)
	g.DELETE("/:id", controller.DeleteClothing)
}

func clothingResponseOf(item models.ClothingItem) ClothingResponse {
	classified := outfit.NewItem(item)
	var subtype *string
	if classified.Subtype != "" {
		subtype = StrPointer(classified.Subtype)
	}
	return ClothingResponse{
		ID:           item.ID,
		Name:         item.Name,
		Description:  item.Description,
		ClothingType: item.ClothingType,
		Subtype:      subtype,
		Color:        item.Color,
		Material:     item.Material,
		Category:     string(classified.Category),
		Status:       item.Status,
		CreatedAt:    item.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:    item.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func (controller *WardrobeController) CreateClothing(c echo.Context) error {
	var req CreateClothingIn
	if err := c.Bind(&req); err != nil {
		fmt.Println(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	if string(user.Subscription) == "free" {
		var totalClothingCount int64
		if err := db.Model(&models.ClothingItem{}).Where("owner_id = ?", user.ID).Count(&totalClothingCount).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get wardrobe data"})
		}
		fmt.Printf("[User %v] Free plan, wardrobe count: %v\n", user.ID, totalClothingCount)
		if totalClothingCount >= freePlanClothingLimit {
			return c.JSON(http.StatusForbidden, map[string]string{"error": fmt.Sprintf("You have reached the free limit of %v wardrobe items, please subscribe", freePlanClothingLimit)})
		}
	}

	status := "temporary"
	if req.AddToCloset != nil && *req.AddToCloset {
		status = "in_closet"
	}
	clothing := models.ClothingItem{
		Name:         req.Name,
		Description:  req.Description,
		ClothingType: req.ClothingType,
		Subtype:      req.Subtype,
		Color:        req.Color,
		Material:     req.Material,
		OwnerID:      user.ID,
		Status:       status,
		ImageStatus:  "draft",
	}

	var uploadUrl string
	if req.FileName != nil && *req.FileName != "" {
		if !services.IsAllowedImageName(*req.FileName) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Unsupported image type"})
		}
		var bucketName = services.GetEnv("R2_BUCKET_NAME", "")
		safeFileName := fmt.Sprintf("clothes/%v/%s", user.ID, *req.FileName)
		presignedUrl, presignErr := controller.AWSService.PresignLink(context.Background(), bucketName, safeFileName)
		if presignErr != nil {
			log.Printf("Unable to presign upload for %s!, %s", clothing.Name, presignErr)
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"message": "Error while creating clothing with attachment",
			})
		}
		uploadUrl = presignedUrl
		clothing.ImageURL = &safeFileName
	}

	if err := db.Create(&clothing).Error; err != nil {
		sentry.CaptureException(err)
		return err
	}
	fmt.Printf("[User %v] Clothing created %v type %s\n", user.ID, clothing.ID, clothing.ClothingType)

	return c.JSON(http.StatusCreated, ClothingCreatedResponse{
		ClothingResponse: clothingResponseOf(clothing),
		FileUploadUrl:    uploadUrl,
	})
}

// populatePresignedClothingImages enriches wardrobe rows with presigned read
// urls concurrently, falling back to a direct presign when the cache layer
// itself fails.
func (controller *WardrobeController) populatePresignedClothingImages(ctx context.Context, clothes []models.ClothingItem) []ClothingResponse {
	if len(clothes) == 0 {
		return []ClothingResponse{}
	}

	var wg sync.WaitGroup
	processedResponses := make([]ClothingResponse, len(clothes))
	bucketName := services.GetEnv("R2_BUCKET_NAME", "")

	for i, clothingItem := range clothes {
		wg.Add(1)
		go func(index int, item models.ClothingItem) {
			defer wg.Done()

			var imageUrl string
			if item.ImageURL != nil && *item.ImageURL != "" {
				objectKey := *item.ImageURL

				url, err := controller.URLCache.GetReadURL(ctx, objectKey)
				if err == nil {
					imageUrl = url
				} else {
					log.Printf("CACHE WARNING: Cache system failed for key '%s': %v. Triggering manual R2 fallback.", objectKey, err)
					sentry.WithScope(func(scope *sentry.Scope) {
						scope.SetTag("failure_type", "cache_system")
						scope.SetExtra("objectKey", objectKey)
						sentry.CaptureException(err)
					})

					fallbackUrl, fallbackErr := controller.AWSService.GetPresignedR2FileReadURL(ctx, bucketName, objectKey)
					if fallbackErr != nil {
						log.Printf("CRITICAL: Manual R2 fallback also failed for key '%s': %v", objectKey, fallbackErr)
						sentry.CaptureException(fallbackErr)
					} else {
						imageUrl = fallbackUrl
					}
				}
			}
			response := clothingResponseOf(item)
			if imageUrl != "" {
				response.Uri = &imageUrl
			}
			processedResponses[index] = response
		}(i, clothingItem)
	}

	wg.Wait()
	return processedResponses
}

func (controller *WardrobeController) ListWardrobe(c echo.Context) error {
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	var clothes []models.ClothingItem
	if err := db.Where("owner_id = ?", user.ID).Order("id asc").Find(&clothes).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch wardrobe"})
	}

	start := time.Now()
	processedResponses := controller.populatePresignedClothingImages(c.Request().Context(), clothes)
	fmt.Printf("[User %v] Wardrobe list of %v items built in %v\n", user.ID, len(clothes), time.Since(start))

	response := WardrobeListResponse{
		Tops:        []ClothingResponse{},
		Bottoms:     []ClothingResponse{},
		Footwear:    []ClothingResponse{},
		Jackets:     []ClothingResponse{},
		Accessories: []ClothingResponse{},
		Other:       []ClothingResponse{},
	}
	for _, item := range processedResponses {
		switch outfit.CoreCategory(item.Category) {
		case outfit.CategoryTop:
			response.Tops = append(response.Tops, item)
		case outfit.CategoryBottom:
			response.Bottoms = append(response.Bottoms, item)
		case outfit.CategoryFootwear:
			response.Footwear = append(response.Footwear, item)
		case outfit.CategoryJacket:
			response.Jackets = append(response.Jackets, item)
		case outfit.CategoryAccessory:
			response.Accessories = append(response.Accessories, item)
		default:
			response.Other = append(response.Other, item)
		}
	}
	return c.JSON(http.StatusOK, response)
}

func (controller *WardrobeController) DeleteClothing(c echo.Context) error {
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	var clothingId uint
	if err := echo.PathParamsBinder(c).Uint("id", &clothingId).BindError(); err != nil {
		return echo.ErrBadRequest
	}

	result := db.Where("id = ? AND owner_id = ?", clothingId, user.ID).Delete(&models.ClothingItem{})
	if result.Error != nil {
		sentry.CaptureException(result.Error)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete clothing"})
	}
	if result.RowsAffected == 0 {
		return echo.ErrNotFound
	}
	fmt.Printf("[User %v] Clothing deleted %v\n", user.ID, clothingId)
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}
