package crafts

import (
	"errors"
	"net/http"
	"strconv"

	"kalaconnect-backend/database"
	"kalaconnect-backend/internal/domain/crafts"
	"kalaconnect-backend/internal/infra/ai"
	"kalaconnect-backend/internal/infra/blobstore"
	"kalaconnect-backend/internal/queue"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Speech backs the quick transcription endpoint; wired at startup from the
// configured AI provider.
var Speech ai.SpeechToText

// FeaturedLimit caps the public storefront listing.
const FeaturedLimit = 12

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

// loadOwnedCraft fetches the craft and enforces that the caller owns it.
// Non-owners get a 403 and the record is left untouched.
func loadOwnedCraft(c *gin.Context, userID uint) (*crafts.Craft, bool) {
	id := c.Param("id")
	var craft crafts.Craft
	if err := database.DB.First(&craft, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Craft not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load craft"})
		}
		return nil, false
	}
	if craft.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this craft"})
		return nil, false
	}
	return &craft, true
}

// ------------------------------
// POST /crafts
// ------------------------------
func CreateCraft(c *gin.Context) {
	var req struct {
		ArtisanName    string  `json:"artisan_name" binding:"required"`
		CraftPhoto     string  `json:"craft_photo" binding:"required"`
		VoiceNote      string  `json:"voice_note" binding:"required"`
		WhatsappNumber *string `json:"whatsapp_number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	craft := crafts.Craft{
		UserID:         userID,
		ArtisanName:    req.ArtisanName,
		CraftPhoto:     req.CraftPhoto,
		VoiceNote:      req.VoiceNote,
		WhatsappNumber: req.WhatsappNumber,
		Status:         crafts.StatusUploading,
	}
	if err := database.DB.Create(&craft).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create craft"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": craft.ID, "status": craft.Status})
}

// ------------------------------
// GET /crafts/:id
// ------------------------------
func GetCraft(c *gin.Context) {
	id := c.Param("id")

	var craft crafts.Craft
	if err := database.DB.First(&craft, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Craft not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load craft"})
		}
		return
	}

	dto, err := toCraftDTO(c.Request.Context(), blobstore.Blob, craft, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve file URLs"})
		return
	}
	c.JSON(http.StatusOK, dto)
}

// ------------------------------
// GET /crafts/mine
// ------------------------------
func GetUserCrafts(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var rows []crafts.Craft
	if err := ownerCraftsQuery(database.DB, userID).Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load crafts"})
		return
	}

	out := make([]CraftDTO, 0, len(rows))
	for _, row := range rows {
		dto, err := toCraftDTO(c.Request.Context(), blobstore.Blob, row, false)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve file URLs"})
			return
		}
		out = append(out, dto)
	}
	c.JSON(http.StatusOK, out)
}

// ------------------------------
// GET /crafts/featured  (public)
// ------------------------------
// featuredLimitFrom clamps the client-supplied limit into 1..FeaturedLimit,
// falling back to the maximum on junk input.
func featuredLimitFrom(raw string) int {
	limit := FeaturedLimit
	if raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n < FeaturedLimit {
			limit = n
		}
	}
	return limit
}

func GetFeaturedPublic(c *gin.Context) {
	limit := featuredLimitFrom(c.Query("limit"))

	var rows []crafts.Craft
	if err := featuredQuery(database.DB, limit).Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load featured crafts"})
		return
	}

	out := make([]FeaturedCraftDTO, 0, len(rows))
	for _, row := range rows {
		dto, err := toFeaturedDTO(c.Request.Context(), blobstore.Blob, row)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve file URLs"})
			return
		}
		out = append(out, dto)
	}
	c.JSON(http.StatusOK, out)
}

// ------------------------------
// GET /crafts/region/:region  (public)
// ------------------------------
func GetByRegion(c *gin.Context) {
	region := c.Param("region")
	status := crafts.Status(c.DefaultQuery("status", string(crafts.StatusCompleted)))

	// Public browsing never exposes partially processed or failed records.
	if status != crafts.StatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only completed crafts are publicly listable"})
		return
	}

	var rows []crafts.Craft
	if err := regionStatusQuery(database.DB, region, status).Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load crafts"})
		return
	}

	out := make([]CraftDTO, 0, len(rows))
	for _, row := range rows {
		dto, err := toCraftDTO(c.Request.Context(), blobstore.Blob, row, false)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve file URLs"})
			return
		}
		out = append(out, dto)
	}
	c.JSON(http.StatusOK, out)
}

// ------------------------------
// POST /crafts/:id/status  (admin/ops)
// ------------------------------
func SetStatus(c *gin.Context) {
	var req struct {
		Status crafts.Status `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !crafts.IsValid(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status value"})
		return
	}

	id := c.Param("id")
	var craft crafts.Craft
	if err := database.DB.First(&craft, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Craft not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load craft"})
		}
		return
	}

	if err := crafts.ValidateTransition(craft.Status, req.Status); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if craft.Status == req.Status {
		c.JSON(http.StatusOK, gin.H{"id": craft.ID, "status": craft.Status})
		return
	}

	res := database.DB.Model(&crafts.Craft{}).
		Where("id = ? AND status = ?", id, craft.Status).
		Updates(map[string]interface{}{
			"status":  req.Status,
			"version": gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}
	if res.RowsAffected == 0 {
		// The row moved between the read and the guarded write.
		c.JSON(http.StatusConflict, gin.H{"error": "Craft status changed concurrently"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": craft.ID, "status": req.Status})
}

// ------------------------------
// PATCH /crafts/:id/ai  (admin/ops)
// ------------------------------
func PatchAIFields(c *gin.Context) {
	var req struct {
		TranscribedText    *string  `json:"transcribed_text"`
		TranslatedText     *string  `json:"translated_text"`
		ProductDescription *string  `json:"product_description"`
		SocialCaption      *string  `json:"social_caption"`
		AITags             []string `json:"ai_tags"`
		EnhancedPhoto      *string  `json:"enhanced_photo"`
		Language           *string  `json:"language"`
		TargetLanguage     *string  `json:"target_language"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := crafts.AIPatch{
		TranscribedText:    req.TranscribedText,
		TranslatedText:     req.TranslatedText,
		ProductDescription: req.ProductDescription,
		SocialCaption:      req.SocialCaption,
		AITags:             req.AITags,
		EnhancedPhoto:      req.EnhancedPhoto,
		Language:           req.Language,
		TargetLanguage:     req.TargetLanguage,
	}

	store := crafts.NewGormStore(database.DB)
	if err := store.PatchAI(c.Request.Context(), c.Param("id"), patch); err != nil {
		if errors.Is(err, crafts.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Craft not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to patch craft"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Craft updated"})
}

// ------------------------------
// POST /crafts/:id/region
// ------------------------------
func SetRegion(c *gin.Context) {
	var req struct {
		Region string `json:"region" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	craft, ok := loadOwnedCraft(c, userID)
	if !ok {
		return
	}

	if err := database.DB.Model(craft).Update("region", req.Region).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set region"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Region updated"})
}

// ------------------------------
// POST /crafts/:id/audio
// ------------------------------
func AttachAudio(c *gin.Context) {
	var req struct {
		AudioFileID string `json:"audio_file_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	craft, ok := loadOwnedCraft(c, userID)
	if !ok {
		return
	}

	if err := database.DB.Model(craft).Update("audio_file_id", req.AudioFileID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach audio"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Audio attached"})
}

// ------------------------------
// POST /crafts/:id/image
// ------------------------------
func AttachImage(c *gin.Context) {
	var req struct {
		ImageFileID string `json:"image_file_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	craft, ok := loadOwnedCraft(c, userID)
	if !ok {
		return
	}

	if err := database.DB.Model(craft).Update("image_file_id", req.ImageFileID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach image"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image attached"})
}

// ------------------------------
// POST /uploads
// ------------------------------
func GenerateUploadURL(c *gin.Context) {
	if _, ok := mustUserID(c); !ok {
		return
	}

	key, uploadURL, err := blobstore.Blob.NewUploadSlot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload slot"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "upload_url": uploadURL})
}

// ------------------------------
// POST /crafts/:id/process
// ------------------------------
func ProcessCraft(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	craft, ok := loadOwnedCraft(c, userID)
	if !ok {
		return
	}

	if err := queue.EnqueueProcess(c.Request.Context(), queue.Client, craft.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue processing"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"id": craft.ID, "message": "Processing queued"})
}

// ------------------------------
// POST /transcribe
// ------------------------------
// Quick transcription for voice-note capture; never writes to a craft record.
func TranscribeQuick(c *gin.Context) {
	var req struct {
		AudioFileID string `json:"audio_file_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text, err := Speech.Transcribe(c.Request.Context(), req.AudioFileID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transcription failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transcription": text})
}
