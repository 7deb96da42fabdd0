package community

import (
	"net/http"
	"strings"

	"kalaconnect-backend/database"
	"kalaconnect-backend/internal/domain/community"
	"kalaconnect-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// PostDTO carries a post plus the author's display name. Deleted authors
// show up as "Anonymous".
type PostDTO struct {
	community.Post
	AuthorName string `json:"author_name"`
}

// defaultCluster derives a cluster from the author's first name token so
// posts land somewhere useful even when the client sends none.
func defaultCluster(name string) string {
	fields := strings.Fields(strings.TrimSpace(name))
	if len(fields) == 0 {
		return "general"
	}
	return strings.ToLower(fields[0])
}

// ------------------------------
// GET /community/:cluster
// ------------------------------
func ListByCluster(c *gin.Context) {
	cluster := c.Param("cluster")

	var posts []community.Post
	err := database.DB.Preload("User").
		Where("cluster = ?", cluster).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load posts"})
		return
	}

	out := make([]PostDTO, 0, len(posts))
	for _, post := range posts {
		dto := PostDTO{Post: post, AuthorName: "Anonymous"}
		if post.User != nil && post.User.Name != "" {
			dto.AuthorName = post.User.Name
		}
		out = append(out, dto)
	}
	c.JSON(http.StatusOK, out)
}

// ------------------------------
// POST /community
// ------------------------------
func CreatePost(c *gin.Context) {
	var req struct {
		Body    string  `json:"body" binding:"required"`
		Cluster string  `json:"cluster"`
		Title   *string `json:"title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cluster := strings.TrimSpace(req.Cluster)
	if cluster == "" {
		var author users.User
		if err := database.DB.First(&author, userID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
			return
		}
		cluster = defaultCluster(author.Name)
	}

	post := community.Post{
		UserID:  userID,
		Cluster: cluster,
		Body:    req.Body,
		Title:   req.Title,
	}
	if err := database.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}
	c.JSON(http.StatusCreated, post)
}
