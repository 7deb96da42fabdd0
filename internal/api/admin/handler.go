package admin

import (
	"net/http"
	"time"

	"kalaconnect-backend/database"
	"kalaconnect-backend/internal/domain/community"
	"kalaconnect-backend/internal/domain/crafts"
	"kalaconnect-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type AdminUser struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Tel        string `json:"tel"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
	CraftCount int64  `json:"craft_count"`
}

type AdminStats struct {
	TotalUsers     int            `json:"total_users"`
	TotalCrafts    int            `json:"total_crafts"`
	RecentCrafts   int            `json:"recent_crafts"`
	CraftsByStatus map[string]int `json:"crafts_by_status"`
	TotalPosts     int            `json:"total_posts"`
}

// AdminDashboard aggregates platform counts for the ops view.
func AdminDashboard(c *gin.Context) {
	var stats AdminStats

	var totalUsers int64
	var totalCrafts int64
	var recentCrafts int64
	var totalPosts int64

	database.DB.Model(&users.User{}).Count(&totalUsers)
	database.DB.Model(&crafts.Craft{}).Count(&totalCrafts)

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	database.DB.Model(&crafts.Craft{}).
		Where("created_at >= ?", thirtyDaysAgo).
		Count(&recentCrafts)

	database.DB.Model(&community.Post{}).Count(&totalPosts)

	stats.TotalUsers = int(totalUsers)
	stats.TotalCrafts = int(totalCrafts)
	stats.RecentCrafts = int(recentCrafts)
	stats.TotalPosts = int(totalPosts)

	type StatusCount struct {
		Status string
		Count  int
	}
	var counts []StatusCount

	database.DB.
		Table("crafts").
		Select("status, COUNT(id) as count").
		Group("status").
		Scan(&counts)

	stats.CraftsByStatus = map[string]int{}
	for _, sc := range counts {
		stats.CraftsByStatus[sc.Status] = sc.Count
	}

	c.JSON(http.StatusOK, stats)
}

func ListAllUsers(c *gin.Context) {
	var all []users.User
	err := database.DB.Find(&all).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	var adminUsers []AdminUser
	for _, u := range all {
		var craftCount int64
		database.DB.Model(&crafts.Craft{}).Where("user_id = ?", u.ID).Count(&craftCount)

		adminUsers = append(adminUsers, AdminUser{
			ID:         u.ID,
			Name:       u.Name,
			Tel:        u.Tel,
			Email:      u.Email,
			Role:       u.Role,
			IsVerified: u.IsVerified,
			CraftCount: craftCount,
		})
	}

	c.JSON(http.StatusOK, adminUsers)
}

func GetUserDetails(c *gin.Context) {
	userID := c.Param("id")

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var userCrafts []crafts.Craft
	if err := database.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&userCrafts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch crafts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   user,
		"crafts": userCrafts,
	})
}
