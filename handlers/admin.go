package handlers

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"newshub/database"
	"newshub/models"
)

type ModerateRequest struct {
	IsModerated *bool `json:"isModerated" binding:"required"`
}

type UserRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// AdminStats returns the dashboard counters.
func AdminStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	totalUsers, err := database.Users.CountDocuments(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	totalNews, err := database.News.CountDocuments(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	pending, err := database.News.CountDocuments(ctx, bson.M{"isModerated": false})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalUsers":        totalUsers,
		"totalNews":         totalNews,
		"pendingModeration": pending,
	})
}

// AdminListUsers returns a page of users, optionally filtered by a
// case-insensitive username/email substring.
func AdminListUsers(c *gin.Context) {
	page, limit := parsePagination(c)

	filter := bson.M{}
	if search := c.Query("search"); search != "" {
		s := regexp.QuoteMeta(search)
		filter["$or"] = []bson.M{
			{"username": bson.M{"$regex": s, "$options": "i"}},
			{"email": bson.M{"$regex": s, "$options": "i"}},
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	total, err := database.Users.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := database.Users.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	users := make([]models.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":       users,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
	})
}

// AdminModerate flips the moderation flag on one article.
func AdminModerate(c *gin.Context) {
	newsID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "News article not found"})
		return
	}

	var req ModerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "isModerated is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var updated models.News
	err = database.News.FindOneAndUpdate(ctx,
		bson.M{"_id": newsID},
		bson.M{"$set": bson.M{"isModerated": *req.IsModerated, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"message": "News article not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	zap.L().Info("news moderated",
		zap.String("id", newsID.Hex()),
		zap.Bool("isModerated", *req.IsModerated),
	)

	c.JSON(http.StatusOK, gin.H{"message": "News moderation updated successfully", "news": updated})
}

// AdminSetUserRole grants or revokes the admin role.
func AdminSetUserRole(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	var req UserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Role is required"})
		return
	}

	if req.Role != models.RoleUser && req.Role != models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid role"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var updated models.User
	err = database.Users.FindOneAndUpdate(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"role": req.Role, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	zap.L().Info("user role updated",
		zap.String("user", userID.Hex()),
		zap.String("role", req.Role),
	)

	c.JSON(http.StatusOK, gin.H{"message": "User role updated successfully", "user": updated})
}
