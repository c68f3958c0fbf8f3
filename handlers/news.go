package handlers

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"newshub/database"
	"newshub/middleware"
	"newshub/models"
)

// newsItem is the list/create/update response row: the news document with
// the author summary joined in place of the raw author id.
type newsItem struct {
	models.News `bson:",inline"`
	AuthorInfo  *models.AuthorSummary `bson:"authorInfo" json:"author,omitempty"`
}

// newsDetail carries the fuller author profile for the detail page.
type newsDetail struct {
	models.News `bson:",inline"`
	AuthorInfo  *models.AuthorProfile `bson:"authorInfo" json:"author,omitempty"`
}

type CreateNewsRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Content     string              `json:"content"`
	Thumbnail   string              `json:"thumbnail"`
	Type        string              `json:"type"`
	VideoURL    string              `json:"videoUrl"`
	Location    models.NewsLocation `json:"location"`
	Categories  []string            `json:"categories"`
}

type UpdateNewsRequest struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Content     *string              `json:"content"`
	Thumbnail   *string              `json:"thumbnail"`
	Type        *string              `json:"type"`
	VideoURL    *string              `json:"videoUrl"`
	Location    *models.NewsLocation `json:"location"`
	Categories  *[]string            `json:"categories"`
}

// buildNewsFilter translates the list query parameters into a Mongo
// filter. Categories match case-insensitively and support comma-separated
// OR; location substring-matches city, state or country; search uses the
// full-text index.
func buildNewsFilter(category, location, search string) bson.M {
	filter := bson.M{}

	if category != "" {
		// $in needs regex values, not embedded $regex documents; the
		// server rejects operators nested under $in.
		var cats []primitive.Regex
		for _, c := range strings.Split(category, ",") {
			c = strings.TrimSpace(c)
			if c == "" {
				continue
			}
			cats = append(cats, primitive.Regex{Pattern: "^" + regexp.QuoteMeta(c) + "$", Options: "i"})
		}
		if len(cats) > 0 {
			filter["categories"] = bson.M{"$in": cats}
		}
	}

	if location != "" {
		loc := regexp.QuoteMeta(location)
		filter["$or"] = []bson.M{
			{"location.city": bson.M{"$regex": loc, "$options": "i"}},
			{"location.state": bson.M{"$regex": loc, "$options": "i"}},
			{"location.country": bson.M{"$regex": loc, "$options": "i"}},
		}
	}

	if search != "" {
		filter["$text"] = bson.M{"$search": search}
	}

	return filter
}

// buildNewsSort maps sortBy to a sort document. trending ranks by
// upvotes then views, popular by views, anything else newest first.
func buildNewsSort(sortBy string) bson.D {
	switch sortBy {
	case "trending":
		return bson.D{{Key: "upvotes", Value: -1}, {Key: "viewCount", Value: -1}}
	case "popular":
		return bson.D{{Key: "viewCount", Value: -1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

// ListNews returns a filtered, sorted page of news with author summaries.
func ListNews(c *gin.Context) {
	page, limit := parsePagination(c)
	filter := buildNewsFilter(c.Query("category"), c.Query("location"), c.Query("search"))
	sort := buildNewsSort(c.Query("sortBy"))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	total, err := database.News.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	pipeline := []bson.D{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: sort}},
		{{Key: "$skip", Value: (page - 1) * limit}},
		{{Key: "$limit", Value: limit}},
	}
	pipeline = append(pipeline, authorLookupStages()...)

	cursor, err := database.News.Aggregate(ctx, pipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	news := make([]newsItem, 0)
	if err := cursor.All(ctx, &news); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"news":        news,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
	})
}

// GetNews returns one article and counts the view. The counter uses a
// server-side $inc so concurrent reads cannot lose updates.
func GetNews(c *gin.Context) {
	newsID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "News article not found"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var item models.News
	err = database.News.FindOneAndUpdate(ctx,
		bson.M{"_id": newsID},
		bson.M{"$inc": bson.M{"viewCount": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&item)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"message": "News article not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	detail := newsDetail{News: item}
	var author models.AuthorProfile
	if err := database.Users.FindOne(ctx, bson.M{"_id": item.Author}).Decode(&author); err == nil {
		detail.AuthorInfo = &author
	}

	c.JSON(http.StatusOK, detail)
}

// CreateNews validates and persists a new article or video for the
// authenticated caller.
func CreateNews(c *gin.Context) {
	var req CreateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	authorID, err := primitive.ObjectIDFromHex(c.GetString(middleware.CtxUserID))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	if req.Type == "" {
		req.Type = models.TypeArticle
	}
	if req.Type != models.TypeVideo {
		req.VideoURL = ""
	}

	now := time.Now()
	item := models.News{
		ID:          primitive.NewObjectID(),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Content:     req.Content,
		Thumbnail:   req.Thumbnail,
		Type:        req.Type,
		VideoURL:    req.VideoURL,
		Location:    req.Location,
		Categories:  req.Categories,
		Author:      authorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := models.ValidateNews(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if _, err := database.News.InsertOne(ctx, item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	zap.L().Info("news created",
		zap.String("id", item.ID.Hex()),
		zap.String("type", item.Type),
		zap.String("author", authorID.Hex()),
	)

	c.JSON(http.StatusCreated, withAuthorSummary(ctx, item))
}

// UpdateNews merges the supplied fields onto the stored record. Only the
// author or an admin may update.
func UpdateNews(c *gin.Context) {
	newsID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "News article not found"})
		return
	}

	var req UpdateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var item models.News
	err = database.News.FindOne(ctx, bson.M{"_id": newsID}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"message": "News article not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	if !callerMayEdit(c, item.Author) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized to update this news article"})
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Content != nil {
		set["content"] = *req.Content
	}
	if req.Thumbnail != nil {
		set["thumbnail"] = *req.Thumbnail
	}
	if req.Type != nil {
		set["type"] = *req.Type
	}
	if req.VideoURL != nil {
		set["videoUrl"] = *req.VideoURL
	}
	if req.Location != nil {
		set["location"] = *req.Location
	}
	if req.Categories != nil {
		set["categories"] = *req.Categories
	}

	var updated models.News
	err = database.News.FindOneAndUpdate(ctx,
		bson.M{"_id": newsID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, withAuthorSummary(ctx, updated))
}

// DeleteNews removes the record. Same authorization rule as update.
func DeleteNews(c *gin.Context) {
	newsID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "News article not found"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var item models.News
	err = database.News.FindOne(ctx, bson.M{"_id": newsID}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"message": "News article not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	if !callerMayEdit(c, item.Author) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized to delete this news article"})
		return
	}

	if _, err := database.News.DeleteOne(ctx, bson.M{"_id": newsID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	zap.L().Info("news deleted", zap.String("id", newsID.Hex()))

	c.JSON(http.StatusOK, gin.H{"message": "News article deleted successfully"})
}

type VoteRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// VoteNews counts an up or down vote with an atomic increment.
func VoteNews(c *gin.Context) {
	newsID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "News article not found"})
		return
	}

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Vote direction is required"})
		return
	}

	field, ok := voteField(req.Direction)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Vote direction must be up or down"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var updated models.News
	err = database.News.FindOneAndUpdate(ctx,
		bson.M{"_id": newsID},
		bson.M{"$inc": bson.M{field: 1}},
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

	c.JSON(http.StatusOK, updated)
}

// voteField maps a vote direction to the counter it increments.
func voteField(direction string) (string, bool) {
	switch direction {
	case "up":
		return "upvotes", true
	case "down":
		return "downvotes", true
	default:
		return "", false
	}
}

// callerMayEdit applies the owner-or-admin rule.
func callerMayEdit(c *gin.Context, author primitive.ObjectID) bool {
	return author.Hex() == c.GetString(middleware.CtxUserID) ||
		c.GetString(middleware.CtxUserRole) == models.RoleAdmin
}

// withAuthorSummary attaches the author summary for the response. A
// failed author lookup leaves it null rather than failing the request.
func withAuthorSummary(ctx context.Context, item models.News) newsItem {
	out := newsItem{News: item}
	var author models.AuthorSummary
	if err := database.Users.FindOne(ctx, bson.M{"_id": item.Author}).Decode(&author); err == nil {
		out.AuthorInfo = &author
	}
	return out
}
