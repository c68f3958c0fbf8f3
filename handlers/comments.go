package handlers

import (
	"context"
	"net/http"
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

// commentItem joins the author summary onto a comment for responses.
type commentItem struct {
	models.Comment `bson:",inline"`
	AuthorInfo     *models.AuthorSummary `bson:"authorInfo" json:"author,omitempty"`
}

type CreateCommentRequest struct {
	Content  string `json:"content"`
	ParentID string `json:"parentId"`
}

// ListComments returns the comments for an article, newest first, as a
// flat list. parentId on each row lets the client thread replies.
func ListComments(c *gin.Context) {
	newsID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "News article not found"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := database.News.FindOne(ctx, bson.M{"_id": newsID}).Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "News article not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	pipeline := []bson.D{
		{{Key: "$match", Value: bson.D{{Key: "newsId", Value: newsID}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
	}
	pipeline = append(pipeline, authorLookupStages()...)

	cursor, err := database.Comments.Aggregate(ctx, pipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	comments := make([]commentItem, 0)
	if err := cursor.All(ctx, &comments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// CreateComment adds a comment (or a reply, when parentId is set) to an
// article and bumps the article's comment counter atomically.
func CreateComment(c *gin.Context) {
	newsID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "News article not found"})
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if err := models.ValidateComment(req.Content); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	authorID, err := primitive.ObjectIDFromHex(c.GetString(middleware.CtxUserID))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := database.News.FindOne(ctx, bson.M{"_id": newsID}).Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "News article not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	var parentID *primitive.ObjectID
	if req.ParentID != "" {
		pid, err := primitive.ObjectIDFromHex(req.ParentID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid parent comment id"})
			return
		}
		// The parent must be a comment on the same article.
		err = database.Comments.FindOne(ctx, bson.M{"_id": pid, "newsId": newsID}).Err()
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Parent comment not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
			return
		}
		parentID = &pid
	}

	now := time.Now()
	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		Content:   strings.TrimSpace(req.Content),
		Author:    authorID,
		NewsID:    newsID,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := database.Comments.InsertOne(ctx, comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	// The comment is already persisted at this point, so a failed
	// counter bump must not fail the request.
	_, err = database.News.UpdateOne(ctx,
		bson.M{"_id": newsID},
		bson.M{"$inc": bson.M{"comments": 1}},
	)
	if err != nil {
		zap.L().Error("comment counter increment failed",
			zap.String("news", newsID.Hex()),
			zap.Error(err),
		)
	}

	out := commentItem{Comment: comment}
	var author models.AuthorSummary
	if err := database.Users.FindOne(ctx, bson.M{"_id": authorID}).Decode(&author); err == nil {
		out.AuthorInfo = &author
	}

	c.JSON(http.StatusCreated, out)
}

// VoteComment counts an up or down vote on a comment.
func VoteComment(c *gin.Context) {
	commentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
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

	var updated models.Comment
	err = database.Comments.FindOneAndUpdate(ctx,
		bson.M{"_id": commentID},
		bson.M{"$inc": bson.M{field: 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}
