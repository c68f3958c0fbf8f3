package handlers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"newshub/config"
)

// Mailer is what the contact handler needs from the mail transport.
type Mailer interface {
	Send(to, subject, body string) error
}

// Shared state wired once at startup.
var cfg *config.Config
var mailer Mailer

// SetConfig injects the process configuration into the handlers.
func SetConfig(c *config.Config) {
	cfg = c
}

// SetMailer injects the outbound mail transport.
func SetMailer(m Mailer) {
	mailer = m
}

// parsePagination reads page and limit query parameters with the
// defaults the original API used. Both are clamped to sane values.
func parsePagination(c *gin.Context) (page, limit int64) {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// totalPages = ceil(total matching / limit).
func totalPages(total, limit int64) int64 {
	if limit <= 0 {
		return 0
	}
	return int64(math.Ceil(float64(total) / float64(limit)))
}

// authorLookupStages joins the author document onto each row under
// authorInfo. Missing authors are preserved as null rather than dropping
// the row.
func authorLookupStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "author"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "authorInfo"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$authorInfo"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}
