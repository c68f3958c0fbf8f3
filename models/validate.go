package models

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterStructValidation(newsStructLevel, News{})
}

// newsStructLevel enforces the per-type conditional rules: articles need
// content (>= 100 chars) and a thumbnail, videos need a video URL.
func newsStructLevel(sl validator.StructLevel) {
	n := sl.Current().Interface().(News)

	switch n.Type {
	case TypeArticle:
		content := strings.TrimSpace(n.Content)
		if content == "" {
			sl.ReportError(n.Content, "Content", "Content", "required_if", "")
		} else if len(content) < 100 {
			sl.ReportError(n.Content, "Content", "Content", "min", "100")
		}
		if strings.TrimSpace(n.Thumbnail) == "" {
			sl.ReportError(n.Thumbnail, "Thumbnail", "Thumbnail", "required_if", "")
		}
	case TypeVideo:
		if strings.TrimSpace(n.VideoURL) == "" {
			sl.ReportError(n.VideoURL, "VideoURL", "VideoURL", "required_if", "")
		}
	}
}

// newsMessages maps field+tag to the message surfaced to the caller.
var newsMessages = map[string]string{
	"Title/required":        "Title is required",
	"Title/min":             "Title must be at least 10 characters long",
	"Description/required":  "Description is required",
	"Description/min":       "Description must be at least 20 characters long",
	"Type/required":         "Type must be article or video",
	"Type/oneof":            "Type must be article or video",
	"Content/required_if":   "Content is required for articles",
	"Content/min":           "Content must be at least 100 characters long",
	"Thumbnail/required_if": "Thumbnail is required for articles",
	"VideoURL/required_if":  "Video URL is required for video news",
	"Categories/required":   "At least one category is required",
	"Categories/min":        "At least one category is required",
}

// newsFieldOrder fixes which violation wins when several fields fail at
// once: the first violated field's message is returned, nothing partial
// is applied.
var newsFieldOrder = []string{
	"Title", "Description", "Type", "Content", "Thumbnail", "VideoURL", "Categories",
}

// ValidateNews checks every write-time constraint on a news item and
// returns the first violation as a caller-facing error.
func ValidateNews(n *News) error {
	err := validate.Struct(n)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	byField := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := byField[fe.Field()]; seen {
			continue
		}
		if msg, ok := newsMessages[fe.Field()+"/"+fe.Tag()]; ok {
			byField[fe.Field()] = msg
		} else {
			byField[fe.Field()] = "Invalid value for " + fe.Field()
		}
	}

	for _, field := range newsFieldOrder {
		if msg, ok := byField[field]; ok {
			return errors.New(msg)
		}
	}
	for _, fe := range verrs {
		return errors.New(byField[fe.Field()])
	}
	return err
}

// ValidateSignup checks the signup constraints: username >= 3 chars,
// well-formed email, raw password >= 6 chars.
func ValidateSignup(username, email, password string) error {
	if len(strings.TrimSpace(username)) < 3 {
		return errors.New("Username must be at least 3 characters long")
	}
	if err := validate.Var(email, "required,email"); err != nil {
		return errors.New("A valid email is required")
	}
	if len(password) < 6 {
		return errors.New("Password must be at least 6 characters long")
	}
	if len(password) > MaxPasswordLength {
		return errors.New("Password must be no longer than 72 characters")
	}
	return nil
}

// MaxPasswordLength is bcrypt's input limit; longer passwords make
// GenerateFromPassword fail.
const MaxPasswordLength = 72

// ValidateComment rejects comments that are empty after trimming.
func ValidateComment(content string) error {
	if strings.TrimSpace(content) == "" {
		return errors.New("Comment content is required")
	}
	return nil
}

// NormalizeEmail applies the storage normalization used for the unique
// email index.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
