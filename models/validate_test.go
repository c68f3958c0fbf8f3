package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validArticle() News {
	return News{
		Title:       "Flooding closes downtown bridges",
		Description: "Heavy overnight rain has closed every bridge in the downtown core.",
		Content:     strings.Repeat("The river crested early this morning and crews are on site. ", 3),
		Thumbnail:   "https://example.com/thumb.jpg",
		Type:        TypeArticle,
		Categories:  []string{"weather"},
	}
}

func validVideo() News {
	return News{
		Title:       "Watch: the mayor's press briefing",
		Description: "The full recording of this afternoon's city hall press briefing.",
		Type:        TypeVideo,
		VideoURL:    "https://example.com/briefing.mp4",
		Categories:  []string{"politics"},
	}
}

func TestValidateNews_Article(t *testing.T) {
	t.Run("valid article passes", func(t *testing.T) {
		n := validArticle()
		require.NoError(t, ValidateNews(&n))
	})

	t.Run("short content rejected", func(t *testing.T) {
		n := validArticle()
		n.Content = strings.Repeat("a", 50)
		err := ValidateNews(&n)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "100 characters")
	})

	t.Run("empty content rejected", func(t *testing.T) {
		n := validArticle()
		n.Content = "   "
		err := ValidateNews(&n)
		require.Error(t, err)
		assert.Equal(t, "Content is required for articles", err.Error())
	})

	t.Run("missing thumbnail rejected", func(t *testing.T) {
		n := validArticle()
		n.Thumbnail = ""
		err := ValidateNews(&n)
		require.Error(t, err)
		assert.Equal(t, "Thumbnail is required for articles", err.Error())
	})

	t.Run("short title rejected", func(t *testing.T) {
		n := validArticle()
		n.Title = "Too short"
		err := ValidateNews(&n)
		require.Error(t, err)
		assert.Equal(t, "Title must be at least 10 characters long", err.Error())
	})

	t.Run("short description rejected", func(t *testing.T) {
		n := validArticle()
		n.Description = "Not long enough"
		err := ValidateNews(&n)
		require.Error(t, err)
		assert.Equal(t, "Description must be at least 20 characters long", err.Error())
	})

	t.Run("empty categories rejected", func(t *testing.T) {
		n := validArticle()
		n.Categories = nil
		err := ValidateNews(&n)
		require.Error(t, err)
		assert.Equal(t, "At least one category is required", err.Error())
	})
}

func TestValidateNews_Video(t *testing.T) {
	t.Run("valid video passes without content or thumbnail", func(t *testing.T) {
		n := validVideo()
		require.NoError(t, ValidateNews(&n))
	})

	t.Run("missing videoUrl rejected", func(t *testing.T) {
		n := validVideo()
		n.VideoURL = ""
		err := ValidateNews(&n)
		require.Error(t, err)
		assert.Equal(t, "Video URL is required for video news", err.Error())
	})

	t.Run("short content allowed for videos", func(t *testing.T) {
		n := validVideo()
		n.Content = "brief caption"
		require.NoError(t, ValidateNews(&n))
	})
}

func TestValidateNews_FirstViolationWins(t *testing.T) {
	n := validArticle()
	n.Title = "short"
	n.Description = "also short"
	n.Content = ""
	err := ValidateNews(&n)
	require.Error(t, err)
	assert.Equal(t, "Title must be at least 10 characters long", err.Error())
}

func TestValidateNews_UnknownType(t *testing.T) {
	n := validArticle()
	n.Type = "podcast"
	err := ValidateNews(&n)
	require.Error(t, err)
	assert.Equal(t, "Type must be article or video", err.Error())
}

func TestValidateSignup(t *testing.T) {
	assert.NoError(t, ValidateSignup("alice", "a@x.com", "secret1"))

	err := ValidateSignup("al", "a@x.com", "secret1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Username")

	err = ValidateSignup("alice", "not-an-email", "secret1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")

	err = ValidateSignup("alice", "a@x.com", "short")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Password")

	// bcrypt rejects inputs over 72 bytes, so signup must too.
	err = ValidateSignup("alice", "a@x.com", strings.Repeat("p", MaxPasswordLength+1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "72")

	assert.NoError(t, ValidateSignup("alice", "a@x.com", strings.Repeat("p", MaxPasswordLength)))
}

func TestValidateComment(t *testing.T) {
	assert.NoError(t, ValidateComment("interesting take"))
	assert.Error(t, ValidateComment(""))
	assert.Error(t, ValidateComment("   \n\t"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeEmail("  A@X.COM "))
}
