package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildNewsFilter(t *testing.T) {
	t.Run("empty query yields empty filter", func(t *testing.T) {
		assert.Equal(t, bson.M{}, buildNewsFilter("", "", ""))
	})

	t.Run("single category matches case-insensitively", func(t *testing.T) {
		filter := buildNewsFilter("Politics", "", "")
		in, ok := filter["categories"].(bson.M)
		require.True(t, ok)
		cats, ok := in["$in"].([]primitive.Regex)
		require.True(t, ok)
		require.Len(t, cats, 1)
		assert.Equal(t, "^Politics$", cats[0].Pattern)
		assert.Equal(t, "i", cats[0].Options)
	})

	t.Run("category terms are regex values not operator documents", func(t *testing.T) {
		// $in rejects embedded $regex documents, so the members must
		// marshal as BSON regular expressions.
		filter := buildNewsFilter("Politics", "", "")
		raw, err := bson.Marshal(filter)
		require.NoError(t, err)

		var decoded bson.D
		require.NoError(t, bson.Unmarshal(raw, &decoded))
		in := decoded.Map()["categories"].(bson.D).Map()["$in"].(bson.A)
		require.Len(t, in, 1)
		assert.IsType(t, primitive.Regex{}, in[0])
	})

	t.Run("comma-separated categories become an OR set", func(t *testing.T) {
		filter := buildNewsFilter("politics, sports ,tech", "", "")
		cats := filter["categories"].(bson.M)["$in"].([]primitive.Regex)
		require.Len(t, cats, 3)
		assert.Equal(t, "^sports$", cats[1].Pattern)
	})

	t.Run("blank category segments are dropped", func(t *testing.T) {
		filter := buildNewsFilter(" , ,", "", "")
		assert.NotContains(t, filter, "categories")
	})

	t.Run("location substring-matches city state and country", func(t *testing.T) {
		filter := buildNewsFilter("", "Denver", "")
		or, ok := filter["$or"].([]bson.M)
		require.True(t, ok)
		require.Len(t, or, 3)
		assert.Equal(t, bson.M{"$regex": "Denver", "$options": "i"}, or[0]["location.city"])
		assert.Equal(t, bson.M{"$regex": "Denver", "$options": "i"}, or[1]["location.state"])
		assert.Equal(t, bson.M{"$regex": "Denver", "$options": "i"}, or[2]["location.country"])
	})

	t.Run("regex metacharacters are escaped", func(t *testing.T) {
		filter := buildNewsFilter("c++", "", "")
		cats := filter["categories"].(bson.M)["$in"].([]primitive.Regex)
		assert.Equal(t, `^c\+\+$`, cats[0].Pattern)
	})

	t.Run("search uses the text index", func(t *testing.T) {
		filter := buildNewsFilter("", "", "flood warning")
		assert.Equal(t, bson.M{"$search": "flood warning"}, filter["$text"])
	})
}

func TestBuildNewsSort(t *testing.T) {
	assert.Equal(t,
		bson.D{{Key: "upvotes", Value: -1}, {Key: "viewCount", Value: -1}},
		buildNewsSort("trending"))
	assert.Equal(t,
		bson.D{{Key: "viewCount", Value: -1}},
		buildNewsSort("popular"))
	assert.Equal(t,
		bson.D{{Key: "createdAt", Value: -1}},
		buildNewsSort(""))
	assert.Equal(t,
		bson.D{{Key: "createdAt", Value: -1}},
		buildNewsSort("createdAt"))
}

func TestVoteField(t *testing.T) {
	field, ok := voteField("up")
	assert.True(t, ok)
	assert.Equal(t, "upvotes", field)

	field, ok = voteField("down")
	assert.True(t, ok)
	assert.Equal(t, "downvotes", field)

	_, ok = voteField("sideways")
	assert.False(t, ok)
	_, ok = voteField("")
	assert.False(t, ok)
}
