package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSummaryPipelineFiltersBeforeLookup(t *testing.T) {
	pipeline := SummaryPipeline("evil")
	require.Len(t, pipeline, 4)
	assert.Equal(t, "$match", pipeline[0][0].Key)
	assert.Equal(t, "$lookup", pipeline[1][0].Key)
	assert.Equal(t, "$project", pipeline[2][0].Key)
	assert.Equal(t, "$sort", pipeline[3][0].Key)

	clauses := pipeline[0][0].Value.(bson.M)["$or"].(bson.A)
	require.Len(t, clauses, 2)
	assert.Equal(t, primitive.Regex{Pattern: "evil", Options: "i"}, clauses[0].(bson.M)["name"])
}

func TestSummaryPipelineWithoutQuery(t *testing.T) {
	pipeline := SummaryPipeline("")
	require.Len(t, pipeline, 3)
	assert.Equal(t, "$lookup", pipeline[0][0].Key)

	project := pipeline[1][0].Value.(bson.D)
	var fields []string
	for _, e := range project {
		fields = append(fields, e.Key)
	}
	assert.Equal(t, []string{"_id", "id", "name", "email", "image_url", "total_invoices", "total_pending", "total_paid"}, fields)
	assert.Equal(t, bson.M{"$size": "$invoices"}, project[5].Value)
}
