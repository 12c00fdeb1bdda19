package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCollections_CoverEveryRepository(t *testing.T) {
	cols := Collections()

	for _, name := range []string{"Cars", "Users", "Reservations", "Notifications"} {
		def, ok := cols[name]
		require.True(t, ok, name)
		assert.NotEmpty(t, def.Indexes, name)
		assert.Contains(t, def.Validator, "$jsonSchema", name)
	}
}

func TestUsersLoginIsUnique(t *testing.T) {
	idx := Collections()["Users"].Indexes[0]

	assert.Equal(t, bson.D{{Key: "login", Value: 1}}, idx.Keys)
	require.NotNil(t, idx.Options)
	require.NotNil(t, idx.Options.Unique)
	assert.True(t, *idx.Options.Unique)
}

func TestReservationsOverlapIndexLeadsWithCar(t *testing.T) {
	keys := Collections()["Reservations"].Indexes[0].Keys.(bson.D)
	assert.Equal(t, "car_id", keys[0].Key)
	assert.Equal(t, "start_date", keys[1].Key)
}
