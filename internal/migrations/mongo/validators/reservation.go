package validators

import "go.mongodb.org/mongo-driver/bson"

// ReservationValidator cannot express end_date > start_date; that rule and the
// no-overlap rule are enforced by the reservation service.
var ReservationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"car_id",
			"user_id",
			"start_date",
			"end_date",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"car_id": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},

			"user_id": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},

			"start_date": bson.M{
				"bsonType": "date",
			},

			"end_date": bson.M{
				"bsonType": "date",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
