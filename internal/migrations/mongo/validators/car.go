package validators

import "go.mongodb.org/mongo-driver/bson"

var CarValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"_id"},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},

			"model": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"plate": bson.M{
				"bsonType":  "string",
				"maxLength": 20,
			},

			"reservation_version": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},
		},
	},
}
