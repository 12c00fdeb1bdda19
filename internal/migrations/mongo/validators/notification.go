package validators

import "go.mongodb.org/mongo-driver/bson"

var NotificationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"reservation_id",
			"user_id",
			"message",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},
			"reservation_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},
			"user_id": bson.M{
				"bsonType": []string{"int", "long"},
			},
			"message": bson.M{
				"bsonType": "string",
			},
			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
