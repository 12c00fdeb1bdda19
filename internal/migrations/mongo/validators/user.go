package validators

import "go.mongodb.org/mongo-driver/bson"

var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"login",
			"password_hash",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},

			"login": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 100,
			},

			"password_hash": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"roles": bson.M{
				"bsonType": []string{"array", "null"},
				"items": bson.M{
					"bsonType": "string",
					"enum":     []string{"ROLE_USER", "ROLE_ADMIN"},
				},
			},
		},
	},
}
