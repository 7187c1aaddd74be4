package repositories

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const versionKey = "__version"

// Migrate brings a raw meetup document to the current shape. Documents without a
// version tag come from the first schema and are reshaped. Versioned documents are
// returned as they are, even when the version is newer than this build knows:
// decoding rejects those explicitly. Migrate never mutates raw and is idempotent.
func Migrate(raw bson.M) bson.M {
	if _, ok := raw[versionKey]; !ok {
		return migrateV0(raw)
	}
	return raw
}

// migrateV0 maps the original flat schema:
//
//	{id, timestamp, userID, info_id, rsvp_id, options: {name, description, location, url}}
func migrateV0(raw bson.M) bson.M {
	options := asDocument(raw["options"])

	id := asString(raw["id"])
	if id == "" {
		id = asString(raw["_id"])
	}

	migrated := bson.M{
		versionKey:    int32(1),
		"id":          id,
		"title":       asString(options["name"]),
		"description": asString(options["description"]),
		"organizerId": asString(raw["userID"]),
		"timestamp":   asString(raw["timestamp"]),
		"links":       bson.A{},
		"state":       bson.M{"type": stateCreated},
		"announcement": bson.M{
			"type":           announcementLegacy,
			"announcementId": asString(raw["info_id"]),
			"rsvpId":         asString(raw["rsvp_id"]),
		},
	}
	if location := asString(options["location"]); location != "" {
		migrated["location"] = bson.M{"type": locationAddress, "value": location}
	}
	if url := asString(options["url"]); url != "" {
		migrated["links"] = bson.A{bson.M{"url": url}}
	}
	return migrated
}

// schemaVersion reads the version tag whatever numeric type the store gave back.
func schemaVersion(raw bson.M) (int, bool) {
	switch v := raw[versionKey].(type) {
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case int:
		return v, true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func asDocument(value any) bson.M {
	switch v := value.(type) {
	case bson.M:
		return v
	case map[string]any:
		return v
	case bson.D:
		doc := make(bson.M, len(v))
		for _, e := range v {
			doc[e.Key] = e.Value
		}
		return doc
	default:
		return bson.M{}
	}
}

func asString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case primitive.ObjectID:
		return v.Hex()
	case primitive.DateTime:
		return v.Time().UTC().Format(time.RFC3339Nano)
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(v)
	}
}
