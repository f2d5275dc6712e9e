package main

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestCollectionIndexesCoverQueryPaths(t *testing.T) {
	indexes := collectionIndexes()

	for _, coll := range []string{"users", "transactions", "debts", "savings_goals", "insights"} {
		if len(indexes[coll]) == 0 {
			t.Errorf("no indexes defined for collection %q", coll)
		}
	}

	// Every user-scoped collection must be queryable by user_id.
	for _, coll := range []string{"transactions", "debts", "savings_goals", "insights"} {
		found := false
		for _, model := range indexes[coll] {
			keys, ok := model.Keys.(bson.D)
			if !ok {
				t.Fatalf("collection %q: index keys are not bson.D", coll)
			}
			for _, key := range keys {
				if key.Key == "user_id" {
					found = true
				}
			}
		}
		if !found {
			t.Errorf("collection %q has no index on user_id", coll)
		}
	}
}

func TestUsersPhoneIndexIsUnique(t *testing.T) {
	for _, model := range collectionIndexes()["users"] {
		keys := model.Keys.(bson.D)
		if len(keys) == 1 && keys[0].Key == "phone" {
			if model.Options == nil || model.Options.Unique == nil || !*model.Options.Unique {
				t.Error("phone index must be unique")
			}
			return
		}
	}
	t.Error("no phone index defined for users")
}
