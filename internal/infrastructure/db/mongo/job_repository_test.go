package mongo

import (
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/devboard/devboard-api/internal/core/ports"
)

func TestJobListFilter_OpenOnly(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	filter := jobListFilter(ports.ListJobsFilter{OpenOnly: true}, now)

	if filter["active"] != true {
		t.Fatalf("openOnly must force active=true, got %v", filter["active"])
	}
	clauses, ok := filter["$and"].(bson.A)
	if !ok || len(clauses) != 1 {
		t.Fatalf("expected one $and clause, got %v", filter["$and"])
	}
	want := bson.M{"$or": bson.A{
		bson.M{"deadline": nil},
		bson.M{"deadline": bson.M{"$gte": now}},
	}}
	if !reflect.DeepEqual(clauses[0], want) {
		t.Fatalf("deadline window clause mismatch:\n got %v\nwant %v", clauses[0], want)
	}
}

func TestJobListFilter_OpenOnlyWithSearch(t *testing.T) {
	now := time.Now().UTC()

	filter := jobListFilter(ports.ListJobsFilter{OpenOnly: true, Search: "backend"}, now)

	// Both branches need $or, so they must live side by side under $and
	// rather than overwrite each other.
	clauses, ok := filter["$and"].(bson.A)
	if !ok || len(clauses) != 2 {
		t.Fatalf("expected deadline and search clauses under $and, got %v", filter["$and"])
	}
	if _, collides := filter["$or"]; collides {
		t.Fatal("top-level $or would let one clause clobber the other")
	}
}

func TestJobListFilter_StoredFlagPassthrough(t *testing.T) {
	active := false
	remote := true

	filter := jobListFilter(ports.ListJobsFilter{
		Department: "engineering",
		Type:       "full-time",
		Active:     &active,
		Remote:     &remote,
	}, time.Now().UTC())

	if filter["department"] != "engineering" || filter["type"] != "full-time" {
		t.Fatalf("enum filters not applied: %v", filter)
	}
	if filter["active"] != false || filter["remote"] != true {
		t.Fatalf("flag filters not applied: %v", filter)
	}
	if _, present := filter["$and"]; present {
		t.Fatalf("no derived clauses requested, got %v", filter["$and"])
	}
}
