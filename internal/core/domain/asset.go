package domain

import "time"

// Asset maps a unique string key to a URL plus alt text. Writes use
// upsert-by-key semantics; there is no lifecycle beyond create/update/delete.
type Asset struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Key       string    `json:"key" bson:"key"`
	URL       string    `json:"url" bson:"url"`
	Alt       string    `json:"alt,omitempty" bson:"alt,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
