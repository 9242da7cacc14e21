package domain

import "time"

// District is a directory entry mapping a short ID to a StudentVue host.
type District struct {
	ID        string    `json:"id" bson:"_id" yaml:"id"`
	Name      string    `json:"name" bson:"name" yaml:"name"`
	Host      string    `json:"host" bson:"host" yaml:"host"`
	State     string    `json:"state,omitempty" bson:"state,omitempty" yaml:"state"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" yaml:"-"`
}
