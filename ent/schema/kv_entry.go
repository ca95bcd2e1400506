package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// KVEntry is one persisted application key holding a JSON document.
type KVEntry struct {
	ent.Schema
}

func (KVEntry) Fields() []ent.Field {
	return []ent.Field{
		field.String("name").
			NotEmpty().
			Unique().
			Comment("Key such as users, questions or currentUser"),
		field.Text("value").
			Comment("JSON value, overwritten wholesale"),
		field.Int64("updated_at"),
	}
}
