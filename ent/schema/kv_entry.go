package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
)

// KVEntry holds one application state document: settings, history or
// favorites, each as JSON.
type KVEntry struct {
	ent.Schema
}

func (KVEntry) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "kv_entries"},
	}
}

func (KVEntry) Fields() []ent.Field {
	return []ent.Field{
		field.String("key").
			Unique().
			Comment("State key, e.g. kotoba_settings"),
		field.Text("value").
			Comment("JSON document"),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}
