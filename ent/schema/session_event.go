package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent is one finished or abandoned quiz session.
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID of the engine run"),
		field.String("user_id").
			NotEmpty(),
		field.String("user_name").
			Default("").
			Comment("Name at the time of the session, kept after the roster is reset"),
		field.Enum("action").
			Values("completed", "abandoned"),
		field.Int64("started_at"),
		field.Int64("ended_at"),
		field.Int("total_questions").
			Default(0),
		field.Int("questions_answered").
			Default(0),
		field.Int("correct_answers").
			Default(0),
		field.Int("points_earned").
			Default(0),
		field.Int("final_score").
			Default(0).
			Comment("Player score after the session"),
		field.Float("average_time_ms").
			Default(0),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "sequence"),
	}
}
