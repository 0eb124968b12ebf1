package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records drill session start and end.
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
			Comment("UUID grouping events in a session"),
		field.String("action").
			NotEmpty().
			Comment("start or end"),
		field.Int("items_served").
			Default(0).
			Comment("Rounds graded (on end only)"),
		field.Int("correct_answers").
			Default(0).
			Comment("Correct rounds (on end only)"),
		field.Int("duration_secs").
			Default(0).
			Comment("Wall-clock duration in seconds (on end only)"),
		field.Int("due_at_start").
			Default(0).
			Comment("Items due when the session started"),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("action"),
	}
}
