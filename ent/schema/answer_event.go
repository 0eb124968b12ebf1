package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records one graded round.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to SessionEvent"),
		field.String("item").
			NotEmpty().
			Comment("Target text of the quizzed item"),
		field.String("category").
			Default(""),
		field.String("modality").
			NotEmpty().
			Comment("Quiz modality tag, e.g. word-dictation"),
		field.String("pool").
			Default("").
			Comment("review or free"),
		field.String("learner_answer").
			Default("").
			Comment("Choice, typed text or transcript; empty for handwriting"),
		field.Bool("correct"),
		field.Float("score").
			Optional().
			Nillable().
			Comment("0-100 similarity or handwriting score"),
		field.String("fault").
			Default("").
			Comment("Set when the grader could not judge the answer"),
		field.Int("mastery_before"),
		field.Int("mastery_after"),
		field.String("next_due_date").
			Default(""),
		field.Int("time_ms").
			Default(0).
			Comment("Milliseconds from prompt to answer"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("item"),
		index.Fields("correct"),
	}
}
