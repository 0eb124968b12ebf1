package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Item is one row of the drill corpus.
type Item struct {
	ent.Schema
}

func (Item) Fields() []ent.Field {
	return []ent.Field{
		field.String("target_text").
			NotEmpty().
			Unique().
			Comment("Text to produce or recognize; identity key"),
		field.String("tts_text").
			Default("").
			Comment("Text fed to speech synthesis; blank means target_text"),
		field.String("pronunciation").
			Default(""),
		field.String("meaning").
			Default(""),
		field.String("category").
			Default("").
			Comment("Char, Word or Sentence"),
		field.Int("mastery_count").
			Default(0).
			Comment("+1 per correct round, -1 per wrong round, no floor"),
		field.String("next_due_date").
			Default("").
			Comment("YYYY-MM-DD; blank means due today"),
	}
}

func (Item) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("category"),
		index.Fields("next_due_date"),
	}
}
