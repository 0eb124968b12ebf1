package store

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/lingodrill/ent/schema"
)

// Table names. They follow ent's convention of pluralized snake case.
const (
	itemsTable       = "items"
	answerEvents     = "answer_events"
	sessionEvents    = "session_events"
	llmRequestEvents = "llm_request_events"
)

// Tables returns the migration tables derived from the ent schema
// definitions in ent/schema.
func Tables() []*schema.Table {
	return []*schema.Table{
		tableFor(itemsTable, entschema.Item{}),
		tableFor(answerEvents, entschema.AnswerEvent{}),
		tableFor(sessionEvents, entschema.SessionEvent{}),
		tableFor(llmRequestEvents, entschema.LLMRequestEvent{}),
	}
}

func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	return m.Create(ctx, Tables()...)
}

// tableFor builds a table with an auto-increment id followed by the
// mixin fields and then the schema's own fields, as ent's code generator
// lays them out.
func tableFor(name string, s ent.Interface) *schema.Table {
	t := schema.NewTable(name)
	t.AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt, Increment: true})

	var fields []ent.Field
	var indexes []ent.Index
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	for _, f := range fields {
		t.AddColumn(columnFor(f.Descriptor()))
	}

	prefix := strings.ReplaceAll(reflect.TypeOf(s).Name(), "_", "")
	prefix = strings.ToLower(prefix)
	for _, idx := range indexes {
		d := idx.Descriptor()
		idxName := d.StorageKey
		if idxName == "" {
			idxName = prefix + "_" + strings.Join(d.Fields, "_")
		}
		t.AddIndex(idxName, d.Unique, d.Fields)
	}
	return t
}

func columnFor(d *field.Descriptor) *schema.Column {
	c := &schema.Column{
		Name:     d.Name,
		Type:     d.Info.Type,
		Unique:   d.Unique,
		Nullable: d.Optional,
		Size:     int64(d.Size),
		Comment:  d.Comment,
	}
	if d.StorageKey != "" {
		c.Name = d.StorageKey
	}
	// Function defaults such as time.Now are applied on insert, not in DDL.
	switch d.Default.(type) {
	case string, int, int64, float64, bool:
		c.Default = d.Default
	}
	return c
}
