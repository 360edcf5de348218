package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/alexchase32/lessbuilder/ent/schema"
)

// Table names.
const (
	tableLessons       = "lessons"
	tableSessionEvents = "session_events"
	tableBlockEvents   = "block_events"
	tableLLMEvents     = "llm_request_events"
)

var tables = []*schema.Table{
	tableOf(tableLessons, entschema.Lesson{}, true),
	tableOf(tableSessionEvents, entschema.SessionEvent{}, false),
	tableOf(tableBlockEvents, entschema.BlockEvent{}, false),
	tableOf(tableLLMEvents, entschema.LLMRequestEvent{}, false),
}

// tableOf builds the migration table for an ent schema declaration. Every
// table has an integer id primary key, auto-incremented unless manualID.
func tableOf(name string, s ent.Interface, manualID bool) *schema.Table {
	id := &schema.Column{Name: "id", Type: field.TypeInt, Increment: !manualID}
	t := &schema.Table{
		Name:       name,
		Columns:    []*schema.Column{id},
		PrimaryKey: []*schema.Column{id},
	}

	var (
		fields  []ent.Field
		indexes []ent.Index
	)
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	for _, f := range fields {
		t.Columns = append(t.Columns, columnOf(f.Descriptor()))
	}
	for _, ix := range indexes {
		d := ix.Descriptor()
		idx := &schema.Index{
			Name:   name + "_" + strings.Join(d.Fields, "_"),
			Unique: d.Unique,
		}
		for _, f := range d.Fields {
			idx.Columns = append(idx.Columns, columnNamed(t, f))
		}
		t.Indexes = append(t.Indexes, idx)
	}
	return t
}

func columnOf(d *field.Descriptor) *schema.Column {
	c := &schema.Column{
		Name:     d.Name,
		Type:     d.Info.Type,
		Unique:   d.Unique,
		Nullable: d.Optional,
		Size:     int64(d.Size),
	}
	// Function defaults such as time.Now are applied by the repositories.
	switch v := d.Default.(type) {
	case string, bool, int, int64:
		c.Default = v
	}
	return c
}

func columnNamed(t *schema.Table, name string) *schema.Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	panic(fmt.Sprintf("store: table %s has no column %q", t.Name, name))
}

// migrateTables creates or updates every table.
func migrateTables(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, tables...)
}
