package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// BlockEvent records one completed, expired or skipped block.
type BlockEvent struct {
	ent.Schema
}

func (BlockEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (BlockEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").NotEmpty(),
		field.Int("block_index"),
		field.Int64("block_id"),
		field.String("block_type"),
		field.Int("score"),
		field.Bool("expired").Default(false),
		field.Bool("skipped").Default(false),
	}
}

func (BlockEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
	}
}
