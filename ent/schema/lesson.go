package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Lesson holds the single current lesson. The whole lesson is stored as a
// JSON body and replaced wholesale.
type Lesson struct {
	ent.Schema
}

func (Lesson) Fields() []ent.Field {
	return []ent.Field{
		field.String("name").
			NotEmpty(),
		field.String("date").
			NotEmpty().
			Comment("Lesson date as authored, usually YYYY-MM-DD"),
		field.Text("body").
			Comment("The lesson as JSON"),
		field.Time("updated_at").
			Default(time.Now),
	}
}
