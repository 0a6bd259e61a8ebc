package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"github.com/google/uuid"
)

type Quiz struct{ ent.Schema }

func (Quiz) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "quizzes"},
	}
}

func (Quiz) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).Default(uuid.New).Immutable(),
		field.String("model").Default(""),
		field.Text("summary"),
		field.Text("questions"),
		field.Time("created_at").Default(time.Now).Immutable(),
		field.UUID("lecture_ref", uuid.UUID{}),
	}
}

func (Quiz) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("lecture", Lecture.Type).
			Ref("quizzes").
			Field("lecture_ref").
			Unique().
			Required().
			Annotations(entsql.OnDelete(entsql.Cascade)),
	}
}

func (Quiz) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("lecture_ref", "created_at"),
	}
}
