package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/lecture-processor/constants"
	"github.com/joseph-ayodele/lecture-processor/db/ent/schema/utils"
)

// Lecture is one normalized lecture document, unique by content hash.
type Lecture struct{ ent.Schema }

func (Lecture) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "lectures"},
	}
}

func (Lecture) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).Default(uuid.New).Immutable(),
		field.String("course_id").NotEmpty(),
		field.String("lecture_id").NotEmpty(),
		field.Text("title"),
		field.Text("content").
			SchemaType(map[string]string{dialect.Postgres: "text"}),
		field.Enum("difficulty").Values(constants.DifficultiesAsStringSlice()...),
		field.String("file_name").Default(""),
		field.String("file_type").NotEmpty().
			Validate(utils.EnumValidator(constants.FileTypes...)),
		field.Text("source_path").Default(""),
		field.String("content_hash").NotEmpty().Unique(),
		field.Int("pages").Default(0).NonNegative(),
		field.Int("characters").Default(0).NonNegative(),
		field.Int("tables").Default(0).NonNegative(),
		field.Int("formulas").Default(0).NonNegative(),
		field.Bool("degraded").Default(false),
		field.Time("created_at").Default(time.Now).Immutable(),
		field.Time("updated_at").Default(time.Now).UpdateDefault(time.Now),
	}
}

func (Lecture) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("jobs", ExtractJob.Type),
		edge.To("quizzes", Quiz.Type),
	}
}

func (Lecture) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("course_id", "lecture_id"),
	}
}
