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

	"github.com/joseph-ayodele/lecture-processor/constants"
	"github.com/joseph-ayodele/lecture-processor/db/ent/schema/utils"
)

type ExtractJob struct{ ent.Schema }

func (ExtractJob) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "extract_jobs"},
	}
}

func (ExtractJob) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).Default(uuid.New).Immutable(),
		field.Text("source_path"),
		field.String("format").NotEmpty().
			Validate(utils.EnumValidator(constants.FileTypes...)),
		field.Enum("status").Values(constants.JobStatusesAsStringSlice()...),
		field.Time("started_at").Default(time.Now),
		field.Time("finished_at").Optional().Nillable(),
		field.Text("error_message").Optional().Nillable(),
		// JSON array of pipeline warnings
		field.Text("warnings").Optional().Nillable(),
		field.UUID("lecture_ref", uuid.UUID{}).Optional().Nillable(),
	}
}

func (ExtractJob) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("lecture", Lecture.Type).
			Ref("jobs").
			Field("lecture_ref").
			Unique().
			Annotations(entsql.OnDelete(entsql.SetNull)),
	}
}

func (ExtractJob) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("status", "started_at"),
	}
}
