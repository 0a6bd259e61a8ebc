package repository

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	"github.com/joseph-ayodele/lecture-processor/constants"
)

const textSize = 2147483647

var (
	lecturesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "course_id", Type: field.TypeString},
		{Name: "lecture_id", Type: field.TypeString},
		{Name: "title", Type: field.TypeString, Size: textSize},
		{Name: "content", Type: field.TypeString, Size: textSize},
		{Name: "difficulty", Type: field.TypeEnum, Enums: constants.DifficultiesAsStringSlice()},
		{Name: "file_name", Type: field.TypeString, Default: ""},
		{Name: "file_type", Type: field.TypeEnum, Enums: constants.FileTypes},
		{Name: "source_path", Type: field.TypeString, Size: textSize, Default: ""},
		{Name: "content_hash", Type: field.TypeString, Unique: true},
		{Name: "pages", Type: field.TypeInt, Default: 0},
		{Name: "characters", Type: field.TypeInt, Default: 0},
		{Name: "tables", Type: field.TypeInt, Default: 0},
		{Name: "formulas", Type: field.TypeInt, Default: 0},
		{Name: "degraded", Type: field.TypeBool, Default: false},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	LecturesTable = &schema.Table{
		Name:       "lectures",
		Columns:    lecturesColumns,
		PrimaryKey: []*schema.Column{lecturesColumns[0]},
		Indexes: []*schema.Index{
			{Name: "lecture_course_id_lecture_id", Columns: []*schema.Column{lecturesColumns[1], lecturesColumns[2]}},
		},
	}

	extractJobsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "source_path", Type: field.TypeString, Size: textSize},
		{Name: "format", Type: field.TypeEnum, Enums: constants.FileTypes},
		{Name: "status", Type: field.TypeEnum, Enums: constants.JobStatusesAsStringSlice()},
		{Name: "started_at", Type: field.TypeTime},
		{Name: "finished_at", Type: field.TypeTime, Nullable: true},
		{Name: "error_message", Type: field.TypeString, Size: textSize, Nullable: true},
		{Name: "warnings", Type: field.TypeString, Size: textSize, Nullable: true},
		{Name: "lecture_ref", Type: field.TypeUUID, Nullable: true},
	}
	ExtractJobsTable = &schema.Table{
		Name:       "extract_jobs",
		Columns:    extractJobsColumns,
		PrimaryKey: []*schema.Column{extractJobsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "extract_jobs_lectures_jobs",
				Columns:    []*schema.Column{extractJobsColumns[8]},
				RefColumns: []*schema.Column{lecturesColumns[0]},
				OnDelete:   schema.SetNull,
			},
		},
		Indexes: []*schema.Index{
			{Name: "extractjob_status_started_at", Columns: []*schema.Column{extractJobsColumns[3], extractJobsColumns[4]}},
		},
	}

	quizzesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "model", Type: field.TypeString},
		{Name: "summary", Type: field.TypeString, Size: textSize},
		{Name: "questions", Type: field.TypeString, Size: textSize},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "lecture_ref", Type: field.TypeUUID},
	}
	QuizzesTable = &schema.Table{
		Name:       "quizzes",
		Columns:    quizzesColumns,
		PrimaryKey: []*schema.Column{quizzesColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "quizzes_lectures_quizzes",
				Columns:    []*schema.Column{quizzesColumns[5]},
				RefColumns: []*schema.Column{lecturesColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "quiz_lecture_ref_created_at", Columns: []*schema.Column{quizzesColumns[5], quizzesColumns[4]}},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{LecturesTable, ExtractJobsTable, QuizzesTable}
)

func init() {
	ExtractJobsTable.ForeignKeys[0].RefTable = LecturesTable
	QuizzesTable.ForeignKeys[0].RefTable = LecturesTable
}

// Migrate creates or updates the lecture tables.
func (s *Store) Migrate(ctx context.Context) error {
	m, err := schema.NewMigrate(s.drv, schema.WithForeignKeys(true))
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		s.logger.Error("schema migration failed", "error", err)
		return fmt.Errorf("migrate: %w", err)
	}
	s.logger.Info("schema migrated", "tables", len(Tables))
	return nil
}
