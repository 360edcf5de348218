package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/alexchase32/lessbuilder/internal/lesson"
)

// currentLessonID is the key of the single stored lesson.
const currentLessonID = 1

// lessonRepo implements LessonRepo as a one-row table.
type lessonRepo struct {
	drv *entsql.Driver
}

func (r *lessonRepo) Get(ctx context.Context) (*lesson.Lesson, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("body").
		From(entsql.Table(tableLessons)).
		Where(entsql.EQ("id", currentLessonID)).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query lesson: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query lesson: %w", err)
		}
		return nil, nil
	}
	var body string
	if err := rows.Scan(&body); err != nil {
		return nil, fmt.Errorf("scan lesson: %w", err)
	}

	var l lesson.Lesson
	if err := json.Unmarshal([]byte(body), &l); err != nil {
		return nil, fmt.Errorf("decode stored lesson: %w", err)
	}
	return &l, nil
}

func (r *lessonRepo) Put(ctx context.Context, l *lesson.Lesson) error {
	if err := l.Check(); err != nil {
		return err
	}
	body, err := lesson.EncodeJSON(l)
	if err != nil {
		return err
	}

	b := entsql.Dialect(dialect.SQLite)
	delQuery, delArgs := b.Delete(tableLessons).Query()
	insQuery, insArgs := b.Insert(tableLessons).
		Columns("id", "name", "date", "body", "updated_at").
		Values(currentLessonID, l.Name, l.Date, string(body), time.Now().UTC()).
		Query()

	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := tx.Exec(ctx, delQuery, delArgs, nil); err != nil {
		tx.Rollback()
		return fmt.Errorf("replace lesson: %w", err)
	}
	if err := tx.Exec(ctx, insQuery, insArgs, nil); err != nil {
		tx.Rollback()
		return fmt.Errorf("save lesson: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit lesson: %w", err)
	}
	return nil
}

func (r *lessonRepo) Clear(ctx context.Context) error {
	query, args := entsql.Dialect(dialect.SQLite).Delete(tableLessons).Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("clear lesson: %w", err)
	}
	return nil
}
