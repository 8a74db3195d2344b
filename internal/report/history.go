package report

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/ecetin/vocabmaster/internal/logger"
	"github.com/ecetin/vocabmaster/internal/models"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// History records generated reports so past exports stay listable.
type History struct {
	db *sql.DB
}

func NewHistory(db *sql.DB) *History {
	return &History{db: db}
}

func (h *History) Record(ctx context.Context, title, filename string) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("report_history")

	query, args, err := sqlBuilder.Insert("report_history").
		Columns("title", "filename").
		Values(title, filename).
		ToSql()
	if err != nil {
		return 0, err
	}
	res, err := h.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to record report: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	log.Debug("report recorded: id=%d, title=%s", id, title)
	return id, nil
}

func (h *History) List(ctx context.Context, limit int) ([]models.ReportRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("report_history")

	builder := sqlBuilder.Select("id", "title", "filename", "generated_at").
		From("report_history").
		OrderBy("generated_at DESC", "id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list reports: %v", err)
		return nil, err
	}
	defer rows.Close()

	var records []models.ReportRecord
	for rows.Next() {
		var r models.ReportRecord
		if err := rows.Scan(&r.ID, &r.Title, &r.Filename, &r.GeneratedAt); err != nil {
			log.Error("failed to scan report row: %v", err)
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
