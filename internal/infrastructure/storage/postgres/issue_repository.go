package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"liquidtrack/internal/domain/issue"
)

const issueColumns = `id, title, description, status, created_at, updated_at, responsible_id, ai_analysis`

var orderColumns = map[string]string{
	issue.FieldCreatedAt: "created_at",
	issue.FieldUpdatedAt: "updated_at",
	issue.FieldTitle:     "title",
	issue.FieldStatus:    "status",
}

type IssueRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewIssueRepository(pool *pgxpool.Pool, log *slog.Logger) *IssueRepository {
	return &IssueRepository{
		pool: pool,
		log:  log.With("component", "issue_repository"),
	}
}

func (r *IssueRepository) List(ctx context.Context, f issue.Filter, o issue.Order) ([]issue.Issue, error) {
	var (
		where []string
		args  []any
	)
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", n, n))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Since != nil {
		args = append(args, *f.Since)
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)))
	}

	query := buildListQuery(where, o)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list issues", "error", err)
		return nil, fmt.Errorf("list issues: %w", err)
	}
	defer rows.Close()

	issues := make([]issue.Issue, 0)
	for rows.Next() {
		i, err := scanIssue(rows)
		if err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		issues = append(issues, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate issues: %w", err)
	}
	return issues, nil
}

func (r *IssueRepository) Create(ctx context.Context, n issue.NewIssue) (issue.Issue, error) {
	const query = `
		INSERT INTO issues (title, description, status, created_at, responsible_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + issueColumns

	row := r.pool.QueryRow(ctx, query, n.Title, n.Description, string(n.Status), n.CreatedAt, n.ResponsibleID)
	i, err := scanIssue(row)
	if err != nil {
		r.log.Error("failed to create issue", "title", n.Title, "error", err)
		return issue.Issue{}, fmt.Errorf("create issue: %w", err)
	}
	return i, nil
}

func (r *IssueRepository) Update(ctx context.Context, id string, p issue.Patch) (issue.Issue, error) {
	key, ok := parseID(id)
	if !ok {
		return issue.Issue{}, issue.ErrNotFound
	}

	var (
		sets []string
		args []any
	)
	if p.Status != nil {
		args = append(args, string(*p.Status))
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
	}
	if p.ResponsibleID != nil {
		args = append(args, *p.ResponsibleID)
		sets = append(sets, fmt.Sprintf("responsible_id = $%d", len(args)))
	}
	if p.AIAnalysis != nil {
		args = append(args, *p.AIAnalysis)
		sets = append(sets, fmt.Sprintf("ai_analysis = $%d", len(args)))
	}
	if len(sets) == 0 {
		return issue.Issue{}, issue.ErrEmptyPatch
	}
	args = append(args, key)

	query := fmt.Sprintf(`UPDATE issues SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), issueColumns)

	i, err := scanIssue(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return issue.Issue{}, issue.ErrNotFound
		}
		r.log.Error("failed to update issue", "issue_id", id, "error", err)
		return issue.Issue{}, fmt.Errorf("update issue: %w", err)
	}
	return i, nil
}

func (r *IssueRepository) Delete(ctx context.Context, id string) error {
	key, ok := parseID(id)
	if !ok {
		return issue.ErrNotFound
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM issues WHERE id = $1`, key)
	if err != nil {
		r.log.Error("failed to delete issue", "issue_id", id, "error", err)
		return fmt.Errorf("delete issue: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return issue.ErrNotFound
	}
	return nil
}

func buildListQuery(where []string, o issue.Order) string {
	col, ok := orderColumns[o.Field]
	if !ok {
		col = "created_at"
	}
	dir := "ASC"
	if o.Descending {
		dir = "DESC"
	}

	var b strings.Builder
	b.WriteString("SELECT " + issueColumns + " FROM issues")
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	// id как второй ключ дает стабильный порядок при равных датах
	fmt.Fprintf(&b, " ORDER BY %s %s, id %s", col, dir, dir)
	return b.String()
}

func scanIssue(row pgx.Row) (issue.Issue, error) {
	var (
		i      issue.Issue
		id     int64
		status string
	)
	if err := row.Scan(&id, &i.Title, &i.Description, &status, &i.CreatedAt, &i.UpdatedAt,
		&i.ResponsibleID, &i.AIAnalysis); err != nil {
		return issue.Issue{}, err
	}
	i.ID = strconv.FormatInt(id, 10)
	i.Status = issue.Status(status)
	return i, nil
}

func parseID(id string) (int64, bool) {
	key, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	return key, err == nil && key > 0
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
