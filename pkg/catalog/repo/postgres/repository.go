package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-catalog/pkg/catalog"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements catalog.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) catalog.Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) catalog.Repository {
	return &Repository{db: pool}
}

const selectColumns = `
	id, nome_projeto, canal, tipo, visualizacoes, segmento,
	to_char(data_publicacao, 'YYYY-MM-DD'), cliente, link, descricao,
	created_at, updated_at`

// searchExpr mirrors catalog.SearchBlob: concat_ws skips NULL columns
const searchExpr = `concat_ws(' ', nome_projeto, cliente, segmento, descricao, link)`

func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("project already exists: %w", err)
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "23514": // check_violation
			return &catalog.ValidationError{Field: pgErr.ConstraintName, Message: pgErr.Message}
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return &catalog.StorageError{
				Backend: "postgres",
				Op:      operation,
				Err:     fmt.Errorf("%s (code: %s)", pgErr.Message, pgErr.Code),
			}
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.ErrProjectNotFound
	}

	return &catalog.StorageError{Backend: "postgres", Op: operation, Err: err}
}

func scanProject(row pgx.Row) (*catalog.ContentProject, error) {
	var p catalog.ContentProject
	var channel, typ string
	err := row.Scan(
		&p.ID, &p.Name, &channel, &typ, &p.ViewCount, &p.Segment,
		&p.PublishedDate, &p.Client, &p.Link, &p.Description,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Channel = catalog.Channel(channel)
	p.Type = catalog.ContentType(typ)
	p.CreatedAt = p.CreatedAt.UTC()
	if p.UpdatedAt != nil {
		u := p.UpdatedAt.UTC()
		p.UpdatedAt = &u
	}
	return &p, nil
}

func (r *Repository) CreateProject(ctx context.Context, p *catalog.ContentProject) error {
	query := `
		INSERT INTO conteudos (
			id, nome_projeto, canal, tipo, visualizacoes, segmento,
			data_publicacao, cliente, link, descricao, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7::date, $8, $9, $10, $11, $12)`

	_, err := r.db.Exec(ctx, query,
		p.ID, p.Name, string(p.Channel), string(p.Type), p.ViewCount, p.Segment,
		p.PublishedDate, p.Client, p.Link, p.Description, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("create project", err)
	}
	return nil
}

func (r *Repository) GetProject(ctx context.Context, id string) (*catalog.ContentProject, error) {
	query := `SELECT ` + selectColumns + ` FROM conteudos WHERE id = $1`

	p, err := scanProject(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, r.handlePostgresError("get project", err)
	}
	return p, nil
}

func (r *Repository) UpdateProject(ctx context.Context, p *catalog.ContentProject) error {
	query := `
		UPDATE conteudos SET
			nome_projeto = $2, canal = $3, tipo = $4, visualizacoes = $5,
			segmento = $6, data_publicacao = $7::date, cliente = $8, link = $9,
			descricao = $10, updated_at = $11
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		p.ID, p.Name, string(p.Channel), string(p.Type), p.ViewCount,
		p.Segment, p.PublishedDate, p.Client, p.Link, p.Description, p.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update project", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrProjectNotFound
	}
	return nil
}

func (r *Repository) DeleteProject(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM conteudos WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete project", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrProjectNotFound
	}
	return nil
}

func (r *Repository) ListProjects(ctx context.Context, filter catalog.Filter) ([]catalog.ContentProject, error) {
	query, args := buildListQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, r.handlePostgresError("list projects", err)
	}
	defer rows.Close()

	projects := []catalog.ContentProject{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, r.handlePostgresError("list projects", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("list projects", err)
	}

	return projects, nil
}

// buildListWhere builds the WHERE clause and positional args for a filter
// buildListQuery orders by id after created_at so pages never overlap.
func buildListQuery(filter catalog.Filter) (string, []interface{}) {
	where, args := buildListWhere(filter)
	query := `SELECT ` + selectColumns + ` FROM conteudos` + where + ` ORDER BY created_at DESC, id DESC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return query, args
}

func buildListWhere(filter catalog.Filter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if filter.Channel != "" {
		args = append(args, string(filter.Channel))
		clauses = append(clauses, fmt.Sprintf("canal = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		clauses = append(clauses, fmt.Sprintf("tipo = $%d", len(args)))
	}
	if search := strings.TrimSpace(filter.SearchText); search != "" {
		args = append(args, "%"+escapeLike(search)+"%")
		clauses = append(clauses, fmt.Sprintf(`%s ILIKE $%d ESCAPE '\'`, searchExpr, len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
