package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bevin/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq" // also registers the postgres driver
)

// recipeColumns is the projection the chat pipeline reads. The table has
// more columns (poster_id, universal_rating, ...) owned by the app's CRUD
// surface; they never enter this pipeline.
const recipeColumns = "uuid, drink_name, price, rating, rating_count, tags, thoughts, recipe, location_purchased, image_url"

// PostgresRepository handles recipe reads against PostgreSQL
type PostgresRepository struct {
	db    *sqlx.DB
	table string
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn, table string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db, table: table}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// ProbeTable verifies at boot that the configured table exists, so a
// misconfigured TABLE_NAME fails loudly instead of erroring per request.
func (r *PostgresRepository) ProbeTable(ctx context.Context) error {
	query := fmt.Sprintf("SELECT uuid FROM %s LIMIT 1", pq.QuoteIdentifier(r.table))
	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return fmt.Errorf("table %q not reachable: %w", r.table, err)
	}
	return rows.Close()
}

// FindRecipes executes one query spec. Ordering is fixed for every tier of
// the cascade: rating desc, then rating_count desc to break ties.
func (r *PostgresRepository) FindRecipes(ctx context.Context, q model.RecipeQuery) ([]model.Recipe, error) {
	query, args := buildRecipeQuery(r.table, q)

	var recipes []model.Recipe
	if err := r.db.SelectContext(ctx, &recipes, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch recipes: %w", err)
	}
	return recipes, nil
}

// buildRecipeQuery turns a RecipeQuery spec into SQL plus positional args.
// Kept as a pure function so tier shapes can be tested without a database.
func buildRecipeQuery(table string, q model.RecipeQuery) (string, []interface{}) {
	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if q.MaxPrice != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("price <= $%d", argIndex))
		args = append(args, *q.MaxPrice)
		argIndex++
	}
	if q.MinRating != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("rating >= $%d", argIndex))
		args = append(args, *q.MinRating)
		argIndex++
	}
	if len(q.Tags) > 0 {
		whereClauses = append(whereClauses, fmt.Sprintf("tags && $%d", argIndex))
		args = append(args, pq.Array(q.Tags))
		argIndex++
	}
	if q.Term != "" {
		pattern := "%" + q.Term + "%"
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(drink_name ILIKE $%d OR thoughts ILIKE $%d OR recipe ILIKE $%d)",
			argIndex, argIndex+1, argIndex+2,
		))
		args = append(args, pattern, pattern, pattern)
		argIndex += 3
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY rating DESC NULLS LAST, rating_count DESC NULLS LAST
		LIMIT $%d
	`, recipeColumns, pq.QuoteIdentifier(table), strings.Join(whereClauses, " AND "), argIndex)
	args = append(args, q.Limit)

	return query, args
}
