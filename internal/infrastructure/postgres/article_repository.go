package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jhoicas/gela-api/internal/domain"
	"github.com/jhoicas/gela-api/internal/domain/entity"
	"github.com/jhoicas/gela-api/internal/domain/repository"
)

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

const articleColumns = `id, name, type, description, price, available_quantity, created_at`

// ArticleRepo implementación del puerto ArticleRepository sobre PostgreSQL.
type ArticleRepo struct {
	db *sql.DB
	tx *TxRunner
}

// NewArticleRepository construye el adaptador de persistencia para artículos.
func NewArticleRepository(db *sql.DB) *ArticleRepo {
	return &ArticleRepo{db: db, tx: NewTxRunner(db)}
}

// List devuelve todos los artículos ordenados por id.
func (r *ArticleRepo) List(ctx context.Context) ([]*entity.Article, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+articleColumns+` FROM articles ORDER BY id`)
	if err != nil {
		return nil, storageError("list articles", err)
	}
	defer rows.Close()

	list := make([]*entity.Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, storageError("scan article", err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("list articles", err)
	}
	return list, nil
}

// GetByID obtiene un artículo por ID.
func (r *ArticleRepo) GetByID(ctx context.Context, id int64) (*entity.Article, error) {
	a, err := scanArticle(r.db.QueryRowContext(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storageError("get article", err)
	}
	return a, nil
}

// Create inserta el artículo y completa ID y CreatedAt.
func (r *ArticleRepo) Create(ctx context.Context, a *entity.Article) error {
	return r.tx.Run(ctx, func(q Querier) error {
		query := `
			INSERT INTO articles (name, type, description, price, available_quantity)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at`
		err := q.QueryRowContext(ctx, query, a.Name, a.Type, a.Description, a.Price, a.AvailableQuantity).
			Scan(&a.ID, &a.CreatedAt)
		if err != nil {
			return storageError("insert article", err)
		}
		return nil
	})
}

// Update reemplaza los campos editables del artículo.
func (r *ArticleRepo) Update(ctx context.Context, a *entity.Article) error {
	return r.tx.Run(ctx, func(q Querier) error {
		query := `
			UPDATE articles
			SET name = $2, type = $3, description = $4, price = $5, available_quantity = $6
			WHERE id = $1
			RETURNING created_at`
		err := q.QueryRowContext(ctx, query, a.ID, a.Name, a.Type, a.Description, a.Price, a.AvailableQuantity).
			Scan(&a.CreatedAt)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrNotFound
			}
			return storageError("update article", err)
		}
		return nil
	})
}

// Delete elimina el artículo.
func (r *ArticleRepo) Delete(ctx context.Context, id int64) error {
	return r.tx.Run(ctx, func(q Querier) error {
		return deleteByID(ctx, q, "articles", id)
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(s rowScanner) (*entity.Article, error) {
	var a entity.Article
	if err := s.Scan(&a.ID, &a.Name, &a.Type, &a.Description, &a.Price, &a.AvailableQuantity, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
