// Package memory implementa los puertos de persistencia en memoria.
// Se usa con DB_DRIVER=memory y en los tests de casos de uso y handlers.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/gela-api/internal/domain"
	"github.com/jhoicas/gela-api/internal/domain/entity"
	"github.com/jhoicas/gela-api/internal/domain/repository"
)

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

// ArticleRepo almacén de artículos protegido por mutex.
type ArticleRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]entity.Article
	now    func() time.Time
}

// NewArticleRepository crea un almacén vacío.
func NewArticleRepository() *ArticleRepo {
	return &ArticleRepo{items: make(map[int64]entity.Article), now: time.Now}
}

func (r *ArticleRepo) List(ctx context.Context) ([]*entity.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*entity.Article, 0, len(r.items))
	for _, a := range r.items {
		a := a
		list = append(list, &a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *ArticleRepo) GetByID(ctx context.Context, id int64) (*entity.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (r *ArticleRepo) Create(ctx context.Context, a *entity.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	a.ID = r.nextID
	a.CreatedAt = r.now().UTC()
	r.items[a.ID] = *a
	return nil
}

func (r *ArticleRepo) Update(ctx context.Context, a *entity.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.items[a.ID]
	if !ok {
		return domain.ErrNotFound
	}
	a.CreatedAt = cur.CreatedAt
	r.items[a.ID] = *a
	return nil
}

func (r *ArticleRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}
