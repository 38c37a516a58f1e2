package retrieval

import (
	"context"

	"github.com/Maazpendari01/InterviewQi/internal/models"
)

// Index is an in-process exemplar store searched with Rank
type Index struct {
	docs []models.Exemplar
}

func NewIndex(docs []models.Exemplar) *Index {
	cp := make([]models.Exemplar, len(docs))
	copy(cp, docs)
	return &Index{docs: cp}
}

// NewDefaultIndex builds an index over the embedded exemplar bank
func NewDefaultIndex() (*Index, error) {
	docs, err := LoadBank()
	if err != nil {
		return nil, err
	}
	return NewIndex(docs), nil
}

func (i *Index) Search(ctx context.Context, query, category string, k int) ([]models.Exemplar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Rank(query, i.docs, category, k), nil
}

func (i *Index) Len() int {
	return len(i.docs)
}
