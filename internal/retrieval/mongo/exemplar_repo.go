package mongo

import (
	"context"
	"os"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Maazpendari01/InterviewQi/internal/models"
	"github.com/Maazpendari01/InterviewQi/internal/retrieval"
)

// Repo wraps the exemplar collection
type Repo struct{ col *mongo.Collection }

// NewExemplarRepo ensures a unique index on the exemplar id
func NewExemplarRepo(c *Client) (*Repo, error) {
	db, err := c.DB()
	if err != nil {
		return nil, err
	}

	colName := os.Getenv("EXEMPLARS_COLLECTION")
	if colName == "" {
		colName = "exemplars"
	}

	r := &Repo{col: db.Collection(colName)}

	_, _ = r.col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "metadata.id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "metadata.category", Value: 1}}},
	})

	return r, nil
}

// Upsert writes exemplars keyed by id and returns how many were inserted or modified
func (r *Repo) Upsert(ctx context.Context, docs []models.Exemplar) (int64, error) {
	if len(docs) == 0 {
		return 0, nil
	}
	writes := make([]mongo.WriteModel, 0, len(docs))
	for _, d := range docs {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"metadata.id": d.Metadata.ID}).
			SetReplacement(d).
			SetUpsert(true))
	}
	res, err := r.col.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, err
	}
	return res.UpsertedCount + res.ModifiedCount, nil
}

// Search loads the category's exemplars in id order and ranks them in process
func (r *Repo) Search(ctx context.Context, query, category string, k int) ([]models.Exemplar, error) {
	filter := bson.M{}
	if category != "" {
		filter["metadata.category"] = category
	}
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "metadata.id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []models.Exemplar
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return retrieval.Rank(query, docs, category, k), nil
}

func (r *Repo) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
