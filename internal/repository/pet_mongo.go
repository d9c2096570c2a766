package repository

import (
	"context"

	"github.com/schnauzenportal/server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PetMongo satisfies two interfaces used across the service layer:
//   - PetVectorIndex (pet_search)    – VectorSearch()
//   - PetCatalogRepository (catalog) – FindPets()
type PetMongo struct {
	col       *mongo.Collection // pet documents with an "embedding" field
	vectorIdx string            // name of the Atlas Vector Search index
}

// NewPetRepository wires the collection.
//
// Expected schema:
//
//	pets
//	  { _id: ObjectId, name, type, breed, gender, neutered, birth_year,
//	    image, url, text, embedding: []float32 }
func NewPetRepository(db *mongo.Database, collection, vectorIdx string) *PetMongo {
	return &PetMongo{
		col:       db.Collection(collection),
		vectorIdx: vectorIdx,
	}
}

// -------------------------- public API --------------------------------------

// VectorSearch performs a K-NN search across pet embeddings, constrained by
// the optional filter. Results are ordered by similarity score as returned by
// the index.
func (r *PetMongo) VectorSearch(ctx context.Context, queryVec []float32, filter models.Filter, k int) ([]models.Pet, error) {
	search := bson.D{
		{Key: "index", Value: r.vectorIdx},
		{Key: "queryVector", Value: queryVec},
		{Key: "path", Value: "embedding"},
		{Key: "numCandidates", Value: k * 10},
		{Key: "limit", Value: k},
	}
	if filter.Type != nil {
		search = append(search, bson.E{Key: "filter", Value: bson.D{
			{Key: "type", Value: *filter.Type},
		}})
	}

	pipeline := mongo.Pipeline{
		{{Key: "$vectorSearch", Value: search}},
		{{Key: "$set", Value: bson.D{
			{Key: "score", Value: bson.D{{Key: "$meta", Value: "vectorSearchScore"}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "embedding", Value: 0}, // omit heavy field
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var pets []models.Pet
	if err := cur.All(ctx, &pets); err != nil {
		return nil, err
	}
	return pets, nil
}

// FindPets returns one page of the catalog plus the total match count, with
// the embedding always projected out.
func (r *PetMongo) FindPets(ctx context.Context, filter models.Filter, limit, skip int64) (models.PetPage, error) {
	query := bson.M{}
	if filter.Type != nil {
		query["type"] = *filter.Type
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return models.PetPage{}, err
	}

	opts := options.Find().
		SetProjection(bson.M{"embedding": 0}).
		SetLimit(limit).
		SetSkip(skip)

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return models.PetPage{}, err
	}
	defer cur.Close(ctx)

	pets := []models.Pet{}
	if err := cur.All(ctx, &pets); err != nil {
		return models.PetPage{}, err
	}

	return models.PetPage{
		Total:   total,
		Skip:    skip,
		Limit:   limit,
		Results: pets,
	}, nil
}
