package repository

import (
	"context"

	"github.com/KingAshu22/Parichay-Admin/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProductRepository resolves authoritative pricing for a set of product ids.
// It is the only source of truth for amounts in the checkout path.
type ProductRepository interface {
	FindPricingByIDs(ctx context.Context, ids []string) (map[string]models.ProductPricing, error)
}

type mongoProductRepo struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) ProductRepository {
	return &mongoProductRepo{collection: db.Collection("products")}
}

// FindPricingByIDs runs a single $in query over the deduplicated ids and maps
// each found product to its title and current unit price. Missing ids are not
// an error here; the caller decides what an absent product means. Malformed
// ids are skipped for the same reason: they can never match a product.
func (r *mongoProductRepo) FindPricingByIDs(ctx context.Context, ids []string) (map[string]models.ProductPricing, error) {
	pricing := make(map[string]models.ProductPricing, len(ids))

	seen := make(map[string]struct{}, len(ids))
	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		objectIDs = append(objectIDs, oid)
	}
	if len(objectIDs) == 0 {
		return pricing, nil
	}

	filter := bson.M{"_id": bson.M{"$in": objectIDs}}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err = cursor.All(ctx, &products); err != nil {
		return nil, err
	}

	for _, p := range products {
		pricing[p.ID.Hex()] = models.ProductPricing{Title: p.Title, Price: p.Price}
	}
	return pricing, nil
}
