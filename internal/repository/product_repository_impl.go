package repository

import (
	"context"
	"time"

	"github.com/alimikegami/marketplace-service/internal/domain"
	pkgdto "github.com/alimikegami/marketplace-service/pkg/dto"
	"github.com/alimikegami/marketplace-service/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBProductRepositoryImpl struct {
	db *mongo.Database
}

func CreateProductRepository(db *mongo.Database) ProductRepository {
	return &MongoDBProductRepositoryImpl{db: db}
}

func (r *MongoDBProductRepositoryImpl) products() *mongo.Collection {
	return r.db.Collection("products")
}

func buildCatalogFilter(filter pkgdto.Filter) bson.M {
	query := bson.M{}

	if filter.Keyword != "" {
		query["name"] = bson.M{"$regex": filter.Keyword, "$options": "i"}
	}

	if filter.Category != "" {
		query["category"] = filter.Category
	}

	price := bson.M{}
	if filter.MinPrice > 0 {
		price["$gte"] = filter.MinPrice
	}
	if filter.MaxPrice > 0 {
		price["$lte"] = filter.MaxPrice
	}
	if len(price) > 0 {
		query["price"] = price
	}

	return query
}

func (r *MongoDBProductRepositoryImpl) AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error) {
	timestamp := time.Now().Unix()
	data.CreatedAt = timestamp
	data.UpdatedAt = timestamp

	result, err := r.products().InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoDBProductRepositoryImpl) GetProducts(ctx context.Context, filter pkgdto.Filter) (data []domain.Product, err error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	if filter.Limit != 0 && filter.Page != 0 {
		opts = opts.SetSkip((int64(filter.Page) - 1) * int64(filter.Limit)).SetLimit(int64(filter.Limit))
	}

	cursor, err := r.products().Find(ctx, buildCatalogFilter(filter), opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBProductRepositoryImpl) CountProducts(ctx context.Context, filter pkgdto.Filter) (count int64, err error) {
	count, err = r.products().CountDocuments(ctx, buildCatalogFilter(filter))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CountProducts").Msg("")
		return 0, err
	}

	return count, nil
}

func (r *MongoDBProductRepositoryImpl) GetProductByID(ctx context.Context, id string) (product domain.Product, err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return product, errs.ErrProductNotFound
	}

	filter := bson.D{{Key: "_id", Value: productID}}

	err = r.products().FindOne(ctx, filter).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return product, errs.ErrProductNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductByID").Msg("")
		return product, err
	}

	return product, nil
}

func (r *MongoDBProductRepositoryImpl) GetTopRatedProducts(ctx context.Context, limit int64) (data []domain.Product, err error) {
	opts := options.Find().SetSort(bson.D{{Key: "rating", Value: -1}}).SetLimit(limit)

	cursor, err := r.products().Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetTopRatedProducts").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetTopRatedProducts").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBProductRepositoryImpl) GetFeaturedProducts(ctx context.Context, limit int64) (data []domain.Product, err error) {
	opts := options.Find().SetLimit(limit)

	cursor, err := r.products().Find(ctx, bson.M{"is_featured": true}, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetFeaturedProducts").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetFeaturedProducts").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBProductRepositoryImpl) GetProductsBySellerID(ctx context.Context, sellerID int64) (data []domain.Product, err error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.products().Find(ctx, bson.M{"seller_id": sellerID}, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductsBySellerID").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductsBySellerID").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBProductRepositoryImpl) UpdateProduct(ctx context.Context, data domain.Product) (err error) {
	filter := bson.D{{Key: "_id", Value: data.ID}}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: data.Name},
		{Key: "description", Value: data.Description},
		{Key: "price", Value: data.Price},
		{Key: "discount_price", Value: data.DiscountPrice},
		{Key: "category", Value: data.Category},
		{Key: "brand", Value: data.Brand},
		{Key: "stock", Value: data.Stock},
		{Key: "is_featured", Value: data.IsFeatured},
		{Key: "specifications", Value: data.Specifications},
		{Key: "updated_at", Value: time.Now().Unix()},
	}}}

	result, err := r.products().UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateProduct").Msg("Failed to update product")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrProductNotFound
	}

	return nil
}

func (r *MongoDBProductRepositoryImpl) DeleteProduct(ctx context.Context, id string) (err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.ErrProductNotFound
	}

	filter := bson.D{{Key: "_id", Value: productID}}

	result, err := r.products().DeleteOne(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProduct").Msg("")
		return
	}

	if result.DeletedCount == 0 {
		return errs.ErrProductNotFound
	}

	return nil
}

func (r *MongoDBProductRepositoryImpl) AddReview(ctx context.Context, productID string, review domain.Review, rating float64, numReviews int) (err error) {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return errs.ErrProductNotFound
	}

	filter := bson.D{{Key: "_id", Value: id}}

	update := bson.D{
		{Key: "$push", Value: bson.D{{Key: "reviews", Value: review}}},
		{Key: "$set", Value: bson.D{
			{Key: "rating", Value: rating},
			{Key: "num_reviews", Value: numReviews},
			{Key: "updated_at", Value: time.Now().Unix()},
		}},
	}

	result, err := r.products().UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddReview").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrProductNotFound
	}

	return nil
}

// DecrementProductStock checks and decrements stock in a single
// conditional update so concurrent checkouts cannot over-sell.
func (r *MongoDBProductRepositoryImpl) DecrementProductStock(ctx context.Context, id string, quantity int64) (err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.ErrProductNotFound
	}

	filter := bson.D{
		{Key: "_id", Value: productID},
		{Key: "stock", Value: bson.D{{Key: "$gte", Value: quantity}}},
	}

	update := bson.D{
		{Key: "$inc", Value: bson.D{{Key: "stock", Value: -quantity}}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: time.Now().Unix()}}},
	}

	result, err := r.products().UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DecrementProductStock").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrInsufficientStock
	}

	return nil
}

func (r *MongoDBProductRepositoryImpl) IncrementProductStock(ctx context.Context, id string, quantity int64) (err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.ErrProductNotFound
	}

	filter := bson.D{{Key: "_id", Value: productID}}

	update := bson.D{
		{Key: "$inc", Value: bson.D{{Key: "stock", Value: quantity}}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: time.Now().Unix()}}},
	}

	result, err := r.products().UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "IncrementProductStock").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrProductNotFound
	}

	return nil
}
