package blogs

import (
	"context"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BlogMongoRepository struct {
	Collection *mongo.Collection
}

func NewBlogMongoRepository(db *mongo.Client, dbName string) contracts.BlogRepository {
	return &BlogMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionBlogs),
	}
}

func (repo *BlogMongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := repo.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName(constvars.MongoIndexBlogCreatedAt),
	})
	if err != nil {
		return exceptions.ErrMongoDBCreateIndex(err, constvars.MongoIndexBlogCreatedAt)
	}
	return nil
}

// FindAll returns blogs newest first.
func (repo *BlogMongoRepository) FindAll(ctx context.Context) ([]models.Blog, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := repo.Collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	blogs := make([]models.Blog, 0)
	err = cursor.All(ctx, &blogs)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return blogs, nil
}

func (repo *BlogMongoRepository) FindByID(ctx context.Context, blogID string) (*models.Blog, error) {
	var blog models.Blog
	objectID, err := primitive.ObjectIDFromHex(blogID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	err = repo.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&blog)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &blog, nil
}

func (repo *BlogMongoRepository) CreateBlog(ctx context.Context, blog *models.Blog) (string, error) {
	blog.SetCreatedAtUpdatedAt()
	result, err := repo.Collection.InsertOne(ctx, blog)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}

	objectID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", exceptions.ErrMongoDBNotObjectID(nil)
	}
	blog.ID = objectID
	return objectID.Hex(), nil
}

func (repo *BlogMongoRepository) UpdateBlog(ctx context.Context, blog *models.Blog) error {
	blog.SetUpdatedAt()
	_, err := repo.Collection.ReplaceOne(ctx, bson.M{"_id": blog.ID}, blog)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (repo *BlogMongoRepository) DeleteBlog(ctx context.Context, blogID string) error {
	objectID, err := primitive.ObjectIDFromHex(blogID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	_, err = repo.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}
