package blockedperiods

import (
	"context"
	"fmt"

	"agendaclin-service/internal/app/contracts"
	"agendaclin-service/internal/app/models"
	"agendaclin-service/internal/pkg/constvars"
	"agendaclin-service/internal/pkg/exceptions"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BlockedPeriodMongoRepository struct {
	Collection *mongo.Collection
}

func NewBlockedPeriodMongoRepository(db *mongo.Client, dbName string) contracts.BlockedPeriodRepository {
	return &BlockedPeriodMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionBlockedPeriods),
	}
}

func (r *BlockedPeriodMongoRepository) FindByClinicID(ctx context.Context, clinicID string) ([]models.BlockedPeriod, error) {
	filter := bson.M{"clinic_id": clinicID}
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var periods []models.BlockedPeriod
	if err := cursor.All(ctx, &periods); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return periods, nil
}

// FindByClinicIDCoveringDate relies on ISO dates comparing lexicographically,
// so the range test runs entirely inside Mongo.
func (r *BlockedPeriodMongoRepository) FindByClinicIDCoveringDate(ctx context.Context, clinicID, date string) ([]models.BlockedPeriod, error) {
	filter := bson.M{
		"clinic_id":  clinicID,
		"start_date": bson.M{"$lte": date},
		"end_date":   bson.M{"$gte": date},
	}

	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var periods []models.BlockedPeriod
	if err := cursor.All(ctx, &periods); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return periods, nil
}

func (r *BlockedPeriodMongoRepository) Insert(ctx context.Context, period *models.BlockedPeriod) (*models.BlockedPeriod, error) {
	if period.ID == "" {
		period.ID = uuid.NewString()
	}
	if _, err := r.Collection.InsertOne(ctx, period); err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	return period, nil
}

func (r *BlockedPeriodMongoRepository) DeleteByID(ctx context.Context, clinicID, periodID string) error {
	result, err := r.Collection.DeleteOne(ctx, bson.M{"_id": periodID, "clinic_id": clinicID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	if result.DeletedCount == 0 {
		return exceptions.ErrBlockedPeriodNotFound(fmt.Errorf("blocked period %s not found in clinic %s", periodID, clinicID))
	}
	return nil
}
