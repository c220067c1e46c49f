package workinghours

import (
	"context"

	"agendaclin-service/internal/app/contracts"
	"agendaclin-service/internal/app/models"
	"agendaclin-service/internal/pkg/constvars"
	"agendaclin-service/internal/pkg/exceptions"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type WorkingHoursMongoRepository struct {
	Collection *mongo.Collection
}

func NewWorkingHoursMongoRepository(db *mongo.Client, dbName string) contracts.WorkingHoursRepository {
	return &WorkingHoursMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionWorkingHours),
	}
}

func (r *WorkingHoursMongoRepository) FindByClinicID(ctx context.Context, clinicID string) ([]models.WorkingHoursRule, error) {
	filter := bson.M{"clinic_id": clinicID}
	opts := options.Find().SetSort(bson.D{{Key: "weekday", Value: 1}, {Key: "start_time", Value: 1}})

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var rules []models.WorkingHoursRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return rules, nil
}

func (r *WorkingHoursMongoRepository) FindActiveByClinicIDAndWeekday(ctx context.Context, clinicID string, weekday int) ([]models.WorkingHoursRule, error) {
	filter := bson.M{
		"clinic_id": clinicID,
		"weekday":   weekday,
		"active":    true,
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var rules []models.WorkingHoursRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return rules, nil
}

func (r *WorkingHoursMongoRepository) ReplaceWeekday(ctx context.Context, clinicID string, weekday int, rules []models.WorkingHoursRule) ([]models.WorkingHoursRule, error) {
	filter := bson.M{"clinic_id": clinicID, "weekday": weekday}
	if _, err := r.Collection.DeleteMany(ctx, filter); err != nil {
		return nil, exceptions.ErrMongoDBDeleteDocument(err)
	}
	if len(rules) == 0 {
		return []models.WorkingHoursRule{}, nil
	}
	return r.InsertMany(ctx, rules)
}

func (r *WorkingHoursMongoRepository) InsertMany(ctx context.Context, rules []models.WorkingHoursRule) ([]models.WorkingHoursRule, error) {
	documents := make([]interface{}, len(rules))
	for i := range rules {
		if rules[i].ID == "" {
			rules[i].ID = uuid.NewString()
		}
		documents[i] = rules[i]
	}

	if _, err := r.Collection.InsertMany(ctx, documents); err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	return rules, nil
}

func (r *WorkingHoursMongoRepository) CountByClinicID(ctx context.Context, clinicID string) (int64, error) {
	count, err := r.Collection.CountDocuments(ctx, bson.M{"clinic_id": clinicID})
	if err != nil {
		return 0, exceptions.ErrMongoDBFindDocument(err)
	}
	return count, nil
}
