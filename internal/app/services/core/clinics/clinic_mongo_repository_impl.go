package clinics

import (
	"context"

	"agendaclin-service/internal/app/contracts"
	"agendaclin-service/internal/app/models"
	"agendaclin-service/internal/pkg/constvars"
	"agendaclin-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ClinicMongoRepository struct {
	Clinics       *mongo.Collection
	Professionals *mongo.Collection
}

func NewClinicMongoRepository(db *mongo.Client, dbName string) contracts.ClinicRepository {
	database := db.Database(dbName)
	return &ClinicMongoRepository{
		Clinics:       database.Collection(constvars.MongoCollectionClinics),
		Professionals: database.Collection(constvars.MongoCollectionProfessionals),
	}
}

func (r *ClinicMongoRepository) FindAll(ctx context.Context, nameFilter string, page, pageSize int) ([]models.Clinic, int64, error) {
	filter := bson.M{"active": true}
	if nameFilter != "" {
		filter["name"] = bson.M{"$regex": primitive.Regex{Pattern: nameFilter, Options: "i"}}
	}

	total, err := r.Clinics.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.Clinics.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var clinics []models.Clinic
	if err := cursor.All(ctx, &clinics); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return clinics, total, nil
}

func (r *ClinicMongoRepository) FindByID(ctx context.Context, clinicID string) (*models.Clinic, error) {
	var clinic models.Clinic
	err := r.Clinics.FindOne(ctx, bson.M{"_id": clinicID}).Decode(&clinic)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &clinic, nil
}

func (r *ClinicMongoRepository) FindProfessionalsByClinicID(ctx context.Context, clinicID string) ([]models.Professional, error) {
	filter := bson.M{"clinic_id": clinicID, "active": true}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.Professionals.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var professionals []models.Professional
	if err := cursor.All(ctx, &professionals); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return professionals, nil
}

func (r *ClinicMongoRepository) FindProfessionalByID(ctx context.Context, clinicID, professionalID string) (*models.Professional, error) {
	var professional models.Professional
	err := r.Professionals.FindOne(ctx, bson.M{"_id": professionalID, "clinic_id": clinicID}).Decode(&professional)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &professional, nil
}
