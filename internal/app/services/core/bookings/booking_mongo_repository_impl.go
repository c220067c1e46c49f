package bookings

import (
	"context"
	"time"

	"agendaclin-service/internal/app/contracts"
	"agendaclin-service/internal/app/models"
	"agendaclin-service/internal/pkg/constvars"
	"agendaclin-service/internal/pkg/exceptions"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BookingMongoRepository struct {
	Collection *mongo.Collection
}

func NewBookingMongoRepository(db *mongo.Client, dbName string) contracts.BookingRepository {
	return &BookingMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionBookings),
	}
}

// EnsureIndexes creates the unique partial index that makes "at most one
// active booking per clinic, professional and start time" a database
// guarantee rather than a best-effort application check. The lock around the
// write path narrows the race; this index closes it.
func (r *BookingMongoRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "clinic_id", Value: 1},
				{Key: "professional_id", Value: 1},
				{Key: "start_at", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"status": bson.M{"$in": []string{
						string(models.BookingStatusPending),
						string(models.BookingStatusConfirmed),
					}},
				}),
		},
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "created_at", Value: 1},
			},
		},
	}

	_, err := r.Collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *BookingMongoRepository) FindActiveByClinicAndRange(ctx context.Context, clinicID string, from, to time.Time, professionalID string) ([]models.Booking, error) {
	filter := bson.M{
		"clinic_id": clinicID,
		"start_at":  bson.M{"$gte": from, "$lt": to},
		"status": bson.M{"$in": []string{
			string(models.BookingStatusPending),
			string(models.BookingStatusConfirmed),
		}},
	}
	if professionalID != "" {
		filter["professional_id"] = professionalID
	}

	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return bookings, nil
}

func (r *BookingMongoRepository) FindByClinicAndRange(ctx context.Context, clinicID string, from, to time.Time, professionalID string, page, pageSize int) ([]models.Booking, int64, error) {
	filter := bson.M{
		"clinic_id": clinicID,
		"start_at":  bson.M{"$gte": from, "$lt": to},
	}
	if professionalID != "" {
		filter["professional_id"] = professionalID
	}

	total, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "start_at", Value: 1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return bookings, total, nil
}

func (r *BookingMongoRepository) FindByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	var booking models.Booking
	err := r.Collection.FindOne(ctx, bson.M{"_id": bookingID}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &booking, nil
}

func (r *BookingMongoRepository) Insert(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.Collection.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, exceptions.ErrSlotNoLongerAvailable(err)
		}
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	return booking, nil
}

func (r *BookingMongoRepository) UpdateStatus(ctx context.Context, bookingID string, status models.BookingStatus, notes string) error {
	update := bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}}
	if notes != "" {
		update["$set"].(bson.M)["notes"] = notes
	}

	result, err := r.Collection.UpdateOne(ctx, bson.M{"_id": bookingID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrBookingNotFound(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *BookingMongoRepository) FindStalePending(ctx context.Context, createdBefore time.Time, limit int64) ([]models.Booking, error) {
	filter := bson.M{
		"status":     string(models.BookingStatusPending),
		"created_at": bson.M{"$lt": createdBefore},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(limit)

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return bookings, nil
}
