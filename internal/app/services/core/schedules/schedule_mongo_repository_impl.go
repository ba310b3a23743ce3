package schedules

import (
	"context"
	"telecare-service/internal/app/contracts"
	"telecare-service/internal/app/models"
	"telecare-service/internal/pkg/constvars"
	"telecare-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ScheduleMongoRepository struct {
	Collection *mongo.Collection
}

func NewScheduleMongoRepository(db *mongo.Client, dbName string) contracts.ScheduleRepository {
	return &ScheduleMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionScheduleBlocks),
	}
}

func (r *ScheduleMongoRepository) ListByDoctor(ctx context.Context, doctorID string) ([]models.ScheduleBlock, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "dayOfWeek", Value: 1},
		{Key: "startOfDay", Value: 1},
	})
	cursor, err := r.Collection.Find(ctx, bson.M{"doctorId": doctorID}, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var blocks []models.ScheduleBlock
	if err := cursor.All(ctx, &blocks); err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return blocks, nil
}

// ReplaceForDoctor swaps the doctor's whole weekly schedule in one call.
// Passing an empty slice clears it.
func (r *ScheduleMongoRepository) ReplaceForDoctor(ctx context.Context, doctorID string, blocks []models.ScheduleBlock) error {
	if _, err := r.Collection.DeleteMany(ctx, bson.M{"doctorId": doctorID}); err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	if len(blocks) == 0 {
		return nil
	}

	docs := make([]interface{}, len(blocks))
	for i := range blocks {
		blocks[i].ID = primitive.NewObjectID()
		blocks[i].DoctorID = doctorID
		docs[i] = blocks[i]
	}
	if _, err := r.Collection.InsertMany(ctx, docs); err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *ScheduleMongoRepository) ListDoctorIDs(ctx context.Context) ([]string, error) {
	values, err := r.Collection.Distinct(ctx, "doctorId", bson.M{})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	doctorIDs := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok {
			doctorIDs = append(doctorIDs, id)
		}
	}
	return doctorIDs, nil
}
