package goals

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xyz-asif/goalpath/internal/database"
	"github.com/xyz-asif/goalpath/internal/pkg/datetime"
)

type goalDocument struct {
	ID          int64      `bson:"_id"`
	UserID      string     `bson:"userId"`
	Title       string     `bson:"title"`
	Description string     `bson:"description"`
	Progress    int        `bson:"progress"`
	TargetDate  *time.Time `bson:"targetDate,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt"`
}

func newGoalDocument(g *Goal) goalDocument {
	return goalDocument{
		ID:          g.ID,
		UserID:      g.UserID,
		Title:       g.Title,
		Description: g.Description,
		Progress:    g.Progress,
		TargetDate:  datetime.ToTime(g.TargetDate),
		CreatedAt:   g.CreatedAt,
	}
}

func (d goalDocument) toGoal() Goal {
	return Goal{
		ID:          d.ID,
		UserID:      d.UserID,
		Title:       d.Title,
		Description: d.Description,
		Progress:    d.Progress,
		TargetDate:  datetime.FromTime(d.TargetDate),
		CreatedAt:   d.CreatedAt,
	}
}

// MongoRepository stores goals in the goals collection with integer ids.
type MongoRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{db: db, collection: db.Collection("goals")}
}

// EnsureIndexes creates the indexes used by the per-user queries.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "progress", Value: 1}}},
	})
	return err
}

func (r *MongoRepository) FindByID(ctx context.Context, id int64) (*Goal, error) {
	var doc goalDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	goal := doc.toGoal()
	return &goal, nil
}

func (r *MongoRepository) FindByUser(ctx context.Context, userID string) ([]Goal, error) {
	return r.list(ctx, bson.M{"userId": userID})
}

func (r *MongoRepository) FindByUserAndCompleted(ctx context.Context, userID string, completed bool) ([]Goal, error) {
	op := "$lt"
	if completed {
		op = "$gte"
	}
	return r.list(ctx, bson.M{
		"userId":   userID,
		"progress": bson.M{op: CompletionThreshold},
	})
}

func (r *MongoRepository) list(ctx context.Context, filter bson.M) ([]Goal, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []goalDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	goals := make([]Goal, 0, len(docs))
	for _, doc := range docs {
		goals = append(goals, doc.toGoal())
	}
	return goals, nil
}

func (r *MongoRepository) Save(ctx context.Context, goal *Goal) error {
	if goal.ID == 0 {
		id, err := database.NextSequence(ctx, r.db, "goals")
		if err != nil {
			return err
		}
		goal.ID = id

		if _, err := r.collection.InsertOne(ctx, newGoalDocument(goal)); err != nil {
			goal.ID = 0
			return err
		}
		return nil
	}

	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": goal.ID}, newGoalDocument(goal))
	return err
}

func (r *MongoRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
