package users

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

type userDocument struct {
	ID          int64      `bson:"_id"`
	Username    string     `bson:"username"`
	Email       string     `bson:"email"`
	Gender      string     `bson:"gender"`
	Image       *string    `bson:"image"`
	ImageName   *string    `bson:"imageName"`
	Password    string     `bson:"password"`
	Mobile      string     `bson:"mobile"`
	Followers   int        `bson:"followers"`
	DateOfBirth *time.Time `bson:"dateOfBirth,omitempty"`
	Description string     `bson:"description"`
}

func newUserDocument(u *User) userDocument {
	return userDocument{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Gender:      u.Gender,
		Image:       u.Image,
		ImageName:   u.ImageName,
		Password:    u.Password,
		Mobile:      u.Mobile,
		Followers:   u.Followers,
		DateOfBirth: datetime.ToTime(u.DateOfBirth),
		Description: u.Description,
	}
}

func (d userDocument) toUser() User {
	return User{
		ID:          d.ID,
		Username:    d.Username,
		Email:       d.Email,
		Gender:      d.Gender,
		Image:       d.Image,
		ImageName:   d.ImageName,
		Password:    d.Password,
		Mobile:      d.Mobile,
		Followers:   d.Followers,
		DateOfBirth: datetime.FromTime(d.DateOfBirth),
		Description: d.Description,
	}
}

// MongoRepository stores users in the users collection with integer ids.
type MongoRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{db: db, collection: db.Collection("users")}
}

// EnsureIndexes creates the username lookup index. Usernames are not unique.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "username", Value: 1}},
	})
	return err
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*User, error) {
	var doc userDocument
	err := r.collection.FindOne(ctx, filter, opts...).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	user := doc.toUser()
	return &user, nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return r.findOne(ctx, bson.M{"username": username}, options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

func (r *MongoRepository) FindAll(ctx context.Context) ([]User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	users := make([]User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, doc.toUser())
	}
	return users, nil
}

// Save inserts new users and $sets profile and image fields of existing ones.
// The follower count is owned by AdjustFollowers and is read back.
func (r *MongoRepository) Save(ctx context.Context, user *User) error {
	if user.ID == 0 {
		id, err := database.NextSequence(ctx, r.db, "users")
		if err != nil {
			return err
		}
		user.ID = id

		if _, err := r.collection.InsertOne(ctx, newUserDocument(user)); err != nil {
			user.ID = 0
			return err
		}
		return nil
	}

	update := bson.M{"$set": bson.M{
		"username":    user.Username,
		"email":       user.Email,
		"gender":      user.Gender,
		"image":       user.Image,
		"imageName":   user.ImageName,
		"password":    user.Password,
		"mobile":      user.Mobile,
		"dateOfBirth": datetime.ToTime(user.DateOfBirth),
		"description": user.Description,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc userDocument
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": user.ID}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil
		}
		return err
	}
	user.Followers = doc.Followers
	return nil
}

func (r *MongoRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// AdjustFollowers applies $inc. A decrement only matches documents whose
// count can absorb it; when nothing matches the current record is returned.
func (r *MongoRepository) AdjustFollowers(ctx context.Context, id int64, delta int) (*User, error) {
	filter := bson.M{"_id": id}
	if delta < 0 {
		filter["followers"] = bson.M{"$gte": -delta}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc userDocument
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$inc": bson.M{"followers": delta}}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			if delta < 0 {
				return r.FindByID(ctx, id)
			}
			return nil, nil
		}
		return nil, err
	}

	user := doc.toUser()
	return &user, nil
}
