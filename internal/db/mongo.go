package db

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ahsanfayaz52/notesapi/internal/models"
)

const (
	usersCollection = "users"
	notesCollection = "notes"
)

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type noteDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	UserID    primitive.ObjectID `bson:"userId"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *userDocument) toModel() *models.User {
	return &models.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

func (d *noteDocument) toModel() models.Note {
	return models.Note{
		ID:        d.ID.Hex(),
		UserID:    d.UserID.Hex(),
		Title:     d.Title,
		Content:   d.Content,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// MongoStore keeps users and notes in two collections of one database.
type MongoStore struct {
	client *mongo.Client
	users  *mongo.Collection
	notes  *mongo.Collection
}

// InitMongo connects to uri, pings the server and ensures the indexes the
// store relies on: a unique email index and an owner/creation index for
// listing.
func InitMongo(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	database := client.Database(dbName)
	store := &MongoStore{
		client: client,
		users:  database.Collection(usersCollection),
		notes:  database.Collection(notesCollection),
	}
	if err := store.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return store, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users index: %w", err)
	}
	_, err = s.notes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create notes index: %w", err)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	doc := userDocument{
		ID:        primitive.NewObjectID(),
		Username:  user.Username,
		Email:     user.Email,
		Password:  user.PasswordHash,
		CreatedAt: user.CreatedAt,
	}
	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return doc.toModel(), nil
}

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, bson.D{{Key: "email", Value: email}})
}

func (s *MongoStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.findUser(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (s *MongoStore) findUser(ctx context.Context, filter bson.D) (*models.User, error) {
	var doc userDocument
	if err := s.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toModel(), nil
}

func (s *MongoStore) UpdateUser(ctx context.Context, id, username, email string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "username", Value: username},
		{Key: "email", Value: email},
	}}}

	var doc userDocument
	err = s.users.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return doc.toModel(), nil
}

func (s *MongoStore) CreateNote(ctx context.Context, note *models.Note) (*models.Note, error) {
	owner, err := primitive.ObjectIDFromHex(note.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id %q: %w", note.UserID, err)
	}
	doc := noteDocument{
		ID:        primitive.NewObjectID(),
		UserID:    owner,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
	if _, err := s.notes.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	created := doc.toModel()
	return &created, nil
}

func (s *MongoStore) ListNotes(ctx context.Context, ownerID, search string) ([]models.Note, error) {
	notes := make([]models.Note, 0)

	filter, err := noteListFilter(ownerID, search)
	if err != nil {
		return notes, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := s.notes.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find notes: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []noteDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}
	for i := range docs {
		notes = append(notes, docs[i].toModel())
	}
	return notes, nil
}

func (s *MongoStore) GetNote(ctx context.Context, id, ownerID string) (*models.Note, error) {
	filter, err := ownedNoteFilter(id, ownerID)
	if err != nil {
		return nil, err
	}
	var doc noteDocument
	if err := s.notes.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}
	note := doc.toModel()
	return &note, nil
}

func (s *MongoStore) UpdateNote(ctx context.Context, id, ownerID, title, content string, updatedAt time.Time) (*models.Note, error) {
	filter, err := ownedNoteFilter(id, ownerID)
	if err != nil {
		return nil, err
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: title},
		{Key: "content", Value: content},
		{Key: "updatedAt", Value: updatedAt},
	}}}

	var doc noteDocument
	err = s.notes.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update note: %w", err)
	}
	note := doc.toModel()
	return &note, nil
}

func (s *MongoStore) DeleteNote(ctx context.Context, id, ownerID string) error {
	filter, err := ownedNoteFilter(id, ownerID)
	if err != nil {
		return err
	}
	res, err := s.notes.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ownedNoteFilter matches a note by id and owner. Ids that are not valid
// ObjectIDs cannot match anything and are reported as ErrNotFound.
func ownedNoteFilter(id, ownerID string) (bson.D, error) {
	noteID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, ErrNotFound
	}
	return bson.D{{Key: "_id", Value: noteID}, {Key: "userId", Value: owner}}, nil
}

// noteListFilter selects the owner's notes, optionally narrowed to those whose
// title or content contains search as a literal, case-insensitive substring.
func noteListFilter(ownerID, search string) (bson.D, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, ErrNotFound
	}
	filter := bson.D{{Key: "userId", Value: owner}}
	if search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: pattern}},
			bson.D{{Key: "content", Value: pattern}},
		}})
	}
	return filter, nil
}
