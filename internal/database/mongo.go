package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultMongoDatabase = "sparkifydb"

type MongoDriver struct {
	// Database defaults to "sparkifydb".
	Database string

	client *mongo.Client
}

// mongoStatement maps an Op's positional args onto a document. The first
// field is the natural key and becomes _id unless the policy is AppendOnly.
type mongoStatement struct {
	collection string
	fields     []string
}

var mongoStatements = map[Op]mongoStatement{
	OpSongInsert:     {"songs", []string{"song_id", "title", "artist_id", "year", "duration"}},
	OpArtistInsert:   {"artists", []string{"artist_id", "name", "location", "latitude", "longitude"}},
	OpUserUpsert:     {"users", []string{"user_id", "first_name", "last_name", "gender", "level"}},
	OpTimeInsert:     {"time", []string{"start_time", "hour", "day", "week", "month", "year", "weekday"}},
	OpSongplayInsert: {"songplays", []string{"start_time", "user_id", "level", "song_id", "artist_id", "session_id", "location", "user_agent"}},
}

func (md *MongoDriver) Connect(dsn string) error {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(dsn))
	if err != nil {
		return err
	}
	if err := client.Ping(context.Background(), nil); err != nil {
		client.Disconnect(context.Background())
		return err
	}
	md.client = client
	return nil
}

func (md *MongoDriver) Close() error {
	return md.client.Disconnect(context.Background())
}

func (md *MongoDriver) database() *mongo.Database {
	name := md.Database
	if name == "" {
		name = defaultMongoDatabase
	}
	return md.client.Database(name)
}

// Setup creates the collections and the index backing the song lookup.
// Natural keys live in _id, so uniqueness needs no extra index.
func (md *MongoDriver) Setup(ctx context.Context) error {
	db := md.database()
	existing, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, name := range existing {
		have[name] = true
	}
	for _, name := range Tables {
		if have[name] {
			continue
		}
		if err := db.CreateCollection(ctx, name); err != nil {
			return fmt.Errorf("create collection %s: %w", name, err)
		}
	}

	_, err = db.Collection("songs").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "title", Value: 1}, {Key: "duration", Value: 1}},
	})
	return err
}

func (md *MongoDriver) Reset(ctx context.Context) error {
	for _, name := range Tables {
		if err := md.database().Collection(name).Drop(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteTx needs a replica set or sharded cluster; standalone servers reject
// multi-document transactions.
func (md *MongoDriver) ExecuteTx(ctx context.Context, txFunc func(ctx context.Context) error) error {
	session, err := md.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if err := txFunc(sessCtx); err != nil {
			return nil, err
		}
		return nil, nil
	})

	return err
}

func (md *MongoDriver) ExecContext(ctx context.Context, op Op, args ...interface{}) error {
	stmt, ok := mongoStatements[op]
	if !ok {
		return fmt.Errorf("no mongo mapping registered for %q", op)
	}
	if len(args) != len(stmt.fields) {
		return fmt.Errorf("%s: expected %d args, got %d", op, len(stmt.fields), len(args))
	}

	doc := bson.M{}
	for i, field := range stmt.fields {
		doc[field] = args[i]
	}
	collection := md.database().Collection(stmt.collection)

	switch Policies[op] {
	case AppendOnly:
		doc["_id"] = uuid.New().String()
		_, err := collection.InsertOne(ctx, doc)
		return err
	case LastWriteWins:
		_, err := collection.UpdateOne(ctx, bson.M{"_id": args[0]}, bson.M{"$set": doc}, options.Update().SetUpsert(true))
		return err
	default:
		_, err := collection.UpdateOne(ctx, bson.M{"_id": args[0]}, bson.M{"$setOnInsert": doc}, options.Update().SetUpsert(true))
		return err
	}
}

func (md *MongoDriver) QueryRowContext(ctx context.Context, op Op, args ...interface{}) Row {
	if op != OpSongSelect {
		return errRow{err: fmt.Errorf("no mongo query registered for %q", op)}
	}
	if len(args) != 3 {
		return errRow{err: fmt.Errorf("%s: expected 3 args, got %d", op, len(args))}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"title": args[0], "duration": args[2]}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "artists",
			"localField":   "artist_id",
			"foreignField": "_id",
			"as":           "artist",
		}}},
		{{Key: "$match", Value: bson.M{"artist.name": args[1]}}},
		{{Key: "$limit", Value: 1}},
		{{Key: "$project", Value: bson.M{"_id": 0, "song_id": 1, "artist_id": 1}}},
	}

	cursor, err := md.database().Collection("songs").Aggregate(ctx, pipeline)
	if err != nil {
		return errRow{err: err}
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return errRow{err: err}
		}
		return errRow{err: ErrNoRows}
	}
	var doc bson.M
	if err := cursor.Decode(&doc); err != nil {
		return errRow{err: err}
	}
	return &MongoRow{doc: doc, fields: []string{"song_id", "artist_id"}}
}

// MongoRow scans a decoded document positionally by field name.
type MongoRow struct {
	doc    bson.M
	fields []string
}

func (mr *MongoRow) Scan(dest ...interface{}) error {
	if len(dest) != len(mr.fields) {
		return fmt.Errorf("expected %d destinations, got %d", len(mr.fields), len(dest))
	}
	for i, field := range mr.fields {
		switch d := dest[i].(type) {
		case *string:
			s, ok := mr.doc[field].(string)
			if !ok {
				return fmt.Errorf("field %s: expected string, got %T", field, mr.doc[field])
			}
			*d = s
		default:
			return errors.New("mongo row: unsupported scan destination")
		}
	}
	return nil
}
