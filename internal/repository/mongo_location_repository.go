package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/glassview/internal/model"
)

// LocationCollection is the MongoDB collection holding location documents.
const LocationCollection = "location"

// locationDoc is the stored shape of a location document.
type locationDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Address  string             `bson:"address"`
	State    string             `bson:"state"`
	ZipCode  int                `bson:"zip_code"`
	Capacity int                `bson:"capacity"`
}

func toLocationDoc(l model.Location) locationDoc {
	return locationDoc{Name: l.Name, Address: l.Address, State: l.State, ZipCode: l.ZipCode, Capacity: l.Capacity}
}

func (d locationDoc) model() model.Location {
	return model.Location{
		ID: d.ID.Hex(), Name: d.Name, Address: d.Address, State: d.State, ZipCode: d.ZipCode, Capacity: d.Capacity,
	}
}

// parseDocumentID converts a wire id to an ObjectID; malformed ids cannot
// name a document.
func parseDocumentID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

// MongoLocationRepo is the document location store.  Its ids are
// ObjectIDs with no relation to the relational location_id.
type MongoLocationRepo struct {
	coll *mongo.Collection
}

func NewMongoLocationRepo(db *mongo.Database) *MongoLocationRepo {
	return &MongoLocationRepo{coll: db.Collection(LocationCollection)}
}

func (r *MongoLocationRepo) Create(ctx context.Context, l model.Location) (model.Location, error) {
	doc := toLocationDoc(l)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return model.Location{}, fmt.Errorf("insert location document: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return model.Location{}, fmt.Errorf("insert location document: unexpected id type %T", res.InsertedID)
	}
	doc.ID = oid
	return doc.model(), nil
}

func (r *MongoLocationRepo) Get(ctx context.Context, id string) (model.Location, error) {
	oid, err := parseDocumentID(id)
	if err != nil {
		return model.Location{}, err
	}
	var doc locationDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Location{}, ErrNotFound
		}
		return model.Location{}, fmt.Errorf("find location document: %w", err)
	}
	return doc.model(), nil
}

func (r *MongoLocationRepo) List(ctx context.Context) ([]model.Location, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find location documents: %w", err)
	}
	var docs []locationDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode location documents: %w", err)
	}
	out := make([]model.Location, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model())
	}
	return out, nil
}

func (r *MongoLocationRepo) Update(ctx context.Context, id string, l model.Location) (model.Location, error) {
	oid, err := parseDocumentID(id)
	if err != nil {
		return model.Location{}, err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": toLocationDoc(l)})
	if err != nil {
		return model.Location{}, fmt.Errorf("update location document: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.Location{}, ErrNotFound
	}
	l.ID = oid.Hex()
	return l, nil
}

func (r *MongoLocationRepo) Delete(ctx context.Context, id string) error {
	oid, err := parseDocumentID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete location document: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
