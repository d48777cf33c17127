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

// InventoryCollection is the MongoDB collection holding inventory documents.
const InventoryCollection = "inventory"

// inventoryDoc is the stored shape of an inventory document.  location_id
// is the relational integer id and is not checked against the location
// collection.
type inventoryDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	UserID            int64              `bson:"user_id"`
	LocationID        int64              `bson:"location_id"`
	Name              string             `bson:"name"`
	Quantity          int64              `bson:"quantity"`
	Description       string             `bson:"description"`
	Price             float64            `bson:"price"`
	Width             float64            `bson:"width"`
	PrescriptionAvail bool               `bson:"prescription_avail"`
	Tinted            bool               `bson:"tinted"`
	Polarized         bool               `bson:"polarized"`
	AntiGlare         bool               `bson:"anti_glare"`
}

func toInventoryDoc(inv model.Inventory) inventoryDoc {
	return inventoryDoc{
		UserID: inv.UserID, LocationID: inv.LocationID, Name: inv.Name, Quantity: inv.Quantity,
		Description: inv.Description, Price: inv.Price, Width: inv.Width,
		PrescriptionAvail: inv.PrescriptionAvail, Tinted: inv.Tinted, Polarized: inv.Polarized, AntiGlare: inv.AntiGlare,
	}
}

func (d inventoryDoc) model() model.Inventory {
	return model.Inventory{
		ID: d.ID.Hex(), UserID: d.UserID, LocationID: d.LocationID, Name: d.Name, Quantity: d.Quantity,
		Description: d.Description, Price: d.Price, Width: d.Width,
		PrescriptionAvail: d.PrescriptionAvail, Tinted: d.Tinted, Polarized: d.Polarized, AntiGlare: d.AntiGlare,
	}
}

// MongoInventoryRepo is the document inventory store.
type MongoInventoryRepo struct {
	coll *mongo.Collection
}

func NewMongoInventoryRepo(db *mongo.Database) *MongoInventoryRepo {
	return &MongoInventoryRepo{coll: db.Collection(InventoryCollection)}
}

func (r *MongoInventoryRepo) Create(ctx context.Context, inv model.Inventory) (model.Inventory, error) {
	doc := toInventoryDoc(inv)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return model.Inventory{}, fmt.Errorf("insert inventory document: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return model.Inventory{}, fmt.Errorf("insert inventory document: unexpected id type %T", res.InsertedID)
	}
	doc.ID = oid
	return doc.model(), nil
}

func (r *MongoInventoryRepo) Get(ctx context.Context, id string) (model.Inventory, error) {
	oid, err := parseDocumentID(id)
	if err != nil {
		return model.Inventory{}, err
	}
	var doc inventoryDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Inventory{}, ErrNotFound
		}
		return model.Inventory{}, fmt.Errorf("find inventory document: %w", err)
	}
	return doc.model(), nil
}

func inventoryQuery(f InventoryFilter) bson.M {
	q := bson.M{}
	if f.UserID != nil {
		q["user_id"] = *f.UserID
	}
	if f.LocationID != nil {
		q["location_id"] = *f.LocationID
	}
	return q
}

func (r *MongoInventoryRepo) List(ctx context.Context, f InventoryFilter) ([]model.Inventory, error) {
	cur, err := r.coll.Find(ctx, inventoryQuery(f), options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find inventory documents: %w", err)
	}
	var docs []inventoryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode inventory documents: %w", err)
	}
	out := make([]model.Inventory, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model())
	}
	return out, nil
}

func (r *MongoInventoryRepo) Update(ctx context.Context, id string, inv model.Inventory) (model.Inventory, error) {
	oid, err := parseDocumentID(id)
	if err != nil {
		return model.Inventory{}, err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": toInventoryDoc(inv)})
	if err != nil {
		return model.Inventory{}, fmt.Errorf("update inventory document: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.Inventory{}, ErrNotFound
	}
	inv.ID = oid.Hex()
	return inv, nil
}

func (r *MongoInventoryRepo) Delete(ctx context.Context, id string) error {
	oid, err := parseDocumentID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete inventory document: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
