package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/petalworks/storefront/internal/catalog"
	"github.com/petalworks/storefront/internal/order"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements OrderStore against a MongoDB collection keyed by
// order ID.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates an OrderStore backed by the given collection.
func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// orderDoc is the persistence model. Money is stored as strings so decimal
// values round-trip exactly.
type orderDoc struct {
	ID             string         `bson:"_id"`
	StoreID        int64          `bson:"store_id"`
	Items          []itemDoc      `bson:"items"`
	Total          string         `bson:"total"`
	Customer       order.Customer `bson:"customer"`
	Payment        string         `bson:"payment"`
	ProofURL       string         `bson:"proof_url,omitempty"`
	Status         string         `bson:"status"`
	TrackingNumber string         `bson:"tracking_number,omitempty"`
	CreatedAt      time.Time      `bson:"created_at"`
}

type itemDoc struct {
	ProductID int64            `bson:"product_id"`
	Name      string           `bson:"name"`
	UnitPrice string           `bson:"unit_price"`
	Quantity  int32            `bson:"quantity"`
	Image     catalog.ImageRef `bson:"image"`
}

// Put writes the order record under its ID. The write is an upsert, so a
// retried checkout with the same ID is idempotent at the store level.
func (s *MongoStore) Put(ctx context.Context, o *order.Order) error {
	doc := toDoc(o)
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts); err != nil {
		return fmt.Errorf("failed to write order %s: %w", o.ID, err)
	}
	return nil
}

// FindByID retrieves a single order by its identifier.
// Returns order.ErrNotFound if no order exists with the given ID.
func (s *MongoStore) FindByID(ctx context.Context, id string) (*order.Order, error) {
	var doc orderDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, order.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find order %s: %w", id, err)
	}
	return fromDoc(&doc)
}

func toDoc(o *order.Order) *orderDoc {
	items := make([]itemDoc, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, itemDoc{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice.String(),
			Quantity:  it.Quantity,
			Image:     it.Image,
		})
	}
	return &orderDoc{
		ID:             o.ID,
		StoreID:        o.StoreID,
		Items:          items,
		Total:          o.Total.String(),
		Customer:       o.Customer,
		Payment:        string(o.Payment),
		ProofURL:       o.ProofURL,
		Status:         string(o.Status),
		TrackingNumber: o.TrackingNumber,
		CreatedAt:      o.CreatedAt,
	}
}

func fromDoc(doc *orderDoc) (*order.Order, error) {
	total, err := decimal.NewFromString(doc.Total)
	if err != nil {
		return nil, fmt.Errorf("order %s has malformed total %q: %w", doc.ID, doc.Total, err)
	}
	items := make([]order.Item, 0, len(doc.Items))
	for _, it := range doc.Items {
		price, err := decimal.NewFromString(it.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("order %s has malformed unit price %q: %w", doc.ID, it.UnitPrice, err)
		}
		items = append(items, order.Item{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: price,
			Quantity:  it.Quantity,
			Image:     it.Image,
		})
	}
	return &order.Order{
		ID:             doc.ID,
		StoreID:        doc.StoreID,
		Items:          items,
		Total:          total,
		Customer:       doc.Customer,
		Payment:        order.PaymentMethod(doc.Payment),
		ProofURL:       doc.ProofURL,
		Status:         order.Status(doc.Status),
		TrackingNumber: doc.TrackingNumber,
		CreatedAt:      doc.CreatedAt,
	}, nil
}
