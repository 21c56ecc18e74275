package databases

// go generate: mockery --name XPRecordDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guildline/engage-api/models"
)

const xpRecordName = "xpRecords"

// XPRecordDatabase contains the methods to use with the xp record database
type XPRecordDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.XPRecord, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.XPRecord, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	IncrementXP(ctx context.Context, communityID, userID string, amount int64) (*models.XPRecord, error)
}

type xpRecordDatabase struct {
	db DatabaseHelper
}

// NewXPRecordDatabase initializes a new instance of xp record database with the provided db connection
func NewXPRecordDatabase(db DatabaseHelper) XPRecordDatabase {
	return &xpRecordDatabase{
		db: db,
	}
}

func (c *xpRecordDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.XPRecord, error) {
	record := &models.XPRecord{}
	err := c.db.Collection(xpRecordName).FindOne(ctx, filter, opts...).Decode(&record)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (c *xpRecordDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.XPRecord, error) {
	var records []models.XPRecord
	cur := c.db.Collection(xpRecordName).Find(ctx, filter, opts...)
	err := cur.Decode(&records)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (c *xpRecordDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(xpRecordName).CountDocuments(ctx, filter, opts...)
}

// IncrementXP atomically adds amount to the member's total, creating the
// record on first award. The post-increment document is returned so the
// caller can derive the level from the new total without a second read.
func (c *xpRecordDatabase) IncrementXP(ctx context.Context, communityID, userID string, amount int64) (*models.XPRecord, error) {
	now := time.Now().UTC()
	filter := bson.M{"communityId": communityID, "userId": userID}
	update := bson.M{
		"$inc":         bson.M{"xp": amount},
		"$set":         bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{"communityId": communityID, "userId": userID, "createdAt": now},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	record := &models.XPRecord{}
	err := c.db.Collection(xpRecordName).FindOneAndUpdate(ctx, filter, update, opts).Decode(&record)
	if err != nil {
		return nil, err
	}
	return record, nil
}
