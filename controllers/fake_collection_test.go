package controllers

import (
	"context"
	"reflect"
	"regexp"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fakeCollection is an in-memory Collection for handler tests. It supports
// the equality and regex filters the controllers actually build.
type fakeCollection struct {
	docs []bson.M

	findErr   error
	insertErr error
	updateErr error
	deleteErr error
}

func matches(doc bson.M, filter interface{}) bool {
	f, ok := filter.(bson.M)
	if !ok {
		return true
	}
	for key, want := range f {
		got := doc[key]
		switch w := want.(type) {
		case primitive.Regex:
			pattern := w.Pattern
			if w.Options == "i" {
				pattern = "(?i)" + pattern
			}
			s, _ := got.(string)
			if !regexp.MustCompile(pattern).MatchString(s) {
				return false
			}
		default:
			if !reflect.DeepEqual(got, want) {
				return false
			}
		}
	}
	return true
}

func docTime(v interface{}) time.Time {
	switch tv := v.(type) {
	case time.Time:
		return tv
	case primitive.DateTime:
		return tv.Time()
	default:
		return time.Time{}
	}
}

// applySort orders documents by a single time-valued sort key, the only
// sort shape the controllers build
func applySort(out []interface{}, sortSpec interface{}) {
	spec, ok := sortSpec.(bson.D)
	if !ok || len(spec) != 1 {
		return
	}
	key := spec[0].Key
	desc := false
	if dir, ok := spec[0].Value.(int); ok && dir < 0 {
		desc = true
	}
	sort.SliceStable(out, func(i, j int) bool {
		ti := docTime(out[i].(bson.M)[key])
		tj := docTime(out[j].(bson.M)[key])
		if desc {
			return ti.After(tj)
		}
		return ti.Before(tj)
	})
}

func (c *fakeCollection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	if c.findErr != nil {
		return nil, c.findErr
	}
	out := []interface{}{}
	for _, d := range c.docs {
		if matches(d, filter) {
			out = append(out, d)
		}
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if opt.Sort != nil {
			applySort(out, opt.Sort)
		}
		if opt.Limit != nil && int64(len(out)) > *opt.Limit {
			out = out[:*opt.Limit]
		}
	}
	return mongo.NewCursorFromDocuments(out, nil, nil)
}

func (c *fakeCollection) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult {
	if c.findErr != nil {
		return mongo.NewSingleResultFromDocument(bson.M{}, c.findErr, nil)
	}
	for _, d := range c.docs {
		if matches(d, filter) {
			return mongo.NewSingleResultFromDocument(d, nil, nil)
		}
	}
	return mongo.NewSingleResultFromDocument(bson.M{}, mongo.ErrNoDocuments, nil)
}

func (c *fakeCollection) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	if c.insertErr != nil {
		return nil, c.insertErr
	}
	raw, err := bson.Marshal(document)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if _, ok := doc["_id"]; !ok {
		doc["_id"] = primitive.NewObjectID()
	}
	c.docs = append(c.docs, doc)
	return &mongo.InsertOneResult{InsertedID: doc["_id"]}, nil
}

func (c *fakeCollection) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	if c.updateErr != nil {
		return nil, c.updateErr
	}
	for _, d := range c.docs {
		if matches(d, filter) {
			modified := int64(0)
			if u, ok := update.(bson.M); ok {
				if set, ok := u["$set"].(bson.M); ok {
					for k, v := range set {
						if !reflect.DeepEqual(d[k], v) {
							d[k] = v
							modified = 1
						}
					}
				}
			}
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: modified}, nil
		}
	}
	return &mongo.UpdateResult{}, nil
}

func (c *fakeCollection) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	if c.deleteErr != nil {
		return nil, c.deleteErr
	}
	for i, d := range c.docs {
		if matches(d, filter) {
			c.docs = append(c.docs[:i], c.docs[i+1:]...)
			return &mongo.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return &mongo.DeleteResult{}, nil
}
