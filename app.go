package main

import (
	"context"

	"bloomwatch/nasa"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type App struct {
	cfg     Config
	nasa    *nasa.Service
	mongo   *mongo.Client
	db      *mongo.Database
	users   *mongo.Collection
	regions *mongo.Collection
	reports *mongo.Collection
}

func newApp(ctx context.Context, cfg Config) (*App, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.MongoDB)

	app := &App{
		cfg: cfg,
		nasa: nasa.NewService(nasa.Config{
			ORNLBaseURL: cfg.ORNLBaseURL,
			CMRBaseURL:  cfg.CMRBaseURL,
			GIBSBaseURL: cfg.GIBSBaseURL,
		}),
		mongo:   client,
		db:      db,
		users:   db.Collection("users"),
		regions: db.Collection("regions"),
		reports: db.Collection("reports"),
	}
	// Indexes
	if _, err := app.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return nil, err
	}
	if _, err := app.regions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}},
	}); err != nil {
		return nil, err
	}
	if _, err := app.reports.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "regionId", Value: 1}, {Key: "created_at", Value: -1}},
	}); err != nil {
		return nil, err
	}

	return app, nil
}

func (a *App) close(ctx context.Context) { _ = a.mongo.Disconnect(ctx) }
