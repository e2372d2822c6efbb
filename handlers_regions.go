package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"bloomwatch/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// handleCreateRegion saves a point of interest for the current user.
func (a *App) handleCreateRegion(w http.ResponseWriter, r *http.Request) {
	uid := mustUserID(r)

	var req createRegionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Name) == "" || req.Latitude == nil || req.Longitude == nil {
		http.Error(w, "name, latitude and longitude are required", http.StatusBadRequest)
		return
	}
	if *req.Latitude < -90 || *req.Latitude > 90 || *req.Longitude < -180 || *req.Longitude > 180 {
		http.Error(w, "latitude/longitude out of range", http.StatusBadRequest)
		return
	}

	reg := models.Region{
		OwnerID:   uid,
		Name:      req.Name,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		ROIDeg:    defaultROIDeg,
		Notes:     req.Notes,
		CreatedAt: time.Now(),
		Status:    models.RegionStatusNew,
	}
	if req.ROIDeg != nil && *req.ROIDeg > 0 {
		reg.ROIDeg = *req.ROIDeg
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	res, err := a.regions.InsertOne(ctx, &reg)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	reg.ID = res.InsertedID.(primitive.ObjectID)
	writeJSON(w, reg)
}

// handleListRegions returns the current user's saved regions.
func (a *App) handleListRegions(w http.ResponseWriter, r *http.Request) {
	uid := mustUserID(r)
	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	cur, err := a.regions.Find(ctx, bson.M{"ownerId": uid}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	var out []models.Region
	if err := cur.All(ctx, &out); err != nil {
		http.Error(w, "decode error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, out)
}

// handleGetRegion returns a region with its latest stored analysis injected.
func (a *App) handleGetRegion(w http.ResponseWriter, r *http.Request) {
	uid := mustUserID(r)
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var reg models.Region
	if err := a.regions.FindOne(ctx, bson.M{"_id": oid, "ownerId": uid}).Decode(&reg); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	var latest models.Analysis
	err = a.reports.FindOne(ctx,
		bson.M{"regionId": oid},
		options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	).Decode(&latest)
	if err == nil {
		reg.LatestAnalysis = &latest
	}
	writeJSON(w, reg)
}

// handleUpdateRegion updates name/coordinates/notes if provided.
func (a *App) handleUpdateRegion(w http.ResponseWriter, r *http.Request) {
	uid := mustUserID(r)
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}

	var req createRegionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	set := bson.M{}
	if req.Name != "" {
		set["name"] = req.Name
	}
	if req.Latitude != nil {
		if *req.Latitude < -90 || *req.Latitude > 90 {
			http.Error(w, "latitude out of range", http.StatusBadRequest)
			return
		}
		set["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		if *req.Longitude < -180 || *req.Longitude > 180 {
			http.Error(w, "longitude out of range", http.StatusBadRequest)
			return
		}
		set["longitude"] = *req.Longitude
	}
	if req.ROIDeg != nil && *req.ROIDeg > 0 {
		set["roiSizeDegrees"] = *req.ROIDeg
	}
	if req.Notes != "" {
		set["notes"] = req.Notes
	}
	if len(set) == 0 {
		http.Error(w, "nothing to update", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	res := a.regions.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid, "ownerId": uid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var out models.Region
	if err := res.Decode(&out); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, out)
}

// handleDeleteRegion removes a region and its stored analyses.
func (a *App) handleDeleteRegion(w http.ResponseWriter, r *http.Request) {
	uid := mustUserID(r)
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := a.regions.DeleteOne(ctx, bson.M{"_id": oid, "ownerId": uid})
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	_, _ = a.reports.DeleteMany(ctx, bson.M{"regionId": oid})
	writeJSON(w, bson.M{"ok": true})
}

// handleAnalyzeRegion runs the analysis pipeline for a saved region and
// persists the resulting report under a fresh operation id.
func (a *App) handleAnalyzeRegion(w http.ResponseWriter, r *http.Request) {
	uid := mustUserID(r)
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}

	var req analyzeRegionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 90*time.Second)
	defer cancel()

	var reg models.Region
	if err := a.regions.FindOne(ctx, bson.M{"_id": oid, "ownerId": uid}).Decode(&reg); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	rr := regionReq{
		Latitude:  reg.Latitude,
		Longitude: reg.Longitude,
		ROIDeg:    reg.ROIDeg,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if rr.EndDate == "" {
		rr.EndDate = time.Now().UTC().Format("2006-01-02")
	}

	doc := models.Analysis{
		OperationID: uuid.NewString(),
		RegionID:    reg.ID,
		OwnerID:     uid,
		Status:      models.RegionStatusProcessing,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	series, err := a.fetchSeries(ctx, &rr)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	doc.StartDate = rr.StartDate
	doc.EndDate = rr.EndDate

	report, formatted, err := a.runAnalysis(ctx, series, req.Threshold, req.FutureSteps, req.LookBack)
	switch {
	case err != nil:
		msg := err.Error()
		doc.Status = models.RegionStatusError
		doc.ErrorMessage = msg
	case report == nil:
		doc.Status = models.RegionStatusError
		doc.ErrorMessage = "No NDVI data available"
	default:
		doc.Status = models.RegionStatusReady
		doc.Report = report
		doc.Formatted = formatted
	}

	if _, err := a.reports.InsertOne(ctx, &doc); err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	_, _ = a.regions.UpdateOne(ctx,
		bson.M{"_id": reg.ID},
		bson.M{"$set": bson.M{"status": doc.Status}},
	)

	if doc.Status == models.RegionStatusError {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(doc)
		return
	}
	writeJSON(w, doc)
}
