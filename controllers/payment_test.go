package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fastfare/models"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeGateway struct {
	secret string
	err    error
	amount int64
}

func (g *fakeGateway) CreateIntent(amount int64) (string, error) {
	g.amount = amount
	return g.secret, g.err
}

func TestCreatePaymentIntent(t *testing.T) {
	gateway := &fakeGateway{secret: "cs_test_123"}
	pc := &PaymentController{PaymentCollection: &fakeCollection{}, ParcelCollection: &fakeCollection{}, Gateway: gateway}

	req := httptest.NewRequest("POST", "/create-payment-intent", bytes.NewBufferString(`{"amount":50000}`))
	rec := httptest.NewRecorder()
	pc.CreatePaymentIntent(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "cs_test_123", resp["clientSecret"])
	assert.Equal(t, int64(50000), gateway.amount)
}

func TestCreatePaymentIntentErrors(t *testing.T) {
	pc := &PaymentController{PaymentCollection: &fakeCollection{}, ParcelCollection: &fakeCollection{},
		Gateway: &fakeGateway{err: errors.New("gateway down")}}

	req := httptest.NewRequest("POST", "/create-payment-intent", bytes.NewBufferString(`{"amount":0}`))
	rec := httptest.NewRecorder()
	pc.CreatePaymentIntent(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest("POST", "/create-payment-intent", bytes.NewBufferString(`{"amount":500}`))
	rec = httptest.NewRecorder()
	pc.CreatePaymentIntent(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMarkParcelPaid(t *testing.T) {
	parcelID := primitive.NewObjectID()
	parcels := &fakeCollection{docs: []bson.M{
		{"_id": parcelID, "created_by": "u@x.com", "payment_status": models.PaymentStatusUnpaid},
	}}
	payments := &fakeCollection{}
	pc := &PaymentController{PaymentCollection: payments, ParcelCollection: parcels, Gateway: &fakeGateway{}}

	body := fmt.Sprintf(`{"parcelId":%q,"userEmail":"u@x.com","amount":500,"transactionId":"tx1"}`, parcelID.Hex())
	req := httptest.NewRequest("POST", "/payments", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	pc.MarkParcelPaid(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.PaymentStatusPaid, parcels.docs[0]["payment_status"])
	require.Len(t, payments.docs, 1)
	assert.Equal(t, float64(500), payments.docs[0]["amount"])
	assert.Equal(t, "u@x.com", payments.docs[0]["userEmail"])
	assert.Equal(t, "tx1", payments.docs[0]["transactionId"])

	// Paying the same parcel again neither flips anything nor appends a second entry
	req = httptest.NewRequest("POST", "/payments", bytes.NewBufferString(body))
	rec = httptest.NewRecorder()
	pc.MarkParcelPaid(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, payments.docs, 1)
}

func TestMarkParcelPaidValidation(t *testing.T) {
	pc := &PaymentController{PaymentCollection: &fakeCollection{}, ParcelCollection: &fakeCollection{}, Gateway: &fakeGateway{}}

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"missing fields", `{"parcelId":"abc"}`, http.StatusBadRequest},
		{"malformed parcel id", `{"parcelId":"zzz","userEmail":"u@x.com","amount":500,"transactionId":"tx1"}`, http.StatusBadRequest},
		{"absent parcel", fmt.Sprintf(`{"parcelId":%q,"userEmail":"u@x.com","amount":500,"transactionId":"tx1"}`,
			primitive.NewObjectID().Hex()), http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/payments", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			pc.MarkParcelPaid(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestGetUserPayments(t *testing.T) {
	payments := &fakeCollection{docs: []bson.M{
		{"_id": primitive.NewObjectID(), "parcelId": "p1", "userEmail": "u@x.com", "amount": float64(500), "transactionId": "tx1"},
		{"_id": primitive.NewObjectID(), "parcelId": "p2", "userEmail": "v@x.com", "amount": float64(700), "transactionId": "tx2"},
	}}
	pc := &PaymentController{PaymentCollection: payments, ParcelCollection: &fakeCollection{}, Gateway: &fakeGateway{}}

	req := httptest.NewRequest("GET", "/payments/user/u@x.com", nil)
	req = mux.SetURLVars(req, map[string]string{"email": "u@x.com"})
	rec := httptest.NewRecorder()
	pc.GetUserPayments(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var results []models.Payment
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&results))
	require.Len(t, results, 1)
	assert.Equal(t, float64(500), results[0].Amount)
	assert.Equal(t, "u@x.com", results[0].UserEmail)
}

func TestGetAllPaymentsNewestFirst(t *testing.T) {
	base := time.Now()
	payments := &fakeCollection{docs: []bson.M{
		{"_id": primitive.NewObjectID(), "parcelId": "p1", "userEmail": "u@x.com", "amount": float64(500), "transactionId": "tx1", "paid_at": base.Add(-time.Hour)},
		{"_id": primitive.NewObjectID(), "parcelId": "p2", "userEmail": "v@x.com", "amount": float64(700), "transactionId": "tx2", "paid_at": base},
	}}
	pc := &PaymentController{PaymentCollection: payments, ParcelCollection: &fakeCollection{}, Gateway: &fakeGateway{}}

	req := httptest.NewRequest("GET", "/payments", nil)
	rec := httptest.NewRecorder()
	pc.GetAllPayments(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var results []models.Payment
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&results))
	require.Len(t, results, 2)
	assert.Equal(t, "tx2", results[0].TransactionID, "most recent payment comes first")
	assert.Equal(t, "tx1", results[1].TransactionID)
}

func TestMarkParcelPaidProbeFailure(t *testing.T) {
	// The paid flip matches nothing and the follow-up parcel lookup blows up:
	// that is a store failure, not an already-paid parcel
	parcels := &fakeCollection{findErr: errors.New("connection reset")}
	pc := &PaymentController{PaymentCollection: &fakeCollection{}, ParcelCollection: parcels, Gateway: &fakeGateway{}}

	body := fmt.Sprintf(`{"parcelId":%q,"userEmail":"u@x.com","amount":500,"transactionId":"tx1"}`, primitive.NewObjectID().Hex())
	req := httptest.NewRequest("POST", "/payments", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	pc.MarkParcelPaid(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
