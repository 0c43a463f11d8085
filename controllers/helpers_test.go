package controllers

import (
	"context"
	"fastfare/middleware"
	"fastfare/utils"
	"net/http"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// withClaims attaches verified-identity claims the way AuthMiddleware does
func withClaims(r *http.Request, email, role string) *http.Request {
	claims := &utils.Claims{Email: email, Role: role}
	return r.WithContext(context.WithValue(r.Context(), middleware.UserContextKey, claims))
}

func asTime(t *testing.T, v interface{}) time.Time {
	t.Helper()
	switch tv := v.(type) {
	case time.Time:
		return tv
	case primitive.DateTime:
		return tv.Time()
	default:
		t.Fatalf("unexpected time type %T", v)
		return time.Time{}
	}
}
