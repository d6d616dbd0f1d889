package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/karimelbaz/photodesk-backend/internal/staff"
	"github.com/karimelbaz/photodesk-backend/pkg/enums"
	pkgerrors "github.com/karimelbaz/photodesk-backend/pkg/errors"
	"github.com/karimelbaz/photodesk-backend/pkg/logger"
)

type stubStaffService struct {
	resp *staff.LoginResponse
	temp string
	err  error
}

func (s stubStaffService) Login(context.Context, staff.LoginRequest) (*staff.LoginResponse, error) {
	return s.resp, s.err
}

func (s stubStaffService) ResetPassword(context.Context, uuid.UUID) (string, error) {
	return s.temp, s.err
}

func TestStaffLoginSuccess(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test"})
	resp := &staff.LoginResponse{
		AccessToken: "token",
		StaffID:     uuid.New(),
		Name:        "Karim",
		Role:        enums.StaffRoleStaff,
		BranchID:    uuid.New(),
	}
	handler := StaffLogin(stubStaffService{resp: resp}, logg)

	body, _ := json.Marshal(map[string]string{
		"email":    "karim@example.com",
		"password": "supersecret1",
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Success || envelope.Data.AccessToken != "token" {
		t.Fatalf("unexpected envelope: %s", rec.Body.String())
	}
}

func TestStaffLoginRejectsBadPayload(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test"})
	handler := StaffLogin(stubStaffService{}, logg)

	body := []byte(`{"email":"not-an-email","password":"short"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestStaffLoginMapsServiceError(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test"})
	handler := StaffLogin(stubStaffService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}, logg)

	body, _ := json.Marshal(map[string]string{
		"email":    "karim@example.com",
		"password": "wrongpassword",
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Success || envelope.Message != "invalid credentials" {
		t.Fatalf("unexpected envelope: %s", rec.Body.String())
	}
}
