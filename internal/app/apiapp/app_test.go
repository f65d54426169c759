package apiapp

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ivankudzin/tailmates/internal/config"
	"github.com/ivankudzin/tailmates/internal/domain/enums"
	authsvc "github.com/ivankudzin/tailmates/internal/services/auth"
)

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Code    string          `json:"code"`
}

type apiClient struct {
	t       *testing.T
	handler http.Handler
	jwt     *authsvc.JWTManager
}

func newMemoryApp(t *testing.T) *apiClient {
	t.Helper()

	cfg := config.Default()
	cfg.Storage.Driver = config.StorageDriverMemory
	cfg.Redis.Addr = ""
	cfg.Auth.JWTSecret = "test-secret"

	app, err := New(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() {
		_ = app.Shutdown(context.Background())
	})

	return &apiClient{
		t:       t,
		handler: app.Handler(),
		jwt:     authsvc.NewJWTManager(cfg.Auth.JWTSecret, time.Hour),
	}
}

func (c *apiClient) do(method, path string, accountID int64, role enums.Role, body any) (int, apiEnvelope) {
	c.t.Helper()

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			c.t.Fatalf("marshal body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if accountID > 0 {
		token, _, err := c.jwt.GenerateAccessToken(accountID, role)
		if err != nil {
			c.t.Fatalf("generate token: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	c.handler.ServeHTTP(rr, req)

	var env apiEnvelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		c.t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return rr.Code, env
}

func (c *apiClient) createPet(accountID int64, name string) string {
	c.t.Helper()

	status, env := c.do(http.MethodPost, "/v1/pets", accountID, enums.RoleCustomer, map[string]string{
		"name":    name,
		"species": "dog",
	})
	if status != http.StatusCreated {
		c.t.Fatalf("create pet: status %d code %s", status, env.Code)
	}
	var pet struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &pet); err != nil {
		c.t.Fatalf("decode pet: %v", err)
	}
	return pet.ID
}

func TestHealthzIsPublic(t *testing.T) {
	c := newMemoryApp(t)

	status, env := c.do(http.MethodGet, "/healthz", 0, "", nil)
	if status != http.StatusOK || !env.Success {
		t.Fatalf("unexpected health response: %d %+v", status, env)
	}
}

func TestV1RequiresToken(t *testing.T) {
	c := newMemoryApp(t)

	status, env := c.do(http.MethodGet, "/v1/pets", 0, "", nil)
	if status != http.StatusUnauthorized || env.Code != "UNAUTHORIZED" {
		t.Fatalf("unexpected response: %d %s", status, env.Code)
	}
}

func TestManagerCannotSwipe(t *testing.T) {
	c := newMemoryApp(t)

	status, env := c.do(http.MethodPost, "/v1/swipes", 9, enums.RoleManager, map[string]string{
		"actor_pet_id":  "00000000-0000-0000-0000-000000000001",
		"target_pet_id": "00000000-0000-0000-0000-000000000002",
		"action":        "LIKE",
	})
	if status != http.StatusForbidden || env.Code != "FORBIDDEN" {
		t.Fatalf("unexpected response: %d %s", status, env.Code)
	}
}

func TestReciprocalLikesMatchThroughAPI(t *testing.T) {
	c := newMemoryApp(t)

	rex := c.createPet(1, "Rex")
	tom := c.createPet(2, "Tom")

	status, env := c.do(http.MethodPost, "/v1/swipes", 1, enums.RoleCustomer, map[string]string{
		"actor_pet_id": rex, "target_pet_id": tom, "action": "LIKE",
	})
	if status != http.StatusOK {
		t.Fatalf("first like: status %d code %s", status, env.Code)
	}

	status, env = c.do(http.MethodPost, "/v1/swipes", 2, enums.RoleCustomer, map[string]string{
		"actor_pet_id": tom, "target_pet_id": rex, "action": "LIKE",
	})
	if status != http.StatusOK {
		t.Fatalf("second like: status %d code %s", status, env.Code)
	}
	var swipe struct {
		IsMatch bool `json:"is_match"`
	}
	if err := json.Unmarshal(env.Data, &swipe); err != nil {
		t.Fatalf("decode swipe: %v", err)
	}
	if !swipe.IsMatch {
		t.Fatalf("expected match on reciprocal like")
	}

	status, env = c.do(http.MethodGet, "/v1/pets/"+rex+"/matches", 1, enums.RoleCustomer, nil)
	if status != http.StatusOK {
		t.Fatalf("list matches: status %d code %s", status, env.Code)
	}
	var matches struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(env.Data, &matches); err != nil {
		t.Fatalf("decode matches: %v", err)
	}
	if len(matches.Items) != 1 {
		t.Fatalf("expected one match, got %d", len(matches.Items))
	}

	status, env = c.do(http.MethodGet, "/v1/pets/"+rex+"/matches", 2, enums.RoleCustomer, nil)
	if status != http.StatusForbidden {
		t.Fatalf("foreign pet matches: status %d code %s", status, env.Code)
	}
}

func TestAdminReconcileRequiresCapability(t *testing.T) {
	c := newMemoryApp(t)

	status, _ := c.do(http.MethodPost, "/v1/admin/reconcile", 1, enums.RoleCustomer, nil)
	if status != http.StatusForbidden {
		t.Fatalf("customer reconcile: status %d", status)
	}

	status, env := c.do(http.MethodPost, "/v1/admin/reconcile", 3, enums.RoleManager, nil)
	if status != http.StatusOK {
		t.Fatalf("manager reconcile: status %d code %s", status, env.Code)
	}
}
