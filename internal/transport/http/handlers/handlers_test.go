package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ivankudzin/tailmates/internal/domain/enums"
	"github.com/ivankudzin/tailmates/internal/domain/model"
	"github.com/ivankudzin/tailmates/internal/repo/memory"
	authsvc "github.com/ivankudzin/tailmates/internal/services/auth"
	discoverysvc "github.com/ivankudzin/tailmates/internal/services/discovery"
	likessvc "github.com/ivankudzin/tailmates/internal/services/likes"
	matchessvc "github.com/ivankudzin/tailmates/internal/services/matches"
	petssvc "github.com/ivankudzin/tailmates/internal/services/pets"
	swipesvc "github.com/ivankudzin/tailmates/internal/services/swipes"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
}

type testEnv struct {
	store  *memory.Store
	router chi.Router
	rex    model.Pet
	tom    model.Pet
}

type rateLimiterStub struct{}

func (rateLimiterStub) AllowSwipe(context.Context, int64) (int64, bool, error) {
	return 4, false, nil
}

func newTestEnv(t *testing.T, limiter swipesvc.RateLimiter) *testEnv {
	t.Helper()

	store := memory.NewStore()
	store.PutAccount(model.Account{ID: 1, Role: enums.RoleCustomer})
	store.PutAccount(model.Account{ID: 2, Role: enums.RoleCustomer})

	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	mk := func(owner int64, name string, offset time.Duration) model.Pet {
		pet, err := store.Pets().Create(context.Background(), model.Pet{
			ID: uuid.New(), OwnerAccountID: owner, Name: name, Species: enums.SpeciesDog, CreatedAt: now.Add(offset),
		})
		if err != nil {
			t.Fatalf("create pet: %v", err)
		}
		return pet
	}

	pets := petssvc.NewService(store.Pets())
	matches := matchessvc.NewService(matchessvc.Dependencies{
		Likes:   store.Interactions(),
		Matches: store.Matches(),
		Pets:    pets,
	})
	swipes := swipesvc.NewService(swipesvc.Dependencies{
		Interactions: store.Interactions(),
		Pets:         pets,
		Reconciler:   matches,
		RateLimiter:  limiter,
	})

	swipeHandler := NewSwipeHandler(swipes)
	petsHandler := NewPetsHandler(pets)
	discoveryHandler := NewDiscoveryHandler(discoverysvc.NewService(store.Discovery(), pets))
	matchesHandler := NewMatchesHandler(matches)
	likesHandler := NewLikesHandler(likessvc.NewService(store.Likes(), pets))
	adminHandler := NewAdminHandler(matches, nil)

	r := chi.NewRouter()
	r.Use(testIdentity)
	r.Post("/v1/swipes", swipeHandler.Handle)
	r.Post("/v1/pets", petsHandler.Create)
	r.Get("/v1/pets", petsHandler.List)
	r.Get("/v1/pets/{pet_id}/discovery", discoveryHandler.Handle)
	r.Get("/v1/pets/{pet_id}/matches", matchesHandler.Handle)
	r.Get("/v1/pets/{pet_id}/likes/received", likesHandler.Received)
	r.Get("/v1/pets/{pet_id}/likes/sent", likesHandler.Sent)
	r.Post("/v1/admin/reconcile", adminHandler.Reconcile)

	return &testEnv{
		store:  store,
		router: r,
		rex:    mk(1, "Rex", 0),
		tom:    mk(2, "Tom", time.Second),
	}
}

// testIdentity reads the account id from X-Test-Account; absent means anonymous.
func testIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("X-Test-Account") {
		case "1":
			r = r.WithContext(authsvc.WithIdentity(r.Context(), authsvc.Identity{AccountID: 1, Role: enums.RoleCustomer}))
		case "2":
			r = r.WithContext(authsvc.WithIdentity(r.Context(), authsvc.Identity{AccountID: 2, Role: enums.RoleCustomer}))
		}
		next.ServeHTTP(w, r)
	})
}

func (e *testEnv) do(t *testing.T, method, path, account string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if account != "" {
		req.Header.Set("X-Test-Account", account)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)

	var env envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body=%s)", err, rr.Body.String())
	}
	return rr, env
}

func swipeBody(actor, target uuid.UUID, action string) map[string]string {
	return map[string]string{
		"actor_pet_id":  actor.String(),
		"target_pet_id": target.String(),
		"action":        action,
	}
}

func TestSwipeFlowProducesMatch(t *testing.T) {
	e := newTestEnv(t, nil)

	rr, env := e.do(t, http.MethodPost, "/v1/swipes", "1", swipeBody(e.rex.ID, e.tom.ID, "LIKE"))
	if rr.Code != http.StatusOK || !env.Success {
		t.Fatalf("unexpected first swipe response: %d %+v", rr.Code, env)
	}

	rr, env = e.do(t, http.MethodPost, "/v1/swipes", "2", swipeBody(e.tom.ID, e.rex.ID, "like"))
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected second swipe status: %d", rr.Code)
	}
	var data struct {
		IsMatch bool `json:"is_match"`
		Match   *struct {
			ID      string `json:"id"`
			PetLow  string `json:"pet_low"`
			PetHigh string `json:"pet_high"`
		} `json:"match"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode swipe data: %v", err)
	}
	if !data.IsMatch || data.Match == nil || data.Match.PetLow >= data.Match.PetHigh {
		t.Fatalf("unexpected swipe data: %+v", data)
	}

	rr, env = e.do(t, http.MethodGet, "/v1/pets/"+e.rex.ID.String()+"/matches", "1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected matches status: %d", rr.Code)
	}
	var list struct {
		Items []struct {
			ID      string `json:"id"`
			Partner struct {
				ID string `json:"id"`
			} `json:"partner"`
		} `json:"items"`
	}
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("decode matches: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].Partner.ID != e.tom.ID.String() {
		t.Fatalf("unexpected matches: %+v", list)
	}
}

func TestSwipeErrorTaxonomy(t *testing.T) {
	e := newTestEnv(t, nil)

	if rr, env := e.do(t, http.MethodPost, "/v1/swipes", "1", swipeBody(e.rex.ID, e.tom.ID, "PASS")); rr.Code != http.StatusOK {
		t.Fatalf("seed swipe failed: %d %+v", rr.Code, env)
	}

	cases := []struct {
		name    string
		account string
		body    any
		status  int
		code    string
	}{
		{name: "anonymous", account: "", body: swipeBody(e.rex.ID, e.tom.ID, "LIKE"), status: http.StatusUnauthorized, code: "UNAUTHORIZED"},
		{name: "duplicate", account: "1", body: swipeBody(e.rex.ID, e.tom.ID, "LIKE"), status: http.StatusConflict, code: "DUPLICATE_INTERACTION"},
		{name: "foreign actor", account: "2", body: swipeBody(e.rex.ID, e.tom.ID, "LIKE"), status: http.StatusForbidden, code: "FORBIDDEN"},
		{name: "invalid action", account: "2", body: swipeBody(e.tom.ID, e.rex.ID, "SUPERLIKE"), status: http.StatusBadRequest, code: "INVALID_ACTION"},
		{name: "missing target", account: "2", body: swipeBody(e.tom.ID, uuid.New(), "LIKE"), status: http.StatusNotFound, code: "NOT_FOUND"},
		{name: "bad uuid", account: "2", body: map[string]string{"actor_pet_id": "x", "target_pet_id": "y", "action": "LIKE"}, status: http.StatusBadRequest, code: "VALIDATION_ERROR"},
		{name: "unknown field", account: "2", body: map[string]string{"actor": "x"}, status: http.StatusBadRequest, code: "VALIDATION_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr, env := e.do(t, http.MethodPost, "/v1/swipes", tc.account, tc.body)
			if rr.Code != tc.status || env.Code != tc.code || env.Success {
				t.Fatalf("unexpected response: status=%d env=%+v", rr.Code, env)
			}
			if env.Message == "" {
				t.Fatalf("error responses must carry a message")
			}
		})
	}
}

func TestSwipeRateLimitedReturnsRetryAfter(t *testing.T) {
	e := newTestEnv(t, rateLimiterStub{})

	rr, env := e.do(t, http.MethodPost, "/v1/swipes", "1", swipeBody(e.rex.ID, e.tom.ID, "LIKE"))
	if rr.Code != http.StatusTooManyRequests || env.Code != "TOO_FAST" {
		t.Fatalf("unexpected response: %d %+v", rr.Code, env)
	}
	if rr.Header().Get("Retry-After") != "4" {
		t.Fatalf("unexpected Retry-After header: %q", rr.Header().Get("Retry-After"))
	}
}

func TestDiscoveryAndLikesEndpoints(t *testing.T) {
	e := newTestEnv(t, nil)

	rr, env := e.do(t, http.MethodGet, "/v1/pets/"+e.tom.ID.String()+"/discovery?species=dog&limit=5", "2", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected discovery status: %d %+v", rr.Code, env)
	}
	var page struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("decode discovery: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != e.rex.ID.String() {
		t.Fatalf("unexpected discovery items: %+v", page.Items)
	}

	if rr, _ := e.do(t, http.MethodPost, "/v1/swipes", "1", swipeBody(e.rex.ID, e.tom.ID, "LIKE")); rr.Code != http.StatusOK {
		t.Fatalf("swipe failed: %d", rr.Code)
	}

	rr, env = e.do(t, http.MethodGet, "/v1/pets/"+e.tom.ID.String()+"/likes/received", "2", nil)
	if rr.Code != http.StatusOK || !bytes.Contains(env.Data, []byte(e.rex.ID.String())) {
		t.Fatalf("expected rex in tom's received likes: %d %s", rr.Code, env.Data)
	}
	rr, env = e.do(t, http.MethodGet, "/v1/pets/"+e.rex.ID.String()+"/likes/sent", "1", nil)
	if rr.Code != http.StatusOK || !bytes.Contains(env.Data, []byte(e.tom.ID.String())) {
		t.Fatalf("expected tom in rex's sent likes: %d %s", rr.Code, env.Data)
	}

	rr, env = e.do(t, http.MethodGet, "/v1/pets/"+e.rex.ID.String()+"/likes/sent", "2", nil)
	if rr.Code != http.StatusForbidden || env.Code != "FORBIDDEN" {
		t.Fatalf("expected forbidden for foreign pet: %d %+v", rr.Code, env)
	}
	rr, env = e.do(t, http.MethodGet, "/v1/pets/not-a-uuid/discovery", "1", nil)
	if rr.Code != http.StatusBadRequest || env.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation error for bad pet id: %d %+v", rr.Code, env)
	}
	rr, env = e.do(t, http.MethodGet, "/v1/pets/"+e.rex.ID.String()+"/discovery?cursor=@@", "1", nil)
	if rr.Code != http.StatusBadRequest || env.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation error for bad cursor: %d %+v", rr.Code, env)
	}
}

func TestPetsEndpoints(t *testing.T) {
	e := newTestEnv(t, nil)

	rr, env := e.do(t, http.MethodPost, "/v1/pets", "1", map[string]string{"name": "Bun", "species": "rabbit", "city": "Minsk"})
	if rr.Code != http.StatusCreated || !env.Success {
		t.Fatalf("unexpected create response: %d %+v", rr.Code, env)
	}

	rr, env = e.do(t, http.MethodPost, "/v1/pets", "1", map[string]string{"name": "Bun", "species": "unicorn"})
	if rr.Code != http.StatusBadRequest || env.Code != "VALIDATION_ERROR" {
		t.Fatalf("unexpected invalid create response: %d %+v", rr.Code, env)
	}

	rr, env = e.do(t, http.MethodGet, "/v1/pets", "1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected list status: %d", rr.Code)
	}
	var list struct {
		Items []struct {
			Name string `json:"name"`
		} `json:"items"`
	}
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("decode pets: %v", err)
	}
	if len(list.Items) != 2 {
		t.Fatalf("expected Rex and Bun, got %+v", list.Items)
	}
}

func TestAdminReconcile(t *testing.T) {
	e := newTestEnv(t, nil)
	ctx := context.Background()

	for _, pair := range [][2]uuid.UUID{{e.rex.ID, e.tom.ID}, {e.tom.ID, e.rex.ID}} {
		if _, err := e.store.Interactions().Create(ctx, model.Interaction{ActorPetID: pair[0], TargetPetID: pair[1], Action: enums.SwipeActionLike}); err != nil {
			t.Fatalf("seed like: %v", err)
		}
	}

	rr, env := e.do(t, http.MethodPost, "/v1/admin/reconcile?batch=10", "1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected reconcile status: %d %+v", rr.Code, env)
	}
	var data struct {
		Created int `json:"created"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode reconcile: %v", err)
	}
	if data.Created != 1 || e.store.MatchCount(e.rex.ID, e.tom.ID) != 1 {
		t.Fatalf("expected one reconciled match, got %d", data.Created)
	}
}

func TestWriteServiceErrorHidesInternalDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	writeServiceError(rr, errors.New("pq: connection refused to 10.0.0.5"), "failed to process swipe")

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	if bytes.Contains(rr.Body.Bytes(), []byte("10.0.0.5")) {
		t.Fatalf("internal error text leaked: %s", rr.Body.String())
	}
}
