package pagesadmin

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	errorsfeature "github.com/dalemusser/stratadocs/internal/app/features/errors"
	"github.com/dalemusser/stratadocs/internal/app/store/audit"
	pagestore "github.com/dalemusser/stratadocs/internal/app/store/pages"
	"github.com/dalemusser/stratadocs/internal/app/system/auditlog"
	"github.com/dalemusser/stratadocs/internal/domain/content"
	"github.com/dalemusser/stratadocs/internal/domain/models"
	"github.com/dalemusser/stratadocs/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	auditLogger := auditlog.New(audit.New(db), logger, auditlog.Config{Content: "db"})
	h := NewHandler(db, content.NewRegistry(logger), errorsfeature.NewErrorLogger(logger), auditLogger, logger)
	return h, db
}

func doJSON(t *testing.T, h *Handler, method, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	req = testutil.WithUser(req, testutil.EditorUser())
	rec := httptest.NewRecorder()
	Routes(h).ServeHTTP(rec, req)
	return rec
}

func TestCreatePage(t *testing.T) {
	h, _ := newTestHandler(t)

	t.Run("valid page", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/", map[string]any{
			"title": "  Getting Started  ",
			"slug":  "getting-started",
			"content": content.Document{Blocks: []content.Block{
				{Type: content.TypeParagraph, Data: json.RawMessage(`{"text":"hello"}`)},
			}},
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d. Body: %s", rec.Code, http.StatusCreated, rec.Body.String())
		}

		var created models.Page
		if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if created.ID == "" {
			t.Error("created page should have an id")
		}
		if created.Title != "Getting Started" {
			t.Errorf("title = %q, want trimmed title", created.Title)
		}
		if created.Status != models.StatusDraft {
			t.Errorf("status = %q, want default draft", created.Status)
		}
		if created.Visibility != models.VisibilityPublic {
			t.Errorf("visibility = %q, want default public", created.Visibility)
		}
	})

	t.Run("missing title", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/", map[string]any{"slug": "no-title"})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("invalid slug", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/", map[string]any{
			"title": "Bad Slug", "slug": "Not A Slug!",
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("reserved root slug", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/", map[string]any{
			"title": "Admin", "slug": "admin",
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("role restricted needs role", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/", map[string]any{
			"title": "Internal", "slug": "internal", "visibility": models.VisibilityRoleRestricted,
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("content and tabs are exclusive", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/", map[string]any{
			"title": "Both", "slug": "both",
			"content": content.Document{Blocks: []content.Block{
				{Type: content.TypeParagraph, Data: json.RawMessage(`{"text":"x"}`)},
			}},
			"tabs": []models.PageTab{
				{ID: "t1", Title: "Tab", Content: content.Document{Blocks: []content.Block{}}},
			},
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestCreatePage_SlugTakenAmongSiblings(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/", map[string]any{"title": "First", "slug": "guide"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("first create failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPost, "/", map[string]any{"title": "Second", "slug": "guide"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate sibling slug: status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	// The same slug under a different parent is fine.
	var parent models.Page
	rec = doJSON(t, h, http.MethodPost, "/", map[string]any{"title": "Parent", "slug": "parent"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("parent create failed: %d", rec.Code)
	}
	json.NewDecoder(rec.Body).Decode(&parent)

	rec = doJSON(t, h, http.MethodPost, "/", map[string]any{
		"title": "Nested Guide", "slug": "guide", "parentId": parent.ID,
	})
	if rec.Code != http.StatusCreated {
		t.Errorf("same slug under different parent: status = %d, want %d. Body: %s",
			rec.Code, http.StatusCreated, rec.Body.String())
	}
}

func TestCreatePage_DepthCap(t *testing.T) {
	h, _ := newTestHandler(t)

	parentID := ""
	var last models.Page
	for _, slug := range []string{"a", "b", "c"} {
		rec := doJSON(t, h, http.MethodPost, "/", map[string]any{
			"title": strings.ToUpper(slug), "slug": slug, "parentId": parentID,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %q failed: %d %s", slug, rec.Code, rec.Body.String())
		}
		json.NewDecoder(rec.Body).Decode(&last)
		parentID = last.ID
	}

	rec := doJSON(t, h, http.MethodPost, "/", map[string]any{
		"title": "Too Deep", "slug": "d", "parentId": parentID,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("fourth level: status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestPagePasswords(t *testing.T) {
	h, db := newTestHandler(t)
	store := pagestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	t.Run("short password rejected", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/", map[string]any{
			"title": "Locked", "slug": "locked-short", "password": "abc",
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	rec := doJSON(t, h, http.MethodPost, "/", map[string]any{
		"title": "Locked", "slug": "locked", "password": "opensesame",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password_hash") || strings.Contains(rec.Body.String(), "opensesame") {
		t.Error("password material must not appear in the response")
	}
	var created models.Page
	json.NewDecoder(rec.Body).Decode(&created)
	if !created.PasswordProtected {
		t.Error("page should be password protected")
	}

	t.Run("update carries hash forward", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPut, "/"+created.ID, map[string]any{
			"title": "Locked Renamed", "slug": "locked", "passwordProtected": true,
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
		}
		stored, err := store.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("load page: %v", err)
		}
		if !stored.PasswordProtected || stored.PasswordHash == "" {
			t.Error("update without password fields should keep the existing hash")
		}
	})

	t.Run("remove password", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPut, "/"+created.ID, map[string]any{
			"title": "Locked Renamed", "slug": "locked", "removePassword": true,
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
		}
		stored, err := store.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("load page: %v", err)
		}
		if stored.PasswordProtected || stored.PasswordHash != "" {
			t.Error("removePassword should clear protection and hash")
		}
	})
}

func TestDeletePage_Cascade(t *testing.T) {
	h, db := newTestHandler(t)
	store := pagestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	var root models.Page
	rec := doJSON(t, h, http.MethodPost, "/", map[string]any{"title": "Root", "slug": "root"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create root failed: %d", rec.Code)
	}
	json.NewDecoder(rec.Body).Decode(&root)

	var child models.Page
	rec = doJSON(t, h, http.MethodPost, "/", map[string]any{"title": "Child", "slug": "child", "parentId": root.ID})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create child failed: %d", rec.Code)
	}
	json.NewDecoder(rec.Body).Decode(&child)

	rec = doJSON(t, h, http.MethodPost, "/", map[string]any{"title": "Grandchild", "slug": "grandchild", "parentId": child.ID})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create grandchild failed: %d", rec.Code)
	}

	// An unrelated sibling must survive the cascade.
	rec = doJSON(t, h, http.MethodPost, "/", map[string]any{"title": "Other", "slug": "other"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create other failed: %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodDelete, "/"+root.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}
	var resp map[string]int64
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp["deleted"] != 3 {
		t.Errorf("deleted = %d, want 3", resp["deleted"])
	}

	remaining, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Slug != "other" {
		t.Errorf("remaining pages = %+v, want only the unrelated sibling", remaining)
	}

	t.Run("missing page", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodDelete, "/nope", nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}

func TestUnknownBlockTypesPassValidation(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/", map[string]any{
		"title": "Future", "slug": "future",
		"content": content.Document{Blocks: []content.Block{
			{Type: "holo-deck", Data: json.RawMessage(`{"anything":true}`)},
		}},
	})
	if rec.Code != http.StatusCreated {
		t.Errorf("unknown block type should pass validation: %d %s", rec.Code, rec.Body.String())
	}
}
