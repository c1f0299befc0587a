package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/joestump/pagegen/internal/api"
	"github.com/joestump/pagegen/internal/config"
	"github.com/joestump/pagegen/internal/generate"
	"github.com/joestump/pagegen/internal/llm"
	"github.com/joestump/pagegen/internal/store"
)

func literalRequest(templateID string) map[string]any {
	return map[string]any{
		"template_id": templateID,
		"replacements": map[string]any{
			"keyword":  map[string]string{"find": "[keyword]", "replace": "Plumbers"},
			"location": map[string]string{"find": "[location]", "replace": "Austin"},
		},
	}
}

func TestGenerate_Literal(t *testing.T) {
	env := newTestEnv(t, nil)
	editor, token := seedUser(t, env, "editor@example.com", store.RoleEditor)
	tmpl := seedTemplate(t, env, editor)

	rec := do(t, env, "POST", "/generate", token, literalRequest(tmpl.ID))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	resp := decode[api.GenerateResponse](t, rec)
	if !resp.Success {
		t.Fatal("success = false")
	}
	res := resp.Data
	if res.Title != "Plumbers in Austin" {
		t.Errorf("title = %q", res.Title)
	}
	if res.MetaDescription != "Top Plumbers in Austin." {
		t.Errorf("meta_description = %q", res.MetaDescription)
	}
	if res.ViewURL != "http://pages.test/p/plumbers-in-austin" {
		t.Errorf("view_url = %q", res.ViewURL)
	}

	doc, err := env.Documents.Get(context.Background(), res.DocumentID)
	if err != nil {
		t.Fatalf("Get generated: %v", err)
	}
	if doc.Status != store.StatusDraft || doc.AuthorID != editor.ID {
		t.Errorf("doc status/author = %q/%q", doc.Status, doc.AuthorID)
	}
	if strings.Contains(doc.Body, "[keyword]") {
		t.Errorf("body still has placeholders: %s", doc.Body)
	}
}

func TestGenerate_Errors(t *testing.T) {
	env := newTestEnv(t, nil)
	editor, editorToken := seedUser(t, env, "editor@example.com", store.RoleEditor)
	_, authorToken := seedUser(t, env, "author@example.com", store.RoleAuthor)
	tmpl := seedTemplate(t, env, editor)

	tests := []struct {
		name   string
		token  string
		body   any
		status int
		code   string
	}{
		{"no token", "", literalRequest(tmpl.ID), http.StatusUnauthorized, "unauthorized"},
		{"author lacks publish", authorToken, literalRequest(tmpl.ID), http.StatusForbidden, "unauthorized"},
		{"bad json", editorToken, "{", http.StatusBadRequest, "bad_request"},
		{"missing fields", editorToken, map[string]any{"template_id": tmpl.ID}, http.StatusBadRequest, "missing_fields"},
		{"unknown template", editorToken, literalRequest("nope"), http.StatusUnprocessableEntity, "invalid_template"},
		{
			"ai without key",
			editorToken,
			map[string]any{"strategy": "ai", "title": "Plumbers"},
			http.StatusServiceUnavailable,
			"api_key_missing",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, env, "POST", "/generate", tt.token, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d; body: %s", rec.Code, tt.status, rec.Body.String())
			}
			got := decode[api.ErrorResponse](t, rec)
			if got.Success || got.Code != tt.code {
				t.Errorf("error body = %+v, want code %q", got, tt.code)
			}
		})
	}
}

func TestPreview_NoWrite(t *testing.T) {
	env := newTestEnv(t, nil)
	editor, _ := seedUser(t, env, "editor@example.com", store.RoleEditor)
	_, authorToken := seedUser(t, env, "author@example.com", store.RoleAuthor)
	tmpl := seedTemplate(t, env, editor)

	rec := do(t, env, "POST", "/preview", authorToken, literalRequest(tmpl.ID))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", rec.Code, rec.Body.String())
	}
	res := decode[api.GenerateResponse](t, rec).Data
	if res.DocumentID != "" {
		t.Errorf("preview returned a document id %q", res.DocumentID)
	}
	if !strings.Contains(res.PreviewContent, "Find Plumbers near Austin.") {
		t.Errorf("preview_content = %q", res.PreviewContent)
	}

	pages, _ := env.Documents.ListByType(context.Background(), "page")
	if len(pages) != 1 {
		t.Errorf("pages = %d, want only the template", len(pages))
	}
}

func TestBatch(t *testing.T) {
	env := newTestEnv(t, nil)
	_, token := seedUser(t, env, "editor@example.com", store.RoleEditor)

	body := map[string]any{
		"strategy":   "procedural",
		"keyword":    "Nursing Jobs",
		"skill_set":  "ICU",
		"locations":  []string{"Austin", "Dallas"},
		"skill_sets": []string{"ICU", "ER"},
	}
	rec := do(t, env, "POST", "/batch", token, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", rec.Code, rec.Body.String())
	}
	resp := decode[api.BatchResponse](t, rec)
	if resp.Data.Status != generate.BatchComplete || resp.Data.Succeeded != 4 {
		t.Errorf("batch = %+v", resp.Data)
	}

	body["locations"] = []string{"Austin", "Dallas", "Houston"}
	rec = do(t, env, "POST", "/batch", token, body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
	}
	if got := decode[api.ErrorResponse](t, rec); got.Code != "too_many_combinations" {
		t.Errorf("code = %q", got.Code)
	}
}

func TestDocuments_CreateGetAndUpdate(t *testing.T) {
	env := newTestEnv(t, nil)
	_, token := seedUser(t, env, "author@example.com", store.RoleAuthor)

	rec := do(t, env, "POST", "/documents", token, map[string]any{
		"type":  "post",
		"title": "Jobs in [location]",
		"body":  "<p>[location]</p>",
		"meta": map[string]any{
			"_yoast_wpseo_metadesc": "Jobs near [location]",
			"_elementor_data":       []any{map[string]any{"id": "a1"}},
		},
		"terms": map[string][]string{"category": {"Careers"}},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d; body: %s", rec.Code, rec.Body.String())
	}
	created := decode[api.DocumentResponse](t, rec)
	if created.Slug != "jobs-in-location" || created.Status != store.StatusDraft {
		t.Errorf("slug/status = %q/%q", created.Slug, created.Status)
	}
	if created.Meta["_elementor_data"].IsText() {
		t.Error("structured meta came back as text")
	}

	rec = do(t, env, "PUT", "/documents/"+created.ID+"/meta/rank_math_title", token, `"Title [location]"`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("put meta status = %d; body: %s", rec.Code, rec.Body.String())
	}
	rec = do(t, env, "PUT", "/documents/"+created.ID+"/terms/post_tag", token, api.SetTermsRequest{Terms: []string{"Remote", "Full Time"}})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("put terms status = %d; body: %s", rec.Code, rec.Body.String())
	}
	rec = do(t, env, "PUT", "/documents/"+created.ID+"/terms/page_category", token, api.SetTermsRequest{Terms: []string{"X"}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unregistered taxonomy status = %d, want 400", rec.Code)
	}

	rec = do(t, env, "GET", "/documents/"+created.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	got := decode[api.DocumentResponse](t, rec)
	wantTerms := map[string][]string{
		"category": {"Careers"},
		"post_tag": {"Full Time", "Remote"},
	}
	if diff := cmp.Diff(wantTerms, got.Terms); diff != "" {
		t.Errorf("terms mismatch (-want +got):\n%s", diff)
	}
	if got.Meta.Text("rank_math_title") != "Title [location]" {
		t.Errorf("rank_math_title = %q", got.Meta.Text("rank_math_title"))
	}

	if rec := do(t, env, "GET", "/documents/missing", token, nil); rec.Code != http.StatusNotFound {
		t.Errorf("missing document status = %d, want 404", rec.Code)
	}
}

func TestDocuments_SubscriberForbidden(t *testing.T) {
	env := newTestEnv(t, nil)
	_, token := seedUser(t, env, "sub@example.com", store.RoleSubscriber)

	rec := do(t, env, "POST", "/documents", token, map[string]any{"type": "page", "title": "x"})
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestTemplatesAndHistory(t *testing.T) {
	env := newTestEnv(t, nil)
	editor, token := seedUser(t, env, "editor@example.com", store.RoleEditor)
	tmpl := seedTemplate(t, env, editor)

	rec := do(t, env, "GET", "/templates/"+tmpl.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	got := decode[api.TemplateResponse](t, rec)
	want := api.TemplateResponse{
		ID:        tmpl.ID,
		Title:     tmpl.Title,
		Type:      "page",
		Status:    store.StatusPublish,
		Permalink: "http://pages.test/p/" + tmpl.Slug,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("template mismatch (-want +got):\n%s", diff)
	}

	if rec := do(t, env, "GET", "/templates?type=widget", token, nil); rec.Code != http.StatusBadRequest {
		t.Errorf("unsupported type status = %d, want 400", rec.Code)
	}

	if rec := do(t, env, "POST", "/generate", token, literalRequest(tmpl.ID)); rec.Code != http.StatusCreated {
		t.Fatalf("generate status = %d; body: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, env, "GET", "/templates?type=page", token, nil)
	list := decode[api.TemplateListResponse](t, rec)
	if len(list.Templates) != 2 {
		t.Errorf("templates = %d, want 2", len(list.Templates))
	}

	rec = do(t, env, "GET", "/history?template_id="+tmpl.ID, token, nil)
	hist := decode[api.HistoryResponse](t, rec)
	if len(hist.History) != 1 {
		t.Fatalf("history = %d entries, want 1", len(hist.History))
	}
	if h := hist.History[0]; h.Strategy != "literal" || h.UserID != editor.ID || h.Location != "Austin" {
		t.Errorf("history entry = %+v", h)
	}
}

func newLLMClient(t *testing.T, handler http.HandlerFunc) *llm.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.LLM.Provider = "openai"
	cfg.LLM.APIKey = "configured-key"
	cfg.LLM.BaseURL = srv.URL
	client, err := llm.New(cfg)
	if err != nil {
		t.Fatalf("llm.New: %v", err)
	}
	return client
}

func TestLLMTest(t *testing.T) {
	var gotAuth string
	client := newLLMClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	})
	env := newTestEnv(t, client)
	_, adminToken := seedUser(t, env, "admin@example.com", store.RoleAdmin)
	_, editorToken := seedUser(t, env, "editor@example.com", store.RoleEditor)

	if rec := do(t, env, "POST", "/llm/test", editorToken, nil); rec.Code != http.StatusForbidden {
		t.Errorf("editor status = %d, want 403", rec.Code)
	}

	rec := do(t, env, "POST", "/llm/test", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", rec.Code, rec.Body.String())
	}
	if gotAuth != "Bearer configured-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}

	rec = do(t, env, "POST", "/llm/test", adminToken, api.LLMTestRequest{APIKey: "override"})
	if rec.Code != http.StatusOK {
		t.Fatalf("override status = %d", rec.Code)
	}
	if gotAuth != "Bearer override" {
		t.Errorf("Authorization with override = %q", gotAuth)
	}
}

func TestLLMTest_UpstreamError(t *testing.T) {
	client := newLLMClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"bad key"}}`))
	})
	env := newTestEnv(t, client)
	_, token := seedUser(t, env, "admin@example.com", store.RoleAdmin)

	rec := do(t, env, "POST", "/llm/test", token, nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	got := decode[api.ErrorResponse](t, rec)
	if got.Code != "api_error" || !strings.Contains(got.Error, "bad key") {
		t.Errorf("error = %+v", got)
	}
}

func TestTokens_CreateListRevoke(t *testing.T) {
	env := newTestEnv(t, nil)
	_, token := seedUser(t, env, "alice@example.com", store.RoleAuthor)

	rec := do(t, env, "POST", "/tokens", token, api.CreateTokenRequest{Name: "ci"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d; body: %s", rec.Code, rec.Body.String())
	}
	created := decode[api.TokenCreatedResponse](t, rec)
	if !strings.HasPrefix(created.Token, "pg_") {
		t.Errorf("token = %q", created.Token)
	}

	rec = do(t, env, "GET", "/tokens", created.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list with new token status = %d", rec.Code)
	}
	if list := decode[api.TokenListResponse](t, rec); len(list.Tokens) != 2 {
		t.Errorf("tokens = %d, want 2", len(list.Tokens))
	}

	if rec := do(t, env, "DELETE", "/tokens/"+created.ID, token, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("revoke status = %d", rec.Code)
	}
	if rec := do(t, env, "GET", "/tokens", created.Token, nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("revoked token status = %d, want 401", rec.Code)
	}
	if rec := do(t, env, "DELETE", "/tokens/"+created.ID, token, nil); rec.Code != http.StatusNotFound {
		t.Errorf("second revoke status = %d, want 404", rec.Code)
	}
}
