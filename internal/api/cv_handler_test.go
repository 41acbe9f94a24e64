package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"candidate-sync/internal/cv"
	"candidate-sync/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyHeader() map[string]string {
	return map[string]string{"api_key": testWebhookKey, "Content-Type": "application/json"}
}

func TestWebhook_Preflight(t *testing.T) {
	env := setupAPI(t)
	rec := env.do(http.MethodOptions, "/api/webhook/cv", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, api_key", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestWebhook_RejectsBadKey(t *testing.T) {
	env := setupAPI(t)
	body := `{"candidate_name":"דנה לוי","cv_url":"https://files.example/dana.pdf"}`

	rec := env.do(http.MethodPost, "/api/webhook/cv", body, map[string]string{"api_key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Invalid or missing API key"}`, rec.Body.String())

	rec = env.do(http.MethodPost, "/api/webhook/cv", body, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	for _, key := range []string{testWebhookKey + "x", testWebhookKey[:len(testWebhookKey)-1], " " + testWebhookKey} {
		rec = env.do(http.MethodPost, "/api/webhook/cv", body, map[string]string{"api_key": key})
		assert.Equal(t, http.StatusUnauthorized, rec.Code, key)
	}
}

func TestWebhook_AcceptsKeyHeaderVariants(t *testing.T) {
	for _, h := range []string{"api_key", "Api-Key", "API_KEY"} {
		t.Run(h, func(t *testing.T) {
			env := setupAPI(t)
			rec := env.do(http.MethodPost, "/api/webhook/cv", `{"cv_url":"x"}`, map[string]string{h: testWebhookKey})
			assert.Equal(t, http.StatusBadRequest, rec.Code, "key accepted, validation reached")
		})
	}
}

func TestWebhook_MissingFields(t *testing.T) {
	env := setupAPI(t)

	rec := env.do(http.MethodPost, "/api/webhook/cv", `{"cv_url":"https://files.example/a.pdf"}`, keyHeader())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing required field: candidate_name")

	rec = env.do(http.MethodPost, "/api/webhook/cv", `{"name":"  דנה לוי "}`, keyHeader())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing required field: cv_url")
}

func TestWebhook_NotFound(t *testing.T) {
	env := setupAPI(t)
	env.seed(t, storage.Candidate{SheetFields: storage.SheetFields{Name: "דנה לוי", Phone: "0501234567", Position: "general"}})

	rec := env.do(http.MethodPost, "/api/webhook/cv",
		`{"candidate_name":"משה פרץ","job_title":"מדריך","cv_url":"https://files.example/m.pdf"}`, keyHeader())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var resp WebhookNotFound
	decode(t, rec, &resp)
	assert.False(t, resp.Success)
	assert.Equal(t, "לא נמצא מועמד תואם", resp.Error)
	assert.Equal(t, "משה פרץ", resp.SearchedName)
	assert.Equal(t, "מדריך", resp.SearchedJobTitle)
}

func TestWebhook_UpdatesOnlyCVURL(t *testing.T) {
	env := setupAPI(t)
	created := env.seed(t, storage.Candidate{
		SheetFields: storage.SheetFields{Name: "דנה לוי", Phone: "0501234567", Position: "general", Email: "dana@example.com"},
		Notes:       "called twice",
	})

	rec := env.do(http.MethodPost, "/api/webhook/cv",
		`{"candidate_name":"דנה לוי","email":"other@example.com","cv_url":"https://files.example/dana.pdf"}`, keyHeader())

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	var resp WebhookResponse
	decode(t, rec, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, "קורות חיים עודכנו בהצלחה", resp.Message)
	assert.Equal(t, created[0].ID, resp.CandidateID)
	assert.Equal(t, "general", resp.Position)

	got, err := env.store.Get(context.Background(), created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "https://files.example/dana.pdf", got.CVURL)
	assert.Equal(t, "dana@example.com", got.Email)
	assert.Equal(t, "called twice", got.Notes)
}

type cvHost struct {
	*httptest.Server
	hits atomic.Int32
}

func cvServer(t *testing.T) *cvHost {
	h := &cvHost{}
	h.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.hits.Add(1)
		switch r.URL.Path {
		case "/cvs/dana.pdf":
			_, _ = w.Write([]byte("%PDF-1.4 dana"))
		case "/cvs/dana.txt":
			_, _ = w.Write([]byte("Dana Levi\nAccountant\n"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(h.Close)
	return h
}

func (e *testEnv) seedCV(t *testing.T, name, cvURL string) storage.Candidate {
	return e.seed(t, storage.Candidate{
		SheetFields: storage.SheetFields{Name: name, Phone: "0501234567", Position: "general"},
		CVURL:       cvURL,
	})[0]
}

func TestViewCV(t *testing.T) {
	env := setupAPI(t)
	srv := cvServer(t)
	link := srv.URL + "/cvs/dana.pdf?sig=1"
	env.seedCV(t, "דנה לוי", link)

	rec := env.do(http.MethodPost, "/api/cv/view", `{"cv_url":"`+link+`"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename="dana.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "%PDF-1.4 dana", rec.Body.String())
}

func TestViewCV_ByCandidateID(t *testing.T) {
	env := setupAPI(t)
	srv := cvServer(t)
	c := env.seedCV(t, "דנה לוי", srv.URL+"/cvs/dana.pdf")
	noCV := env.seedCV(t, "Yossi Cohen", "")

	rec := env.do(http.MethodGet, "/api/cv/view?candidate_id="+c.ID, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "%PDF-1.4 dana", rec.Body.String())

	rec = env.do(http.MethodGet, "/api/cv/view?candidate_id="+noCV.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodGet, "/api/cv/view?candidate_id=missing", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestViewCV_RefusesLinksNotStored(t *testing.T) {
	env := setupAPI(t)
	srv := cvServer(t)
	c := env.seedCV(t, "דנה לוי", srv.URL+"/cvs/dana.pdf")

	for _, body := range []string{
		`{"cv_url":"` + srv.URL + `/latest/meta-data"}`,
		`{"candidate_id":"` + c.ID + `","cv_url":"` + srv.URL + `/latest/meta-data"}`,
	} {
		rec := env.do(http.MethodPost, "/api/cv/view", body, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, body)
	}
	rec := env.do(http.MethodPost, "/api/cv/text", `{"cv_url":"`+srv.URL+`/cvs/dana.txt"}`, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Zero(t, srv.hits.Load(), "unknown links are never fetched")
}

func TestViewCV_Errors(t *testing.T) {
	env := setupAPI(t)
	srv := cvServer(t)
	env.seedCV(t, "משה פרץ", srv.URL+"/cvs/gone.pdf")

	rec := env.do(http.MethodPost, "/api/cv/view", `{}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/api/cv/view", `{"cv_url":"`+srv.URL+`/cvs/gone.pdf"}`, nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to fetch file")
}

func TestCVText(t *testing.T) {
	env := setupAPI(t)
	srv := cvServer(t)
	env.seedCV(t, "דנה לוי", srv.URL+"/cvs/dana.txt")
	env.seedCV(t, "רונית שמש", srv.URL+"/cvs/photo.png")

	rec := env.do(http.MethodPost, "/api/cv/text", `{"cv_url":"`+srv.URL+`/cvs/dana.txt"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var parsed cv.ParsedCV
	decode(t, rec, &parsed)
	assert.Equal(t, "dana.txt", parsed.Filename)
	assert.Equal(t, "Dana Levi\nAccountant", parsed.FullText)

	rec = env.do(http.MethodPost, "/api/cv/text", `{"cv_url":"`+srv.URL+`/cvs/photo.png"}`, nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
