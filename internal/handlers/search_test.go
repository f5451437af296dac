package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/edulearn/edulearn-backend/internal/clients/gemini"
	"github.com/edulearn/edulearn-backend/internal/logger"
	"github.com/edulearn/edulearn-backend/internal/services"
	"github.com/edulearn/edulearn-backend/internal/types"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

const handlerCatalogJSON = `{
	"class7": {
		"Science": [
			{
				"topic": "Photosynthesis",
				"url": "https://youtu.be/photo7",
				"segments": [
					{"title": "Light Reaction", "start": "1:00", "end": "2:30"}
				]
			}
		]
	}
}`

func handlerCatalog(t *testing.T) *types.LessonCatalog {
	t.Helper()
	var cat types.LessonCatalog
	if err := json.Unmarshal([]byte(handlerCatalogJSON), &cat); err != nil {
		t.Fatalf("unmarshal catalog: %v", err)
	}
	return &cat
}

type fakeExplainer struct {
	reply         string
	askedForClass string
}

func (f *fakeExplainer) Explain(_ context.Context, question, studentClass string) string {
	f.askedForClass = studentClass
	return f.reply
}

func searchEngine(t *testing.T, explainer gemini.Explainer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := testLogger(t)
	h := NewSearchHandler(log, services.NewSearchService(log, handlerCatalog(t), explainer))
	engine := gin.New()
	engine.GET("/get-class-videos", h.GetClassVideos)
	engine.POST("/smart-search", h.SmartSearch)
	return engine
}

func doRequest(t *testing.T, engine *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestGetClassVideosNormalizedNamesMatch(t *testing.T) {
	engine := searchEngine(t, &fakeExplainer{})

	first := doRequest(t, engine, http.MethodGet, "/get-class-videos?class_name=Class%207", "")
	second := doRequest(t, engine, http.MethodGet, "/get-class-videos?class_name=class7", "")
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("codes = %d, %d", first.Code, second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("payloads differ:\n%s\n%s", first.Body.String(), second.Body.String())
	}
	if !strings.Contains(first.Body.String(), `"status":"success"`) {
		t.Fatalf("body = %s", first.Body.String())
	}
}

func TestGetClassVideosUnknownClass(t *testing.T) {
	engine := searchEngine(t, &fakeExplainer{})
	w := doRequest(t, engine, http.MethodGet, "/get-class-videos?class_name=class12", "")
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d, soft errors stay 200", w.Code)
	}
	var body struct {
		Status  string         `json:"status"`
		Message string         `json:"message"`
		Data    map[string]any `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "error" || body.Message != "Class not found" || len(body.Data) != 0 {
		t.Fatalf("body = %+v", body)
	}
}

func TestSmartSearchMissingAPIKey(t *testing.T) {
	// A real explainer without a key returns the literal missing-key reply;
	// the route still succeeds.
	explainer := gemini.NewExplainer(context.Background(), testLogger(t), "", "gemini-1.5-flash")
	engine := searchEngine(t, explainer)

	w := doRequest(t, engine, http.MethodPost, "/smart-search", `{"question":"quarks"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
	var body struct {
		Topic        string `json:"topic"`
		Explanation  string `json:"explanation"`
		VideoURL     string `json:"videoUrl"`
		StartSeconds int    `json:"startSeconds"`
		EndSeconds   int    `json:"endSeconds"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Explanation != gemini.MissingKeyReply {
		t.Fatalf("explanation = %q", body.Explanation)
	}
	if body.Topic != types.NoMatchTitle || body.VideoURL != "" || body.StartSeconds != 0 || body.EndSeconds != 0 {
		t.Fatalf("body = %+v, want the no-match sentinel", body)
	}
}

func TestSmartSearchDefaultsStudentClass(t *testing.T) {
	explainer := &fakeExplainer{reply: "ok"}
	engine := searchEngine(t, explainer)

	doRequest(t, engine, http.MethodPost, "/smart-search", `{"question":"light reaction"}`)
	if explainer.askedForClass != "class7" {
		t.Fatalf("student class = %q, want the default", explainer.askedForClass)
	}
}

func TestSmartSearchCatalogHit(t *testing.T) {
	engine := searchEngine(t, &fakeExplainer{reply: "Plants use light."})
	w := doRequest(t, engine, http.MethodPost, "/smart-search", `{"question":"light reaction","student_class":"class7"}`)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["topic"] != "Light Reaction" || body["videoUrl"] != "https://youtu.be/photo7" {
		t.Fatalf("body = %v", body)
	}
	if body["startSeconds"] != float64(60) || body["endSeconds"] != float64(150) {
		t.Fatalf("range = %v..%v", body["startSeconds"], body["endSeconds"])
	}
}
