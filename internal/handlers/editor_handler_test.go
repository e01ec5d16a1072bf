package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"lessonwiki-backend/internal/document"
	"lessonwiki-backend/internal/editor"
	"lessonwiki-backend/internal/models"
	"lessonwiki-backend/internal/repository"
	"lessonwiki-backend/internal/service"
)

func newEditorTestRouter(t *testing.T) (*gin.Engine, *service.LessonService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo, err := repository.NewFileLessonRepository(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileLessonRepository() error = %v", err)
	}
	lessons := service.NewLessonService(repo, nil)
	handler := NewEditorHandler(lessons)

	router := gin.New()
	router.POST("/editor/lessons/publish", handler.Publish)
	router.GET("/editor/lessons/:id/document", handler.GetDocument)
	return router, lessons
}

func postPublish(t *testing.T, router *gin.Engine, req PublishLessonRequest) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal publish request: %v", err)
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/editor/lessons/publish", bytes.NewReader(payload))
	r.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, r)
	return w
}

func TestPublishMirrorsEnglishIntoCleanArabicPane(t *testing.T) {
	router, lessons := newEditorTestRouter(t)

	english := document.NewDoc(
		document.Heading(1, "Intro to Robotics"),
		&document.Node{
			Type: document.KindParagraph,
			Content: []*document.Node{
				document.TextNode("Hello "),
				{Type: document.KindText, Text: "world", Marks: []document.Mark{{Type: document.MarkBold}}},
			},
		},
	)

	w := postPublish(t, router, PublishLessonRequest{
		WikiSlug: "robotics",
		English:  english,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp models.SaveLessonResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.OK || resp.IsUpdate {
		t.Fatalf("expected fresh create, got %+v", resp)
	}
	if resp.Warning != "" {
		t.Fatalf("unexpected warning %q", resp.Warning)
	}
	if resp.Lesson.ID == "" || resp.Lesson.Slug == "" {
		t.Fatalf("expected minted identifiers, got %+v", resp.Lesson)
	}

	lesson, err := lessons.GetByID(resp.Lesson.ID)
	if err != nil {
		t.Fatalf("GetByID(%q) error = %v", resp.Lesson.ID, err)
	}
	if lesson.TitleEn != "Intro to Robotics" {
		t.Errorf("TitleEn = %q, want heading text", lesson.TitleEn)
	}
	if lesson.TitleAr != "Intro to Robotics" {
		t.Errorf("TitleAr = %q, want english fallback for the clean pane", lesson.TitleAr)
	}
	if len(lesson.Body) != 2 {
		t.Fatalf("got %d blocks, want 2", len(lesson.Body))
	}

	para := lesson.Body[1]
	if para.Type != models.BlockParagraph {
		t.Fatalf("block[1].Type = %q", para.Type)
	}
	if para.En != "Hello world" {
		t.Errorf("En = %q", para.En)
	}
	if para.HTMLEn != "Hello <strong>world</strong>" {
		t.Errorf("HTMLEn = %q", para.HTMLEn)
	}
	// The clean Arabic pane mirrors the English draft verbatim.
	if para.Ar != para.En || para.HTMLAr != para.HTMLEn {
		t.Errorf("arabic fields not mirrored: Ar = %q, HTMLAr = %q", para.Ar, para.HTMLAr)
	}
	if len(para.JSONAr) == 0 {
		t.Error("missing arabic snapshot")
	}
}

func TestPublishStructuralMismatchReportsWarning(t *testing.T) {
	router, lessons := newEditorTestRouter(t)

	english := document.NewDoc(
		document.Heading(1, "Sensors"),
		document.Paragraph("Light sensors detect brightness."),
	)
	arabic := document.NewDoc(
		document.Heading(1, "المستشعرات"),
		document.Paragraph("تكتشف مستشعرات الضوء السطوع."),
		document.Paragraph("فقرة إضافية."),
	)

	w := postPublish(t, router, PublishLessonRequest{
		WikiSlug: "robotics",
		English:  english,
		Arabic:   arabic,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp models.SaveLessonResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Warning != editor.StructuralWarning {
		t.Fatalf("Warning = %q, want structural mismatch warning", resp.Warning)
	}

	lesson, err := lessons.GetByID(resp.Lesson.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	// Zip to the longer pane: the trailing block is Arabic-only.
	if len(lesson.Body) != 3 {
		t.Fatalf("got %d blocks, want 3", len(lesson.Body))
	}
	last := lesson.Body[2]
	if last.En != "" || last.Ar != "فقرة إضافية." {
		t.Errorf("trailing block = En %q / Ar %q", last.En, last.Ar)
	}
	if lesson.TitleAr != "المستشعرات" {
		t.Errorf("TitleAr = %q, want arabic heading", lesson.TitleAr)
	}
}

func TestPublishUpdatesExistingLesson(t *testing.T) {
	router, lessons := newEditorTestRouter(t)

	first := postPublish(t, router, PublishLessonRequest{
		WikiSlug: "robotics",
		English:  document.NewDoc(document.Heading(1, "Motors"), document.Paragraph("First draft.")),
	})
	var created models.SaveLessonResponse
	if err := json.Unmarshal(first.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	second := postPublish(t, router, PublishLessonRequest{
		ID:       created.Lesson.ID,
		Slug:     created.Lesson.Slug,
		WikiSlug: "robotics",
		English:  document.NewDoc(document.Heading(1, "Motors"), document.Paragraph("Second draft.")),
	})
	var updated models.SaveLessonResponse
	if err := json.Unmarshal(second.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode update response: %v", err)
	}
	if !updated.IsUpdate {
		t.Fatal("expected an in-place update")
	}
	if updated.Lesson.ID != created.Lesson.ID || updated.Lesson.Slug != created.Lesson.Slug {
		t.Fatalf("identity changed across update: %+v vs %+v", created.Lesson, updated.Lesson)
	}

	lesson, err := lessons.GetByID(created.Lesson.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if lesson.Body[1].En != "Second draft." {
		t.Errorf("body not updated: %q", lesson.Body[1].En)
	}
}

func TestPublishRequiresWikiAndEnglishTree(t *testing.T) {
	router, _ := newEditorTestRouter(t)

	w := postPublish(t, router, PublishLessonRequest{
		English: document.NewDoc(document.Paragraph("orphan")),
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing wikiSlug: status = %d", w.Code)
	}

	w = postPublish(t, router, PublishLessonRequest{WikiSlug: "robotics"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing english tree: status = %d", w.Code)
	}
}

func TestGetDocumentRehydratesStoredLesson(t *testing.T) {
	router, _ := newEditorTestRouter(t)

	created := postPublish(t, router, PublishLessonRequest{
		WikiSlug: "robotics",
		English:  document.NewDoc(document.Heading(1, "Wheels"), document.Paragraph("Round things.")),
	})
	var resp models.SaveLessonResponse
	if err := json.Unmarshal(created.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/editor/lessons/"+resp.Lesson.ID+"/document?lang=ar", nil)
	router.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var body struct {
		ID       string         `json:"id"`
		Locale   string         `json:"locale"`
		Dir      string         `json:"dir"`
		Document *document.Node `json:"document"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode document response: %v", err)
	}
	if body.Locale != "ar" || body.Dir != "rtl" {
		t.Errorf("locale/dir = %q/%q", body.Locale, body.Dir)
	}
	if body.Document == nil || body.Document.Type != document.KindDoc {
		t.Fatalf("unexpected document root: %+v", body.Document)
	}
	if got := document.FirstHeadingText(body.Document); got != "Wheels" {
		t.Errorf("first heading = %q, want mirrored title", got)
	}
}

func TestGetDocumentUnknownLesson(t *testing.T) {
	router, _ := newEditorTestRouter(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/editor/lessons/no-such-lesson/document", nil)
	router.ServeHTTP(w, r)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
