package screenings

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type uploadForm struct {
	fileName       string
	data           []byte
	jobDescription string
	roles          []string
}

func setupRouter(t *testing.T) (*gin.Engine, *stubScreener) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, screener, _, _ := newTestService(t)
	router := gin.New()
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router, screener
}

func newUploadRequest(t *testing.T, form uploadForm) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if form.fileName != "" {
		part, err := w.CreateFormFile("file", form.fileName)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := part.Write(form.data); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if form.jobDescription != "" {
		_ = w.WriteField("jobDescription", form.jobDescription)
	}
	for _, r := range form.roles {
		_ = w.WriteField("roles", r)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/screenings", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

type errorPayload struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

type createPayload struct {
	BatchID    string              `json:"batchId"`
	Screenings []screeningResponse `json:"screenings"`
}

func TestCreateScreeningsAcceptsRepeatedAndCommaRoles(t *testing.T) {
	router, _ := setupRouter(t)

	req := newUploadRequest(t, uploadForm{
		fileName:       "resume.pdf",
		data:           pdfBytes,
		jobDescription: "python sql",
		roles:          []string{"data scientist, data analyst", "python developer"},
	})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var payload createPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.BatchID == "" {
		t.Fatalf("expected batchId")
	}
	if len(payload.Screenings) != 3 {
		t.Fatalf("expected 3 screenings, got %d", len(payload.Screenings))
	}
	want := []string{"data scientist", "data analyst", "python developer"}
	for i, s := range payload.Screenings {
		if s.Role != want[i] {
			t.Fatalf("screening %d: expected role %q, got %q", i, want[i], s.Role)
		}
		if s.Result.JobRole != want[i] {
			t.Fatalf("screening %d: expected result job_role %q, got %q", i, want[i], s.Result.JobRole)
		}
		if s.Format != "pdf" {
			t.Fatalf("expected pdf format, got %q", s.Format)
		}
	}
}

func TestCreateScreeningsErrors(t *testing.T) {
	cases := []struct {
		name   string
		form   uploadForm
		status int
		code   string
	}{
		{"missing file", uploadForm{jobDescription: "jd", roles: []string{"data scientist"}}, http.StatusBadRequest, "validation_error"},
		{"unsupported format", uploadForm{fileName: "cv.txt", data: []byte("hello"), jobDescription: "jd", roles: []string{"data scientist"}}, http.StatusBadRequest, "unsupported_format"},
		{"missing job description", uploadForm{fileName: "cv.pdf", data: pdfBytes, roles: []string{"data scientist"}}, http.StatusBadRequest, "validation_error"},
		{"missing roles", uploadForm{fileName: "cv.pdf", data: pdfBytes, jobDescription: "jd"}, http.StatusBadRequest, "validation_error"},
		{"unknown role", uploadForm{fileName: "cv.pdf", data: pdfBytes, jobDescription: "jd", roles: []string{"astronaut"}}, http.StatusBadRequest, "unknown_role"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, screener := setupRouter(t)
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, newUploadRequest(t, tc.form))

			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, resp.Code, resp.Body.String())
			}
			var payload errorPayload
			if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if payload.Error.Code != tc.code {
				t.Fatalf("expected code %q, got %q", tc.code, payload.Error.Code)
			}
			if tc.code == "unknown_role" {
				if payload.Error.Details["role"] != "astronaut" {
					t.Fatalf("expected role detail, got %v", payload.Error.Details)
				}
				if _, ok := payload.Error.Details["known"]; !ok {
					t.Fatalf("expected known roles detail")
				}
			}
			if screener.calls != 0 {
				t.Fatalf("expected no analysis on error")
			}
		})
	}
}

func TestCreateScreeningsTooLarge(t *testing.T) {
	router, _ := setupRouter(t)
	req := newUploadRequest(t, uploadForm{
		fileName:       "big.pdf",
		data:           bytes.Repeat([]byte("a"), maxUploadSize+1),
		jobDescription: "jd",
		roles:          []string{"data scientist"},
	})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", resp.Code)
	}
}

func TestGetAndListScreenings(t *testing.T) {
	router, _ := setupRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, newUploadRequest(t, uploadForm{
		fileName:       "resume.docx",
		data:           []byte("PK fake docx"),
		jobDescription: "jd",
		roles:          []string{"data scientist", "business analyst"},
	}))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	var created createPayload
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create: %v", err)
	}

	id := created.Screenings[1].ID
	getResp := httptest.NewRecorder()
	router.ServeHTTP(getResp, httptest.NewRequest(http.MethodGet, "/api/v1/screenings/"+id, nil))
	if getResp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", getResp.Code)
	}
	var got screeningResponse
	if err := json.NewDecoder(getResp.Body).Decode(&got); err != nil {
		t.Fatalf("decode get: %v", err)
	}
	if got.ID != id || got.Role != "business analyst" || got.Format != "docx" {
		t.Fatalf("unexpected screening: %+v", got)
	}

	listResp := httptest.NewRecorder()
	router.ServeHTTP(listResp, httptest.NewRequest(http.MethodGet, "/api/v1/screenings?limit=1&offset=1", nil))
	if listResp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", listResp.Code)
	}
	var list struct {
		Screenings []screeningResponse `json:"screenings"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Screenings) != 1 || list.Screenings[0].ID != id {
		t.Fatalf("expected second screening in page, got %+v", list.Screenings)
	}

	missing := httptest.NewRecorder()
	router.ServeHTTP(missing, httptest.NewRequest(http.MethodGet, "/api/v1/screenings/3f0b1c1e-0000-4000-8000-000000000000", nil))
	if missing.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", missing.Code)
	}
}

func TestListRoles(t *testing.T) {
	router, _ := setupRouter(t)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/roles", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var payload struct {
		Roles []struct {
			Name string   `json:"name"`
			Core []string `json:"core"`
		} `json:"roles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Roles) != 5 || payload.Roles[0].Name != "data scientist" {
		t.Fatalf("unexpected roles: %+v", payload.Roles)
	}
}

func TestParseRoles(t *testing.T) {
	got := parseRoles([]string{" a , b", "", "c,,"})
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("unexpected roles: %v", got)
	}
}
