package handlers

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/courtier/internal/models"
	"github.com/example/courtier/internal/services"
)

type recordingNotifier struct {
	guideLinks []string
}

func (r *recordingNotifier) PDFGuide(_ models.Broker, _ services.GuideRequest, publicPDFURL string) {
	r.guideLinks = append(r.guideLinks, publicPDFURL)
}

func TestPublicPDFURL(t *testing.T) {
	assert.Equal(t, "http://localhost:3000/pdf/tok123", publicPDFURL("localhost:3000", "tok123"))
	assert.Equal(t, "https://courtier.exemple.com/pdf/tok123", publicPDFURL("courtier.exemple.com", "tok123"))
}

func TestPDFFilename(t *testing.T) {
	assert.Equal(t, "guide-jean-tremblay.pdf", pdfFilename("Jean Tremblay"))
	assert.Equal(t, "guide-marie-claude-de-la-fontaine.pdf", pdfFilename("  Marie-Claude De La Fontaine "))
	assert.Equal(t, "guide-guide.pdf", pdfFilename(""))
}

func TestGuideRequestValidation(t *testing.T) {
	full := guideRequest{
		FirstName: "Alice",
		LastName:  "Roy",
		Phone:     "5145551234",
		BrokerID:  "0c6f9f1e-68e8-4f83-9a86-0d6fd0f7f6c2",
	}
	assert.NoError(t, full.validate())

	cases := []struct {
		clear func(*guideRequest)
		field string
	}{
		{func(r *guideRequest) { r.FirstName = "" }, "first_name"},
		{func(r *guideRequest) { r.LastName = "" }, "last_name"},
		{func(r *guideRequest) { r.Phone = "" }, "phone"},
		{func(r *guideRequest) { r.BrokerID = "" }, "broker_id"},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			req := full
			tc.clear(&req)

			err := req.validate()
			require.Error(t, err)

			fiberErr, ok := err.(*fiber.Error)
			require.True(t, ok)
			assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
			assert.Contains(t, fiberErr.Message, tc.field)
		})
	}
}

func TestRequestGuideRejectsInvalidBrokerID(t *testing.T) {
	app := fiber.New()
	app.Post("/api/pdf-request", NewPDFHandler(nil, nil).RequestGuide)

	resp, err := app.Test(jsonRequest("POST", "/api/pdf-request",
		`{"first_name":"Alice","last_name":"Roy","phone":"5145551234","broker_id":"nope"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRequestGuideNoPDFSendsNothing(t *testing.T) {
	db := openTestDB(t)
	broker := seedBroker(t, db, models.Broker{
		Slug:    "jean-tremblay",
		Name:    "Jean Tremblay",
		Company: "Hypothèques Tremblay",
		Phone:   "5145551234",
		Email:   "jean@exemple.com",
	})

	rec := &recordingNotifier{}
	app := fiber.New()
	app.Post("/api/pdf-request", NewPDFHandler(db, rec).RequestGuide)

	payload := fmt.Sprintf(`{"first_name":"Alice","last_name":"Roy","phone":"5145551234","broker_id":"%s"}`, broker.ID)
	resp, err := app.Test(jsonRequest("POST", "/api/pdf-request", payload))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "no PDF available")

	assert.Empty(t, rec.guideLinks, "no SMS dispatch for a broker without a guide")

	var leads int64
	require.NoError(t, db.Model(&models.PdfRequest{}).Count(&leads).Error)
	assert.Zero(t, leads)
}

func TestRequestGuideTextsLinkAndLogsLead(t *testing.T) {
	db := openTestDB(t)
	broker := seedBroker(t, db, models.Broker{
		Slug:     "jean-tremblay",
		Name:     "Jean Tremblay",
		Company:  "Hypothèques Tremblay",
		Phone:    "5145551234",
		Email:    "jean@exemple.com",
		PDFURL:   "https://storage.exemple.com/guide.pdf",
		PDFToken: "tokABC123",
	})

	rec := &recordingNotifier{}
	app := fiber.New()
	app.Post("/api/pdf-request", NewPDFHandler(db, rec).RequestGuide)

	payload := fmt.Sprintf(`{"first_name":"Alice","last_name":"Roy","phone":"5145551234","broker_id":"%s"}`, broker.ID)
	resp, err := app.Test(jsonRequest("POST", "/api/pdf-request", payload))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Len(t, rec.guideLinks, 1)
	assert.Contains(t, rec.guideLinks[0], "/pdf/tokABC123")

	var leads []models.PdfRequest
	require.NoError(t, db.Find(&leads).Error)
	require.Len(t, leads, 1)
	assert.Equal(t, broker.ID, leads[0].BrokerID)
	assert.Equal(t, "Alice", leads[0].FirstName)
	assert.Equal(t, rec.guideLinks[0], leads[0].PDFURL)
}

func TestDownloadUnknownTokenFetchesNothing(t *testing.T) {
	upstreamHits := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		upstreamHits++
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	db := openTestDB(t)
	seedBroker(t, db, models.Broker{
		Slug:     "jean-tremblay",
		Name:     "Jean Tremblay",
		Company:  "Hypothèques Tremblay",
		Phone:    "5145551234",
		Email:    "jean@exemple.com",
		PDFURL:   upstream.URL,
		PDFToken: "goodtoken",
	})

	app := fiber.New()
	app.Get("/pdf/:token", NewPDFHandler(db, nil).Download)

	resp, err := app.Test(httptest.NewRequest("GET", "/pdf/not-the-token", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Zero(t, upstreamHits, "stored file must not be fetched for an unknown token")
}

func TestDownloadStreamsStoredFile(t *testing.T) {
	const fileBody = "%PDF-1.4 fake guide content"
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, fileBody)
	}))
	defer upstream.Close()

	db := openTestDB(t)
	seedBroker(t, db, models.Broker{
		Slug:     "jean-tremblay",
		Name:     "Jean Tremblay",
		Company:  "Hypothèques Tremblay",
		Phone:    "5145551234",
		Email:    "jean@exemple.com",
		PDFURL:   upstream.URL,
		PDFToken: "goodtoken",
	})

	app := fiber.New()
	app.Get("/pdf/:token", NewPDFHandler(db, nil).Download)

	resp, err := app.Test(httptest.NewRequest("GET", "/pdf/goodtoken", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "guide-jean-tremblay.pdf")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fileBody, string(body))
}

func TestDownloadUpstreamErrorHidesFile(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	db := openTestDB(t)
	seedBroker(t, db, models.Broker{
		Slug:     "jean-tremblay",
		Name:     "Jean Tremblay",
		Company:  "Hypothèques Tremblay",
		Phone:    "5145551234",
		Email:    "jean@exemple.com",
		PDFURL:   upstream.URL,
		PDFToken: "goodtoken",
	})

	app := fiber.New()
	app.Get("/pdf/:token", NewPDFHandler(db, nil).Download)

	resp, err := app.Test(httptest.NewRequest("GET", "/pdf/goodtoken", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestContactRequestValidation(t *testing.T) {
	full := contactRequest{
		Name:       "Alice Roy",
		Email:      "alice@exemple.com",
		Message:    "Bonjour",
		BrokerSlug: "jean-tremblay",
	}
	assert.NoError(t, full.validate())

	// Phone is optional.
	withPhone := full
	withPhone.Phone = "5145551234"
	assert.NoError(t, withPhone.validate())

	missing := full
	missing.Message = ""
	err := missing.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "message")
}
