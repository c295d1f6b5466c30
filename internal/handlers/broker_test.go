package handlers

import (
	"io"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/courtier/internal/models"
)

func validBroker() models.Broker {
	return models.Broker{
		Slug:    "jean-tremblay",
		Name:    "Jean Tremblay",
		Company: "Hypothèques Tremblay",
		Phone:   "5145551234",
		Email:   "jean@exemple.com",
	}
}

func TestValidateBrokerNamesFirstMissingField(t *testing.T) {
	cases := []struct {
		clear func(*models.Broker)
		field string
	}{
		{func(b *models.Broker) { b.Name = "" }, "name"},
		{func(b *models.Broker) { b.Slug = "" }, "slug"},
		{func(b *models.Broker) { b.Company = "" }, "company"},
		{func(b *models.Broker) { b.Phone = "" }, "phone"},
		{func(b *models.Broker) { b.Email = "" }, "email"},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			broker := validBroker()
			tc.clear(&broker)

			err := validateBroker(&broker)
			require.Error(t, err)

			fiberErr, ok := err.(*fiber.Error)
			require.True(t, ok)
			assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
			assert.Equal(t, "Missing required field: "+tc.field, fiberErr.Message)
		})
	}
}

func TestValidateBrokerAccepts(t *testing.T) {
	broker := validBroker()
	assert.NoError(t, validateBroker(&broker))
}

func TestCreateBrokerRejectsBeforeTouchingStorage(t *testing.T) {
	// The handler validates before any database access, so a nil DB proves
	// rejection happens up front.
	app := fiber.New()
	app.Post("/api/brokers", NewBrokerHandler(nil).Create)

	resp, err := app.Test(jsonRequest("POST", "/api/brokers", `{"name":"Jean","slug":"jean","phone":"5145551234","email":"jean@exemple.com"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "company")
}

func TestCreateBrokerRejectsMalformedBody(t *testing.T) {
	app := fiber.New()
	app.Post("/api/brokers", NewBrokerHandler(nil).Create)

	resp, err := app.Test(jsonRequest("POST", "/api/brokers", `{"name":`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdateBrokerPreservesPDFFields(t *testing.T) {
	db := openTestDB(t)
	broker := validBroker()
	broker.PDFURL = "https://storage.exemple.com/guide.pdf"
	broker.PDFToken = "tokOriginal"
	broker = seedBroker(t, db, broker)

	app := fiber.New()
	app.Put("/api/brokers/:id", NewBrokerHandler(db).Update)

	payload := `{
		"name": "Jean Tremblay",
		"slug": "jean-tremblay",
		"company": "Hypothèques Tremblay",
		"phone": "5145551234",
		"email": "jean@exemple.com",
		"title": "Courtier principal",
		"pdf_url": "https://autre.exemple.com/forged.pdf",
		"pdf_token": "tokForged"
	}`
	resp, err := app.Test(jsonRequest("PUT", "/api/brokers/"+broker.ID.String(), payload))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got models.Broker
	require.NoError(t, db.First(&got, "id = ?", broker.ID).Error)
	assert.Equal(t, "Courtier principal", got.Title)
	assert.Equal(t, "https://storage.exemple.com/guide.pdf", got.PDFURL)
	assert.Equal(t, "tokOriginal", got.PDFToken)
	assert.WithinDuration(t, broker.CreatedAt, got.CreatedAt, time.Second)
}

func TestBrokerEndpointsRejectBadIDs(t *testing.T) {
	app := fiber.New()
	h := NewBrokerHandler(nil)
	app.Get("/api/brokers/:id", h.Get)
	app.Delete("/api/brokers/:id", h.Delete)

	resp, err := app.Test(jsonRequest("GET", "/api/brokers/not-a-uuid", ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(jsonRequest("DELETE", "/api/brokers/also-bad", ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
