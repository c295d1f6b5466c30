package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/courtier/internal/models"
	"github.com/example/courtier/internal/services"
)

// GuideNotifier dispatches the guide link and lead notification for one
// request. Satisfied by services.Notifier.
type GuideNotifier interface {
	PDFGuide(broker models.Broker, req services.GuideRequest, publicPDFURL string)
}

// PDFHandler manages guide requests and token-keyed guide downloads.
type PDFHandler struct {
	db       *gorm.DB
	notifier GuideNotifier
	client   *http.Client
}

// NewPDFHandler constructs PDFHandler.
func NewPDFHandler(db *gorm.DB, notifier GuideNotifier) *PDFHandler {
	return &PDFHandler{
		db:       db,
		notifier: notifier,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type guideRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	BrokerID  string `json:"broker_id"`
}

func (r *guideRequest) validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"first_name", r.FirstName},
		{"last_name", r.LastName},
		{"phone", r.Phone},
		{"broker_id", r.BrokerID},
	}
	for _, field := range required {
		if field.value == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Missing required field: "+field.name)
		}
	}
	return nil
}

// RequestGuide logs the lead and texts the public guide link to the
// requester. The response does not wait on SMS or email delivery.
func (h *PDFHandler) RequestGuide(c *fiber.Ctx) error {
	var req guideRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := req.validate(); err != nil {
		return err
	}

	brokerID, err := uuid.Parse(req.BrokerID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid broker_id")
	}

	var broker models.Broker
	if err := h.db.First(&broker, "id = ?", brokerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "broker not found")
		}
		return err
	}

	if !broker.HasPDF() {
		return fiber.NewError(fiber.StatusBadRequest, "no PDF available for this broker")
	}

	publicURL := publicPDFURL(c.Hostname(), broker.PDFToken)

	request := models.PdfRequest{
		BrokerID:  broker.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		PDFURL:    publicURL,
	}
	if err := h.db.Create(&request).Error; err != nil {
		// The lead log is best effort; the SMS still goes out.
		log.Printf("failed to store pdf request: %v", err)
	}

	h.notifier.PDFGuide(broker, services.GuideRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}, publicURL)

	return c.JSON(fiber.Map{"success": true, "message": "Le guide sera envoyé par SMS"})
}

// Download streams a broker's guide through the token-keyed public URL.
func (h *PDFHandler) Download(c *fiber.Ctx) error {
	token := c.Params("token")

	var broker models.Broker
	if err := h.db.First(&broker, "pdf_token = ?", token).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "PDF not found")
		}
		return err
	}

	if broker.PDFURL == "" {
		return fiber.NewError(fiber.StatusNotFound, "PDF not found")
	}

	resp, err := h.client.Get(broker.PDFURL)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "PDF not available")
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return fiber.NewError(fiber.StatusNotFound, "PDF not available")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, pdfFilename(broker.Name)))
	c.Set(fiber.HeaderCacheControl, "private, max-age=3600")

	// fasthttp closes the stream once the body has been written out.
	return c.SendStream(resp.Body)
}

// publicPDFURL builds the visitor-facing guide link from the request's own
// host: plain http for localhost, https everywhere else.
func publicPDFURL(host, token string) string {
	protocol := "https"
	if strings.Contains(host, "localhost") {
		protocol = "http"
	}
	return fmt.Sprintf("%s://%s/pdf/%s", protocol, host, token)
}

func pdfFilename(brokerName string) string {
	name := strings.ToLower(strings.TrimSpace(brokerName))
	name = strings.Join(strings.Fields(name), "-")
	if name == "" {
		name = "guide"
	}
	return "guide-" + name + ".pdf"
}
