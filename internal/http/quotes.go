package http

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotekeeper/internal/quotes"
)

// maxImportSize caps the size of an uploaded import payload.
const maxImportSize = 10 << 20

// multipartOverhead is the room left for multipart headers and boundaries.
const multipartOverhead = 1 << 20

var errPayloadTooLarge = fmt.Errorf("import payload exceeds %d bytes", maxImportSize)

type QuotesController struct {
	store    QuoteStore
	sessions SessionStoreFunc
	auditor  ImportAuditor
}

// NewQuotesController creates a controller for the quote endpoints.
// sessions and auditor may be nil.
func NewQuotesController(store QuoteStore, sessions SessionStoreFunc, auditor ImportAuditor) *QuotesController {
	return &QuotesController{
		store:    store,
		sessions: sessions,
		auditor:  auditor,
	}
}

// AddQuoteRequest is the body of POST /api/quotes.
type AddQuoteRequest struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// ImportResponse reports how many quotes an import appended.
type ImportResponse struct {
	Added int `json:"added"`
}

// List handles GET /api/quotes
func (qc *QuotesController) List(c *gin.Context) {
	c.JSON(http.StatusOK, qc.store.All())
}

// Random handles GET /api/quotes/random
// The category query parameter defaults to the persisted selection.
func (qc *QuotesController) Random(c *gin.Context) {
	quote, ok := qc.store.PickQuote(qc.session(c), qc.category(c))
	if !ok {
		respondNotFound(c, "quote")
		return
	}
	c.JSON(http.StatusOK, quote)
}

// Current handles GET /api/quotes/current
// Returns the quote this session saw last, or a fresh one.
func (qc *QuotesController) Current(c *gin.Context) {
	quote, ok := qc.store.CurrentQuote(qc.session(c), qc.category(c))
	if !ok {
		respondNotFound(c, "quote")
		return
	}
	c.JSON(http.StatusOK, quote)
}

// Add handles POST /api/quotes
func (qc *QuotesController) Add(c *gin.Context) {
	var req AddQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body", CodeInvalidRequest)
		return
	}

	quote, err := qc.store.AddQuote(req.Text, req.Category)
	if err != nil {
		respondQuoteError(c, err, "add quote")
		return
	}
	respondCreated(c, quote)
}

// Import handles POST /api/quotes/import
// Accepts either a raw JSON body or a multipart upload in the "file" field.
func (qc *QuotesController) Import(c *gin.Context) {
	payload, source, err := readImportPayload(c)
	if errors.Is(err, errPayloadTooLarge) {
		respondError(c, http.StatusRequestEntityTooLarge, err.Error(), CodePayloadTooLarge)
		return
	}
	if err != nil {
		respondBadRequest(c, err.Error(), CodeInvalidRequest)
		return
	}

	added, importErr := qc.store.ImportQuotes(payload)
	if qc.auditor != nil {
		if _, err := qc.auditor.RecordImport(source, payload, added, importErr); err != nil {
			log.Printf("Failed to archive import payload: %v", err)
		}
	}
	if importErr != nil {
		respondQuoteError(c, importErr, "import quotes")
		return
	}

	c.JSON(http.StatusOK, ImportResponse{Added: added})
}

// Export handles GET /api/quotes/export
func (qc *QuotesController) Export(c *gin.Context) {
	data, err := qc.store.ExportQuotes()
	if err != nil {
		respondInternalError(c, err, "export quotes")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="quotes.json"`)
	c.Data(http.StatusOK, "application/json", data)
}

func (qc *QuotesController) category(c *gin.Context) string {
	if category, ok := c.GetQuery("category"); ok && strings.TrimSpace(category) != "" {
		return category
	}
	return qc.store.SelectedCategory()
}

func (qc *QuotesController) session(c *gin.Context) quotes.KeyValueStore {
	if qc.sessions == nil {
		return nil
	}
	return qc.sessions(c.Request.Context())
}

func readImportPayload(c *gin.Context) ([]byte, string, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		limit := int64(maxImportSize + multipartOverhead)
		if c.Request.ContentLength > limit {
			return nil, "", errPayloadTooLarge
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

		file, header, err := c.Request.FormFile("file")
		if isTooLarge(err) {
			return nil, "", errPayloadTooLarge
		}
		if err != nil {
			return nil, "", fmt.Errorf("file is required")
		}
		defer file.Close()
		if header.Size > maxImportSize {
			return nil, "", errPayloadTooLarge
		}

		payload, err := io.ReadAll(file)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read uploaded file")
		}
		return payload, "upload:" + header.Filename, nil
	}

	if c.Request.ContentLength > maxImportSize {
		return nil, "", errPayloadTooLarge
	}
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize))
	if isTooLarge(err) {
		return nil, "", errPayloadTooLarge
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to read request body")
	}
	return payload, "body", nil
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
