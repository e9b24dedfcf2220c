package handler_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/paystub-extraction/dto"
	"github.com/Aashish23092/paystub-extraction/export"
	"github.com/Aashish23092/paystub-extraction/handler"
	"github.com/Aashish23092/paystub-extraction/mocks"
	"github.com/Aashish23092/paystub-extraction/utils/paystub"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func amount(v int64) *int64 { return &v }

func newPaystubHandler() (*handler.PaystubHandler, *mocks.MockPaystubParser) {
	parser := new(mocks.MockPaystubParser)
	return handler.NewPaystubHandler(parser, export.Options{}, 1<<20), parser
}

func multipartBody(t *testing.T, files map[string]string, metadata string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, content := range files {
		part, err := mw.CreateFormFile("files[]", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	if metadata != "" {
		require.NoError(t, mw.WriteField("metadata", metadata))
	}
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestParseStatements_JSON(t *testing.T) {
	h, parser := newPaystubHandler()

	parser.On("ParseBatch", mock.Anything, mock.MatchedBy(func(docs []dto.Document) bool {
		return len(docs) == 1 &&
			docs[0].Meta.Filename == "jan.pdf" &&
			docs[0].Meta.Password == "hunter2" &&
			string(docs[0].Data) == "%PDF"
	})).Return(dto.BatchResult{
		Records:  []dto.PaystubRecord{{Filename: "jan.pdf", GrossPay: amount(400000), NetPay: amount(261700)}},
		Failures: []dto.DocumentFailure{},
	})

	body, contentType := multipartBody(t, map[string]string{"jan.pdf": "%PDF"},
		`{"documents":[{"filename":"jan.pdf","password":"hunter2"}]}`)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/paystubs/parse", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.ParseStatements(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.ParseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Records, 1)
	assert.Equal(t, int64(400000), *resp.Records[0].GrossPay)
	assert.NotEmpty(t, resp.ProcessedAt)
	parser.AssertExpectations(t)
}

func TestParseStatements_CSV(t *testing.T) {
	h, parser := newPaystubHandler()

	parser.On("ParseBatch", mock.Anything, mock.Anything).Return(dto.BatchResult{
		Records: []dto.PaystubRecord{{Filename: "jan.pdf", GrossPay: amount(400000), NetPay: amount(261700)}},
		Failures: []dto.DocumentFailure{
			{Filename: "feb.pdf", Kind: dto.FailureExtraction, Error: "not a pdf"},
		},
	})

	body, contentType := multipartBody(t, map[string]string{"jan.pdf": "a", "feb.pdf": "b"}, "")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/paystubs/parse?format=csv", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.ParseStatements(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, "1", w.Header().Get("X-Failed-Documents"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "paystubs.csv")

	rows, err := csv.NewReader(w.Body).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"filename", "gross_pay", "net_pay"},
		{"jan.pdf", "4000.00", "2617.00"},
	}, rows)
}

func TestParseStatements_InvalidFormat(t *testing.T) {
	h, parser := newPaystubHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/paystubs/parse?format=pdf", http.NoBody)

	h.ParseStatements(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	parser.AssertNotCalled(t, "ParseBatch", mock.Anything, mock.Anything)
}

func TestParseStatements_NoFiles(t *testing.T) {
	h, parser := newPaystubHandler()
	body, contentType := multipartBody(t, nil, `{"documents":[]}`)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/paystubs/parse", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.ParseStatements(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrNoDocuments.Error(), resp.Message)
	parser.AssertNotCalled(t, "ParseBatch", mock.Anything, mock.Anything)
}

func TestParseStatements_BadMetadata(t *testing.T) {
	h, _ := newPaystubHandler()
	body, contentType := multipartBody(t, map[string]string{"jan.pdf": "a"}, "{not json")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/paystubs/parse", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.ParseStatements(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseTokens_Success(t *testing.T) {
	h, parser := newPaystubHandler()
	tokens := []string{"Gross Pay", "$10.00", "Net Pay", "$10.00"}
	parser.On("ParseTokens", "les.pdf", tokens).
		Return(&dto.PaystubRecord{Filename: "les.pdf", GrossPay: amount(1000), NetPay: amount(1000)}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/paystubs/tokens",
		strings.NewReader(`{"filename":"les.pdf","tokens":["Gross Pay","$10.00","Net Pay","$10.00"]}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.ParseTokens(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var rec dto.PaystubRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, "les.pdf", rec.Filename)
	assert.Equal(t, int64(1000), *rec.NetPay)
	parser.AssertExpectations(t)
}

func TestParseTokens_StructuralError(t *testing.T) {
	h, parser := newPaystubHandler()
	parser.On("ParseTokens", "les.pdf", []string{"Gross Pay", "$10.00"}).
		Return(nil, &paystub.StructuralError{Document: "les.pdf", Err: paystub.ErrMissingNetPay})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/paystubs/tokens",
		strings.NewReader(`{"filename":"les.pdf","tokens":["Gross Pay","$10.00"]}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.ParseTokens(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "PARSE_FAILED", resp.Error)
	assert.Contains(t, resp.Message, paystub.ErrMissingNetPay.Error())
}

func TestParseTokens_MissingFilename(t *testing.T) {
	h, parser := newPaystubHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/paystubs/tokens",
		strings.NewReader(`{"tokens":["Gross Pay"]}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.ParseTokens(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	parser.AssertNotCalled(t, "ParseTokens", mock.Anything, mock.Anything)
}

func TestParseStatements_FileTooLarge(t *testing.T) {
	parser := new(mocks.MockPaystubParser)
	h := handler.NewPaystubHandler(parser, export.Options{}, 4)
	body, contentType := multipartBody(t, map[string]string{"big.pdf": "%PDF-1.7 and more"}, "")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/paystubs/parse", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.ParseStatements(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "FILE_TOO_LARGE", resp.Error)
	assert.Contains(t, resp.Message, "big.pdf")
	parser.AssertNotCalled(t, "ParseBatch", mock.Anything, mock.Anything)
}
