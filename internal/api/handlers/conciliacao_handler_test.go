package handlers

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"conciliacao-service/internal/api/responses"
	"conciliacao-service/internal/core/export"
	"conciliacao-service/internal/core/merchant"
	"conciliacao-service/internal/core/spreadsheet"
	"conciliacao-service/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) Reconcile(period domain.Period, cielo []spreadsheet.Source, vendas []spreadsheet.Source) (*domain.Result, error) {
	names := func(sources []spreadsheet.Source) []string {
		var out []string
		for _, s := range sources {
			out = append(out, s.Name)
		}
		return out
	}
	args := m.Called(period, names(cielo), names(vendas))
	result, _ := args.Get(0).(*domain.Result)
	return result, args.Error(1)
}

type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) Daily(result *domain.Result) ([]export.File, error) {
	args := m.Called(result)
	files, _ := args.Get(0).([]export.File)
	return files, args.Error(1)
}

func (m *MockExporter) Consolidated(result *domain.Result) (export.File, error) {
	args := m.Called(result)
	return args.Get(0).(export.File), args.Error(1)
}

func (m *MockExporter) Export(result *domain.Result, consolidated bool) ([]export.File, error) {
	args := m.Called(result, consolidated)
	files, _ := args.Get(0).([]export.File)
	return files, args.Error(1)
}

type upload struct {
	field, name string
}

func multipartBody(t *testing.T, fields map[string]string, files ...upload) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write([]byte("conteudo"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func setup() (*gin.Engine, *MockReconciler, *MockExporter) {
	gin.SetMode(gin.TestMode)
	responses.InitLogger(nil)

	reconciler := new(MockReconciler)
	exporter := new(MockExporter)
	h := NewConciliacaoHandler(reconciler, exporter, merchant.NewClassifier())

	router := gin.New()
	router.POST("/api/v1/conciliacao/vendas", h.HandleVendas)
	router.GET("/api/v1/conciliacao/estabelecimentos", h.HandleEstabelecimentos)
	return router, reconciler, exporter
}

func post(t *testing.T, router *gin.Engine, fields map[string]string, files ...upload) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, fields, files...)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/conciliacao/vendas", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) responses.APIResponse {
	t.Helper()
	var resp responses.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

var (
	marco       = map[string]string{"dataInicial": "01/03/2024", "dataFinal": "31/03/2024"}
	cieloUpload = upload{"cielo", "cielo.xlsx"}
	vendaUpload = upload{"vendas", "vendas.xlsx"}
)

func marcoPeriod() domain.Period {
	return domain.Period{
		Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestHandleVendas_Consolidado(t *testing.T) {
	router, reconciler, exporter := setup()
	result := &domain.Result{Period: marcoPeriod()}

	reconciler.On("Reconcile", marcoPeriod(), []string{"cielo.xlsx", "cielo2.xlsx"}, []string{"vendas.xlsx"}).Return(result, nil)
	exporter.On("Export", result, true).Return([]export.File{
		{Name: "intervalo_consolidado_2024-03-01_a_2024-03-31.csv", Content: []byte("5112;;;;;;;\r\n")},
	}, nil)

	fields := map[string]string{"dataInicial": "01/03/2024", "dataFinal": "31/03/2024", "consolidado": "on"}
	rr := post(t, router, fields, cieloUpload, upload{"cielo", "cielo2.xlsx"}, vendaUpload)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "attachment; filename=intervalo_consolidado_2024-03-01_a_2024-03-31.csv", rr.Header().Get("Content-Disposition"))
	assert.Equal(t, csvContentType, rr.Header().Get("Content-Type"))
	assert.Equal(t, "5112;;;;;;;\r\n", rr.Body.String())
	reconciler.AssertExpectations(t)
	exporter.AssertExpectations(t)
}

func TestHandleVendas_DiariosEmZip(t *testing.T) {
	router, reconciler, exporter := setup()
	result := &domain.Result{Period: marcoPeriod()}

	reconciler.On("Reconcile", marcoPeriod(), []string{"cielo.xlsx"}, []string{"vendas.xlsx"}).Return(result, nil)
	exporter.On("Export", result, false).Return([]export.File{
		{Name: "2024-03-05.csv", Content: []byte("a")},
		{Name: "2024-03-07.csv", Content: []byte("b")},
	}, nil)

	rr := post(t, router, marco, cieloUpload, vendaUpload)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "attachment; filename=conciliacao_2024-03-01_a_2024-03-31.zip", rr.Header().Get("Content-Disposition"))

	data := rr.Body.Bytes()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	assert.Equal(t, "2024-03-05.csv", zr.File[0].Name)
	assert.Equal(t, "2024-03-07.csv", zr.File[1].Name)
}

func TestHandleVendas_SemRegistrosNoIntervalo(t *testing.T) {
	router, reconciler, exporter := setup()
	reconciler.On("Reconcile", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrNoRecordsInRange)

	rr := post(t, router, marco, cieloUpload, vendaUpload)

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decode(t, rr)
	assert.Equal(t, "empty", resp.Status)
	assert.Equal(t, "Nenhuma venda encontrada no intervalo informado.", resp.Message)
	exporter.AssertNotCalled(t, "Export", mock.Anything, mock.Anything)
}

func TestHandleVendas_ValidacaoDoFormulario(t *testing.T) {
	testCases := []struct {
		name    string
		fields  map[string]string
		files   []upload
		status  int
		message string
	}{
		{"DatasAusentes", map[string]string{"dataInicial": "01/03/2024"}, []upload{cieloUpload, vendaUpload},
			http.StatusUnprocessableEntity, "Por favor, preencha ambas as datas."},
		{"DataInvalida", map[string]string{"dataInicial": "32/03/2024", "dataFinal": "31/03/2024"}, []upload{cieloUpload, vendaUpload},
			http.StatusUnprocessableEntity, "Datas inválidas. Use o formato dd/mm/aaaa."},
		{"PeriodoInvertido", map[string]string{"dataInicial": "31/03/2024", "dataFinal": "01/03/2024"}, []upload{cieloUpload, vendaUpload},
			http.StatusUnprocessableEntity, "A data inicial não pode ser maior que a final."},
		{"SemArquivoDeVendas", marco, []upload{cieloUpload},
			http.StatusBadRequest, msgArquivosAusentes},
		{"SemArquivoCielo", marco, []upload{vendaUpload},
			http.StatusBadRequest, msgArquivosAusentes},
		{"ExtensaoNaoPermitida", marco, []upload{{"cielo", "cielo.csv"}, vendaUpload},
			http.StatusBadRequest, msgExtensao},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router, reconciler, _ := setup()

			rr := post(t, router, tc.fields, tc.files...)

			assert.Equal(t, tc.status, rr.Code)
			resp := decode(t, rr)
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, tc.message, resp.Message)
			reconciler.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandleVendas_ErrosDoServico(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
	}{
		{"EstabelecimentoDesconhecido", fmt.Errorf("%w: 123", domain.ErrUnrecognizedMerchant), http.StatusUnprocessableEntity},
		{"EntradaVazia", fmt.Errorf("%w: vazio", domain.ErrEmptyInput), http.StatusUnprocessableEntity},
		{"ErroDeLeitura", &domain.ReadError{File: "cielo.xlsx", Line: 12, Err: errors.New("valor inválido")}, http.StatusBadRequest},
		{"Inesperado", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router, reconciler, _ := setup()
			reconciler.On("Reconcile", mock.Anything, mock.Anything, mock.Anything).Return(nil, tc.err)

			rr := post(t, router, marco, cieloUpload, vendaUpload)

			assert.Equal(t, tc.status, rr.Code)
			resp := decode(t, rr)
			assert.Equal(t, "error", resp.Status)
			if tc.status == http.StatusInternalServerError {
				assert.Equal(t, msgErroInterno, resp.Message)
				assert.Empty(t, resp.Errors)
				assert.NotContains(t, rr.Body.String(), "boom")
			} else {
				assert.Equal(t, tc.err.Error(), resp.Message)
			}
		})
	}
}

func TestHandleEstabelecimentos(t *testing.T) {
	router, _, _ := setup()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/conciliacao/estabelecimentos", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Status string              `json:"status"`
		Data   []map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	require.Len(t, resp.Data, len(merchant.Known()))
	assert.Equal(t, "1030032510", resp.Data[0]["estabelecimento"])
	assert.Equal(t, "5124", resp.Data[0]["codigoControle"])
}

func TestIsTruthy(t *testing.T) {
	for _, v := range []string{"on", "true", "1", "Sim", "TRUE"} {
		assert.True(t, isTruthy(v), v)
	}
	for _, v := range []string{"", "off", "false", "0", "nao"} {
		assert.False(t, isTruthy(v), v)
	}
}
