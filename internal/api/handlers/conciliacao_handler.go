package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"conciliacao-service/internal/api/responses"
	"conciliacao-service/internal/core/export"
	"conciliacao-service/internal/core/merchant"
	"conciliacao-service/internal/core/reconciliation"
	"conciliacao-service/internal/core/spreadsheet"
	"conciliacao-service/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	msgArquivosAusentes = "Um ou mais arquivos não foram enviados."
	msgExtensao         = "Apenas arquivos .xlsx ou .xls são permitidos."
	msgErroInterno      = "Ocorreu um erro no processamento."
	msgTamanhoExcedido  = "O tamanho total dos arquivos excede o limite permitido."

	csvContentType = "text/csv; charset=iso-8859-1"
	zipContentType = "application/zip"
)

// ConciliacaoHandler lida com as requisições de conciliação Cielo × Vendas.
type ConciliacaoHandler struct {
	reconciler reconciliation.Service
	exporter   export.Service
	classifier merchant.Classifier
}

// NewConciliacaoHandler cria um novo handler de conciliação.
func NewConciliacaoHandler(reconciler reconciliation.Service, exporter export.Service, classifier merchant.Classifier) *ConciliacaoHandler {
	return &ConciliacaoHandler{
		reconciler: reconciler,
		exporter:   exporter,
		classifier: classifier,
	}
}

// isTruthy aceita os valores que um checkbox ou um cliente HTTP costumam enviar.
func isTruthy(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "on" || v == "sim" {
		return true
	}
	b, _ := strconv.ParseBool(v)
	return b
}

func allowedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".xlsx" || ext == ".xls"
}

func headerSource(fh *multipart.FileHeader) spreadsheet.Source {
	return spreadsheet.Source{
		Name: fh.Filename,
		Open: func() (io.ReadCloser, error) { return fh.Open() },
	}
}

func formValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// formSources valida e converte os arquivos enviados em um campo repetido do formulário.
func formSources(form *multipart.Form, field string) ([]spreadsheet.Source, string) {
	headers := form.File[field]
	if len(headers) == 0 {
		headers = form.File[field+"[]"]
	}
	if len(headers) == 0 {
		return nil, msgArquivosAusentes
	}

	sources := make([]spreadsheet.Source, 0, len(headers))
	for _, fh := range headers {
		if !allowedExtension(fh.Filename) {
			return nil, msgExtensao
		}
		sources = append(sources, headerSource(fh))
	}
	return sources, ""
}

// userMessage remove o prefixo da sentinela, deixando só a mensagem para o usuário.
func userMessage(err, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}

// statusFor mapeia os erros do domínio para o status HTTP da resposta.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidPeriod),
		errors.Is(err, domain.ErrEmptyInput),
		errors.Is(err, domain.ErrUnrecognizedMerchant):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrReadError):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *ConciliacaoHandler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		responses.InternalError(c, msgErroInterno, err)
		return
	}
	if errors.Is(err, domain.ErrInvalidPeriod) {
		responses.Error(c, status, userMessage(err, domain.ErrInvalidPeriod))
		return
	}
	responses.Error(c, status, err.Error())
}

// HandleVendas recebe o período, os relatórios Cielo e de vendas e devolve o
// arquivo consolidado (consolidado=true) ou um .zip com os arquivos diários.
func (h *ConciliacaoHandler) HandleVendas(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			responses.Error(c, http.StatusRequestEntityTooLarge, msgTamanhoExcedido)
			return
		}
		responses.Error(c, http.StatusBadRequest, msgArquivosAusentes)
		return
	}

	period, err := domain.ParsePeriod(formValue(form, "dataInicial"), formValue(form, "dataFinal"))
	if err != nil {
		h.fail(c, err)
		return
	}
	cielo, msg := formSources(form, "cielo")
	if msg != "" {
		responses.Error(c, http.StatusBadRequest, msg)
		return
	}
	vendas, msg := formSources(form, "vendas")
	if msg != "" {
		responses.Error(c, http.StatusBadRequest, msg)
		return
	}

	result, err := h.reconciler.Reconcile(period, cielo, vendas)
	if errors.Is(err, domain.ErrNoRecordsInRange) {
		responses.Empty(c, domain.ErrNoRecordsInRange.Error())
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	consolidado := isTruthy(formValue(form, "consolidado"))
	files, err := h.exporter.Export(result, consolidado)
	if err != nil {
		h.fail(c, err)
		return
	}

	if consolidado {
		responses.Attachment(c, files[0].Name, csvContentType, files[0].Content)
		return
	}

	archive, err := export.Zip(files)
	if err != nil {
		h.fail(c, err)
		return
	}
	fileName := fmt.Sprintf("conciliacao_%s_a_%s.zip",
		period.Start.Format("2006-01-02"), period.End.Format("2006-01-02"))
	responses.Attachment(c, fileName, zipContentType, archive)
}

// HandleEstabelecimentos lista os estabelecimentos reconhecidos e seus códigos.
func (h *ConciliacaoHandler) HandleEstabelecimentos(c *gin.Context) {
	var items []gin.H
	for _, id := range merchant.Known() {
		routing, err := h.classifier.Resolve(id)
		if err != nil {
			continue
		}
		items = append(items, gin.H{
			"estabelecimento": routing.MerchantID,
			"nome":            routing.Name,
			"codigoContabil":  routing.AccountingCode,
			"codigoControle":  routing.ControlCode,
		})
	}
	responses.Success(c, items, fmt.Sprintf("%d estabelecimentos reconhecidos", len(items)))
}
