package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"w4-converter-service/internal/api/responses"
	"w4-converter-service/internal/core/w4"
	"w4-converter-service/internal/domain"

	"github.com/gin-gonic/gin"
)

// W4Handler lida com as requisições da API de conversão do extrato W4.
type W4Handler struct {
	service w4.Service
}

// NewW4Handler cria um novo handler de conversão W4.
func NewW4Handler(service w4.Service) *W4Handler {
	return &W4Handler{
		service: service,
	}
}

// opcoesFromForm extrai a configuração da execução dos campos do formulário.
func opcoesFromForm(c *gin.Context) domain.OpcoesConversao {
	setor := domain.Setor(strings.TrimSpace(strings.ToLower(c.PostForm("setor"))))
	if setor != domain.SetorPrevidencia {
		setor = domain.SetorGenerico
	}
	return domain.OpcoesConversao{
		Setor:            setor,
		EstrategiaQuebra: c.PostForm("estrategiaQuebra"),
		FiltroQuebra:     c.PostForm("filtroQuebra"),
	}
}

// abrirArquivos abre os uploads da requisição. Mapeamento e OFX são
// opcionais. Devolve também a função que fecha tudo.
func (h *W4Handler) abrirArquivos(c *gin.Context) (w4.Arquivos, func(), bool) {
	fechar := func() {}

	w4FileHeader, err := c.FormFile("w4File")
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Arquivo W4 (.csv, .xls, .xlsx) não encontrado ou inválido")
		return w4.Arquivos{}, fechar, false
	}
	ext := strings.ToLower(filepath.Ext(w4FileHeader.Filename))
	if ext != ".csv" && ext != ".txt" && ext != ".xls" && ext != ".xlsx" {
		responses.Error(c, http.StatusBadRequest, fmt.Sprintf("Extensão de arquivo W4 não suportada: %s", ext))
		return w4.Arquivos{}, fechar, false
	}

	categoriasFileHeader, err := c.FormFile("categoriasFile")
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Arquivo de Categorias (.csv, .xls, .xlsx) não encontrado ou inválido")
		return w4.Arquivos{}, fechar, false
	}

	var fechaveis []interface{ Close() error }
	fechar = func() {
		for _, f := range fechaveis {
			f.Close()
		}
	}

	w4File, err := w4FileHeader.Open()
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Não foi possível abrir o arquivo W4")
		return w4.Arquivos{}, fechar, false
	}
	fechaveis = append(fechaveis, w4File)

	categoriasFile, err := categoriasFileHeader.Open()
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Não foi possível abrir o arquivo de Categorias")
		return w4.Arquivos{}, fechar, false
	}
	fechaveis = append(fechaveis, categoriasFile)

	arq := w4.Arquivos{
		W4:             w4File,
		W4Nome:         w4FileHeader.Filename,
		Categorias:     categoriasFile,
		CategoriasNome: categoriasFileHeader.Filename,
	}

	if mapHeader, err := c.FormFile("mapeamentoFile"); err == nil {
		mapFile, err := mapHeader.Open()
		if err != nil {
			responses.Error(c, http.StatusInternalServerError, "Não foi possível abrir o arquivo de Mapeamento")
			return w4.Arquivos{}, fechar, false
		}
		fechaveis = append(fechaveis, mapFile)
		arq.Mapeamento = mapFile
		arq.MapeamentoNome = mapHeader.Filename
	}

	if ofxHeader, err := c.FormFile("ofxFile"); err == nil {
		ofxFile, err := ofxHeader.Open()
		if err != nil {
			responses.Error(c, http.StatusInternalServerError, "Não foi possível abrir o arquivo OFX")
			return w4.Arquivos{}, fechar, false
		}
		fechaveis = append(fechaveis, ofxFile)
		arq.OFX = ofxFile
	}

	return arq, fechar, true
}

// HandleW4Conversion converte o extrato W4 e devolve o CSV de importação.
func (h *W4Handler) HandleW4Conversion(c *gin.Context) {
	arq, fechar, ok := h.abrirArquivos(c)
	defer fechar()
	if !ok {
		return
	}

	resultado, err := h.service.ProcessW4(arq, opcoesFromForm(c))
	if err != nil {
		responses.Error(c, http.StatusUnprocessableEntity, "Erro ao processar os arquivos", err.Error())
		return
	}

	fileName := fmt.Sprintf("ContaAzul_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", resultado.CSV)
}

// HandleW4Relatorio converte o extrato W4 e devolve o resultado completo em
// JSON (linhas, descartes, quebras e avisos) para exibição.
func (h *W4Handler) HandleW4Relatorio(c *gin.Context) {
	arq, fechar, ok := h.abrirArquivos(c)
	defer fechar()
	if !ok {
		return
	}

	resultado, err := h.service.ProcessW4(arq, opcoesFromForm(c))
	if err != nil {
		responses.Error(c, http.StatusUnprocessableEntity, "Erro ao processar os arquivos", err.Error())
		return
	}

	responses.Success(c, resultado, "Conversão W4 concluída com sucesso")
}
