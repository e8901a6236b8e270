package w4

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// tabela é uma visão indexada por nome de coluna de um arquivo tabular.
// Nomes de coluna são comparados por string exata após remoção de espaços e
// NBSP; nomes repetidos ganham sufixo ".1", ".2", ... (primeira ocorrência
// sem sufixo).
type tabela struct {
	colunas []string
	indice  map[string]int
	linhas  [][]string
}

// temColuna informa se a coluna existe no cabeçalho.
func (t *tabela) temColuna(nome string) bool {
	_, ok := t.indice[nome]
	return ok
}

// celula devolve o valor aparado da coluna na linha, ou vazio quando a coluna
// não existe ou a linha é curta (colunas opcionais degradam para vazio).
func (t *tabela) celula(linha int, nome string) string {
	idx, ok := t.indice[nome]
	if !ok {
		return ""
	}
	row := t.linhas[linha]
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func limparNomeColuna(nome string) string {
	nome = strings.ReplaceAll(nome, " ", " ")
	return strings.TrimSpace(nome)
}

// novaTabela monta a tabela a partir das linhas cruas; a primeira linha é o
// cabeçalho.
func novaTabela(rows [][]string) (*tabela, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("arquivo vazio ou sem cabeçalho")
	}

	header := rows[0]
	colunas := make([]string, 0, len(header))
	indice := make(map[string]int, len(header))
	vistos := make(map[string]int, len(header))

	for i, raw := range header {
		nome := limparNomeColuna(raw)
		if n, ok := vistos[nome]; ok {
			vistos[nome] = n + 1
			nome = nome + "." + strconv.Itoa(n)
		} else {
			vistos[nome] = 1
		}
		colunas = append(colunas, nome)
		indice[nome] = i
	}

	return &tabela{colunas: colunas, indice: indice, linhas: rows[1:]}, nil
}

// carregarTabela lê um arquivo delimitado ou planilha conforme a extensão.
func carregarTabela(file io.Reader, filename string) (*tabela, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var rows [][]string
	var err error

	switch ext {
	case ".csv", ".txt":
		rows, err = lerCSVLatin1(file)
	case ".xlsx", ".xls":
		rows, err = lerPlanilha(file)
	default:
		return nil, fmt.Errorf("formato de arquivo não suportado: %s", ext)
	}
	if err != nil {
		return nil, err
	}

	return novaTabela(rows)
}

// lerCSVLatin1 lê CSV ';' em ISO-8859-1, o encoding dos exports W4.
func lerCSVLatin1(file io.Reader) ([][]string, error) {
	decoder := charmap.ISO8859_1.NewDecoder()
	reader := csv.NewReader(transform.NewReader(file, decoder))
	reader.Comma = ';'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	return reader.ReadAll()
}

// lerPlanilha tenta xlsx (excelize) e cai para xls (xlsReader).
func lerPlanilha(file io.Reader) ([][]string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	reader := bytes.NewReader(data)

	// tenta xlsx
	f, err := excelize.OpenReader(reader)
	if err == nil {
		defer f.Close()
		sheetName := f.GetSheetList()[0]
		return f.GetRows(sheetName)
	}

	// tenta xls
	reader.Seek(0, io.SeekStart)
	workbook, err := xls.OpenReader(reader)
	if err == nil {
		if len(workbook.GetSheets()) == 0 {
			return nil, fmt.Errorf("o arquivo .xls não contém planilhas")
		}
		sheet, err := workbook.GetSheet(0)
		if err != nil {
			return nil, fmt.Errorf("erro ao obter planilha do arquivo .xls: %w", err)
		}
		var allRows [][]string
		for _, row := range sheet.GetRows() {
			var cells []string
			for _, cell := range row.GetCols() {
				cells = append(cells, cell.GetString())
			}
			allRows = append(allRows, cells)
		}
		return allRows, nil
	}

	return nil, fmt.Errorf("unsupported workbook file format")
}
