package w4

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"w4-converter-service/internal/domain"
)

// Colunas obrigatórias do arquivo de mapeamento cliente/centro de custo.
const (
	colMapeamentoNome   = "Nome"
	colMapeamentoPadrao = "Padrão"
)

// cabecalhoContaAzul é o esquema fixo de 10 colunas do arquivo de importação.
var cabecalhoContaAzul = []string{
	"Data de Competência",
	"Data de Vencimento",
	"Data de Pagamento",
	"Valor",
	"Categoria",
	"Descrição",
	"Cliente/Fornecedor CNPJ/CPF",
	"Cliente/Fornecedor",
	"Centro de Custo",
	"Observações",
}

// carregarMapeamento lê a tabela opcional de cliente/centro de custo e a
// ordena por padrão mais longo primeiro (vence em sobreposição).
func carregarMapeamento(t *tabela) ([]domain.MapeamentoCliente, error) {
	if !t.temColuna(colMapeamentoNome) || !t.temColuna(colMapeamentoPadrao) {
		return nil, fmt.Errorf("arquivo de mapeamento precisa das colunas '%s' e '%s'",
			colMapeamentoNome, colMapeamentoPadrao)
	}

	var entradas []domain.MapeamentoCliente
	for i := range t.linhas {
		nome := t.celula(i, colMapeamentoNome)
		padrao := normalizeText(t.celula(i, colMapeamentoPadrao))
		if nome == "" || padrao == "" {
			continue
		}
		entradas = append(entradas, domain.MapeamentoCliente{Nome: nome, Padrao: padrao})
	}

	sort.SliceStable(entradas, func(i, j int) bool {
		return len(entradas[i].Padrao) > len(entradas[j].Padrao)
	})
	return entradas, nil
}

// aplicarMapeamento procura o primeiro padrão (mais longo primeiro) contido
// no texto de detalhe normalizado.
func aplicarMapeamento(detalhe string, entradas []domain.MapeamentoCliente) (string, bool) {
	norm := normalizeText(detalhe)
	if norm == "" {
		return "", false
	}
	for _, e := range entradas {
		if strings.Contains(norm, e.Padrao) {
			return e.Nome, true
		}
	}
	return "", false
}

// montarSaida projeta os lançamentos resolvidos no esquema fixo de saída.
// A descrição concatena o Id da transação (quando existe) com a descrição
// original, separados por espaço.
func montarSaida(resolvidas []domain.LancamentoResolvido) []domain.LinhaContaAzul {
	linhas := make([]domain.LinhaContaAzul, 0, len(resolvidas))
	for _, r := range resolvidas {
		descricao := r.Origem.Descricao
		if r.Origem.IDItem != "" {
			descricao = strings.TrimSpace(r.Origem.IDItem + " " + r.Origem.Descricao)
		}

		linhas = append(linhas, domain.LinhaContaAzul{
			DataCompetencia: r.DataFinal,
			DataVencimento:  r.DataFinal,
			DataPagamento:   r.DataFinal,
			Valor:           r.ValorFinal,
			Categoria:       r.CategoriaFinal,
			Descricao:       descricao,
			Cliente:         r.Cliente,
			CentroCusto:     r.CentroCusto,
		})
	}
	return linhas
}

// gerarCSVContaAzul escreve o arquivo final em Windows-1252 com ';' para
// compatibilidade com a importação do produto de destino.
func gerarCSVContaAzul(linhas []domain.LinhaContaAzul) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := charmap.Windows1252.NewEncoder()
	writer := csv.NewWriter(transform.NewWriter(&buffer, encoder))
	writer.Comma = ';'

	header := make([]string, len(cabecalhoContaAzul))
	for i, h := range cabecalhoContaAzul {
		header[i] = sanitizeForCSV(h)
	}
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for _, l := range linhas {
		record := []string{
			sanitizeForCSV(l.DataCompetencia),
			sanitizeForCSV(l.DataVencimento),
			sanitizeForCSV(l.DataPagamento),
			sanitizeForCSV(l.Valor),
			sanitizeForCSV(l.Categoria),
			sanitizeForCSV(l.Descricao),
			sanitizeForCSV(l.ClienteCNPJCPF),
			sanitizeForCSV(l.Cliente),
			sanitizeForCSV(l.CentroCusto),
			sanitizeForCSV(l.Observacoes),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	return buffer.Bytes(), writer.Error()
}

// sanitizeForCSV remove/controla caracteres de controle e retorna string "limpa"
// - remove tabs, newlines embutidos, converte controles para espaço e trim
func sanitizeForCSV(s string) string {
	if s == "" {
		return ""
	}

	start := 0
	end := len(s)

	for start < end {
		r, size := utf8.DecodeRuneInString(s[start:end])
		if !unicode.IsSpace(r) {
			break
		}
		start += size
	}
	for end > start {
		r, size := utf8.DecodeLastRuneInString(s[start:end])
		if !unicode.IsSpace(r) {
			break
		}
		end -= size
	}
	if start >= end {
		return ""
	}

	var b strings.Builder
	b.Grow(end - start)

	for i := start; i < end; {
		r, size := utf8.DecodeRuneInString(s[i:end])
		i += size

		if r == '\r' || r == '\n' || r == '\t' {
			continue
		}
		if r < 32 {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
