package w4

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func TestNovaTabelaColunasDuplicadas(t *testing.T) {
	tab, err := novaTabela([][]string{
		{"Valor", "Valor", "Descrição", "Valor"},
		{"10", "20", "texto", "30"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Valor", "Valor.1", "Descrição", "Valor.2"}, tab.colunas)
	assert.Equal(t, "10", tab.celula(0, "Valor"))
	assert.Equal(t, "20", tab.celula(0, "Valor.1"))
	assert.Equal(t, "30", tab.celula(0, "Valor.2"))
}

func TestNovaTabelaLimpaNomesDeColuna(t *testing.T) {
	tab, err := novaTabela([][]string{
		{"  Detalhe Conta / Objeto ", "Fluxo "},
		{"conta", "fluxo"},
	})
	require.NoError(t, err)

	assert.True(t, tab.temColuna("Detalhe Conta / Objeto"))
	assert.True(t, tab.temColuna("Fluxo"))
	assert.Equal(t, "conta", tab.celula(0, "Detalhe Conta / Objeto"))
}

func TestNovaTabelaVazia(t *testing.T) {
	_, err := novaTabela(nil)
	assert.Error(t, err)
}

func TestCelulaDegradaParaVazio(t *testing.T) {
	tab, err := novaTabela([][]string{
		{"A", "B"},
		{"só uma célula"},
	})
	require.NoError(t, err)

	assert.Equal(t, "só uma célula", tab.celula(0, "A"))
	assert.Equal(t, "", tab.celula(0, "B"), "linha curta")
	assert.Equal(t, "", tab.celula(0, "C"), "coluna inexistente")
}

func TestCarregarTabelaCSVLatin1(t *testing.T) {
	// monta um CSV em ISO-8859-1, como o W4 exporta
	conteudo := "Descrição;Valor total\nPrevidência;1.234,56\n"
	encoder := charmap.ISO8859_1.NewEncoder()

	var buffer bytes.Buffer
	writer := transform.NewWriter(&buffer, encoder)
	_, err := writer.Write([]byte(conteudo))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	tab, err := carregarTabela(&buffer, "export.csv")
	require.NoError(t, err)

	require.Len(t, tab.linhas, 1)
	assert.Equal(t, "Previdência", tab.celula(0, "Descrição"))
	assert.Equal(t, "1.234,56", tab.celula(0, "Valor total"))
}

func TestCarregarTabelaExtensaoNaoSuportada(t *testing.T) {
	_, err := carregarTabela(strings.NewReader("dados"), "export.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "não suportado")
}
