package w4

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tabelaCategorias(t *testing.T, descricoes ...string) *tabela {
	t.Helper()
	rows := [][]string{{colDescricaoCategoria}}
	for _, d := range descricoes {
		rows = append(rows, []string{d})
	}
	tab, err := novaTabela(rows)
	require.NoError(t, err)
	return tab
}

func TestTirarCodigoInicial(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1.01 Receita de Coleta", "Receita de Coleta"},
		{"301 Despesas Gerais", "Despesas Gerais"},
		{"Receita de Coleta", "Receita de Coleta"},
		{"Sem Codigo Nenhum", "Sem Codigo Nenhum"},
		{"  2.3.4   Custo de Pessoal ", "Custo de Pessoal"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tirarCodigoInicial(tt.input))
	}
}

func TestPrepararCategoriasEResolver(t *testing.T) {
	tab := tabelaCategorias(t,
		"1.01 Receita de Coleta",
		"2.05 Custo com Pessoal",
		"Despesas Administrativas",
	)

	idx, avisos, err := prepararCategorias(tab)
	require.NoError(t, err)
	assert.Len(t, idx.chaves, 3)
	assert.Empty(t, avisos)

	// rótulo que normaliza igual ao nome base resolve para a descrição canônica
	got, ok := idx.resolver("RECEITA DE COLETA")
	assert.True(t, ok)
	assert.Equal(t, "1.01 Receita de Coleta", got)

	got, ok = idx.resolver("custo com pessoal!!")
	assert.True(t, ok)
	assert.Equal(t, "2.05 Custo com Pessoal", got)

	// sem correspondência: o rótulo bruto passa adiante inalterado
	got, ok = idx.resolver("Categoria Inexistente")
	assert.False(t, ok)
	assert.Equal(t, "Categoria Inexistente", got)
}

func TestPrepararCategoriasColisaoMantemUltima(t *testing.T) {
	tab := tabelaCategorias(t,
		"1.01 Receita de Coleta",
		"9.99 Receita de Coleta",
	)

	idx, avisos, err := prepararCategorias(tab)
	require.NoError(t, err)
	require.Len(t, avisos, 1)
	assert.Contains(t, avisos[0], "mesma chave")

	got, ok := idx.resolver("Receita de Coleta")
	assert.True(t, ok)
	assert.Equal(t, "9.99 Receita de Coleta", got)
}

func TestPrepararCategoriasSemColuna(t *testing.T) {
	tab, err := novaTabela([][]string{{"Outra Coluna"}, {"x"}})
	require.NoError(t, err)

	_, _, err = prepararCategorias(tab)
	assert.Error(t, err)
}

func TestSugerir(t *testing.T) {
	tab := tabelaCategorias(t,
		"1.01 Receita de Coleta",
		"2.05 Custo com Pessoal",
	)
	idx, _, err := prepararCategorias(tab)
	require.NoError(t, err)

	// erro de digitação aproxima da referência certa
	sugestao := idx.sugerir("Receita de Colleta")
	assert.Equal(t, "1.01 Receita de Coleta", sugestao)
}
