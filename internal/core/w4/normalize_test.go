package w4

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"minusculas e trim", "  RECEITA de Coleta  ", "receita de coleta"},
		{"remove acentos", "Previdência Privada", "previdencia privada"},
		{"pontuacao vira espaco unico", "Empréstimo -- Pagamento/Extra", "emprestimo pagamento extra"},
		{"colapsa espacos", "a    b\t\tc", "a b c"},
		{"vazio", "", ""},
		{"so pontuacao", "---///...", ""},
		{"cedilha e til", "Manutenção & Operação", "manutencao operacao"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeText(tt.input))
		})
	}
}

func TestNormalizeTextIdempotente(t *testing.T) {
	entradas := []string{
		"Transferência Entre Disponíveis",
		"  Custo   com PESSOAL!!  ",
		"Repasse Recebido Fundo de Previdência",
		"",
	}
	for _, e := range entradas {
		uma := normalizeText(e)
		assert.Equal(t, uma, normalizeText(uma), "normalize(normalize(x)) deve ser igual a normalize(x) para %q", e)
	}
}
