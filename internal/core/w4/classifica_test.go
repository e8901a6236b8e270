package w4

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"w4-converter-service/internal/domain"
)

func TestClassificarPolaridade(t *testing.T) {
	tests := []struct {
		name        string
		linha       domain.LancamentoW4
		wantDespesa bool
		wantRegra   string
	}{
		{
			name:        "fluxo despesa",
			linha:       domain.LancamentoW4{Fluxo: "Despesa", DetalheConta: "Energia"},
			wantDespesa: true,
			wantRegra:   "fluxo-despesa",
		},
		{
			// o fluxo é autoritativo: a pista lexical no texto da categoria não o retrai
			name:        "fluxo despesa vence palavra receita na categoria",
			linha:       domain.LancamentoW4{Fluxo: "despesa", DetalheConta: "Receita de coleta"},
			wantDespesa: true,
			wantRegra:   "fluxo-despesa",
		},
		{
			name:        "fluxo receita",
			linha:       domain.LancamentoW4{Fluxo: "Receita", DetalheConta: "Coleta"},
			wantDespesa: false,
			wantRegra:   "fluxo-receita",
		},
		{
			name:        "fluxo receita sobrepõe palavra custo",
			linha:       domain.LancamentoW4{Fluxo: "Receita", DetalheConta: "Custo reembolsado"},
			wantDespesa: false,
			wantRegra:   "fluxo-receita",
		},
		{
			name:        "fluxo imobilizado é despesa",
			linha:       domain.LancamentoW4{Fluxo: "Imobilizado", DetalheConta: "Máquina"},
			wantDespesa: true,
			wantRegra:   "fluxo-imobilizado",
		},
		{
			name:        "sem fluxo, palavra custo",
			linha:       domain.LancamentoW4{Fluxo: "", DetalheConta: "Custo com pessoal"},
			wantDespesa: true,
			wantRegra:   "palavra-custo",
		},
		{
			name:        "sem fluxo, palavra despesa no detalhe",
			linha:       domain.LancamentoW4{Fluxo: "none", DetalheConta: "Despesas administrativas"},
			wantDespesa: true,
			wantRegra:   "palavra-custo",
		},
		{
			name:        "emprestimo pagamento é despesa",
			linha:       domain.LancamentoW4{Processo: "Empréstimo - Pagamento", Pessoa: "João", DetalheConta: "Outros"},
			wantDespesa: true,
			wantRegra:   "emprestimo-pagamento",
		},
		{
			name:        "emprestimo recebimento é receita",
			linha:       domain.LancamentoW4{Processo: "Empréstimo - Recebimento", Pessoa: "Maria", DetalheConta: "Outros"},
			wantDespesa: false,
			wantRegra:   "emprestimo-recebimento",
		},
		{
			// recebimento de empréstimo desarma a regra da palavra custo
			name:        "emprestimo recebimento vence palavra custo",
			linha:       domain.LancamentoW4{Processo: "Empréstimo - Recebimento", DetalheConta: "Custo diverso"},
			wantDespesa: false,
			wantRegra:   "emprestimo-recebimento",
		},
		{
			name:        "residual: processo pagamento",
			linha:       domain.LancamentoW4{Processo: "Pagamento de fornecedor", DetalheConta: "Outros"},
			wantDespesa: true,
			wantRegra:   "processo-pagamento",
		},
		{
			name:        "residual: processo recebimento",
			linha:       domain.LancamentoW4{Processo: "Recebimento de cliente", DetalheConta: "Outros"},
			wantDespesa: false,
			wantRegra:   "processo-recebimento",
		},
		{
			name:        "nada decide: receita por padrão",
			linha:       domain.LancamentoW4{DetalheConta: "Outros"},
			wantDespesa: false,
			wantRegra:   "indefinida",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isDespesa, regra := classificarPolaridade(lerSinais(tt.linha))
			assert.Equal(t, tt.wantDespesa, isDespesa)
			assert.Equal(t, tt.wantRegra, regra)
		})
	}
}

func TestClassificarSobreposicaoEmprestimo(t *testing.T) {
	tests := []struct {
		name          string
		linha         domain.LancamentoW4
		resolvida     string
		wantCategoria string
		wantDespesa   bool
	}{
		{
			name:          "pagamento de emprestimo leva pessoa",
			linha:         domain.LancamentoW4{Processo: "Empréstimo - Pagamento", Pessoa: "João", DetalheConta: "Outros"},
			resolvida:     "Categoria Resolvida",
			wantCategoria: "Empréstimo - Pagamento João",
			wantDespesa:   true,
		},
		{
			name:          "recebimento de emprestimo leva pessoa",
			linha:         domain.LancamentoW4{Processo: "Empréstimo - Recebimento", Pessoa: "Maria", DetalheConta: "Outros"},
			resolvida:     "Categoria Resolvida",
			wantCategoria: "Empréstimo - Recebimento Maria",
			wantDespesa:   false,
		},
		{
			name:          "emprestimo sem pagamento/recebimento usa só o processo",
			linha:         domain.LancamentoW4{Processo: "Empréstimo Consignado", Pessoa: "José", DetalheConta: "Outros"},
			resolvida:     "Categoria Resolvida",
			wantCategoria: "Empréstimo Consignado",
			wantDespesa:   false,
		},
		{
			name:          "sem emprestimo mantém a categoria resolvida",
			linha:         domain.LancamentoW4{Fluxo: "Despesa", DetalheConta: "Energia"},
			resolvida:     "Energia Elétrica",
			wantCategoria: "Energia Elétrica",
			wantDespesa:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categoria, isDespesa, _ := classificar(tt.linha, tt.resolvida)
			assert.Equal(t, tt.wantCategoria, categoria)
			assert.Equal(t, tt.wantDespesa, isDespesa)
		})
	}
}
