package w4

import (
	"strings"

	"w4-converter-service/internal/domain"
)

// sinais são os predicados por linha avaliados pela cascata de classificação.
// Puros: dependem só da própria linha, nunca de estado agregado.
type sinais struct {
	fluxoDespesa     bool
	fluxoReceita     bool
	fluxoImobilizado bool
	fluxoVazio       bool

	emprestimo     bool
	empPagamento   bool
	empRecebimento bool

	palavraCusto bool // "custo"/"despesa" no rótulo de detalhe

	procPagamento   bool
	procRecebimento bool
}

func lerSinais(l domain.LancamentoW4) sinais {
	fluxo := normalizeText(l.Fluxo)
	proc := normalizeText(l.Processo)
	detalhe := normalizeText(l.DetalheConta)

	s := sinais{
		fluxoDespesa:     strings.Contains(fluxo, "despesa"),
		fluxoReceita:     strings.Contains(fluxo, "receita"),
		fluxoImobilizado: strings.Contains(fluxo, "imobilizado"),
		fluxoVazio:       fluxo == "" || fluxo == "nan" || fluxo == "none",

		emprestimo: strings.Contains(proc, "emprestimo"),

		palavraCusto: strings.Contains(detalhe, "custo") || strings.Contains(detalhe, "despesa"),

		procPagamento:   strings.Contains(proc, "pagamento"),
		procRecebimento: strings.Contains(proc, "recebimento"),
	}
	s.empPagamento = s.emprestimo && s.procPagamento
	s.empRecebimento = s.emprestimo && s.procRecebimento
	return s
}

// categoriaEmprestimo aplica a sobreposição de categoria para processos de
// empréstimo. Vence o resultado do resolvedor de categorias.
func categoriaEmprestimo(l domain.LancamentoW4, s sinais) (string, bool) {
	if !s.emprestimo {
		return "", false
	}
	proc := strings.TrimSpace(l.Processo)
	if s.empPagamento || s.empRecebimento {
		return strings.TrimSpace(proc + " " + strings.TrimSpace(l.Pessoa)), true
	}
	return proc, true
}

type polaridade int

const (
	polIndefinida polaridade = iota
	polDespesa
	polReceita
)

// regraDespesa é uma regra nomeada da lista de decisão ordenada. As regras
// são avaliadas de cima para baixo; a primeira que dispara nomeia a decisão.
type regraDespesa struct {
	nome   string
	aplica func(s sinais) bool
}

// Lista ordenada de regras de despesa. O fluxo é o sinal autoritativo quando
// presente; na ausência dele, pistas lexicais no texto da categoria e depois
// o campo de processo servem de fallback em confiança decrescente.
var regrasDespesa = []regraDespesa{
	{"fluxo-despesa", func(s sinais) bool { return s.fluxoDespesa }},
	{"emprestimo-pagamento", func(s sinais) bool { return s.empPagamento }},
	{"palavra-custo", func(s sinais) bool { return s.fluxoVazio && s.palavraCusto && !s.empRecebimento }},
	{"fluxo-imobilizado", func(s sinais) bool { return s.fluxoImobilizado }},
}

// classificarPolaridade decide despesa/receita e devolve o nome da regra
// decisiva, para auditoria. Precedência documentada:
//  1. regras de despesa (OU, em ordem);
//  2. sobreposição de receita (fluxo-receita ou empréstimo-recebimento)
//     sempre vence as regras acima; nenhuma regra retrai uma determinação
//     explícita vinda do próprio fluxo;
//  3. resolução residual pelo processo, só quando nada decidiu;
//  4. padrão: receita.
func classificarPolaridade(s sinais) (isDespesa bool, regra string) {
	decisao := polIndefinida

	for _, r := range regrasDespesa {
		if r.aplica(s) {
			decisao, regra = polDespesa, r.nome
			break
		}
	}

	if s.fluxoReceita {
		decisao, regra = polReceita, "fluxo-receita"
	} else if s.empRecebimento {
		decisao, regra = polReceita, "emprestimo-recebimento"
	}

	if decisao == polIndefinida {
		switch {
		case s.procPagamento:
			decisao, regra = polDespesa, "processo-pagamento"
		case s.procRecebimento:
			decisao, regra = polReceita, "processo-recebimento"
		default:
			decisao, regra = polReceita, "indefinida"
		}
	}

	return decisao == polDespesa, regra
}

// classificar resolve categoria final e polaridade de uma linha.
func classificar(l domain.LancamentoW4, categoriaResolvida string) (categoria string, isDespesa bool, regra string) {
	s := lerSinais(l)

	categoria = categoriaResolvida
	if cat, ok := categoriaEmprestimo(l, s); ok {
		categoria = cat
	}

	isDespesa, regra = classificarPolaridade(s)
	return categoria, isDespesa, regra
}
