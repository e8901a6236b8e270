package w4

import (
	"math"
	"strconv"
	"strings"

	"w4-converter-service/internal/domain"
)

// toleranciaQuebra é a tolerância absoluta para a soma de uma quebra.
const toleranciaQuebra = 0.01

// estrategiaQuebra escolhe, entre as transações candidatas (não consumidas,
// na ordem dada), os índices que compõem o valor do ledger. nil = sem quebra.
type estrategiaQuebra interface {
	nome() string
	escolher(valor float64, candidatas []*domain.TransacaoBancaria) []int
}

// estrategiaGulosa acumula soma de prefixo na ordem dada e para na primeira
// soma que bate dentro da tolerância. É determinística e dependente da ordem:
// uma quebra válida em outra ordem dos elementos não é encontrada.
type estrategiaGulosa struct{}

func (estrategiaGulosa) nome() string { return "gulosa" }

func (estrategiaGulosa) escolher(valor float64, candidatas []*domain.TransacaoBancaria) []int {
	soma := 0.0
	for i, t := range candidatas {
		soma += t.Valor
		if math.Abs(soma-valor) <= toleranciaQuebra {
			indices := make([]int, i+1)
			for j := range indices {
				indices[j] = j
			}
			return indices
		}
		if soma > valor+toleranciaQuebra {
			return nil
		}
	}
	return nil
}

// Limites da busca exaustiva: o subset-sum é exponencial, então só vale para
// dias com poucas transações.
const (
	maxCandidatasExaustiva = 20
	maxPartesExaustiva     = 8
)

// estrategiaExaustiva faz busca limitada em profundidade por qualquer
// subconjunto (na ordem dada) que some o valor dentro da tolerância.
type estrategiaExaustiva struct{}

func (estrategiaExaustiva) nome() string { return "exaustiva" }

func (estrategiaExaustiva) escolher(valor float64, candidatas []*domain.TransacaoBancaria) []int {
	if len(candidatas) > maxCandidatasExaustiva {
		candidatas = candidatas[:maxCandidatasExaustiva]
	}

	var busca func(inicio int, soma float64, escolhidos []int) []int
	busca = func(inicio int, soma float64, escolhidos []int) []int {
		if math.Abs(soma-valor) <= toleranciaQuebra && len(escolhidos) > 0 {
			resultado := make([]int, len(escolhidos))
			copy(resultado, escolhidos)
			return resultado
		}
		if soma > valor+toleranciaQuebra || len(escolhidos) >= maxPartesExaustiva {
			return nil
		}
		for i := inicio; i < len(candidatas); i++ {
			if r := busca(i+1, soma+candidatas[i].Valor, append(escolhidos, i)); r != nil {
				return r
			}
		}
		return nil
	}

	return busca(0, 0, nil)
}

// estrategiaPorNome resolve a estratégia configurada; gulosa é o padrão,
// por paridade com o comportamento histórico.
func estrategiaPorNome(nome string) estrategiaQuebra {
	if strings.TrimSpace(strings.ToLower(nome)) == "exaustiva" {
		return estrategiaExaustiva{}
	}
	return estrategiaGulosa{}
}

// conciliarOFX decompõe valores agregados do ledger nas transações bancárias
// do mesmo dia. Duas passadas por linha de receita:
//  1. correspondência exata 1:1 com um crédito não consumido (sem quebra);
//  2. quebra pela estratégia configurada, opcionalmente restrita a categorias
//     contendo a palavra-chave do filtro.
//
// Linhas sem valor positivo, sem extrato na data ou sem quebra encontrada
// passam inalteradas. A contagem de saída pode exceder a de entrada.
func conciliarOFX(resolvidas []domain.LancamentoResolvido, bancarias []*domain.TransacaoBancaria, estrategia estrategiaQuebra, filtroCategoria string) ([]domain.LancamentoResolvido, []domain.RelatorioQuebra) {
	porData := make(map[string][]*domain.TransacaoBancaria)
	for _, t := range bancarias {
		porData[t.Data] = append(porData[t.Data], t)
	}

	// passada 1: correspondência exata marca consumo e trava a linha
	exatas := make(map[int]bool, len(resolvidas))
	for i, r := range resolvidas {
		if !r.ValorValido || r.ValorNumerico <= 0 {
			continue
		}
		for _, t := range porData[r.DataFinal] {
			if t.Consumida {
				continue
			}
			if math.Abs(t.Valor-r.ValorNumerico) < 0.005 {
				t.Consumida = true
				exatas[i] = true
				break
			}
		}
	}

	filtroNorm := normalizeText(filtroCategoria)

	var saida []domain.LancamentoResolvido
	var relatorio []domain.RelatorioQuebra

	for i, r := range resolvidas {
		if exatas[i] || !r.ValorValido || r.ValorNumerico <= 0 {
			saida = append(saida, r)
			continue
		}
		if filtroNorm != "" && !strings.Contains(normalizeText(r.CategoriaFinal), filtroNorm) {
			saida = append(saida, r)
			continue
		}

		var candidatas []*domain.TransacaoBancaria
		for _, t := range porData[r.DataFinal] {
			if !t.Consumida {
				candidatas = append(candidatas, t)
			}
		}
		if len(candidatas) == 0 {
			saida = append(saida, r)
			continue
		}

		indices := estrategia.escolher(r.ValorNumerico, candidatas)
		if indices == nil {
			// degradação silenciosa: a ausência no relatório é o registro
			saida = append(saida, r)
			continue
		}

		for _, idx := range indices {
			t := candidatas[idx]
			t.Consumida = true

			parte := r
			parte.ValorNumerico = t.Valor
			parte.ValorFinal = formatarValorBR(t.Valor)
			if t.Memo != "" {
				parte.Origem.Descricao = strings.TrimSpace(r.Origem.Descricao + " | " + t.Memo)
			}
			saida = append(saida, parte)
		}

		relatorio = append(relatorio, domain.RelatorioQuebra{
			Data:          r.DataFinal,
			Categoria:     r.CategoriaFinal,
			ValorOriginal: r.ValorFinal,
			Partes:        len(indices),
			Detalhe:       "Quebrado em: " + strconv.Itoa(len(indices)),
		})
	}

	return saida, relatorio
}
