package w4

import (
	"fmt"
	"io"
	"strings"

	"w4-converter-service/internal/domain"
)

// Colunas do extrato W4. Só a de detalhe é obrigatória; as demais degradam
// para vazio quando ausentes.
const (
	colDetalheConta = "Detalhe Conta / Objeto"
	colFluxo        = "Fluxo"
	colProcesso     = "Processo"
	colPessoa       = "Pessoa"
	colValorTotal   = "Valor total"
	colDataTes      = "Data da Tesouraria"
	colIDItem       = "Id Item tesouraria"
	colDescricao    = "Descrição"
)

// marcaTransferencia identifica lançamentos de transferência entre
// disponíveis, removidos antes de qualquer processamento.
const marcaTransferencia = "transferencia entre disponiveis"

// Arquivos reúne os leitores de entrada de uma execução. Mapeamento e OFX
// são opcionais (nil = ausente).
type Arquivos struct {
	W4             io.Reader
	W4Nome         string
	Categorias     io.Reader
	CategoriasNome string
	Mapeamento     io.Reader
	MapeamentoNome string
	OFX            io.Reader
}

// Service define a interface do serviço de conversão W4 -> Conta Azul.
type Service interface {
	ProcessW4(arq Arquivos, opcoes domain.OpcoesConversao) (*domain.ResultadoConversao, error)
}

type service struct{}

// NewService cria uma nova instância do serviço de conversão.
func NewService() Service {
	return &service{}
}

// ProcessW4 executa o pipeline completo: normalização -> resolução de
// categoria -> cascata de classificação -> formatação de valor/data ->
// deduplicação -> (conciliação OFX) -> montagem da saída.
func (svc *service) ProcessW4(arq Arquivos, opcoes domain.OpcoesConversao) (*domain.ResultadoConversao, error) {
	w4Tab, err := carregarTabela(arq.W4, arq.W4Nome)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar arquivo W4: %w", err)
	}
	if !w4Tab.temColuna(colDetalheConta) {
		return nil, fmt.Errorf("coluna '%s' não existe no arquivo W4", colDetalheConta)
	}

	catTab, err := carregarTabela(arq.Categorias, arq.CategoriasNome)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar arquivo de categorias: %w", err)
	}
	indice, avisos, err := prepararCategorias(catTab)
	if err != nil {
		return nil, err
	}

	var mapeamentos []domain.MapeamentoCliente
	if opcoes.Setor == domain.SetorPrevidencia && arq.Mapeamento != nil {
		mapTab, err := carregarTabela(arq.Mapeamento, arq.MapeamentoNome)
		if err != nil {
			return nil, fmt.Errorf("erro ao carregar arquivo de mapeamento: %w", err)
		}
		mapeamentos, err = carregarMapeamento(mapTab)
		if err != nil {
			return nil, err
		}
	}

	resolvidas, avisosLinhas := svc.resolverLinhas(w4Tab, indice, mapeamentos)
	avisos = append(avisos, avisosLinhas...)

	mantidas, descartadas := deduplicar(resolvidas)

	var quebras []domain.RelatorioQuebra
	if arq.OFX != nil {
		bancarias, err := carregarOFX(arq.OFX)
		if err != nil {
			return nil, err
		}
		mantidas, quebras = conciliarOFX(mantidas, bancarias, estrategiaPorNome(opcoes.EstrategiaQuebra), opcoes.FiltroQuebra)
	}

	linhas := montarSaida(mantidas)
	outputCSV, err := gerarCSVContaAzul(linhas)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar CSV final: %w", err)
	}

	return &domain.ResultadoConversao{
		CSV:       outputCSV,
		Linhas:    linhas,
		Descartes: descartadas,
		Quebras:   quebras,
		Avisos:    avisos,
	}, nil
}

// resolverLinhas percorre o W4 linha a linha aplicando o filtro de
// transferências, o resolvedor de categorias, a cascata de classificação,
// a formatação de valor/data e o mapeamento setorial.
func (svc *service) resolverLinhas(t *tabela, indice *indiceCategorias, mapeamentos []domain.MapeamentoCliente) ([]domain.LancamentoResolvido, []string) {
	var resolvidas []domain.LancamentoResolvido
	var avisos []string

	transferencias := 0
	semCorrespondencia := make(map[string]bool)

	for i := range t.linhas {
		l := domain.LancamentoW4{
			DetalheConta: t.celula(i, colDetalheConta),
			Fluxo:        t.celula(i, colFluxo),
			Processo:     t.celula(i, colProcesso),
			Pessoa:       t.celula(i, colPessoa),
			ValorTotal:   t.celula(i, colValorTotal),
			DataTes:      t.celula(i, colDataTes),
			IDItem:       t.celula(i, colIDItem),
			Descricao:    t.celula(i, colDescricao),
		}

		if strings.Contains(normalizeText(l.DetalheConta), marcaTransferencia) {
			transferencias++
			continue
		}

		categoriaResolvida, correspondeu := indice.resolver(l.DetalheConta)
		if !correspondeu && l.DetalheConta != "" && !semCorrespondencia[l.DetalheConta] {
			semCorrespondencia[l.DetalheConta] = true
			aviso := fmt.Sprintf("categoria '%s' sem correspondência na referência", l.DetalheConta)
			if sugestao := indice.sugerir(l.DetalheConta); sugestao != "" {
				aviso += fmt.Sprintf(" (mais próxima: '%s')", sugestao)
			}
			avisos = append(avisos, aviso)
		}

		categoria, isDespesa, regra := classificar(l, categoriaResolvida)

		valorTexto, valorNum, valorOK := converterValor(l.ValorTotal, isDespesa)

		r := domain.LancamentoResolvido{
			Origem:         l,
			CategoriaFinal: categoria,
			IsDespesa:      isDespesa,
			RegraDecisiva:  regra,
			ValorFinal:     valorTexto,
			ValorNumerico:  valorNum,
			ValorValido:    valorOK,
			DataFinal:      formatarData(l.DataTes),
		}

		if nome, ok := aplicarMapeamento(l.DetalheConta, mapeamentos); ok {
			r.Cliente = nome
			r.CentroCusto = nome
			r.CategoriaFinal = domain.CategoriaRepasseFundo
		}

		resolvidas = append(resolvidas, r)
	}

	if transferencias > 0 {
		avisos = append(avisos, fmt.Sprintf("%d transferência(s) entre disponíveis removida(s)", transferencias))
	}

	return resolvidas, avisos
}
