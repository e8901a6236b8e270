// package domain/models.go
package domain

// Setor define a variante de comportamento selecionada na configuração da execução.
type Setor string

// Setores suportados.
const (
	SetorGenerico    Setor = "generico"
	SetorPrevidencia Setor = "previdencia"
)

// CategoriaRepasseFundo é a categoria fixa aplicada quando o mapeamento de
// cliente/centro de custo do setor previdência encontra um padrão.
const CategoriaRepasseFundo = "Repasse Recebido Fundo de Previdência"

// LancamentoW4 representa uma linha do extrato contábil W4.
// DetalheConta é obrigatório; as demais colunas degradam para vazio quando ausentes.
type LancamentoW4 struct {
	DetalheConta string // "Detalhe Conta / Objeto"
	Fluxo        string // "Fluxo": receita/despesa/imobilizado ou vazio
	Processo     string // "Processo": pode indicar empréstimo/pagamento/recebimento
	Pessoa       string // "Pessoa"
	ValorTotal   string // "Valor total", número localizado
	DataTes      string // "Data da Tesouraria"
	IDItem       string // "Id Item tesouraria", chave de unicidade
	Descricao    string // "Descrição"
}

// LancamentoResolvido é um LancamentoW4 enriquecido pelo pipeline.
// Polaridade nunca fica indefinida na saída: toda linha resolve para
// despesa ou receita antes da montagem.
type LancamentoResolvido struct {
	Origem         LancamentoW4
	CategoriaFinal string
	IsDespesa      bool
	RegraDecisiva  string // nome da regra da cascata que decidiu a polaridade
	ValorFinal     string // magnitude formatada "1.234,56", "-" prefixado se despesa; vazio se inparseável
	ValorNumerico  float64
	ValorValido    bool
	DataFinal      string // "dd/mm/aaaa", vazio se inparseável
	Cliente        string
	CentroCusto    string
}

// LinhaContaAzul é a projeção fixa de 10 colunas do arquivo de importação.
// Imutável depois de produzida pela montagem.
type LinhaContaAzul struct {
	DataCompetencia string
	DataVencimento  string
	DataPagamento   string
	Valor           string
	Categoria       string
	Descricao       string
	ClienteCNPJCPF  string
	Cliente         string
	CentroCusto     string
	Observacoes     string
}

// LinhaDescartada é uma linha excluída da saída por Id de transação repetido,
// retida para auditoria; nunca volta para a saída.
type LinhaDescartada struct {
	Origem         LancamentoW4
	CategoriaFinal string
	Motivo         string
}

// MapeamentoCliente é uma entrada da tabela opcional de cliente/centro de custo.
type MapeamentoCliente struct {
	Nome   string // nome de exibição
	Padrao string // padrão de busca, contenção de substring sobre texto normalizado
}

// TransacaoBancaria é um crédito do extrato bancário usado pela conciliação.
// Consumida é de uso exclusivo do motor de conciliação durante uma execução.
type TransacaoBancaria struct {
	Data      string // "dd/mm/aaaa"
	Valor     float64
	Memo      string
	Consumida bool
}

// RelatorioQuebra registra uma quebra realizada pela conciliação.
type RelatorioQuebra struct {
	Data          string `json:"data"`
	Categoria     string `json:"categoria"`
	ValorOriginal string `json:"valor_original"`
	Partes        int    `json:"partes"`
	Detalhe       string `json:"detalhe"` // "Quebrado em: N"
}

// OpcoesConversao é a configuração de uma execução, vinda do formulário.
type OpcoesConversao struct {
	Setor            Setor
	EstrategiaQuebra string // "gulosa" (padrão) ou "exaustiva"
	FiltroQuebra     string // palavra-chave de categoria para a quebra; vazio = todas
}

// ResultadoConversao reúne a saída de uma execução: o CSV final mais as
// tabelas de descarte/quebra e avisos de qualidade de dados para exibição.
type ResultadoConversao struct {
	CSV       []byte            `json:"-"`
	Linhas    []LinhaContaAzul  `json:"linhas"`
	Descartes []LinhaDescartada `json:"descartes"`
	Quebras   []RelatorioQuebra `json:"quebras"`
	Avisos    []string          `json:"avisos"`
}
