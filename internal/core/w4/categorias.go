package w4

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/schollz/closestmatch"
)

// colDescricaoCategoria é a coluna obrigatória do arquivo de referência.
const colDescricaoCategoria = "Descrição da categoria financeira"

// indiceCategorias mapeia nome base normalizado -> descrição canônica.
// Construído uma vez por execução e somente leitura depois disso.
type indiceCategorias struct {
	porNomeBase map[string]string
	chaves      []string
	cm          *closestmatch.ClosestMatch
}

// tirarCodigoInicial remove o primeiro token quando ele contém dígito
// (tratado como prefixo de código contábil).
func tirarCodigoInicial(txt string) string {
	txt = strings.TrimSpace(txt)
	partes := strings.SplitN(txt, " ", 2)
	if len(partes) == 2 && strings.ContainsFunc(partes[0], unicode.IsDigit) {
		return strings.TrimSpace(partes[1])
	}
	return txt
}

// prepararCategorias constrói o índice a partir da tabela de referência.
// Colisões (duas linhas normalizando para a mesma chave) resolvem por
// manter-a-última e geram aviso de qualidade de dados; a tabela é assumida
// curada com nomes base únicos.
func prepararCategorias(t *tabela) (*indiceCategorias, []string, error) {
	if !t.temColuna(colDescricaoCategoria) {
		return nil, nil, fmt.Errorf("coluna '%s' não existe no arquivo de categorias", colDescricaoCategoria)
	}

	var avisos []string
	porNomeBase := make(map[string]string)
	var chaves []string

	for i := range t.linhas {
		desc := t.celula(i, colDescricaoCategoria)
		if desc == "" {
			continue
		}
		nomeBase := normalizeText(tirarCodigoInicial(desc))
		if nomeBase == "" {
			continue
		}
		if anterior, ok := porNomeBase[nomeBase]; ok && anterior != desc {
			avisos = append(avisos, fmt.Sprintf(
				"categorias '%s' e '%s' normalizam para a mesma chave '%s'; mantida a última", anterior, desc, nomeBase))
		} else if !ok {
			chaves = append(chaves, nomeBase)
		}
		porNomeBase[nomeBase] = desc
	}

	idx := &indiceCategorias{porNomeBase: porNomeBase, chaves: chaves}
	if len(chaves) > 0 {
		idx.cm = closestmatch.New(chaves, []int{3, 4, 5})
	}
	return idx, avisos, nil
}

// resolver devolve a categoria canônica para o rótulo bruto da linha do
// ledger. Sem correspondência, o rótulo bruto passa adiante inalterado:
// nenhuma linha é derrubada por falta de categoria.
func (idx *indiceCategorias) resolver(rotuloBruto string) (string, bool) {
	chave := normalizeText(rotuloBruto)
	if canonica, ok := idx.porNomeBase[chave]; ok {
		return canonica, true
	}
	return rotuloBruto, false
}

// sugerir devolve a categoria de referência mais próxima do rótulo não
// correspondido, para o relatório de qualidade de dados. A resolução em si
// permanece exata; a sugestão nunca altera a saída.
func (idx *indiceCategorias) sugerir(rotuloBruto string) string {
	if idx.cm == nil {
		return ""
	}
	match := idx.cm.Closest(normalizeText(rotuloBruto))
	if match == "" {
		return ""
	}
	return idx.porNomeBase[match]
}
