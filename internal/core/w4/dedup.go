package w4

import "w4-converter-service/internal/domain"

// deduplicar separa as linhas com Id de transação repetido, mantendo a
// primeira ocorrência na ordem original. Ids vazios nunca contam como
// duplicata entre si e são sempre mantidos. mantidas ∪ descartadas
// reconstrói exatamente a contagem de entrada.
func deduplicar(linhas []domain.LancamentoResolvido) (mantidas []domain.LancamentoResolvido, descartadas []domain.LinhaDescartada) {
	vistos := make(map[string]bool, len(linhas))

	for _, l := range linhas {
		id := l.Origem.IDItem
		if id == "" {
			mantidas = append(mantidas, l)
			continue
		}
		if vistos[id] {
			descartadas = append(descartadas, domain.LinhaDescartada{
				Origem:         l.Origem,
				CategoriaFinal: l.CategoriaFinal,
				Motivo:         "Id Item tesouraria repetido: " + id,
			})
			continue
		}
		vistos[id] = true
		mantidas = append(mantidas, l)
	}
	return mantidas, descartadas
}
