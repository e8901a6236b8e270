package w4

import (
	"fmt"
	"io"
	"strings"

	"github.com/aclindsa/ofxgo"

	"w4-converter-service/internal/domain"
)

// carregarOFX lê um extrato bancário OFX e devolve apenas os créditos
// (valor positivo), na ordem do extrato. O conjunto resultante pertence
// exclusivamente ao motor de conciliação durante uma execução.
func carregarOFX(file io.Reader) ([]*domain.TransacaoBancaria, error) {
	response, err := ofxgo.ParseResponse(file)
	if err != nil {
		return nil, fmt.Errorf("erro ao interpretar o arquivo OFX: %w", err)
	}

	if len(response.Bank) == 0 {
		return nil, fmt.Errorf("o arquivo OFX não contém extrato bancário")
	}

	stmt, ok := response.Bank[0].(*ofxgo.StatementResponse)
	if !ok {
		return nil, fmt.Errorf("tipo de extrato OFX inesperado: %T", response.Bank[0])
	}
	if stmt.BankTranList == nil {
		return nil, fmt.Errorf("extrato OFX sem lista de transações")
	}

	var creditos []*domain.TransacaoBancaria
	for _, txn := range stmt.BankTranList.Transactions {
		valor, _ := txn.TrnAmt.Float64()
		if valor <= 0 {
			continue
		}

		data := txn.DtPosted.Time
		if data.IsZero() {
			data = txn.DtUser.Time
		}
		if data.IsZero() {
			continue
		}

		// Name primeiro; Memo como fallback, seguindo o padrão OFX
		memo := strings.TrimSpace(txn.Name.String())
		if memo == "" {
			memo = strings.TrimSpace(txn.Memo.String())
		}

		creditos = append(creditos, &domain.TransacaoBancaria{
			Data:  data.Format("02/01/2006"),
			Valor: mathRound(valor, 2),
			Memo:  memo,
		})
	}

	return creditos, nil
}
