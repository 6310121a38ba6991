package parser

import (
	"testing"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yurifrl/ofxconv/pkg/models"
)

func TestInstallmentID(t *testing.T) {
	p := NewOFXParser(cardAccount(), testLogger())
	id := "6766cf6e-3ac9-40da-8f1a-164426f32192"

	// Later installments lose the source id so the content hash is
	// derived instead.
	assert.Equal(t, "", p.InstallmentID(id, "Lj do Mec - Parcela 9/10"))

	// The first installment anchors the series.
	assert.Equal(t, id, p.InstallmentID(id, "Lj do Mec - Parcela 1/10"))

	// Non-installment memos pass through.
	assert.Equal(t, id, p.InstallmentID(id, "Padaria da Esquina"))
}

func TestNubankDiscountSuppression(t *testing.T) {
	p := NewNubankParser(cardAccount(), testLogger())
	id := "some-source-id"

	assert.Equal(t, "", p.InstallmentID(id, "Desconto Antecipação - Loja X"))
	assert.Equal(t, "", p.InstallmentID(id, "Lj do Mec - Parcela 2/10"))
	assert.Equal(t, id, p.InstallmentID(id, "Lj do Mec - Parcela 1/10"))
	assert.Equal(t, id, p.InstallmentID(id, "Padaria da Esquina"))
}

func sourceTransaction(fitid, memo string, cents int64, credit bool) *ofxgo.Transaction {
	var amount ofxgo.Amount
	amount.SetFrac64(cents, 100)
	stmt := &ofxgo.Transaction{
		TrnType:  ofxgo.TrnTypeDebit,
		DtPosted: ofxgo.Date{Time: time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)},
		TrnAmt:   amount,
		FiTID:    ofxgo.String(fitid),
		Memo:     ofxgo.String(memo),
	}
	if credit {
		stmt.TrnType = ofxgo.TrnTypeCredit
	}
	return stmt
}

func TestOFXParsePassthrough(t *testing.T) {
	p := NewOFXParser(cardAccount(), testLogger())

	tx, err := p.Parse(Record{Stmt: sourceTransaction("src-1", "Padaria da Esquina", -4250, false)})
	require.NoError(t, err)
	require.NotNil(t, tx)

	assert.Equal(t, "src-1", tx.FitID())
	assert.Equal(t, "Padaria da Esquina", tx.Description())
	assert.Equal(t, "-42.50", tx.Value().StringFixed(2))
	assert.Equal(t, models.TypeDebit, tx.Type())
	assert.Nil(t, tx.Balance())

	tx, err = p.Parse(Record{Stmt: sourceTransaction("src-2", "Estorno Padaria", 4250, true)})
	require.NoError(t, err)
	require.NotNil(t, tx)
	assert.Equal(t, models.TypeCredit, tx.Type())
}

func TestOFXParseSuppressedIDFallsBackToHash(t *testing.T) {
	p := NewOFXParser(cardAccount(), testLogger())

	tx, err := p.Parse(Record{Stmt: sourceTransaction("src-1", "Lj do Mec - Parcela 9/10", -1000, false)})
	require.NoError(t, err)
	require.NotNil(t, tx)

	// The derived id must not be the source id and must be stable.
	assert.NotEqual(t, "src-1", tx.FitID())
	assert.NotEmpty(t, tx.FitID())

	again, err := p.Parse(Record{Stmt: sourceTransaction("src-1", "Lj do Mec - Parcela 9/10", -1000, false)})
	require.NoError(t, err)
	assert.Equal(t, tx.FitID(), again.FitID())
}

func TestOFXParseTypeMismatch(t *testing.T) {
	p := NewOFXParser(cardAccount(), testLogger())

	_, err := p.Parse(Record{Stmt: sourceTransaction("src-1", "Estorno", 1000, false)})
	assert.ErrorIs(t, err, models.ErrTypeMismatch)
}

func TestOFXParseDropsEmptyRecords(t *testing.T) {
	p := NewOFXParser(cardAccount(), testLogger())

	tx, err := p.Parse(Record{})
	require.NoError(t, err)
	assert.Nil(t, tx)

	stmt := sourceTransaction("src-1", "", -1000, false)
	tx, err = p.Parse(Record{Stmt: stmt})
	require.NoError(t, err)
	assert.Nil(t, tx)
}
