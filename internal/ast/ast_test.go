package ast

import "testing"

func TestTxFieldSelectorString(t *testing.T) {
	cases := map[TxFieldSelector]string{
		TxID:                "Id",
		TxType:              "Type",
		TxSenderPK:          "SenderPk",
		TxBodyBytes:         "BodyBytes",
		TxProof:             "Proof",
		TxFieldSelector(99): "Unknown",
	}
	for sel, want := range cases {
		if got := sel.String(); got != want {
			t.Errorf("TxFieldSelector(%d).String() = %q, want %q", sel, got, want)
		}
	}
}

func TestBlockWithoutBindingIsExpression(t *testing.T) {
	var _ Expression = Block{Body: ConstInt{Value: 1}}
}
