package ast

import "github.com/chainscript/ride/internal/rtype"

// PredefinedType returns the type of expr when it is independent of
// environment and subterms, and ok=false when resolving it requires
// internal/resolver (Ref, Block, If, Eq, Get, Some all fall into the
// second category — see spec §4.1).
func PredefinedType(expr Expression) (rtype.Type, bool) {
	switch expr.(type) {
	case ConstInt:
		return rtype.Int{}, true
	case ConstByteVector:
		return rtype.ByteVector{}, true
	case True, False:
		return rtype.Boolean{}, true
	case None:
		return rtype.Option{Inner: nil}, true
	case Sum:
		return rtype.Int{}, true
	case GE, GT:
		return rtype.Boolean{}, true
	case And, Or:
		return rtype.Boolean{}, true
	case IsDefined:
		return rtype.Boolean{}, true
	case SigVerify:
		return rtype.Boolean{}, true
	case Height:
		return rtype.Int{}, true
	case TxField:
		return txFieldType(expr.(TxField).Selector), true
	default:
		return nil, false
	}
}

func txFieldType(sel TxFieldSelector) rtype.Type {
	switch sel {
	case TxID, TxSenderPK, TxBodyBytes:
		return rtype.ByteVector{}
	case TxType:
		return rtype.Int{}
	case TxProof:
		return rtype.Option{Inner: rtype.ByteVector{}}
	default:
		return nil
	}
}
