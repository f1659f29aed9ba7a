package checkpoint

import (
	"fmt"

	"github.com/veraison/go-cose"
)

// VerifySignedState checks the COSE Sign1 signature over a signed
// checkpoint and returns the decoded state. The verifier must hold the
// public key named by the kid protected header; key resolution is the
// caller's concern.
func VerifySignedState(codec CBORCodec, verifier cose.Verifier, signed []byte) (TreeState, error) {
	var msg cose.Sign1Message
	if err := msg.UnmarshalCBOR(signed); err != nil {
		return TreeState{}, fmt.Errorf("%w: %v", ErrSignMalformed, err)
	}
	if len(msg.Payload) == 0 {
		return TreeState{}, ErrNoPayload
	}

	if err := msg.Verify(nil, verifier); err != nil {
		return TreeState{}, err
	}

	var state TreeState
	if err := codec.UnmarshalInto(msg.Payload, &state); err != nil {
		return TreeState{}, fmt.Errorf("%w: %v", ErrSignMalformed, err)
	}
	if err := checkState(state); err != nil {
		return TreeState{}, err
	}
	return state, nil
}
