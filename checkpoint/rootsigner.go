package checkpoint

import (
	"crypto/rand"

	"github.com/veraison/go-cose"
)

// cwtClaims is the CWT claims protected header (label 15), carrying the
// issuer (claim 1) and the version label as subject (claim 2).
const headerLabelCWTClaims = int64(15)

const (
	cwtClaimIssuer  = int64(1)
	cwtClaimSubject = int64(2)
)

// RootSigner signs tree states as COSE Sign1 messages. A signature commits
// the issuer to a (version, leaf count, root) triple; publish one only after
// the root has been cross checked against an independent rebuild.
type RootSigner struct {
	issuer string
	codec  CBORCodec
}

func NewRootSigner(issuer string, codec CBORCodec) RootSigner {
	return RootSigner{
		issuer: issuer,
		codec:  codec,
	}
}

// Sign1 encodes state deterministically and signs it. keyIdentifier names
// the signing key in the protected headers so verifiers can locate the
// right public key.
func (rs RootSigner) Sign1(coseSigner cose.Signer, keyIdentifier string, state TreeState) ([]byte, error) {
	if err := checkState(state); err != nil {
		return nil, err
	}

	payload, err := rs.codec.MarshalCBOR(state)
	if err != nil {
		return nil, err
	}

	msg := cose.Sign1Message{
		Headers: cose.Headers{
			Protected: cose.ProtectedHeader{
				cose.HeaderLabelAlgorithm: coseSigner.Algorithm(),
				cose.HeaderLabelKeyID:     []byte(keyIdentifier),
				headerLabelCWTClaims: map[int64]any{
					cwtClaimIssuer:  rs.issuer,
					cwtClaimSubject: state.Version,
				},
			},
		},
		Payload: payload,
	}

	if err = msg.Sign(rand.Reader, nil, coseSigner); err != nil {
		return nil, err
	}
	return msg.MarshalCBOR()
}
