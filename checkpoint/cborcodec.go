package checkpoint

import (
	"github.com/fxamacker/cbor/v2"
)

// CBORCodec pairs deterministic encode and decode modes. Checkpoint
// payloads are signed, so the encoding must be byte stable: the same state
// must marshal to the same bytes on every node that ever re-encodes it.
type CBORCodec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

func NewCBORCodec() (CBORCodec, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return CBORCodec{}, err
	}
	dec, err := cbor.DecOptions{
		IndefLength: cbor.IndefLengthForbidden,
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		return CBORCodec{}, err
	}
	return CBORCodec{enc: enc, dec: dec}, nil
}

func (c CBORCodec) MarshalCBOR(v any) ([]byte, error) {
	return c.enc.Marshal(v)
}

func (c CBORCodec) UnmarshalInto(data []byte, v any) error {
	return c.dec.Unmarshal(data, v)
}
