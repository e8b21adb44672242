package chain

import (
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/sigmaspace/ergochain/pkg/cryptography"
)

// NetworkPrefix selects the address namespace of a network.
type NetworkPrefix uint8

const (
	Mainnet NetworkPrefix = 0x00
	Testnet NetworkPrefix = 0x10
)

// AddressType discriminates address content.
type AddressType uint8

const (
	// AddressP2PK pays to a public key; content is the 33-byte
	// compressed point.
	AddressP2PK AddressType = 0x01

	// AddressP2S pays to a script; content is the serialized script.
	AddressP2S AddressType = 0x02
)

const addressChecksumSize = 4

// Address is the human-readable form of a spending condition:
// base58(head ‖ content ‖ checksum), where head packs the network
// prefix and address type and the checksum is the leading four bytes
// of the blake2b-256 digest of everything before it. The text form
// round-trips exactly with the binary content.
type Address struct {
	Network NetworkPrefix
	Type    AddressType

	content []byte
}

// NewP2PKAddress builds a pay-to-public-key address.
func NewP2PKAddress(network NetworkPrefix, pk cryptography.GroupElement) (Address, error) {
	if pk.IsIdentity() {
		return Address{}, errors.Wrap(ErrInvalidAddress, "identity element cannot own funds")
	}
	b := pk.Bytes()
	return Address{Network: network, Type: AddressP2PK, content: b[:]}, nil
}

// NewP2SAddress builds a pay-to-script address over an opaque script
// blob.
func NewP2SAddress(network NetworkPrefix, script []byte) (Address, error) {
	if len(script) == 0 || len(script) > MaxScriptSize {
		return Address{}, errors.Wrapf(ErrInvalidAddress, "script of %d bytes", len(script))
	}
	return Address{Network: network, Type: AddressP2S, content: append([]byte(nil), script...)}, nil
}

// Content returns the raw address content (compressed point or
// script bytes).
func (a Address) Content() []byte {
	return append([]byte(nil), a.content...)
}

// GroupElement returns the public key of a P2PK address.
func (a Address) GroupElement() (cryptography.GroupElement, error) {
	if a.Type != AddressP2PK {
		return cryptography.GroupElement{}, errors.Wrapf(ErrInvalidAddress, "not a P2PK address")
	}
	var b [cryptography.GroupElementSize]byte
	copy(b[:], a.content)
	return cryptography.FromBytes(b)
}

// Encode returns the base58 text form.
func (a Address) Encode() string {
	head := byte(a.Network) | byte(a.Type)
	body := append([]byte{head}, a.content...)
	sum := Blake2b256(body)
	return base58.Encode(append(body, sum[:addressChecksumSize]...))
}

func (a Address) String() string {
	return a.Encode()
}

// DecodeAddress parses and validates the text form: checksum, known
// network and type, and for P2PK a point actually on the curve.
func DecodeAddress(s string) (Address, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return Address{}, errors.Wrap(ErrInvalidAddress, err.Error())
	}
	if len(raw) < 1+1+addressChecksumSize {
		return Address{}, errors.Wrapf(ErrInvalidAddress, "%d bytes", len(raw))
	}

	body := raw[:len(raw)-addressChecksumSize]
	sum := Blake2b256(body)
	if string(raw[len(raw)-addressChecksumSize:]) != string(sum[:addressChecksumSize]) {
		return Address{}, ErrChecksum
	}

	network := NetworkPrefix(body[0] & 0xf0)
	if network != Mainnet && network != Testnet {
		return Address{}, errors.Wrapf(ErrInvalidAddress, "network 0x%02x", body[0]&0xf0)
	}

	content := body[1:]
	switch AddressType(body[0] & 0x0f) {
	case AddressP2PK:
		if len(content) != cryptography.GroupElementSize {
			return Address{}, errors.Wrapf(ErrInvalidAddress, "P2PK content of %d bytes", len(content))
		}
		var b [cryptography.GroupElementSize]byte
		copy(b[:], content)
		pk, err := cryptography.FromBytes(b)
		if err != nil {
			return Address{}, err
		}
		return NewP2PKAddress(network, pk)

	case AddressP2S:
		return NewP2SAddress(network, content)

	default:
		return Address{}, errors.Wrapf(ErrInvalidAddress, "type 0x%02x", body[0]&0x0f)
	}
}
