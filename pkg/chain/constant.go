package chain

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/sigmaspace/ergochain/pkg/cryptography"
	"github.com/sigmaspace/ergochain/pkg/sigmaser"
)

// Value is a typed register constant: a closed variant over booleans,
// the signed integer widths, bigints, group elements, collections and
// tuples. Composite values recurse into the same contract for their
// elements, so decode stays total with no open dispatch.
type Value interface {
	Type() SType
	isValue()
}

type (
	BoolValue  bool
	ByteValue  int8
	ShortValue int16
	IntValue   int32
	LongValue  int64

	// BigIntValue holds an arbitrary-precision integer within the
	// 256-byte two's-complement cap. Build through NewBigIntValue so
	// that encoding can never fail.
	BigIntValue struct {
		Int *big.Int
	}

	GroupElementValue struct {
		cryptography.GroupElement
	}

	// CollValue is a homogeneous collection. ElemType is carried
	// explicitly so that empty collections stay typed.
	CollValue struct {
		ElemType SType
		Items    []Value
	}

	TupleValue []Value
)

func (BoolValue) isValue()         {}
func (ByteValue) isValue()         {}
func (ShortValue) isValue()        {}
func (IntValue) isValue()          {}
func (LongValue) isValue()         {}
func (BigIntValue) isValue()       {}
func (GroupElementValue) isValue() {}
func (CollValue) isValue()         {}
func (TupleValue) isValue()        {}

func (BoolValue) Type() SType         { return TypeBoolean }
func (ByteValue) Type() SType         { return TypeByte }
func (ShortValue) Type() SType        { return TypeShort }
func (IntValue) Type() SType          { return TypeInt }
func (LongValue) Type() SType         { return TypeLong }
func (BigIntValue) Type() SType       { return TypeBigInt }
func (GroupElementValue) Type() SType { return TypeGroupElement }

func (c CollValue) Type() SType { return CollType(c.ElemType) }

func (t TupleValue) Type() SType {
	items := make([]SType, len(t))
	for i, v := range t {
		items[i] = v.Type()
	}
	return TupleType(items...)
}

// NewBigIntValue wraps n, rejecting values wider than the protocol
// cap.
func NewBigIntValue(n *big.Int) (BigIntValue, error) {
	if !sigmaser.BigIntFits(n) {
		return BigIntValue{}, errors.Wrap(sigmaser.ErrSizeLimitExceeded, "bigint over 256 bytes")
	}
	return BigIntValue{Int: n}, nil
}

// NewGroupElementValue wraps a group element constant.
func NewGroupElementValue(g cryptography.GroupElement) GroupElementValue {
	return GroupElementValue{g}
}

// NewCollValue builds a collection, checking every item against the
// element type.
func NewCollValue(elemType SType, items []Value) (CollValue, error) {
	for i, it := range items {
		if !it.Type().Equal(elemType) {
			return CollValue{}, errors.Wrapf(ErrUnknownTypeTag,
				"item %d has type %s, collection wants %s", i, it.Type(), elemType)
		}
	}
	return CollValue{ElemType: elemType, Items: items}, nil
}

// ByteCollValue builds a Coll[Byte] from raw bytes.
func ByteCollValue(b []byte) CollValue {
	items := make([]Value, len(b))
	for i, v := range b {
		items[i] = ByteValue(int8(v))
	}
	return CollValue{ElemType: TypeByte, Items: items}
}

// ByteSlice extracts the raw bytes of a Coll[Byte].
func (c CollValue) ByteSlice() ([]byte, bool) {
	if !c.ElemType.Equal(TypeByte) {
		return nil, false
	}
	b := make([]byte, len(c.Items))
	for i, it := range c.Items {
		b[i] = byte(it.(ByteValue))
	}
	return b, true
}

// WriteConstant emits the canonical (type, value) encoding of v.
func WriteConstant(w *sigmaser.Writer, v Value) error {
	if err := writeType(w, v.Type()); err != nil {
		return err
	}
	return writeValue(w, v)
}

// ReadConstant decodes one typed constant.
func ReadConstant(r *sigmaser.Reader) (Value, error) {
	t, err := parseType(r, 0)
	if err != nil {
		return nil, errors.Wrap(err, "parsing constant type")
	}
	return readValue(r, t, 0)
}

func writeValue(w *sigmaser.Writer, v Value) error {
	switch v := v.(type) {
	case BoolValue:
		if v {
			w.WriteUint8(1)
		} else {
			w.WriteUint8(0)
		}

	case ByteValue:
		w.WriteUint8(uint8(v))

	case ShortValue:
		w.WriteZigZag(int64(v))

	case IntValue:
		w.WriteZigZag(int64(v))

	case LongValue:
		w.WriteZigZag(int64(v))

	case BigIntValue:
		return w.WriteBigInt(v.Int)

	case GroupElementValue:
		v.SerializeTo(w)

	case CollValue:
		return writeColl(w, v)

	case TupleValue:
		for _, it := range v {
			if err := writeValue(w, it); err != nil {
				return err
			}
		}

	default:
		return errors.Wrapf(ErrUnknownTypeTag, "value %T", v)
	}
	return nil
}

func writeColl(w *sigmaser.Writer, c CollValue) error {
	if len(c.Items) > MaxCollLength {
		return errors.Wrapf(sigmaser.ErrSizeLimitExceeded, "collection of %d items", len(c.Items))
	}
	w.WriteVLQ(uint64(len(c.Items)))

	switch {
	case c.ElemType.Equal(TypeByte):
		for _, it := range c.Items {
			w.WriteUint8(uint8(it.(ByteValue)))
		}

	case c.ElemType.Equal(TypeBoolean):
		writeBits(w, c.Items)

	default:
		for _, it := range c.Items {
			if err := writeValue(w, it); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeBits packs booleans LSB-first, zero-padding the final byte.
func writeBits(w *sigmaser.Writer, items []Value) {
	var cur uint8
	for i, it := range items {
		if it.(BoolValue) {
			cur |= 1 << (i % 8)
		}
		if i%8 == 7 {
			w.WriteUint8(cur)
			cur = 0
		}
	}
	if len(items)%8 != 0 {
		w.WriteUint8(cur)
	}
}

func readValue(r *sigmaser.Reader, t SType, depth int) (Value, error) {
	if depth > maxTypeNesting {
		return nil, errors.Wrap(sigmaser.ErrSizeLimitExceeded, "value nesting too deep")
	}

	switch t.Kind {
	case KindBoolean:
		b, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		if b > 1 {
			return nil, errors.Wrapf(sigmaser.ErrNonCanonical, "boolean byte 0x%02x", b)
		}
		return BoolValue(b == 1), nil

	case KindByte:
		b, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		return ByteValue(int8(b)), nil

	case KindShort:
		v, err := r.ReadZigZag16()
		if err != nil {
			return nil, err
		}
		return ShortValue(v), nil

	case KindInt:
		v, err := r.ReadZigZag32()
		if err != nil {
			return nil, err
		}
		return IntValue(v), nil

	case KindLong:
		v, err := r.ReadZigZag()
		if err != nil {
			return nil, err
		}
		return LongValue(v), nil

	case KindBigInt:
		n, err := r.ReadBigInt()
		if err != nil {
			return nil, err
		}
		return BigIntValue{Int: n}, nil

	case KindGroupElement:
		g, err := cryptography.ParseGroupElement(r)
		if err != nil {
			return nil, err
		}
		return GroupElementValue{g}, nil

	case KindColl:
		return readColl(r, *t.Elem, depth)

	case KindTuple:
		items := make([]Value, len(t.Items))
		for i, it := range t.Items {
			v, err := readValue(r, it, depth+1)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return TupleValue(items), nil

	default:
		return nil, errors.Wrapf(ErrUnknownTypeTag, "kind %d", t.Kind)
	}
}

func readColl(r *sigmaser.Reader, elem SType, depth int) (Value, error) {
	n, err := r.ReadVLQ()
	if err != nil {
		return nil, err
	}
	if n > MaxCollLength {
		return nil, errors.Wrapf(sigmaser.ErrSizeLimitExceeded, "collection of %d items", n)
	}

	items := make([]Value, n)

	switch {
	case elem.Equal(TypeByte):
		b, err := r.ReadBytes(int(n))
		if err != nil {
			return nil, err
		}
		for i, v := range b {
			items[i] = ByteValue(int8(v))
		}

	case elem.Equal(TypeBoolean):
		if err := readBits(r, items); err != nil {
			return nil, err
		}

	default:
		for i := range items {
			v, err := readValue(r, elem, depth+1)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
	}

	return CollValue{ElemType: elem, Items: items}, nil
}

// readBits unpacks LSB-first booleans, requiring zero padding bits so
// that each collection has exactly one byte form.
func readBits(r *sigmaser.Reader, items []Value) error {
	n := len(items)
	b, err := r.ReadBytes((n + 7) / 8)
	if err != nil {
		return err
	}
	for i := range items {
		items[i] = BoolValue(b[i/8]&(1<<(i%8)) != 0)
	}
	if n%8 != 0 && b[len(b)-1]>>(n%8) != 0 {
		return errors.Wrap(sigmaser.ErrNonCanonical, "nonzero padding bits")
	}
	return nil
}
