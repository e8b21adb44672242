package chain

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/sigmaspace/ergochain/pkg/sigmaser"
)

// TypeKind discriminates the closed set of register value types.
type TypeKind uint8

const (
	KindBoolean TypeKind = iota + 1
	KindByte
	KindShort
	KindInt
	KindLong
	KindBigInt
	KindGroupElement
	KindColl
	KindTuple
)

// Type codes on the wire. Primitive types use their code directly;
// collections of primitives fold the element into one byte; anything
// else spells the element types out after a constructor code.
const (
	typeCodeBoolean      = 0x01
	typeCodeByte         = 0x02
	typeCodeShort        = 0x03
	typeCodeInt          = 0x04
	typeCodeLong         = 0x05
	typeCodeBigInt       = 0x06
	typeCodeGroupElement = 0x07

	typeCodeColl       = 0x0c // +prim code, or bare with element type following
	typeCodeNestedColl = 0x18 // +prim code
	typeCodeTuple      = 0x60 // u8 arity then element types

	maxPrimTypeCode = typeCodeGroupElement
)

// SType is a register value type: one of the primitive kinds, a
// collection over an element type, or a tuple over at least two
// element types.
type SType struct {
	Kind TypeKind

	// Elem is set for KindColl.
	Elem *SType

	// Items is set for KindTuple.
	Items []SType
}

var (
	TypeBoolean      = SType{Kind: KindBoolean}
	TypeByte         = SType{Kind: KindByte}
	TypeShort        = SType{Kind: KindShort}
	TypeInt          = SType{Kind: KindInt}
	TypeLong         = SType{Kind: KindLong}
	TypeBigInt       = SType{Kind: KindBigInt}
	TypeGroupElement = SType{Kind: KindGroupElement}
)

// CollType builds the type of a collection over elem.
func CollType(elem SType) SType {
	e := elem
	return SType{Kind: KindColl, Elem: &e}
}

// TupleType builds the type of a tuple over items.
func TupleType(items ...SType) SType {
	return SType{Kind: KindTuple, Items: items}
}

func (t SType) isPrim() bool {
	return t.Kind >= KindBoolean && t.Kind <= KindGroupElement
}

func (t SType) primCode() uint8 {
	return uint8(t.Kind)
}

// Equal reports structural type equality.
func (t SType) Equal(o SType) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KindColl:
		return t.Elem.Equal(*o.Elem)
	case KindTuple:
		if len(t.Items) != len(o.Items) {
			return false
		}
		for i := range t.Items {
			if !t.Items[i].Equal(o.Items[i]) {
				return false
			}
		}
	}
	return true
}

func (t SType) String() string {
	switch t.Kind {
	case KindBoolean:
		return "Boolean"
	case KindByte:
		return "Byte"
	case KindShort:
		return "Short"
	case KindInt:
		return "Int"
	case KindLong:
		return "Long"
	case KindBigInt:
		return "BigInt"
	case KindGroupElement:
		return "GroupElement"
	case KindColl:
		return fmt.Sprintf("Coll[%s]", t.Elem)
	case KindTuple:
		parts := make([]string, len(t.Items))
		for i, it := range t.Items {
			parts[i] = it.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return fmt.Sprintf("SType(%d)", t.Kind)
	}
}

// writeType emits the canonical type encoding. Each type has exactly
// one encoding: collections of primitives always use the folded code.
func writeType(w *sigmaser.Writer, t SType) error {
	switch t.Kind {
	case KindBoolean, KindByte, KindShort, KindInt, KindLong, KindBigInt, KindGroupElement:
		w.WriteUint8(t.primCode())
		return nil

	case KindColl:
		elem := *t.Elem
		if elem.isPrim() {
			w.WriteUint8(typeCodeColl + elem.primCode())
			return nil
		}
		if elem.Kind == KindColl && elem.Elem.isPrim() {
			w.WriteUint8(typeCodeNestedColl + elem.Elem.primCode())
			return nil
		}
		w.WriteUint8(typeCodeColl)
		return writeType(w, elem)

	case KindTuple:
		if len(t.Items) < 2 || len(t.Items) > 255 {
			return errors.Wrapf(ErrUnknownTypeTag, "tuple arity %d", len(t.Items))
		}
		w.WriteUint8(typeCodeTuple)
		w.WriteUint8(uint8(len(t.Items)))
		for _, it := range t.Items {
			if err := writeType(w, it); err != nil {
				return err
			}
		}
		return nil

	default:
		return errors.Wrapf(ErrUnknownTypeTag, "kind %d", t.Kind)
	}
}

// parseType reads one type tree, enforcing both the closed tag set and
// canonical encoding (a folded code must be used wherever one exists).
func parseType(r *sigmaser.Reader, depth int) (SType, error) {
	if depth > maxTypeNesting {
		return SType{}, errors.Wrap(sigmaser.ErrSizeLimitExceeded, "type nesting too deep")
	}

	c, err := r.ReadUint8()
	if err != nil {
		return SType{}, err
	}

	switch {
	case c >= typeCodeBoolean && c <= maxPrimTypeCode:
		return SType{Kind: TypeKind(c)}, nil

	case c == typeCodeColl:
		elem, err := parseType(r, depth+1)
		if err != nil {
			return SType{}, err
		}
		if elem.isPrim() || (elem.Kind == KindColl && elem.Elem.isPrim()) {
			return SType{}, errors.Wrap(sigmaser.ErrNonCanonical, "collection element should use folded code")
		}
		return CollType(elem), nil

	case c > typeCodeColl && c <= typeCodeColl+maxPrimTypeCode:
		return CollType(SType{Kind: TypeKind(c - typeCodeColl)}), nil

	case c > typeCodeNestedColl && c <= typeCodeNestedColl+maxPrimTypeCode:
		return CollType(CollType(SType{Kind: TypeKind(c - typeCodeNestedColl)})), nil

	case c == typeCodeTuple:
		n, err := r.ReadUint8()
		if err != nil {
			return SType{}, err
		}
		if n < 2 {
			return SType{}, errors.Wrapf(ErrUnknownTypeTag, "tuple arity %d", n)
		}
		items := make([]SType, n)
		for i := range items {
			items[i], err = parseType(r, depth+1)
			if err != nil {
				return SType{}, err
			}
		}
		return TupleType(items...), nil

	default:
		return SType{}, errors.Wrapf(ErrUnknownTypeTag, "0x%02x", c)
	}
}
