package ast

// Type is a GroundType or an AggregateType.
type Type interface {
	String() string
	isType()
}

// GroundType is a ground type, optionally const-qualified.
type GroundType struct {
	Const  bool
	Ground Ground
}

// AggregateType is a bundle or vector, optionally const-qualified.
type AggregateType struct {
	Const     bool
	Aggregate Aggregate
}

func (*GroundType) isType()    {}
func (*AggregateType) isType() {}

// Ground is a *ClockType, *ResetType, *AsyncResetType, *UIntType or
// *SIntType.
type Ground interface {
	String() string
	isGround()
}

// ClockType and the reset types carry no width.
type ClockType struct{}

type ResetType struct{}

type AsyncResetType struct{}

type UIntType struct {
	Width *Width
}

type SIntType struct {
	Width *Width
}

func (*ClockType) isGround()      {}
func (*ResetType) isGround()      {}
func (*AsyncResetType) isGround() {}
func (*UIntType) isGround()       {}
func (*SIntType) isGround()       {}

// Aggregate is a *BundleType or a *VectorType.
type Aggregate interface {
	String() string
	isAggregate()
}

// BundleType is an ordered list of named fields.
type BundleType struct {
	Fields []*Field
}

// VectorType is a fixed-size array of Elem.
type VectorType struct {
	Elem Type
	Size int64
}

func (*BundleType) isAggregate() {}
func (*VectorType) isAggregate() {}

// Field is a bundle member. Flipped fields carry data against the
// direction of the enclosing bundle.
type Field struct {
	Flipped bool
	Name    Identifier
	Type    Type
}
