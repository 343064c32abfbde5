package bsonkit

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/ikmak/bsonkit/decimal"
	"github.com/ikmak/bsonkit/objectid"
)

// Val represents a BSON value.
type Val struct {
	// NOTE: The bootstrap is a small amount of space that'll be on the stack. At 15 bytes this
	// doesn't make this type any larger, since there are 7 bytes of padding and we want an int64 to
	// store small values (e.g. boolean, double, int64, etc...). The primitive property is where all
	// of the larger values go. They will use either Go primitives or the value types in this
	// package.
	t         Type
	bootstrap [15]byte
	primitive interface{}
}

func (v Val) string() string {
	if v.primitive != nil {
		return v.primitive.(string)
	}
	// The string will either end with a null byte or it fills the entire bootstrap space.
	idx := bytes.IndexByte(v.bootstrap[:], 0x00)
	if idx == -1 {
		idx = 15
	}
	return string(v.bootstrap[:idx])
}

func (v Val) writestring(str string) Val {
	switch {
	case len(str) < 16:
		copy(v.bootstrap[:], str)
	default:
		v.primitive = str
	}
	return v
}

func (v Val) i64() int64 {
	return int64(v.bootstrap[0]) | int64(v.bootstrap[1])<<8 | int64(v.bootstrap[2])<<16 |
		int64(v.bootstrap[3])<<24 | int64(v.bootstrap[4])<<32 | int64(v.bootstrap[5])<<40 |
		int64(v.bootstrap[6])<<48 | int64(v.bootstrap[7])<<56
}

func (v Val) writei64(i64 int64) Val {
	binary.LittleEndian.PutUint64(v.bootstrap[0:8], uint64(i64))
	return v
}

// IsZero returns true if this value is zero.
func (v Val) IsZero() bool { return v.t == Type(0) && v.primitive == nil }

// Type returns the BSON type of this value.
func (v Val) Type() Type { return v.t }

// IsNumber returns true if the type of v is a numeric BSON type.
func (v Val) IsNumber() bool {
	switch v.t {
	case TypeDouble, TypeInt32, TypeInt64, TypeDecimal128:
		return true
	default:
		return false
	}
}

// Interface returns the Go value of this Value as an empty interface.
//
// This method will return nil if it is empty, otherwise it will return a Go primitive or one of
// the value types in this package.
func (v Val) Interface() interface{} {
	switch v.t {
	case TypeDouble:
		return v.Double()
	case TypeString:
		return v.StringValue()
	case TypeEmbeddedDocument:
		return v.Document()
	case TypeArray:
		return v.Array()
	case TypeBinary:
		return v.Binary()
	case TypeUndefined:
		return nil
	case TypeObjectID:
		return v.ObjectID()
	case TypeBoolean:
		return v.Boolean()
	case TypeDateTime:
		return v.DateTime()
	case TypeNull:
		return nil
	case TypeRegex:
		return v.Regex()
	case TypeDBPointer:
		return v.DBPointer()
	case TypeJavaScript:
		return v.JavaScript()
	case TypeSymbol:
		return v.Symbol()
	case TypeCodeWithScope:
		return v.CodeWithScope()
	case TypeInt32:
		return v.Int32()
	case TypeTimestamp:
		return v.Timestamp()
	case TypeInt64:
		return v.Int64()
	case TypeDecimal128:
		return v.Decimal128()
	case TypeMinKey:
		return v
	case TypeMaxKey:
		return v
	case TypeDBRef:
		return v.DBRef()
	case TypeFunction:
		return v.Function()
	case TypeMarshaler:
		return v.Marshaler()
	default:
		return nil
	}
}

// Double returns the BSON double value the Value represents. It panics if the value is a BSON
// type other than double.
func (v Val) Double() float64 {
	if v.t != TypeDouble {
		panic(ElementTypeError{"bsonkit.Val.Double", v.t})
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(v.bootstrap[0:8]))
}

// DoubleOK is the same as Double, but returns a boolean instead of panicking.
func (v Val) DoubleOK() (float64, bool) {
	if v.t != TypeDouble {
		return 0, false
	}
	return v.Double(), true
}

// StringValue returns the BSON string the Value represents. It panics if the value is a BSON
// type other than string.
//
// NOTE: This method is called StringValue to avoid it implementing the
// fmt.Stringer interface.
func (v Val) StringValue() string {
	if v.t != TypeString {
		panic(ElementTypeError{"bsonkit.Val.StringValue", v.t})
	}
	return v.string()
}

// StringValueOK is the same as StringValue, but returns a boolean instead of
// panicking.
func (v Val) StringValueOK() (string, bool) {
	if v.t != TypeString {
		return "", false
	}
	return v.StringValue(), true
}

// Document returns the BSON embedded document value the Value represents. It panics if the value
// is a BSON type other than embedded document.
func (v Val) Document() Doc {
	if v.t != TypeEmbeddedDocument {
		panic(ElementTypeError{"bsonkit.Val.Document", v.t})
	}
	return v.primitive.(Doc)
}

// DocumentOK is the same as Document, except it returns a boolean
// instead of panicking.
func (v Val) DocumentOK() (Doc, bool) {
	if v.t != TypeEmbeddedDocument {
		return nil, false
	}
	return v.Document(), true
}

// Array returns the BSON array value the Value represents. It panics if the value is a BSON type
// other than array.
func (v Val) Array() Arr {
	if v.t != TypeArray {
		panic(ElementTypeError{"bsonkit.Val.Array", v.t})
	}
	return v.primitive.(Arr)
}

// ArrayOK is the same as Array, except it returns a boolean
// instead of panicking.
func (v Val) ArrayOK() (Arr, bool) {
	if v.t != TypeArray {
		return nil, false
	}
	return v.Array(), true
}

// Binary returns the BSON binary value the Value represents. It panics if the value is a BSON
// type other than binary.
func (v Val) Binary() Binary {
	if v.t != TypeBinary {
		panic(ElementTypeError{"bsonkit.Val.Binary", v.t})
	}
	return v.primitive.(Binary)
}

// BinaryOK is the same as Binary, except it returns a boolean instead of
// panicking.
func (v Val) BinaryOK() (Binary, bool) {
	if v.t != TypeBinary {
		return Binary{}, false
	}
	return v.Binary(), true
}

// ObjectID returns the BSON ObjectID the Value represents. It panics if the value is a BSON type
// other than ObjectID.
func (v Val) ObjectID() objectid.ObjectID {
	if v.t != TypeObjectID {
		panic(ElementTypeError{"bsonkit.Val.ObjectID", v.t})
	}
	var oid objectid.ObjectID
	copy(oid[:], v.bootstrap[:12])
	return oid
}

// ObjectIDOK is the same as ObjectID, except it returns a boolean instead of
// panicking.
func (v Val) ObjectIDOK() (objectid.ObjectID, bool) {
	if v.t != TypeObjectID {
		return objectid.ObjectID{}, false
	}
	return v.ObjectID(), true
}

// Boolean returns the BSON boolean the Value represents. It panics if the value is a BSON type
// other than boolean.
func (v Val) Boolean() bool {
	if v.t != TypeBoolean {
		panic(ElementTypeError{"bsonkit.Val.Boolean", v.t})
	}
	return v.bootstrap[0] == 0x01
}

// BooleanOK is the same as Boolean, except it returns a boolean instead of
// panicking.
func (v Val) BooleanOK() (bool, bool) {
	if v.t != TypeBoolean {
		return false, false
	}
	return v.Boolean(), true
}

// DateTime returns the BSON datetime the Value represents as milliseconds since the Unix epoch. It
// panics if the value is a BSON type other than datetime.
func (v Val) DateTime() int64 {
	if v.t != TypeDateTime {
		panic(ElementTypeError{"bsonkit.Val.DateTime", v.t})
	}
	return v.i64()
}

// DateTimeOK is the same as DateTime, except it returns a boolean instead of
// panicking.
func (v Val) DateTimeOK() (int64, bool) {
	if v.t != TypeDateTime {
		return 0, false
	}
	return v.DateTime(), true
}

// Time returns the BSON datetime the Value represents as time.Time. It panics if the value is a
// BSON type other than datetime.
func (v Val) Time() time.Time {
	i := v.DateTime()
	return time.Unix(i/1000, i%1000*1000000)
}

// TimeOK is the same as Time, except it returns a boolean instead of
// panicking.
func (v Val) TimeOK() (time.Time, bool) {
	if v.t != TypeDateTime {
		return time.Time{}, false
	}
	return v.Time(), true
}

// Regex returns the BSON regex the Value represents. It panics if the value is a BSON type
// other than regex.
func (v Val) Regex() Regex {
	if v.t != TypeRegex {
		panic(ElementTypeError{"bsonkit.Val.Regex", v.t})
	}
	return v.primitive.(Regex)
}

// RegexOK is the same as Regex, except that it returns a boolean
// instead of panicking.
func (v Val) RegexOK() (Regex, bool) {
	if v.t != TypeRegex {
		return Regex{}, false
	}
	return v.Regex(), true
}

// DBPointer returns the BSON dbpointer the Value represents. It panics if the value is a BSON
// type other than dbpointer.
func (v Val) DBPointer() DBPointer {
	if v.t != TypeDBPointer {
		panic(ElementTypeError{"bsonkit.Val.DBPointer", v.t})
	}
	return v.primitive.(DBPointer)
}

// DBPointerOK is the same as DBPointer, except that it returns a boolean
// instead of panicking.
func (v Val) DBPointerOK() (DBPointer, bool) {
	if v.t != TypeDBPointer {
		return DBPointer{}, false
	}
	return v.DBPointer(), true
}

// JavaScript returns the BSON JavaScript code the Value represents. It panics if the value is a
// BSON type other than JavaScript code.
func (v Val) JavaScript() string {
	if v.t != TypeJavaScript {
		panic(ElementTypeError{"bsonkit.Val.JavaScript", v.t})
	}
	return v.string()
}

// JavaScriptOK is the same as JavaScript, except that it returns a boolean
// instead of panicking.
func (v Val) JavaScriptOK() (string, bool) {
	if v.t != TypeJavaScript {
		return "", false
	}
	return v.JavaScript(), true
}

// Symbol returns the BSON symbol the Value represents. It panics if the value is a BSON type
// other than symbol.
func (v Val) Symbol() string {
	if v.t != TypeSymbol {
		panic(ElementTypeError{"bsonkit.Val.Symbol", v.t})
	}
	return v.string()
}

// SymbolOK is the same as Symbol, except that it returns a boolean
// instead of panicking.
func (v Val) SymbolOK() (string, bool) {
	if v.t != TypeSymbol {
		return "", false
	}
	return v.Symbol(), true
}

// CodeWithScope returns the BSON code with scope value the Value represents. It panics if the
// value is a BSON type other than code with scope.
func (v Val) CodeWithScope() CodeWithScope {
	if v.t != TypeCodeWithScope {
		panic(ElementTypeError{"bsonkit.Val.CodeWithScope", v.t})
	}
	return v.primitive.(CodeWithScope)
}

// CodeWithScopeOK is the same as CodeWithScope, except that it returns a
// boolean instead of panicking.
func (v Val) CodeWithScopeOK() (CodeWithScope, bool) {
	if v.t != TypeCodeWithScope {
		return CodeWithScope{}, false
	}
	return v.CodeWithScope(), true
}

// Int32 returns the BSON int32 the Value represents. It panics if the value is a BSON type
// other than int32.
func (v Val) Int32() int32 {
	if v.t != TypeInt32 {
		panic(ElementTypeError{"bsonkit.Val.Int32", v.t})
	}
	return int32(v.bootstrap[0]) | int32(v.bootstrap[1])<<8 |
		int32(v.bootstrap[2])<<16 | int32(v.bootstrap[3])<<24
}

// Int32OK is the same as Int32, except that it returns a boolean instead of
// panicking.
func (v Val) Int32OK() (int32, bool) {
	if v.t != TypeInt32 {
		return 0, false
	}
	return v.Int32(), true
}

// Timestamp returns the BSON timestamp the Value represents. It panics if the value is a
// BSON type other than timestamp.
func (v Val) Timestamp() Timestamp {
	if v.t != TypeTimestamp {
		panic(ElementTypeError{"bsonkit.Val.Timestamp", v.t})
	}
	return Timestamp{
		I: uint32(v.bootstrap[0]) | uint32(v.bootstrap[1])<<8 |
			uint32(v.bootstrap[2])<<16 | uint32(v.bootstrap[3])<<24,
		T: uint32(v.bootstrap[4]) | uint32(v.bootstrap[5])<<8 |
			uint32(v.bootstrap[6])<<16 | uint32(v.bootstrap[7])<<24,
	}
}

// TimestampOK is the same as Timestamp, except that it returns a boolean
// instead of panicking.
func (v Val) TimestampOK() (Timestamp, bool) {
	if v.t != TypeTimestamp {
		return Timestamp{}, false
	}
	return v.Timestamp(), true
}

// Int64 returns the BSON int64 the Value represents. It panics if the value is a BSON type
// other than int64.
func (v Val) Int64() int64 {
	if v.t != TypeInt64 {
		panic(ElementTypeError{"bsonkit.Val.Int64", v.t})
	}
	return v.i64()
}

// Int64OK is the same as Int64, except that it returns a boolean instead of
// panicking.
func (v Val) Int64OK() (int64, bool) {
	if v.t != TypeInt64 {
		return 0, false
	}
	return v.Int64(), true
}

// Decimal128 returns the BSON decimal128 value the Value represents. It panics if the value is a
// BSON type other than decimal128.
func (v Val) Decimal128() decimal.Decimal128 {
	if v.t != TypeDecimal128 {
		panic(ElementTypeError{"bsonkit.Val.Decimal128", v.t})
	}
	return v.primitive.(decimal.Decimal128)
}

// Decimal128OK is the same as Decimal128, except that it returns a boolean
// instead of panicking.
func (v Val) Decimal128OK() (decimal.Decimal128, bool) {
	if v.t != TypeDecimal128 {
		return decimal.Decimal128{}, false
	}
	return v.Decimal128(), true
}

// DBRef returns the database reference the Value represents. It panics if the value is not a
// database reference.
func (v Val) DBRef() DBRef {
	if v.t != TypeDBRef {
		panic(ElementTypeError{"bsonkit.Val.DBRef", v.t})
	}
	return v.primitive.(DBRef)
}

// DBRefOK is the same as DBRef, except that it returns a boolean instead of
// panicking.
func (v Val) DBRefOK() (DBRef, bool) {
	if v.t != TypeDBRef {
		return DBRef{}, false
	}
	return v.DBRef(), true
}

// Function returns the function the Value represents. It panics if the value is not a function.
func (v Val) Function() Function {
	if v.t != TypeFunction {
		panic(ElementTypeError{"bsonkit.Val.Function", v.t})
	}
	return v.primitive.(Function)
}

// FunctionOK is the same as Function, except that it returns a boolean
// instead of panicking.
func (v Val) FunctionOK() (Function, bool) {
	if v.t != TypeFunction {
		return Function{}, false
	}
	return v.Function(), true
}

// Marshaler returns the ValueMarshaler the Value holds. It panics if the value does not hold a
// ValueMarshaler.
func (v Val) Marshaler() ValueMarshaler {
	if v.t != TypeMarshaler {
		panic(ElementTypeError{"bsonkit.Val.Marshaler", v.t})
	}
	return v.primitive.(ValueMarshaler)
}

// MarshalerOK is the same as Marshaler, except that it returns a boolean
// instead of panicking.
func (v Val) MarshalerOK() (ValueMarshaler, bool) {
	if v.t != TypeMarshaler {
		return nil, false
	}
	return v.Marshaler(), true
}

// Equal compares v to v2 and returns true if they are equal.
func (v Val) Equal(v2 Val) bool {
	if v.t != v2.t {
		return false
	}
	switch v.t {
	case TypeDouble, TypeDateTime, TypeInt64:
		return bytes.Equal(v.bootstrap[0:8], v2.bootstrap[0:8])
	case TypeString, TypeJavaScript, TypeSymbol:
		return v.string() == v2.string()
	case TypeEmbeddedDocument:
		return v.Document().Equal(v2.Document())
	case TypeArray:
		return v.Array().Equal(v2.Array())
	case TypeBinary:
		return v.Binary().Equal(v2.Binary())
	case TypeUndefined, TypeNull, TypeMinKey, TypeMaxKey:
		return true
	case TypeObjectID:
		return bytes.Equal(v.bootstrap[0:12], v2.bootstrap[0:12])
	case TypeBoolean:
		return v.bootstrap[0] == v2.bootstrap[0]
	case TypeRegex:
		return v.Regex().Equal(v2.Regex())
	case TypeDBPointer:
		return v.DBPointer().Equal(v2.DBPointer())
	case TypeCodeWithScope:
		return v.CodeWithScope().Equal(v2.CodeWithScope())
	case TypeInt32:
		return bytes.Equal(v.bootstrap[0:4], v2.bootstrap[0:4])
	case TypeTimestamp:
		return bytes.Equal(v.bootstrap[0:8], v2.bootstrap[0:8])
	case TypeDecimal128:
		h, l := v.Decimal128().GetBytes()
		h2, l2 := v2.Decimal128().GetBytes()
		return h == h2 && l == l2
	case TypeDBRef:
		return v.DBRef().Equal(v2.DBRef())
	case TypeFunction:
		return v.Function().Equal(v2.Function())
	case TypeMarshaler:
		return v.primitive == v2.primitive
	default:
		return true
	}
}

// String implements the fmt.Stringer interface.
func (v Val) String() string {
	switch v.t {
	case TypeString:
		return fmt.Sprintf("%q", v.StringValue())
	case TypeNull:
		return "null"
	case TypeUndefined:
		return "undefined"
	case TypeMinKey:
		return "minKey"
	case TypeMaxKey:
		return "maxKey"
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}
