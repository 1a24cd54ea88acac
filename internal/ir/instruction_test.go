package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstructionStrings(t *testing.T) {
	dest := PlaceFromLocal(0)
	assert.Equal(t, "_l0 = _l1 + _l2", Assign(dest, BinaryRValue(OpAdd, ValueFromLocal(1), ValueFromLocal(2))).String())

	allocInstr := Alloc(dest, Str())
	assert.Equal(t, "_l0 = alloc str", allocInstr.String())

	cloneInstr := Clone(dest, ValueFromLocal(3))
	assert.Equal(t, "_l0 = clone _l3", cloneInstr.String())

	freeInstr := Free(ValueFromLocal(3))
	assert.Equal(t, "free _l3", freeInstr.String())

	assert.Equal(t, "rc_inc _l3", RefCountInc(ValueFromLocal(3)).String())
	assert.Equal(t, "rc_dec _l3", RefCountDec(ValueFromLocal(3)).String())

	callInstr := Call(&dest, ValueFromConstant(ConstantI64(0)), []Value{ValueFromLocal(1)})
	assert.Equal(t, "_l0 = call 0(_l1)", callInstr.String())

	bareCall := Call(nil, ValueFromConstant(ConstantI64(0)), nil)
	assert.Equal(t, "call 0()", bareCall.String())
}

func TestTerminatorSuccessors(t *testing.T) {
	assert.Nil(t, Return(ValueFromConstant(ConstantI64(0))).Successors())
	assert.Nil(t, ReturnVoid().Successors())
	assert.Nil(t, Unreachable().Successors())
	assert.Equal(t, []BlockId{5}, Jump(5).Successors())
	assert.Equal(t, []BlockId{1, 2}, Branch(ValueFromConstant(ConstantBool(true)), 1, 2).Successors())
}

func TestPlaceProjectionChaining(t *testing.T) {
	p := PlaceFromLocal(0).Project(FieldProjection("x", 0)).Project(IndexProjection(ValueFromConstant(ConstantI64(1))))
	assert.Equal(t, "_l0.x[1]", p.String())
}
