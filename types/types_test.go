package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypes(t *testing.T) {
	assert.Equal(t, M_SRT, NewMethodType("SRT"))
	assert.Equal(t, M_SRT, NewMethodType(" bgk "))
	assert.Equal(t, M_TRTMagic, NewMethodType("trt-magic"))
	assert.Equal(t, M_MRT, NewMethodType("orthogonal"))
	assert.Equal(t, M_None, NewMethodType("cumulant"))
	assert.Equal(t, "MRT (raw moments)", M_MRTRaw.String())
	assert.Equal(t, "Unknown", MethodType(42).String())

	fm, ok := NewForceModelType("Guo")
	assert.True(t, ok)
	assert.Equal(t, FM_Guo, fm)
	assert.Equal(t, "guo", fm.String())
	fm, ok = NewForceModelType("")
	assert.True(t, ok)
	assert.Equal(t, FM_None, fm)
	_, ok = NewForceModelType("shan-chen")
	assert.False(t, ok)

	mx, ok := NewMaxwellianType("continuous")
	assert.True(t, ok)
	assert.Equal(t, "continuous", mx.String())
	_, ok = NewMaxwellianType("quantum")
	assert.False(t, ok)
}
