package bf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBasics(t *testing.T) {
	tests := []struct {
		name string
		src  string
		out  []byte
	}{
		{"output three", "+++.", []byte{3}},
		{"wrap down", "-.", []byte{255}},
		{"move and add", ">++.", []byte{2}},
		{"simple loop", "+++[-].", []byte{0}},
		{"comma reads zero", "+,.", []byte{0}},
		{"comments ignored", "hello+world.", []byte{1}},
		{"no output", "+++", nil},
	}
	for _, test := range tests {
		res := Run(Program{Src: []byte(test.src)})
		require.True(t, res.Halted, "%s: did not halt", test.name)
		assert.Equal(t, test.out, res.Out, test.name)
	}
}

func TestRunHelloStyleProgram(t *testing.T) {
	// A loop with pointer travel: 3*4 via [>++++<-].
	res := Run(Program{Src: []byte("+++[>++++<-]>.")})
	require.True(t, res.Halted)
	assert.Equal(t, []byte{12}, res.Out)
}

func TestRunMalformed(t *testing.T) {
	for _, src := range []string{"[", "]", "+[", "++]--", "[[]"} {
		res := Run(Program{Src: []byte(src)})
		assert.False(t, res.Halted, "src %q", src)
		assert.Equal(t, uint32(0), res.Steps, "src %q", src)
		assert.Equal(t, 0, len(res.Out), "src %q", src)
	}
}

func TestRunStepCap(t *testing.T) {
	// +[] never terminates on its own.
	res := Run(Program{Src: []byte("+[]"), MaxSteps: 1000})
	assert.False(t, res.Halted)
	assert.Equal(t, uint32(1000), res.Steps)
}

func TestRunOutputCap(t *testing.T) {
	// 255 iterations of a dot loop would emit 255 bytes; capture stops
	// at MaxOut.
	res := Run(Program{Src: []byte("-[.-]")})
	require.True(t, res.Halted)
	assert.Equal(t, MaxOut, len(res.Out))
}

func TestRunTruncatesLongSource(t *testing.T) {
	src := make([]byte, MaxSrc+64)
	for i := range src {
		src[i] = '+'
	}
	src = append(src, '.')
	res := Run(Program{Src: src})
	require.True(t, res.Halted)
	// The '.' beyond MaxSrc was dropped along with everything after
	// byte MaxSrc.
	assert.Equal(t, 0, len(res.Out))
	assert.Equal(t, uint32(MaxSrc), res.Steps)
}

func TestRunBatch(t *testing.T) {
	programs := make([]Program, 500)
	for i := range programs {
		switch i % 3 {
		case 0:
			programs[i] = Program{Src: []byte("++.")}
		case 1:
			programs[i] = Program{Src: []byte("[")}
		case 2:
			programs[i] = Program{Src: []byte("+[]"), MaxSteps: 100}
		}
	}
	results := make([]Result, len(programs))
	RunBatch(programs, results, 4)
	for i, res := range results {
		switch i % 3 {
		case 0:
			require.True(t, res.Halted)
			require.Equal(t, []byte{2}, res.Out)
		case 1:
			require.False(t, res.Halted)
			require.Equal(t, uint32(0), res.Steps)
		case 2:
			require.False(t, res.Halted)
			require.Equal(t, uint32(100), res.Steps)
		}
	}
}

func TestRunBatchSingleWorker(t *testing.T) {
	programs := []Program{{Src: []byte(".")}, {Src: []byte("+.")}}
	results := make([]Result, 2)
	RunBatch(programs, results, 1)
	assert.Equal(t, []byte{0}, results[0].Out)
	assert.Equal(t, []byte{1}, results[1].Out)
}
