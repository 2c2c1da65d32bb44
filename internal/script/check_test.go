package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/joyprog/internal/action"
	"github.com/dshills/joyprog/internal/device"
	"github.com/dshills/joyprog/internal/input/key"
	"github.com/dshills/joyprog/internal/profile"
	"github.com/dshills/joyprog/internal/profile/handler"
	"github.com/dshills/joyprog/internal/profile/shift"
)

func callNames(res *Result) []string {
	names := make([]string, 0, len(res.Calls))
	for _, c := range res.Calls {
		names = append(names, c.Name)
	}
	return names
}

func TestCheckValid(t *testing.T) {
	lines := []string{
		"if value~=0 then",
		"  jsprog_presskey(30)",
		"  jsprog_releasekey(30)",
		"else",
		"  jsprog_cancelprevious()",
		"end",
	}

	res, err := Check("BTN_TRIGGER", lines)
	require.NoError(t, err)
	require.NotNil(t, res.Proto)
	assert.Equal(t, []string{"jsprog_presskey", "jsprog_releasekey", "jsprog_cancelprevious"}, callNames(res))
	assert.Equal(t, 2, res.Calls[0].Line)
	assert.Equal(t, 1, res.Calls[0].Args)
}

func TestCheckErrors(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  error
		line  int
	}{
		{
			name:  "syntax",
			lines: []string{"if value~=0 then", "  jsprog_presskey(30)"},
			want:  ErrSyntax,
		},
		{
			name:  "unknown function",
			lines: []string{"jsprog_presskey(30)", "jsprog_explode()"},
			want:  ErrUnknownFunction,
			line:  2,
		},
		{
			name:  "too few arguments",
			lines: []string{"jsprog_moverel(0)"},
			want:  ErrArity,
			line:  1,
		},
		{
			name:  "too many arguments",
			lines: []string{"", "", "jsprog_cancelprevious(1)"},
			want:  ErrArity,
			line:  3,
		},
		{
			name:  "nested call",
			lines: []string{"local x = math.floor(jsprog_getabs())"},
			want:  ErrArity,
			line:  1,
		},
		{
			name:  "inside function",
			lines: []string{"local f = function()", "  while true do", "    jsprog_delay()", "  end", "end"},
			want:  ErrArity,
			line:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Check("chunk", tt.lines)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var cerr *CheckError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, "chunk", cerr.Chunk)
			if tt.line > 0 {
				assert.Equal(t, tt.line, cerr.Line)
			}
		})
	}
}

func TestCheckMultipleValues(t *testing.T) {
	// The trailing call may supply the missing argument.
	_, err := Check("chunk", []string{"jsprog_moverel(0, math.floor(1.5))"})
	require.NoError(t, err)

	_, err = Check("chunk", []string{"jsprog_delay(1, 2, math.floor(1.5))"})
	assert.ErrorIs(t, err, ErrArity)
}

func TestCheckIgnoresOtherNames(t *testing.T) {
	lines := []string{
		"local _jsprog_shift_0 = 0",
		"local t = { presskey = function() end }",
		"t.presskey(1, 2, 3)",
	}
	res, err := Check("chunk", lines)
	require.NoError(t, err)
	assert.Empty(t, res.Calls)
}

func TestCheckErrorFormat(t *testing.T) {
	err := &CheckError{Chunk: "KEY_A", Line: 4, Message: "boom", Err: ErrArity}
	assert.Equal(t, "KEY_A:4: boom", err.Error())

	err = &CheckError{Chunk: "KEY_A", Message: "boom", Err: ErrCompile}
	assert.Equal(t, "KEY_A: boom", err.Error())
}

func TestCheckProfile(t *testing.T) {
	p := profile.New("Check", device.Identity{InputID: device.InputID{BusType: device.BusUSB}}, false)

	l := shift.NewLevel()
	require.True(t, l.Add(shift.NewState()))
	require.True(t, l.Add(shift.NewState(shift.KeyControl(key.BtnPinkie, 1))))
	require.NoError(t, p.AddShiftLevel(l))

	repeat := action.NewSimple(100)
	repeat.AddKeyCombination(key.KeyA, key.ModLeftShift)

	normal, err := handler.NewShiftHandler(0, 0)
	require.NoError(t, err)
	require.NoError(t, normal.AddChild(handler.Leaf(repeat)))

	shifted, err := handler.NewShiftHandler(1, 1)
	require.NoError(t, err)
	require.NoError(t, shifted.AddChild(handler.Leaf(action.NewMouseMove(action.DirectionVertical, 1, 0.5, 0, 0))))

	kp := handler.NewKeyProfile(key.BtnTrigger)
	require.NoError(t, kp.AddChild(handler.Branch(normal)))
	require.NoError(t, kp.AddChild(handler.Branch(shifted)))
	require.NoError(t, p.AddKeyProfile(kp))

	results, err := CheckProfile(p)
	require.NoError(t, err)
	require.Contains(t, results, "BTN_TRIGGER")

	names := callNames(results["BTN_TRIGGER"])
	assert.Contains(t, names, "jsprog_iskeypressed")
	assert.Contains(t, names, "jsprog_moverel")
	assert.Contains(t, names, "jsprog_delay")
	assert.Equal(t, "jsprog_cancelprevious", names[len(names)-1])
}

func TestCheckProfileIncomplete(t *testing.T) {
	p := profile.New("Check", device.Identity{}, false)

	l := shift.NewLevel()
	require.True(t, l.Add(shift.NewState()))
	require.True(t, l.Add(shift.NewState(shift.KeyControl(key.BtnPinkie, 1))))
	require.NoError(t, p.AddShiftLevel(l))

	h, err := handler.NewShiftHandler(0, 0)
	require.NoError(t, err)
	kp := handler.NewKeyProfile(key.BtnTrigger)
	require.NoError(t, kp.AddChild(handler.Branch(h)))
	require.NoError(t, p.AddKeyProfile(kp))

	_, err = CheckProfile(p)
	assert.Error(t, err)
}
