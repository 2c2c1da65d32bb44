package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/joyprog/internal/action"
	"github.com/dshills/joyprog/internal/input/key"
	"github.com/dshills/joyprog/internal/profile/handler"
	"github.com/dshills/joyprog/internal/profile/shift"
)

func tap(code key.Code) action.Action {
	s := action.NewSimple(0)
	s.AddKeyCombination(code, key.ModNone)
	return s
}

func branch(t *testing.T, from, to int, children ...handler.Child) handler.Child {
	t.Helper()
	h, err := handler.NewShiftHandler(from, to)
	require.NoError(t, err)
	for _, c := range children {
		require.NoError(t, h.AddChild(c))
	}
	return handler.Branch(h)
}

func level(states ...*shift.State) *shift.Level {
	l := shift.NewLevel()
	for _, s := range states {
		l.Add(s)
	}
	return l
}

func TestTwoStateLevel(t *testing.T) {
	levels := []*shift.Level{
		level(shift.NewState(), shift.NewState(shift.KeyControl(key.KeyLeftShift, 1))),
	}

	kp := handler.NewKeyProfile(key.BtnTrigger)
	require.NoError(t, kp.AddChild(branch(t, 0, 0, handler.Leaf(tap(key.KeyA)))))
	require.NoError(t, kp.AddChild(branch(t, 1, 1, handler.Leaf(tap(key.KeyB)))))

	got, err := KeyProfile(kp, levels)
	require.NoError(t, err)

	want := []string{
		"if value~=0 then",
		"  local _jsprog_shift_0 = 0",
		"  if jsprog_iskeypressed(42) then",
		"    _jsprog_shift_0 = 1",
		"  end",
		"  if _jsprog_shift_0==0 then",
		"    jsprog_presskey(30)",
		"    jsprog_releasekey(30)",
		"  else",
		"    jsprog_presskey(48)",
		"    jsprog_releasekey(48)",
		"  end",
		"end",
	}
	assert.Equal(t, want, got)

	for _, line := range got {
		assert.NotContains(t, line, "_jsprog_shift_0==1", "trailing branch must not be tested")
	}
}

func TestSingleChildAtEveryDepthEmitsNoBranching(t *testing.T) {
	levels := []*shift.Level{
		level(shift.NewState(), shift.NewState(shift.KeyControl(key.KeyLeftShift, 1))),
		level(
			shift.NewState(shift.KeyControl(key.BtnPinkie, 0)),
			shift.NewState(shift.KeyControl(key.BtnPinkie, 1)),
			shift.NewState(shift.KeyControl(key.BtnThumb, 1)),
		),
	}

	kp := handler.NewKeyProfile(key.BtnTrigger)
	inner := branch(t, 0, 2, handler.Leaf(tap(key.KeySpace)))
	require.NoError(t, kp.AddChild(branch(t, 0, 1, inner)))

	got, err := KeyProfile(kp, levels)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"if value~=0 then",
		"  jsprog_presskey(57)",
		"  jsprog_releasekey(57)",
		"end",
	}, got)
}

func TestNoShiftLevels(t *testing.T) {
	kp := handler.NewKeyProfile(key.BtnTrigger)
	require.NoError(t, kp.AddChild(handler.Leaf(action.NewMouseMove(action.DirectionHorizontal, 1, 0, 0, 0))))

	got, err := KeyProfile(kp, nil)
	require.NoError(t, err)

	assert.Equal(t, "if value~=0 then", got[0])
	assert.Equal(t, "  local _jsprog_step = 0", got[1])
	assert.Equal(t, []string{"else", "  jsprog_cancelprevious()", "end"}, got[len(got)-3:])
}

func TestRangesAndNesting(t *testing.T) {
	levels := []*shift.Level{
		level(
			shift.NewState(),
			shift.NewState(shift.KeyControl(key.BtnPinkie, 1)),
			shift.NewState(shift.KeyControl(key.BtnThumb, 1)),
			shift.NewState(shift.KeyControl(key.BtnPinkie, 1), shift.KeyControl(key.BtnThumb, 1)),
		),
		level(shift.NewState(), shift.NewState(shift.KeyControl(key.KeyLeftShift, 1))),
	}

	repeat := action.NewSimple(100)
	repeat.AddKeyCombination(key.KeyB, key.ModNone)

	kp := handler.NewKeyProfile(key.BtnTrigger)
	require.NoError(t, kp.AddChild(branch(t, 0, 0, branch(t, 0, 1, handler.Leaf(tap(key.KeyA))))))
	require.NoError(t, kp.AddChild(branch(t, 1, 2,
		branch(t, 0, 0, handler.Leaf(tap(key.KeyA))),
		branch(t, 1, 1, handler.Leaf(repeat)),
	)))
	require.NoError(t, kp.AddChild(branch(t, 3, 3, branch(t, 0, 1, handler.Leaf(tap(key.KeySpace))))))

	got, err := KeyProfile(kp, levels)
	require.NoError(t, err)

	want := []string{
		"if value~=0 then",
		"  local _jsprog_shift_0 = 0",
		"  if jsprog_iskeypressed(289) and jsprog_iskeypressed(293) then",
		"    _jsprog_shift_0 = 3",
		"  elseif jsprog_iskeypressed(293) then",
		"    _jsprog_shift_0 = 1",
		"  elseif jsprog_iskeypressed(289) then",
		"    _jsprog_shift_0 = 2",
		"  end",
		"  if _jsprog_shift_0==0 then",
		"    jsprog_presskey(30)",
		"    jsprog_releasekey(30)",
		"  elseif _jsprog_shift_0>=1 and _jsprog_shift_0<=2 then",
		"    local _jsprog_shift_1 = 0",
		"    if jsprog_iskeypressed(42) then",
		"      _jsprog_shift_1 = 1",
		"    end",
		"    if _jsprog_shift_1==0 then",
		"      jsprog_presskey(30)",
		"      jsprog_releasekey(30)",
		"    else",
		"      while true do",
		"        jsprog_presskey(48)",
		"        jsprog_releasekey(48)",
		"        jsprog_delay(100)",
		"      end",
		"    end",
		"  else",
		"    jsprog_presskey(57)",
		"    jsprog_releasekey(57)",
		"  end",
		"else",
		"  jsprog_cancelprevious()",
		"end",
	}
	assert.Equal(t, want, got)
}

func TestStateCodeWithoutEmptyState(t *testing.T) {
	l := level(
		shift.NewState(shift.KeyControl(key.BtnPinkie, 0)),
		shift.NewState(shift.KeyControl(key.BtnPinkie, 1)),
	)

	assert.Equal(t, []string{
		"local s = 0",
		"if not jsprog_iskeypressed(293) then",
		"  s = 0",
		"elseif jsprog_iskeypressed(293) then",
		"  s = 1",
		"end",
	}, StateCode(l, "s"))
}

func TestStateCodeNoMatchFallsToFirstState(t *testing.T) {
	l := level(
		shift.NewState(shift.KeyControl(key.BtnThumb, 1)),
		shift.NewState(shift.KeyControl(key.BtnTop, 1)),
	)

	lines := StateCode(l, "s")
	require.NotEmpty(t, lines)
	assert.Equal(t, "local s = 0", lines[0])
	assert.NotContains(t, lines, "else")
}

func TestMalformedTree(t *testing.T) {
	levels := []*shift.Level{
		level(shift.NewState(), shift.NewState(shift.KeyControl(key.KeyLeftShift, 1))),
	}

	leafAtRoot := handler.NewKeyProfile(key.BtnTrigger)
	require.NoError(t, leafAtRoot.AddChild(handler.Leaf(tap(key.KeyA))))
	_, err := KeyProfile(leafAtRoot, levels)
	assert.ErrorIs(t, err, ErrMalformedTree)
	assert.True(t, strings.HasPrefix(err.Error(), "key BTN_TRIGGER:"), err.Error())

	empty := handler.NewKeyProfile(key.BtnTrigger)
	_, err = KeyProfile(empty, nil)
	assert.ErrorIs(t, err, ErrMalformedTree)
}

func TestStateVar(t *testing.T) {
	assert.Equal(t, "_jsprog_shift_3", StateVar(3))
}
