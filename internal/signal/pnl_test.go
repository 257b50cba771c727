package signal

import (
	"testing"

	"signalhub/internal/consts"
)

func TestSuggestedRatioLong(t *testing.T) {
	// entry=45000, stop=44000, target=47500 → profit=2500, loss=1000 → 2.5:1
	got := SuggestedRatio("45000", "47500", "44000", consts.DirectionLong)
	if got != "2.5:1" {
		t.Fatalf("expected 2.5:1, got %s", got)
	}
}

func TestSuggestedRatioShortLossNotPositive(t *testing.T) {
	// 做空公式: profit = entry-target = 100, loss = stop-entry = -1000 → loss <= 0 → "--"
	got := SuggestedRatio("45000", "44900", "44000", consts.DirectionShort)
	if got != consts.RatioUndefined {
		t.Fatalf("expected %s, got %s", consts.RatioUndefined, got)
	}
}

func TestSuggestedRatioShort(t *testing.T) {
	// 做空: entry=100, target=90, stop=105 → profit=10, loss=5 → 2.0:1
	got := SuggestedRatio("100", "90", "105", consts.DirectionShort)
	if got != "2.0:1" {
		t.Fatalf("expected 2.0:1, got %s", got)
	}
}

func TestSuggestedRatioRounding(t *testing.T) {
	// profit=1000, loss=3000 → 0.333... → 0.3:1
	got := SuggestedRatio("45000", "46000", "42000", consts.DirectionLong)
	if got != "0.3:1" {
		t.Fatalf("expected 0.3:1, got %s", got)
	}
}

func TestSuggestedRatioUnparsable(t *testing.T) {
	cases := [][4]string{
		{"abc", "47500", "44000", consts.DirectionLong},
		{"45000", "xx", "44000", consts.DirectionLong},
		{"45000", "47500", "", consts.DirectionLong},
		{"45000", "47500", "44000", "随便"},
	}
	for _, c := range cases {
		if got := SuggestedRatio(c[0], c[1], c[2], c[3]); got != consts.RatioUndefined {
			t.Fatalf("case %v: expected %s, got %s", c, consts.RatioUndefined, got)
		}
	}
}

func TestSuggestedRatioNoTarget(t *testing.T) {
	if got := SuggestedRatio("45000", "", "44000", consts.DirectionLong); got != consts.RatioUndefined {
		t.Fatalf("expected %s without target, got %s", consts.RatioUndefined, got)
	}
}

func TestSuggestedRatioLossEqualsZero(t *testing.T) {
	// entry == stop → loss = 0 → "--"
	if got := SuggestedRatio("45000", "47500", "45000", consts.DirectionLong); got != consts.RatioUndefined {
		t.Fatalf("expected %s when loss is zero, got %s", consts.RatioUndefined, got)
	}
}

func TestSelectTarget(t *testing.T) {
	cases := []struct {
		tp1, tp2, want string
	}{
		{"", "", ""},
		{"47500", "", "47500"},
		{"", "48000", "48000"},
		{"47500", "48000", "48000"}, // 取数值更大的
		{"48000", "47500", "48000"},
		{"47500", "47500", "47500"},
		{"bad", "48000", "48000"}, // 解析失败的一侧让位
		{"47500", "bad", "47500"},
	}
	for _, c := range cases {
		if got := SelectTarget(c.tp1, c.tp2); got != c.want {
			t.Fatalf("SelectTarget(%q, %q) = %q, want %q", c.tp1, c.tp2, got, c.want)
		}
	}
}
