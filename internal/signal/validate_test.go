package signal

import (
	"strings"
	"testing"
	"time"

	"signalhub/internal/consts"
	"signalhub/internal/model"
)

func TestValidateOneEmptySignal(t *testing.T) {
	// 空对象应该报出全部5个必填字段
	errs := ValidateOne(0, model.RawSignal{})
	if len(errs) != 5 {
		t.Fatalf("expected 5 errors, got %d: %v", len(errs), errs)
	}
	for _, want := range []string{"pair", "direction", "entry_price", "stop_loss", "order_type"} {
		found := false
		for _, e := range errs {
			if strings.Contains(e, want) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("missing error for field %s in %v", want, errs)
		}
	}
}

func TestValidateOneInvalidEnums(t *testing.T) {
	raw := model.RawSignal{
		Pair:       "BTC/USDT",
		Direction:  "buy",
		EntryPrice: "45000",
		StopLoss:   "44000",
		OrderType:  "market",
	}
	errs := ValidateOne(0, raw)
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors (direction, order_type), got %v", errs)
	}
}

func TestValidateOneValid(t *testing.T) {
	raw := model.RawSignal{
		Pair:       "BTC/USDT",
		Direction:  consts.DirectionLong,
		EntryPrice: "45000",
		StopLoss:   "44000",
		OrderType:  consts.OrderTypeLimit,
	}
	if errs := ValidateOne(0, raw); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateBatchIndexesErrors(t *testing.T) {
	batch := []model.RawSignal{
		{Pair: "BTC/USDT", Direction: consts.DirectionLong, EntryPrice: "1", StopLoss: "0.5", OrderType: consts.OrderTypeMarket},
		{}, // 全空
	}
	errs := ValidateBatch(batch)
	if len(errs) != 5 {
		t.Fatalf("expected 5 errors from the second element, got %v", errs)
	}
	for _, e := range errs {
		if !strings.HasPrefix(e, "signal[1]:") {
			t.Fatalf("error not attributed to index 1: %s", e)
		}
	}
}

func TestNormalizeCloseStatus(t *testing.T) {
	ended := time.Now()

	// 非历史信号即使带status也归为nil，防止伪造分类
	if s := NormalizeCloseStatus(model.RawSignal{Status: consts.CloseStatusTakeProfit}); s != nil {
		t.Fatalf("current signal should not carry close status, got %v", *s)
	}
	// 集合外的状态归为nil
	if s := NormalizeCloseStatus(model.RawSignal{Status: "liquidated", EndedAt: &ended}); s != nil {
		t.Fatalf("unknown close status should be nil, got %v", *s)
	}
	// 合法状态保留
	s := NormalizeCloseStatus(model.RawSignal{Status: consts.CloseStatusStopLoss, EndedAt: &ended})
	if s == nil || *s != consts.CloseStatusStopLoss {
		t.Fatalf("expected %s, got %v", consts.CloseStatusStopLoss, s)
	}
}
