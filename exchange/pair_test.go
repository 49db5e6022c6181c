package exchange

import "testing"

func TestPairPositions(t *testing.T) {
	if first := PairFirst("BTC_ETH"); first != "BTC" {
		t.Errorf("Expected the first asset of BTC_ETH to be BTC, but it was %s.", first)
	}

	if second := PairSecond("BTC_ETH"); second != "ETH" {
		t.Errorf("Expected the second asset of BTC_ETH to be ETH, but it was %s.", second)
	}

	if first := PairFirst("BTC"); first != "BTC" {
		t.Errorf("Expected a pair without a separator to be its own first asset, but got %s.", first)
	}

	if second := PairSecond("BTC"); second != "" {
		t.Errorf("Expected a pair without a separator to have no second asset, but got %s.", second)
	}
}
