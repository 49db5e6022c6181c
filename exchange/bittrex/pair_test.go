package bittrex

import "testing"

func TestPairRoundTrip(t *testing.T) {
	for _, pair := range []string{"BTC_ETH", "USDT_BTC", "ETH_OMG"} {
		if got := PairToWorld(WorldPairToBittrex(pair)); got != pair {
			t.Errorf("Expected %s to survive a round trip, but got %s instead.", pair, got)
		}
	}

	for _, market := range []string{"BTC-ETH", "USDT-BTC", "ETH-OMG"} {
		if got := WorldPairToBittrex(PairToWorld(market)); got != market {
			t.Errorf("Expected %s to survive a round trip, but got %s instead.", market, got)
		}
	}
}

func TestPairConversion(t *testing.T) {
	if got := PairToWorld("BTC-LTC"); got != "BTC_LTC" {
		t.Errorf("Expected BTC_LTC but got %s.", got)
	}

	if got := WorldPairToBittrex("BTC_LTC"); got != "BTC-LTC" {
		t.Errorf("Expected BTC-LTC but got %s.", got)
	}

	if got := PairToWorld("garbage"); got != "garbage" {
		t.Errorf("Expected malformed input to pass through unchanged, but got %s.", got)
	}
}
