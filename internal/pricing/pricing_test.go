package pricing

import "testing"

func TestUnitPriceTiers(t *testing.T) {
	cases := map[int]int64{
		1:   650,
		2:   625,
		3:   600,
		4:   575,
		5:   550,
		6:   550,
		100: 550,
	}
	for quantity, expected := range cases {
		if got := UnitPrice(quantity); got != expected {
			t.Fatalf("UnitPrice(%d) = %d, expected %d", quantity, got, expected)
		}
	}
}

func TestUnitPriceNonIncreasing(t *testing.T) {
	previous := UnitPrice(1)
	for quantity := 2; quantity <= 20; quantity++ {
		current := UnitPrice(quantity)
		if current > previous {
			t.Fatalf("UnitPrice(%d) = %d exceeds UnitPrice(%d) = %d", quantity, current, quantity-1, previous)
		}
		previous = current
	}
}
