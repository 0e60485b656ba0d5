package wildberries

import "testing"

func TestBasketBoundaries(t *testing.T) {
	cases := []struct {
		id   int64
		want string
	}{
		{1, "01"},
		{143, "01"},
		{144, "02"},
		{287, "02"},
		{288, "03"},
		{431, "03"},
		{432, "04"},
		{719, "04"},
		{720, "05"},
		{1007, "05"},
		{1008, "06"},
		{1061, "06"},
		{1062, "07"},
		{1115, "07"},
		{1116, "08"},
		{1169, "08"},
		{1170, "09"},
		{1313, "09"},
		{1314, "10"},
		{1601, "10"},
		{1602, "11"},
		{1655, "11"},
		{1656, "12"},
		{1919, "12"},
		{1920, "13"},
		{2045, "13"},
		{2046, "14"},
		{2189, "14"},
		{2190, "15"},
		{2405, "15"},
		{2406, "16"},
		{241779009, "16"},
	}
	for _, tc := range cases {
		if got := ResolveBasket(tc.id).Basket; got != tc.want {
			t.Fatalf("basket(%d) = %s, want %s", tc.id, got, tc.want)
		}
	}
}

func TestBasketTableSorted(t *testing.T) {
	for i := 1; i < len(basketTable); i++ {
		if basketTable[i-1].upper >= basketTable[i].upper {
			t.Fatalf("basket table not ascending at %d", i)
		}
	}
}

func TestVolAndPart(t *testing.T) {
	loc := ResolveBasket(12345678)
	if loc.Vol != 123 || loc.Part != 12345 {
		t.Fatalf("unexpected location for 12345678: %+v", loc)
	}
	if loc := ResolveBasket(123); loc.Vol != 0 {
		t.Fatalf("short id should have vol 0, got %d", loc.Vol)
	}
	if loc := ResolveBasket(12); loc.Part != 12 {
		t.Fatalf("id of 3 digits or fewer is its own part, got %d", loc.Part)
	}
	if loc := ResolveBasket(999); loc.Part != 999 {
		t.Fatalf("999 should be its own part, got %d", loc.Part)
	}
	if loc := ResolveBasket(1000); loc.Part != 1 {
		t.Fatalf("1000 should have part 1, got %d", loc.Part)
	}
	if loc := ResolveBasket(99999); loc.Vol != 0 {
		t.Fatalf("five-digit id should have vol 0, got %d", loc.Vol)
	}
}

func TestImageURL(t *testing.T) {
	got := ImageURL(241779009, "big", 3)
	want := "https://basket-16.wbbasket.ru/vol2417/part241779/241779009/images/big/3.webp"
	if got != want {
		t.Fatalf("ImageURL = %s, want %s", got, want)
	}
}
