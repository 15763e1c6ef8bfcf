package compliance

import "testing"

func TestScore(t *testing.T) {
	cases := []struct {
		name     string
		statuses []Status
		want     int
	}{
		{"empty input scores zero", nil, 0},
		{"all compliant", []Status{StatusCompliant, StatusCompliant}, 100},
		{"one of each status", []Status{StatusCompliant, StatusPartial, StatusNonCompliant, StatusPending}, 38},
		{"single partial", []Status{StatusPartial}, 50},
		{"all pending", []Status{StatusPending, StatusPending}, 0},
		{"unknown statuses contribute nothing", []Status{StatusCompliant, Status("bogus")}, 50},
		{"rounds to nearest", []Status{StatusCompliant, StatusCompliant, StatusNonCompliant}, 67},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Score(tc.statuses); got != tc.want {
				t.Fatalf("Score(%v) = %d, want %d", tc.statuses, got, tc.want)
			}
		})
	}
}

func TestStatusValid(t *testing.T) {
	for _, status := range []Status{StatusCompliant, StatusPartial, StatusNonCompliant, StatusPending} {
		if !status.Valid() {
			t.Fatalf("expected %q to be valid", status)
		}
	}
	if Status("unknown").Valid() {
		t.Fatal("expected unknown status to be invalid")
	}
	if Status("").Valid() {
		t.Fatal("expected empty status to be invalid")
	}
}
