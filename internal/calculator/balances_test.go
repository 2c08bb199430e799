package calculator

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/nexiumfounders/subsplit/internal/models"
	"github.com/nexiumfounders/subsplit/internal/period"
)

var founders = []string{"faris", "omar", "ahmed"}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func chatgpt() models.RecurringCharge {
	return models.RecurringCharge{
		ID:           "chatgpt",
		Name:         "ChatGPT Plus",
		Price:        decimal.NewFromInt(600),
		Start:        aug2025,
		DefaultPayer: "faris",
	}
}

// foundersInputs covers Aug-Oct 2025 with ChatGPT paid by Omar in October.
func foundersInputs() Inputs {
	overrides := models.PayerOverrides{}
	overrides.Set("2025-10", "chatgpt", "omar")
	return Inputs{
		Participants: founders,
		Charges:      []models.RecurringCharge{chatgpt(), gemini()},
		Overrides:    overrides,
		Settlements:  models.NewMatrix(founders),
		Selected:     aug2025.Shift(2),
	}
}

func TestComputeTwoParticipantScenario(t *testing.T) {
	charge := chatgpt()
	charge.DefaultPayer = "A"
	in := Inputs{
		Participants: []string{"A", "B"},
		Charges:      []models.RecurringCharge{charge},
		Settlements:  models.NewMatrix([]string{"A", "B"}),
		Selected:     aug2025,
	}

	got := Compute(in)
	if !got.Raw.At("B", "A").Equal(dec("300")) {
		t.Errorf("raw[B][A] = %s, want 300", got.Raw.At("B", "A"))
	}
	if !got.Net.At("B", "A").Equal(dec("300")) {
		t.Errorf("net[B][A] = %s, want 300", got.Net.At("B", "A"))
	}
	if !got.AfterTransfers.At("B", "A").Equal(dec("300")) {
		t.Errorf("after[B][A] = %s, want 300", got.AfterTransfers.At("B", "A"))
	}

	in.Settlements.Add("B", "A", dec("300"))
	got = Compute(in)
	if !got.AfterTransfers.At("B", "A").IsZero() {
		t.Errorf("after 300 transfer: after[B][A] = %s, want 0", got.AfterTransfers.At("B", "A"))
	}

	in.Settlements.Add("B", "A", dec("50"))
	got = Compute(in)
	if !got.AfterTransfers.At("B", "A").IsZero() {
		t.Errorf("after extra 50: after[B][A] = %s, want 0", got.AfterTransfers.At("B", "A"))
	}
	if !got.AfterTransfers.At("A", "B").IsZero() {
		t.Errorf("over-payment must not create reverse debt, after[A][B] = %s", got.AfterTransfers.At("A", "B"))
	}
}

func TestAccumulateRawDuesFounders(t *testing.T) {
	in := foundersInputs()
	raw := AccumulateRawDues(in.Participants, in.Charges, in.Overrides, aug2025, in.Selected)

	third := dec("700").Div(decimal.NewFromInt(3))
	tests := []struct {
		debtor, creditor string
		want             decimal.Decimal
	}{
		{"omar", "faris", dec("400")},
		{"ahmed", "faris", dec("400")},
		{"faris", "omar", dec("200")},
		{"ahmed", "omar", dec("200")},
		{"faris", "ahmed", third.Add(third)},
		{"omar", "ahmed", third.Add(third)},
	}
	for _, tt := range tests {
		if got := raw.At(tt.debtor, tt.creditor); !got.Equal(tt.want) {
			t.Errorf("raw[%s][%s] = %s, want %s", tt.debtor, tt.creditor, got, tt.want)
		}
	}
}

func TestAccumulateRawDuesBeforeAnyStart(t *testing.T) {
	in := foundersInputs()
	raw := AccumulateRawDues(in.Participants, in.Charges, in.Overrides, aug2025, aug2025.Shift(-3))
	if !raw.IsZero() {
		t.Errorf("expected all-zero matrix before the earliest start, got total %s", raw.Total())
	}

	raw = AccumulateRawDues(in.Participants, nil, in.Overrides, period.Period{}, aug2025)
	if !raw.IsZero() {
		t.Error("expected all-zero matrix without charges")
	}
}

func TestAccumulateRawDuesUnknownOverrideFallsBack(t *testing.T) {
	in := foundersInputs()
	in.Overrides = models.PayerOverrides{}
	in.Overrides.Set("2025-08", "chatgpt", "someone-who-left")

	raw := AccumulateRawDues(in.Participants, in.Charges, in.Overrides, aug2025, aug2025)
	if !raw.At("omar", "faris").Equal(dec("200")) {
		t.Errorf("raw[omar][faris] = %s, want 200 (default payer)", raw.At("omar", "faris"))
	}
}

func TestEvenSplitInvariant(t *testing.T) {
	for _, n := range []int{2, 3, 4, 7} {
		ids := make([]string, n)
		for i := range ids {
			ids[i] = string(rune('a' + i))
		}
		charge := chatgpt()
		charge.Price = dec("700")
		charge.DefaultPayer = "a"

		raw := AccumulateRawDues(ids, []models.RecurringCharge{charge}, nil, aug2025, aug2025)

		share := charge.Price.Div(decimal.NewFromInt(int64(n)))
		credited := raw.ColumnSum("a")
		if !credited.Equal(share.Mul(decimal.NewFromInt(int64(n - 1)))) {
			t.Errorf("n=%d: credited %s, want %d shares of %s", n, credited, n-1, share)
		}
		if !credited.Add(share).Round(2).Equal(charge.Price) {
			t.Errorf("n=%d: credits plus payer share = %s, want %s", n, credited.Add(share), charge.Price)
		}
		if !raw.RowSum("a").IsZero() {
			t.Errorf("n=%d: payer must not owe themselves", n)
		}
	}
}

func TestNetPairsInvariant(t *testing.T) {
	in := foundersInputs()
	got := Compute(in)

	got.Net.Each(func(a, b string, ab decimal.Decimal) {
		if ab.IsNegative() {
			t.Errorf("net[%s][%s] = %s is negative", a, b, ab)
		}
		if ab.IsPositive() && !got.Net.At(b, a).IsZero() {
			t.Errorf("both net[%s][%s] and net[%s][%s] are non-zero", a, b, b, a)
		}
		// the difference in each pair is preserved by netting
		rawDiff := got.Raw.At(a, b).Sub(got.Raw.At(b, a))
		netDiff := ab.Sub(got.Net.At(b, a))
		if !rawDiff.Equal(netDiff) {
			t.Errorf("pair %s/%s: raw diff %s != net diff %s", a, b, rawDiff, netDiff)
		}
	})

	if !got.Net.At("omar", "faris").Equal(dec("200")) {
		t.Errorf("net[omar][faris] = %s, want 200", got.Net.At("omar", "faris"))
	}
	if !got.Net.At("faris", "omar").IsZero() {
		t.Errorf("net[faris][omar] = %s, want 0", got.Net.At("faris", "omar"))
	}
}

func TestAfterTransfersFloor(t *testing.T) {
	in := foundersInputs()
	in.Settlements.Add("omar", "faris", dec("1000000"))
	in.Settlements.Add("faris", "omar", dec("75")) // against the net direction
	got := Compute(in)

	got.AfterTransfers.Each(func(a, b string, v decimal.Decimal) {
		if v.IsNegative() {
			t.Errorf("after[%s][%s] = %s is negative", a, b, v)
		}
	})
	if !got.AfterTransfers.At("omar", "faris").IsZero() {
		t.Errorf("after[omar][faris] = %s, want 0", got.AfterTransfers.At("omar", "faris"))
	}
	if !got.AfterTransfers.At("faris", "omar").IsZero() {
		t.Errorf("after[faris][omar] = %s, want 0", got.AfterTransfers.At("faris", "omar"))
	}
}

// TestAggregateTotals pins down which zero-sum identity survives transfers.
// The grand totals of row sums and column sums always agree because both
// add up the same matrix. What transfers change is the outstanding total:
// each directed cell drops by min(record, net), so transfers recorded against
// the net direction or beyond the debt do not reduce it.
func TestAggregateTotals(t *testing.T) {
	in := foundersInputs()
	in.Settlements.Add("omar", "faris", dec("150"))
	in.Settlements.Add("ahmed", "faris", dec("999"))
	in.Settlements.Add("faris", "omar", dec("40"))
	got := Compute(in)

	byThem, toThem := decimal.Zero, decimal.Zero
	for _, m := range got.Members {
		byThem = byThem.Add(m.TotalOwedByThem)
		toThem = toThem.Add(m.TotalOwedToThem)
	}
	if !byThem.Equal(toThem) {
		t.Errorf("Σ owed by = %s, Σ owed to = %s", byThem, toThem)
	}

	applied := decimal.Zero
	got.Net.Each(func(a, b string, owed decimal.Decimal) {
		applied = applied.Add(decimal.Min(owed, in.Settlements.At(a, b)))
	})
	if want := got.Net.Total().Sub(applied); !got.AfterTransfers.Total().Equal(want) {
		t.Errorf("outstanding = %s, want net total - applied = %s", got.AfterTransfers.Total(), want)
	}
	if got.AfterTransfers.Total().Equal(got.Net.Total().Sub(in.Settlements.Total())) {
		t.Error("discarded transfers should make outstanding differ from net - all transfers")
	}

	net := decimal.Zero
	for _, m := range got.Members {
		net = net.Add(m.Net())
	}
	if !net.IsZero() {
		t.Errorf("Σ member net = %s, want 0", net)
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	in := foundersInputs()
	in.Settlements.Add("omar", "ahmed", dec("12.5"))

	first := Compute(in)
	second := Compute(in)

	if !first.Raw.Equal(second.Raw) || !first.Net.Equal(second.Net) || !first.AfterTransfers.Equal(second.AfterTransfers) {
		t.Fatal("repeated Compute produced different matrices")
	}
	for i := range first.Members {
		a, b := first.Members[i], second.Members[i]
		if a.ParticipantID != b.ParticipantID || !a.TotalOwedByThem.Equal(b.TotalOwedByThem) || !a.TotalOwedToThem.Equal(b.TotalOwedToThem) {
			t.Errorf("member %d differs: %+v vs %+v", i, a, b)
		}
	}
}

func TestDebtEdges(t *testing.T) {
	got := Compute(foundersInputs())
	edges := DebtEdges(got.AfterTransfers)
	if len(edges) != 3 {
		t.Fatalf("got %d edges, want 3: %+v", len(edges), edges)
	}
	// participant order: faris row first
	if edges[0].From != "faris" || edges[0].To != "ahmed" {
		t.Errorf("first edge = %+v, want faris -> ahmed", edges[0])
	}
}
