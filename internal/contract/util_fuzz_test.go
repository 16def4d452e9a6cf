package contract

import (
	"math"
	"testing"

	"github.com/huangsam/attrition/schema"
)

// FuzzClampScenario fuzzes the input surface with arbitrary values and travel strings.
func FuzzClampScenario(f *testing.F) {
	f.Add(10.0, "frequently", 40.0, 2.0, 3.0)
	f.Add(-1.0, "never", 500.0, -3.0, 9.0)
	f.Add(math.Inf(1), "NON_TRAVEL", math.NaN(), 5.0, 1.0)
	f.Add(0.0, "", 0.0, 0.0, 0.0)

	f.Fuzz(func(t *testing.T, salary float64, travel string, training, wfh, satisfaction float64) {
		in := schema.ScenarioInputs{
			SalaryIncrease:  salary,
			BusinessTravel:  schema.TravelFrequency(travel),
			TrainingHours:   training,
			WorkFromHome:    wfh,
			JobSatisfaction: satisfaction,
		}

		out, _, err := ClampScenario(in)
		if err != nil {
			return
		}
		if _, ok := schema.ValidTravelFrequencies[out.BusinessTravel]; !ok {
			t.Fatalf("travel %q accepted but not valid", out.BusinessTravel)
		}
		for field, domain := range schema.FieldDomains {
			v := out.NumericValue(field)
			if math.IsNaN(v) || v < domain.Min || v > domain.Max {
				t.Fatalf("%s=%v outside [%v, %v]", field, v, domain.Min, domain.Max)
			}
		}
	})
}

// FuzzTruncatePath fuzzes the truncation helpers with random strings and widths.
func FuzzTruncatePath(f *testing.F) {
	f.Add("Engineering", 5)
	f.Add("", 0)
	f.Add("日本語の部署名", 4)

	f.Fuzz(func(t *testing.T, s string, width int) {
		if width > 3 {
			if got := []rune(TruncatePath(s, width)); len(got) > width {
				t.Fatalf("TruncatePath(%q, %d) = %q is too wide", s, width, string(got))
			}
			if got := []rune(TruncateText(s, width)); len(got) > width {
				t.Fatalf("TruncateText(%q, %d) = %q is too wide", s, width, string(got))
			}
		}
	})
}
