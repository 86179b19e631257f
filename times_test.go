package igtrade

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimeUnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{`"2021/02/10 11:42:56:000"`, time.Date(2021, 2, 10, 11, 42, 56, 0, time.UTC)},
		{`"2021/02/10 11:42:56:123"`, time.Date(2021, 2, 10, 11, 42, 56, 123000000, time.UTC)},
		{`"2021/02/10 22:00:00"`, time.Date(2021, 2, 10, 22, 0, 0, 0, time.UTC)},
		{`"2021-02-10T22:00:00"`, time.Date(2021, 2, 10, 22, 0, 0, 0, time.UTC)},
		{`"2021/02/10"`, time.Date(2021, 2, 10, 0, 0, 0, 0, time.UTC)},
		{`null`, time.Time{}},
		{`""`, time.Time{}},
	}

	for _, tc := range tests {
		var got Time
		if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
			t.Errorf("Unmarshal(%s) error = %v", tc.in, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("Unmarshal(%s) = %v, want %v", tc.in, got.Time, tc.want)
		}
	}
}

func TestTimeUnmarshalJSONRejectsGarbage(t *testing.T) {
	var got Time
	if err := json.Unmarshal([]byte(`"tomorrow"`), &got); err == nil {
		t.Error("Unmarshal(tomorrow) should fail")
	}
}

func TestTimeMarshalJSON(t *testing.T) {
	in := Time{Time: time.Date(2021, 2, 10, 11, 42, 56, 0, time.UTC)}
	got, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if want := `"2021/02/10 11:42:56"`; string(got) != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}

	got, err = json.Marshal(Time{})
	if err != nil {
		t.Fatalf("Marshal(zero) error = %v", err)
	}
	if string(got) != "null" {
		t.Errorf("Marshal(zero) = %s, want null", got)
	}
}
