package cmd

import (
	"strings"
	"testing"
)

type sample struct {
	Accounts []sampleAccount `json:"accounts"`
}

type sampleAccount struct {
	ID       string  `json:"accountId"`
	Currency string  `json:"currency"`
	Balance  float64 `json:"balance"`
}

func testPayload() sample {
	return sample{Accounts: []sampleAccount{
		{ID: "ABC12", Currency: "GBP", Balance: 1500.5},
		{ID: "XYZ34", Currency: "EUR", Balance: 200},
	}}
}

func TestRenderJSON(t *testing.T) {
	got, err := renderJSON(testPayload(), "")
	if err != nil {
		t.Fatalf("renderJSON() error = %v", err)
	}
	for _, want := range []string{`"accountId": "ABC12"`, `"balance": 1500.5`} {
		if !strings.Contains(got, want) {
			t.Errorf("renderJSON() missing %q in:\n%s", want, got)
		}
	}
}

func TestRenderJSONQuery(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"$.accounts[0].accountId", `"ABC12"`},
		{"$.accounts[1].balance", "200"},
		{"$.accounts[*].currency", "\"GBP\",\n  \"EUR\""},
	}

	for _, tc := range tests {
		got, err := renderJSON(testPayload(), tc.query)
		if err != nil {
			t.Errorf("renderJSON(%s) error = %v", tc.query, err)
			continue
		}
		if !strings.Contains(got, tc.want) {
			t.Errorf("renderJSON(%s) = %s, want it to contain %s", tc.query, got, tc.want)
		}
	}
}

func TestRenderJSONBadQuery(t *testing.T) {
	if _, err := renderJSON(testPayload(), "$.["); err == nil {
		t.Error("renderJSON() with a malformed query should fail")
	}
}

func TestCheckFormat(t *testing.T) {
	old := *outputFormat
	defer func() { *outputFormat = old }()

	for _, ok := range []string{"text", "json"} {
		*outputFormat = ok
		if err := checkFormat(); err != nil {
			t.Errorf("checkFormat(%s) error = %v", ok, err)
		}
	}

	*outputFormat = "xml"
	if err := checkFormat(); err == nil {
		t.Error("checkFormat(xml) should fail")
	}
}
